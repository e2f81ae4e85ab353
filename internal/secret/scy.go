package secret

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/viant/scy"
	_ "github.com/viant/scy/kms/blowfish"
)

// DefaultKey is the scy key used to encrypt stored credentials.
const DefaultKey = "blowfish://default"

// Credential is the encrypted payload.
type Credential struct {
	APIKey string `json:"apiKey"`
}

// Scy stores the key encrypted at a scy resource URL such as
// "~/.mbrewrite/secret/openai.json|blowfish://default".
type Scy struct {
	service *scy.Service
	URL     string
}

// NewScy creates a scy backed store; a URL without a key gets DefaultKey.
func NewScy(URL string) *Scy {
	if URL != "" && !strings.Contains(URL, "|") {
		URL += "|" + DefaultKey
	}
	return &Scy{service: scy.New(), URL: URL}
}

func (s *Scy) Get(ctx context.Context) (string, error) {
	if s.URL == "" {
		return "", fmt.Errorf("secret URL was empty")
	}
	resource := scy.EncodedResource(s.URL).Decode(ctx, reflect.TypeOf(Credential{}))
	secret, err := s.service.Load(ctx, resource)
	if err != nil {
		if isNotFoundError(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load credential: %w", err)
	}
	credential, ok := secret.Target.(*Credential)
	if !ok {
		return "", fmt.Errorf("unexpected credential type: %T", secret.Target)
	}
	return strings.TrimSpace(credential.APIKey), nil
}

func (s *Scy) Set(ctx context.Context, key string) error {
	if s.URL == "" {
		return fmt.Errorf("secret URL was empty")
	}
	credential := &Credential{APIKey: strings.TrimSpace(key)}
	resource := scy.EncodedResource(s.URL).Decode(ctx, reflect.TypeOf(Credential{}))
	secret := scy.NewSecret(credential, resource)
	if err := s.service.Store(ctx, secret); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if os.IsNotExist(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such file or directory") || strings.Contains(msg, "not found")
}
