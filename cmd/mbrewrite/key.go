package mbrewrite

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/viant/mbrewrite/internal/secret"
)

type KeyCmd struct {
	Set  KeySetCmd  `command:"set" description:"Store the API key (reads stdin when no argument is given)"`
	Show KeyShowCmd `command:"show" description:"Show the redacted API key"`
}

type KeySetCmd struct{}

func (c *KeySetCmd) Execute(args []string) error {
	key := strings.TrimSpace(strings.Join(args, ""))
	if key == "" {
		scanner := bufio.NewScanner(stdin)
		if scanner.Scan() {
			key = strings.TrimSpace(scanner.Text())
		}
	}
	if key == "" {
		return fmt.Errorf("API key is required")
	}
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	if err := sess.SetAPIKey(ctx, key); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "API key saved.")
	return nil
}

type KeyShowCmd struct{}

func (c *KeyShowCmd) Execute(_ []string) error {
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	key, err := sess.APIKey(ctx)
	if err != nil {
		return err
	}
	if key == "" {
		fmt.Fprintln(stdout, "API key is not set.")
		return nil
	}
	fmt.Fprintln(stdout, secret.Redact(key))
	return nil
}
