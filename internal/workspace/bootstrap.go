package workspace

import (
	"bytes"
	"context"
	"embed"
	"log"

	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

//go:embed default/*
var defaultsFS embed.FS

// ConfigFile is the workspace configuration file name.
const ConfigFile = "config.yaml"

// EnsureDefaultAt writes the default configuration under root when missing.
func EnsureDefaultAt(ctx context.Context, fs afs.Service, root string) {
	baseURL := url.Normalize(root, file.Scheme)
	dest := url.Join(baseURL, ConfigFile)
	if ok, _ := fs.Exists(ctx, dest); ok {
		return
	}
	data, err := fs.DownloadWithURL(ctx, url.Join("embed://localhost/", "default/"+ConfigFile), &defaultsFS)
	if err != nil {
		log.Printf("failed to read default %v: %v", ConfigFile, err)
		return
	}
	if err = fs.Upload(ctx, dest, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		log.Printf("failed to write default %v: %v", dest, err)
	}
}

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() []byte {
	data, _ := defaultsFS.ReadFile("default/" + ConfigFile)
	return data
}
