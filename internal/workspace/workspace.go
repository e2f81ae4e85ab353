package workspace

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/viant/afs"
)

const (
	// envKey is the environment variable used to override the default workspace root.
	envKey = "MBREWRITE_WORKSPACE"

	// noDefaultsKey disables writing the default config (useful for unit tests).
	noDefaultsKey = "MBREWRITE_WORKSPACE_NO_DEFAULTS"

	defaultRootDir = ".mbrewrite"
)

var (
	mux            sync.Mutex
	cachedRoot     string
	defaultsByRoot = map[string]bool{}
)

// Predefined kinds.
const (
	KindState  = "state"
	KindSecret = "secret"
)

// Root returns the absolute path to the workspace directory.
// The lookup order is:
//  1. $MBREWRITE_WORKSPACE environment variable, if set and non-empty
//  2. .mbrewrite under the current working directory
//
// The result is cached; a changed $MBREWRITE_WORKSPACE refreshes it.
func Root() string {
	mux.Lock()
	defer mux.Unlock()
	if env := os.Getenv(envKey); env != "" {
		if root := abs(env); root != cachedRoot {
			cachedRoot = root
			prepare(cachedRoot)
		}
		return cachedRoot
	}
	if cachedRoot != "" {
		return cachedRoot
	}
	wd, err := os.Getwd()
	if err != nil {
		cachedRoot = abs(defaultRootDir)
		return cachedRoot
	}
	cachedRoot = abs(filepath.Join(wd, defaultRootDir))
	prepare(cachedRoot)
	return cachedRoot
}

// Path returns a sub-path under the root for the given kind (e.g. "state").
func Path(kind string) string {
	dir := filepath.Join(Root(), kind)
	_ = os.MkdirAll(dir, 0755)
	return dir
}

// ResolvePathTemplate expands ${workspaceRoot}, ${home} and a leading ~ in value.
func ResolvePathTemplate(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return v
	}
	if strings.Contains(v, "${workspaceRoot}") {
		v = strings.ReplaceAll(v, "${workspaceRoot}", Root())
	}
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return v
	}
	v = strings.ReplaceAll(v, "${home}", home)
	if strings.HasPrefix(v, "~/") || v == "~" {
		v = filepath.Join(home, strings.TrimPrefix(v, "~"))
	}
	return v
}

func prepare(root string) {
	_ = os.MkdirAll(root, 0755)
	if os.Getenv(noDefaultsKey) != "" || defaultsByRoot[root] {
		return
	}
	defaultsByRoot[root] = true
	EnsureDefaultAt(context.Background(), afs.New(), root)
}

// abs converts p into an absolute, clean path. If an error occurs it returns p
// unchanged.
func abs(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	if absPath, err := filepath.Abs(p); err == nil {
		return absPath
	}
	return filepath.Clean(p)
}
