package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveRepoDir converts a single-segment repo name (e.g. "core") into an
// absolute directory under the workspace root. It rejects empty names, names
// containing path separators or "..", and names that do not resolve to a
// directory.
func ResolveRepoDir(workspaceRoot, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("workspace: repo name is required")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("workspace: repo name %q must not contain path separators or ..", name)
	}
	rootAbs, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return "", err
	}
	path := filepath.Join(rootAbs, name)
	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("workspace: repo %q not found under %s: %w", name, rootAbs, err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("workspace: repo %q is not a directory", name)
	}
	return path, nil
}
