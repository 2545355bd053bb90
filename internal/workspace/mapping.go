package workspace

import (
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"surveyor/internal/manifest"
)

// RepoMappingPath is the workspace mapping file, relative to the workspace
// root.
const RepoMappingPath = ".auto-claude/repo_mapping.json"

// LoadMultiRepoContext reads the workspace mapping under workspaceRoot.
// An absent or malformed mapping yields nil: a workspace without a mapping is
// a single-repo workspace, not an error.
func LoadMultiRepoContext(workspaceRoot string) *MultiRepoContext {
	reader := manifest.NewReader(workspaceRoot)
	var ctx MultiRepoContext
	if !reader.DecodeJSON(RepoMappingPath, &ctx) {
		return nil
	}
	if ctx.WorkspaceRoot == "" {
		ctx.WorkspaceRoot = reader.ProjectDir()
	}
	return &ctx
}

// GraphLoader loads workspace graphs and caches them by workspace root.
// Caching is safe because a loaded MultiRepoContext is never mutated.
type GraphLoader struct {
	cache *lru.Cache[string, *MultiRepoContext]
}

// NewGraphLoader builds a loader that caches up to maxEntries workspaces.
func NewGraphLoader(maxEntries int) (*GraphLoader, error) {
	if maxEntries <= 0 {
		maxEntries = 64
	}
	cache, err := lru.New[string, *MultiRepoContext](maxEntries)
	if err != nil {
		return nil, err
	}
	return &GraphLoader{cache: cache}, nil
}

// Load returns the graph for workspaceRoot, reading the mapping file on the
// first request. Workspaces without a mapping are not cached, so a mapping
// created later is picked up.
func (l *GraphLoader) Load(workspaceRoot string) *MultiRepoContext {
	abs, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return nil
	}
	if ctx, ok := l.cache.Get(abs); ok {
		return ctx
	}
	ctx := LoadMultiRepoContext(abs)
	if ctx != nil {
		l.cache.Add(abs, ctx)
	}
	return ctx
}
