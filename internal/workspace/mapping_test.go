package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeMapping(t *testing.T, root, content string) {
	t.Helper()
	dir := filepath.Join(root, ".auto-claude")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "repo_mapping.json"), []byte(content), 0o644))
}

func TestLoadMultiRepoContext(t *testing.T) {
	root := t.TempDir()
	writeMapping(t, root, `{
		"repos": {"core": {"language": "go"}},
		"dependencies": {"web": ["core"]},
		"cross_repo_patterns": {"auth-flow": {"repos": ["core", "web"], "owner": "platform"}},
		"worktree_strategy": {"core": "shared"}
	}`)

	ctx := LoadMultiRepoContext(root)
	require.NotNil(t, ctx)
	// workspace_root missing from the file is filled from the load root.
	require.NotEmpty(t, ctx.WorkspaceRoot)
	require.Equal(t, []string{"web"}, ctx.DependentRepos("core"))

	pattern := ctx.CrossRepoPatterns["auth-flow"]
	require.Equal(t, []string{"core", "web"}, pattern.Repos)
	require.Equal(t, "platform", pattern.Meta["owner"])
}

func TestLoadMultiRepoContextAbsentOrMalformed(t *testing.T) {
	root := t.TempDir()
	require.Nil(t, LoadMultiRepoContext(root))
	require.Nil(t, LoadMultiRepoContext(filepath.Join(root, "does-not-exist")))

	writeMapping(t, root, `{"repos": {`)
	require.Nil(t, LoadMultiRepoContext(root))
}

func TestGraphLoaderCachesLoadedWorkspaces(t *testing.T) {
	root := t.TempDir()
	writeMapping(t, root, `{"dependencies": {"web": ["core"]}}`)

	loader, err := NewGraphLoader(8)
	require.NoError(t, err)

	first := loader.Load(root)
	require.NotNil(t, first)
	second := loader.Load(root)
	require.Same(t, first, second)
}

func TestGraphLoaderDoesNotCacheMissingMapping(t *testing.T) {
	root := t.TempDir()
	loader, err := NewGraphLoader(8)
	require.NoError(t, err)
	require.Nil(t, loader.Load(root))

	// A mapping created after the first lookup is picked up.
	writeMapping(t, root, `{"dependencies": {"web": ["core"]}}`)
	require.NotNil(t, loader.Load(root))
}

func TestResolveRepoDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "core"), 0o755))

	dir, err := ResolveRepoDir(root, "core")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "core"), dir)

	_, err = ResolveRepoDir(root, "missing")
	require.Error(t, err)
	_, err = ResolveRepoDir(root, "../escape")
	require.Error(t, err)
	_, err = ResolveRepoDir(root, "")
	require.Error(t, err)
}
