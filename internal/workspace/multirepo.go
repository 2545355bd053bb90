// Package workspace models multi-repository workspaces: the declared
// dependency graph between repos, named cross-repo patterns, and the
// task-scoped context handed to planning logic.
package workspace

import (
	"encoding/json"
	"slices"
	"sort"
)

// RepoInfo is the opaque per-repo metadata record from the workspace mapping.
type RepoInfo map[string]any

// CrossRepoPattern names a change pattern that spans several repositories,
// e.g. an auth flow touching core and web. Fields other than "repos" are
// free-form and preserved in Meta.
type CrossRepoPattern struct {
	Repos []string
	Meta  map[string]any
}

func (p *CrossRepoPattern) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var out CrossRepoPattern
	if reposRaw, ok := raw["repos"]; ok {
		if err := json.Unmarshal(reposRaw, &out.Repos); err != nil {
			return err
		}
	}
	for key, value := range raw {
		if key == "repos" {
			continue
		}
		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			return err
		}
		if out.Meta == nil {
			out.Meta = make(map[string]any)
		}
		out.Meta[key] = v
	}
	*p = out
	return nil
}

func (p CrossRepoPattern) MarshalJSON() ([]byte, error) {
	merged := make(map[string]any, len(p.Meta)+1)
	for key, value := range p.Meta {
		merged[key] = value
	}
	merged["repos"] = p.Repos
	return json.Marshal(merged)
}

// MultiRepoContext is the dependency and pattern graph over the repositories
// of one workspace, loaded from the workspace mapping file. It is never
// mutated after load and is safe to share across concurrent resolutions.
type MultiRepoContext struct {
	WorkspaceRoot     string                      `json:"workspace_root"`
	Repos             map[string]RepoInfo         `json:"repos"`
	Dependencies      map[string][]string         `json:"dependencies"`
	CrossRepoPatterns map[string]CrossRepoPattern `json:"cross_repo_patterns"`
	WorktreeStrategy  map[string]string           `json:"worktree_strategy"`
}

// DependentRepos returns every repo that declares a dependency on repoName,
// sorted for deterministic output.
func (c *MultiRepoContext) DependentRepos(repoName string) []string {
	if c == nil {
		return nil
	}
	var dependents []string
	for repo, deps := range c.Dependencies {
		if slices.Contains(deps, repoName) {
			dependents = append(dependents, repo)
		}
	}
	sort.Strings(dependents)
	return dependents
}

// PatternImpact pairs a cross-repo pattern with its name.
type PatternImpact struct {
	Pattern string           `json:"pattern"`
	Info    CrossRepoPattern `json:"info"`
}

// CrossRepoImpact returns every cross-repo pattern whose repos list contains
// repoName, sorted by pattern name.
func (c *MultiRepoContext) CrossRepoImpact(repoName string) []PatternImpact {
	if c == nil {
		return nil
	}
	var impacts []PatternImpact
	for name, info := range c.CrossRepoPatterns {
		if slices.Contains(info.Repos, repoName) {
			impacts = append(impacts, PatternImpact{Pattern: name, Info: info})
		}
	}
	sort.Slice(impacts, func(i, j int) bool { return impacts[i].Pattern < impacts[j].Pattern })
	return impacts
}
