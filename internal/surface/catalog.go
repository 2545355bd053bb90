// Package surface discovers the shell-command surface of one project
// directory: script identifiers harvested from build manifests, plus the
// command-level allowlist assembled from the operator allowlist file and
// workspace security defaults. The output is consumed by the execution
// sandbox as an allowlist gate.
package surface

import "sort"

// ScriptCatalog aggregates script identifiers discovered per manifest kind.
// Each slice preserves manifest declaration order and reflects only
// successfully parsed manifests; a missing or malformed manifest contributes
// an empty slice without affecting siblings.
type ScriptCatalog struct {
	// PackageManagerScripts holds package.json "scripts" keys.
	PackageManagerScripts []string `json:"package_manager_scripts,omitempty"`
	// MakeTargets holds Makefile targets, dot-prefixed names excluded.
	MakeTargets []string `json:"make_targets,omitempty"`
	// TaskRunnerScripts holds tool.poetry.scripts keys followed by
	// project.scripts keys. Keys declared in both tables appear twice.
	TaskRunnerScripts []string `json:"task_runner_scripts,omitempty"`
	// MiseTasks holds mise task names from workspace security defaults.
	MiseTasks []string `json:"mise_tasks,omitempty"`
	// ShellScripts holds *.sh / *.bash filenames from the project root.
	ShellScripts []string `json:"shell_scripts,omitempty"`
}

// CommandSet is an unordered, deduplicated collection of command tokens.
type CommandSet map[string]bool

// NewCommandSet returns an empty set.
func NewCommandSet() CommandSet {
	return make(CommandSet)
}

// Add inserts a token. Empty tokens are ignored.
func (s CommandSet) Add(token string) {
	if token == "" {
		return
	}
	s[token] = true
}

// Contains reports whether a token is in the set.
func (s CommandSet) Contains(token string) bool {
	return s[token]
}

// Sorted returns the tokens in lexical order.
func (s CommandSet) Sorted() []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, 0, len(s))
	for token := range s {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}
