package surface

import (
	"regexp"
	"strings"

	"surveyor/internal/manifest"
)

const (
	// AllowlistFilename is the operator-authored allowlist dotfile.
	AllowlistFilename = ".auto-claude-allowlist"
	// SecurityDefaultsPath is the workspace security-defaults file,
	// relative to the project directory.
	SecurityDefaultsPath = ".auto-claude/security_defaults.json"
)

// packageManagerLaunchers are all allowed regardless of which one is
// installed: any of the four may legitimately run a package.json script.
var packageManagerLaunchers = []string{"npm", "yarn", "pnpm", "bun"}

// makeTargetRe matches a target definition at the start of a line, e.g.
// "build:" or "test: deps". Indented rule bodies do not match.
var makeTargetRe = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_-]*)\s*:`)

// Resolver runs the manifest detectors for one project directory and merges
// the operator allowlist and workspace security defaults into the final
// command surface.
type Resolver struct {
	reader *manifest.Reader
}

// NewResolver builds a Resolver rooted at projectDir. A project directory
// that cannot be opened behaves like an empty one: resolution still runs and
// returns an empty result.
func NewResolver(projectDir string) *Resolver {
	return &Resolver{reader: manifest.NewReader(projectDir)}
}

// NewResolverWithReader builds a Resolver over an existing manifest reader.
func NewResolverWithReader(reader *manifest.Reader) *Resolver {
	return &Resolver{reader: reader}
}

// Resolution is the output of one resolution run. It is owned exclusively by
// that run; callers may mutate it freely afterwards.
type Resolution struct {
	Catalog ScriptCatalog `json:"catalog"`
	// ScriptCommands holds command launchers implied by discovered scripts
	// (npm family, make, mise, ./<script>).
	ScriptCommands CommandSet `json:"script_commands"`
	// CustomCommands holds base commands trusted via the allowlist file and
	// workspace security defaults.
	CustomCommands CommandSet `json:"custom_commands"`
}

// Resolve runs every detector and merge step. Each step is independently
// best-effort: a missing or malformed source contributes nothing and never
// aborts the remaining steps, so Resolve always succeeds.
func (rv *Resolver) Resolve() *Resolution {
	res := &Resolution{
		ScriptCommands: NewCommandSet(),
		CustomCommands: NewCommandSet(),
	}
	rv.detectPackageManagerScripts(res)
	rv.detectMakeTargets(res)
	rv.detectTaskRunnerScripts(res)
	rv.detectShellScripts(res)
	rv.loadAllowlist(res)
	rv.mergeSecurityDefaults(res)
	return res
}

func (rv *Resolver) detectPackageManagerScripts(res *Resolution) {
	pkg, ok := rv.reader.ReadJSON("package.json")
	if !ok {
		return
	}
	raw, ok := pkg["scripts"]
	if !ok {
		return
	}
	keys, ok := manifest.ObjectKeys(raw)
	if !ok {
		return
	}
	res.Catalog.PackageManagerScripts = keys
	if len(keys) == 0 {
		return
	}
	for _, launcher := range packageManagerLaunchers {
		res.ScriptCommands.Add(launcher)
	}
}

func (rv *Resolver) detectMakeTargets(res *Resolution) {
	if !rv.reader.FileExists("Makefile") {
		return
	}
	content, ok := rv.reader.ReadText("Makefile")
	if !ok {
		return
	}
	for _, line := range strings.Split(content, "\n") {
		m := makeTargetRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		target := m[1]
		// Reserved targets like .PHONY stay out of the catalog.
		if strings.HasPrefix(target, ".") {
			continue
		}
		res.Catalog.MakeTargets = append(res.Catalog.MakeTargets, target)
	}
	if len(res.Catalog.MakeTargets) > 0 {
		res.ScriptCommands.Add("make")
	}
}

func (rv *Resolver) detectTaskRunnerScripts(res *Resolution) {
	var doc map[string]any
	md, ok := rv.reader.DecodeTOML("pyproject.toml", &doc)
	if !ok {
		return
	}
	// tool.poetry.scripts keys first, then project.scripts keys. A name
	// declared in both tables is kept twice so dual declaration stays
	// visible downstream.
	var poetry, pep621 []string
	for _, key := range md.Keys() {
		switch {
		case len(key) == 4 && key[0] == "tool" && key[1] == "poetry" && key[2] == "scripts":
			poetry = append(poetry, key[3])
		case len(key) == 3 && key[0] == "project" && key[1] == "scripts":
			pep621 = append(pep621, key[2])
		}
	}
	res.Catalog.TaskRunnerScripts = append(poetry, pep621...)
}

func (rv *Resolver) detectShellScripts(res *Resolution) {
	for _, pattern := range []string{"*.sh", "*.bash"} {
		for _, name := range rv.reader.Glob(pattern) {
			res.Catalog.ShellScripts = append(res.Catalog.ShellScripts, name)
			res.ScriptCommands.Add("./" + name)
		}
	}
}

// loadAllowlist reads the operator allowlist dotfile. Lines are trusted
// verbatim; blank lines and #-comments are skipped.
func (rv *Resolver) loadAllowlist(res *Resolution) {
	content, ok := rv.reader.ReadText(AllowlistFilename)
	if !ok {
		return
	}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res.CustomCommands.Add(line)
	}
}
