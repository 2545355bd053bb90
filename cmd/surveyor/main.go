package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"surveyor/internal/surface"
	"surveyor/internal/workspace"
)

type report struct {
	ProjectDir      string                    `json:"project_dir"`
	Catalog         surface.ScriptCatalog     `json:"catalog"`
	ScriptCommands  []string                  `json:"script_commands"`
	CustomCommands  []string                  `json:"custom_commands"`
	DependentRepos  []string                  `json:"dependent_repos,omitempty"`
	CrossRepoImpact []workspace.PatternImpact `json:"cross_repo_impact,omitempty"`
}

func main() {
	project := flag.String("project", "", "path to the project directory")
	workspaceRoot := flag.String("workspace", "", "path to the multi-repo workspace root")
	repo := flag.String("repo", "", "repo name inside the workspace")
	flag.Parse()

	_ = godotenv.Load()
	if *workspaceRoot == "" {
		*workspaceRoot = os.Getenv("SURVEYOR_WORKSPACE")
	}

	dir := *project
	if dir == "" && *repo != "" && *workspaceRoot != "" {
		resolved, err := workspace.ResolveRepoDir(*workspaceRoot, *repo)
		if err != nil {
			log.Fatal(err)
		}
		dir = resolved
	}
	if dir == "" {
		log.Fatal("-project is required (or -workspace together with -repo)")
	}

	res := surface.NewResolver(dir).Resolve()
	log.Printf("resolved %d script commands and %d custom commands in %s",
		len(res.ScriptCommands), len(res.CustomCommands), dir)

	out := report{
		ProjectDir:     dir,
		Catalog:        res.Catalog,
		ScriptCommands: res.ScriptCommands.Sorted(),
		CustomCommands: res.CustomCommands.Sorted(),
	}

	if *workspaceRoot != "" && *repo != "" {
		if graph := workspace.LoadMultiRepoContext(*workspaceRoot); graph != nil {
			out.DependentRepos = graph.DependentRepos(*repo)
			out.CrossRepoImpact = graph.CrossRepoImpact(*repo)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}
