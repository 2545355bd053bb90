package workspace

// MatchingLine is one matched line inside a file, with its line number.
type MatchingLine struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// FileMatch is a file selected for a task, with the reason it matched.
type FileMatch struct {
	Path           string         `json:"path"`
	Service        string         `json:"service"`
	Reason         string         `json:"reason"`
	RelevanceScore float64        `json:"relevance_score,omitempty"`
	MatchingLines  []MatchingLine `json:"matching_lines,omitempty"`
}

// ServiceContext is the opaque per-service context record.
type ServiceContext map[string]any

// GraphHint is a historical hint record attached by upstream planners.
type GraphHint map[string]any

// TaskContext is the complete context for one task. It is built once by an
// upstream planner and read-only thereafter. MultiRepo points at the shared
// workspace graph; it is referenced, never copied.
type TaskContext struct {
	TaskDescription    string                    `json:"task_description"`
	ScopedServices     []string                  `json:"scoped_services"`
	FilesToModify      []FileMatch               `json:"files_to_modify"`
	FilesToReference   []FileMatch               `json:"files_to_reference"`
	PatternsDiscovered map[string]string         `json:"patterns_discovered"`
	ServiceContexts    map[string]ServiceContext `json:"service_contexts"`
	GraphHints         []GraphHint               `json:"graph_hints,omitempty"`
	MultiRepo          *MultiRepoContext         `json:"multi_repo_context,omitempty"`
}
