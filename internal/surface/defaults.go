package surface

import (
	"encoding/json"
	"slices"
	"strings"
)

// securityDefaults is the typed shape of .auto-claude/security_defaults.json.
// validation_commands values stay raw so a category of the wrong shape can be
// skipped without discarding the rest of the file.
type securityDefaults struct {
	CustomScripts struct {
		MakeTargets []string `json:"make_targets"`
		MiseTasks   []string `json:"mise_tasks"`
	} `json:"custom_scripts"`
	ValidationCommands map[string]json.RawMessage `json:"validation_commands"`
}

// mergeSecurityDefaults folds workspace-wide pre-approved commands into the
// resolution. The file is optional: absent, unreadable, and malformed are all
// treated as "no defaults". Merging only ever adds to earlier results.
func (rv *Resolver) mergeSecurityDefaults(res *Resolution) {
	var defs securityDefaults
	if !rv.reader.DecodeJSON(SecurityDefaultsPath, &defs) {
		return
	}

	for _, target := range defs.CustomScripts.MakeTargets {
		if !slices.Contains(res.Catalog.MakeTargets, target) {
			res.Catalog.MakeTargets = append(res.Catalog.MakeTargets, target)
		}
	}
	if len(defs.CustomScripts.MakeTargets) > 0 {
		res.ScriptCommands.Add("make")
	}

	for _, task := range defs.CustomScripts.MiseTasks {
		if !slices.Contains(res.Catalog.MiseTasks, task) {
			res.Catalog.MiseTasks = append(res.Catalog.MiseTasks, task)
		}
	}
	if len(defs.CustomScripts.MiseTasks) > 0 {
		res.ScriptCommands.Add("mise")
	}

	for _, rawCategory := range defs.ValidationCommands {
		var commands map[string]json.RawMessage
		if err := json.Unmarshal(rawCategory, &commands); err != nil {
			continue
		}
		for _, rawCmd := range commands {
			var cmd string
			if err := json.Unmarshal(rawCmd, &cmd); err != nil {
				continue
			}
			fields := strings.Fields(cmd)
			if len(fields) == 0 {
				continue
			}
			res.CustomCommands.Add(fields[0])
		}
	}
}
