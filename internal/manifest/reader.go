// Package manifest reads build and script manifests for one project
// directory. Every accessor is best-effort: a missing or malformed file
// yields the zero contribution instead of an error, so discovery code can
// treat "absent" and "unreadable" identically.
package manifest

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"surveyor/internal/safeio"
)

// Reader is a filesystem-backed accessor over a single project root.
type Reader struct {
	fs *safeio.SafeFS
}

// NewReader locks a Reader to the given project directory. A root that does
// not exist or cannot be opened is handled like any other missing resource:
// the Reader is still returned and every read reports absence.
func NewReader(projectDir string) *Reader {
	fs, err := safeio.NewSafeFS(projectDir)
	if err != nil {
		return &Reader{}
	}
	return &Reader{fs: fs}
}

// ProjectDir returns the absolute project root the Reader is bound to.
func (r *Reader) ProjectDir() string {
	return r.fs.Root()
}

// ReadText returns the raw content of a file under the project root.
// The second result is false when the file is absent or unreadable.
func (r *Reader) ReadText(name string) (string, bool) {
	b, err := r.fs.SafeReadFile(name)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// ReadJSON parses a JSON object file into its top-level members.
func (r *Reader) ReadJSON(name string) (map[string]json.RawMessage, bool) {
	b, err := r.fs.SafeReadFile(name)
	if err != nil {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// DecodeJSON parses a JSON file into a typed value.
func (r *Reader) DecodeJSON(name string, v any) bool {
	b, err := r.fs.SafeReadFile(name)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, v) == nil
}

// DecodeTOML parses a TOML file into a typed value. The returned MetaData
// preserves key declaration order, which map decoding would lose.
func (r *Reader) DecodeTOML(name string, v any) (toml.MetaData, bool) {
	b, err := r.fs.SafeReadFile(name)
	if err != nil {
		return toml.MetaData{}, false
	}
	md, err := toml.Decode(string(b), v)
	if err != nil {
		return toml.MetaData{}, false
	}
	return md, true
}

// FileExists reports whether a regular file exists under the project root.
func (r *Reader) FileExists(name string) bool {
	info, err := r.fs.SafeStat(name)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Glob returns filenames in the project root (non-recursive) matching the
// given doublestar pattern, sorted for deterministic output.
func (r *Reader) Glob(pattern string) []string {
	entries, err := r.fs.SafeReadDir(".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := doublestar.Match(pattern, e.Name())
		if err != nil {
			return nil
		}
		if ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// ObjectKeys lists the member names of a raw JSON object in declaration
// order. encoding/json maps are unordered, so the raw bytes are re-walked
// token by token. A repeated member name is recorded once, at its first
// position, matching object semantics where later occurrences only replace
// the value.
func ObjectKeys(raw json.RawMessage) ([]string, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, false
	}
	var keys []string
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := tok.(string)
		if !ok {
			return nil, false
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, false
		}
	}
	return keys, true
}
