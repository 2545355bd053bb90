package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func newTestReader(t *testing.T, files map[string]string) *Reader {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return NewReader(root)
}

func TestReaderMissingRoot(t *testing.T) {
	r := NewReader(filepath.Join(t.TempDir(), "does-not-exist"))
	if _, ok := r.ReadText("Makefile"); ok {
		t.Fatal("read under a missing root must report absence")
	}
	if _, ok := r.ReadJSON("package.json"); ok {
		t.Fatal("read under a missing root must report absence")
	}
	if names := r.Glob("*.sh"); names != nil {
		t.Fatalf("Glob under a missing root = %v", names)
	}
	if r.FileExists("Makefile") {
		t.Fatal("missing root has no files")
	}
}

func TestReadJSONMissingAndMalformed(t *testing.T) {
	r := newTestReader(t, map[string]string{
		"broken.json": `{"scripts": {`,
	})
	if _, ok := r.ReadJSON("package.json"); ok {
		t.Fatal("missing file should not parse")
	}
	if _, ok := r.ReadJSON("broken.json"); ok {
		t.Fatal("malformed file should not parse")
	}
}

func TestReadJSONReturnsMembers(t *testing.T) {
	r := newTestReader(t, map[string]string{
		"package.json": `{"name": "demo", "scripts": {"build": "tsc"}}`,
	})
	obj, ok := r.ReadJSON("package.json")
	if !ok {
		t.Fatal("ReadJSON failed")
	}
	if _, ok := obj["scripts"]; !ok {
		t.Fatalf("scripts member missing: %v", obj)
	}
}

func TestDecodeTOMLPreservesKeyOrder(t *testing.T) {
	r := newTestReader(t, map[string]string{
		"pyproject.toml": "[tool.poetry.scripts]\nzeta = \"pkg:z\"\nalpha = \"pkg:a\"\n",
	})
	var doc map[string]any
	md, ok := r.DecodeTOML("pyproject.toml", &doc)
	if !ok {
		t.Fatal("DecodeTOML failed")
	}
	var names []string
	for _, key := range md.Keys() {
		if len(key) == 4 && key[0] == "tool" && key[1] == "poetry" && key[2] == "scripts" {
			names = append(names, key[3])
		}
	}
	want := []string{"zeta", "alpha"}
	if len(names) != len(want) {
		t.Fatalf("got %v want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("key order not preserved: got %v want %v", names, want)
		}
	}
}

func TestGlobRootOnly(t *testing.T) {
	r := newTestReader(t, map[string]string{
		"deploy.sh":      "#!/bin/sh\n",
		"setup.bash":     "#!/bin/bash\n",
		"nested/skip.sh": "#!/bin/sh\n",
		"notes.txt":      "x\n",
	})
	sh := r.Glob("*.sh")
	if len(sh) != 1 || sh[0] != "deploy.sh" {
		t.Fatalf("Glob(*.sh) = %v", sh)
	}
	bash := r.Glob("*.bash")
	if len(bash) != 1 || bash[0] != "setup.bash" {
		t.Fatalf("Glob(*.bash) = %v", bash)
	}
}

func TestObjectKeysOrder(t *testing.T) {
	raw := json.RawMessage(`{"build": "tsc", "test": "jest", "lint": "eslint ."}`)
	keys, ok := ObjectKeys(raw)
	if !ok {
		t.Fatal("ObjectKeys failed")
	}
	want := []string{"build", "test", "lint"}
	if len(keys) != len(want) {
		t.Fatalf("got %v want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("declaration order lost: got %v want %v", keys, want)
		}
	}
}

func TestObjectKeysDeduplicates(t *testing.T) {
	raw := json.RawMessage(`{"build": "tsc", "test": "jest", "build": "tsc -w"}`)
	keys, ok := ObjectKeys(raw)
	if !ok {
		t.Fatal("ObjectKeys failed")
	}
	want := []string{"build", "test"}
	if len(keys) != len(want) {
		t.Fatalf("got %v want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("got %v want %v", keys, want)
		}
	}
}

func TestObjectKeysRejectsNonObject(t *testing.T) {
	if _, ok := ObjectKeys(json.RawMessage(`["a", "b"]`)); ok {
		t.Fatal("array is not an object")
	}
}
