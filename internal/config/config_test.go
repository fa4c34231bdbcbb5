package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve_NoConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := Resolve(dir)

	if !cfg.TracksFile("app.ts") {
		t.Error("defaults should track .ts files")
	}
	if !cfg.IgnoresFolder("node_modules") {
		t.Error("defaults should ignore node_modules")
	}
	if !cfg.IgnoresFile("package.json") {
		t.Error("defaults should ignore package.json")
	}
	if cfg.IgnoresFolder("src") {
		t.Error("defaults should not ignore src")
	}
}

func TestResolve_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"fileTypes": [`)

	cfg := Resolve(dir)
	if !cfg.TracksFile("app.ts") {
		t.Error("malformed config should fall back to defaults entirely")
	}
	if !cfg.IgnoresFolder("node_modules") {
		t.Error("malformed config should keep default ignore folders")
	}
}

func TestResolve_ReplacesPerKey(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"fileTypes": [".go"], "unknownKey": 42}`)

	cfg := Resolve(dir)
	if !cfg.TracksFile("main.go") {
		t.Error("provided fileTypes should be tracked")
	}
	if cfg.TracksFile("app.ts") {
		t.Error("fileTypes replacement is wholesale, .ts should be gone")
	}
	// Keys not present keep their defaults.
	if !cfg.IgnoresFolder("node_modules") {
		t.Error("ignoreFolders should keep defaults when key is absent")
	}
	if !cfg.IgnoresFile("package.json") {
		t.Error("ignoreRootFiles should keep defaults when key is absent")
	}
}

func TestResolve_EmptyArrayReplaces(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"ignoreFolders": []}`)

	cfg := Resolve(dir)
	if cfg.IgnoresFolder("node_modules") {
		t.Error("explicit empty ignoreFolders should clear the default set")
	}
	if !cfg.TracksFile("app.ts") {
		t.Error("fileTypes should still be the defaults")
	}
}

func TestTracksFile_CaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"fileTypes": ["TS", ".Png"]}`)

	cfg := Resolve(dir)
	tests := []struct {
		name string
		want bool
	}{
		{"App.TS", true},
		{"app.ts", true},
		{"logo.PNG", true},
		{"app.js", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := cfg.TracksFile(tt.name); got != tt.want {
			t.Errorf("TracksFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWithIgnoredFolders(t *testing.T) {
	cfg := Default().WithIgnoredFolders([]string{"generated"})
	if !cfg.IgnoresFolder("generated") {
		t.Error("extra folder should be ignored")
	}
	if !cfg.IgnoresFolder("node_modules") {
		t.Error("default folders should survive the extension")
	}
}

func TestDefault_TracksConfigFile(t *testing.T) {
	if !Default().IgnoresFile(FileName) {
		t.Errorf("%s itself should be skipped from scans", FileName)
	}
}
