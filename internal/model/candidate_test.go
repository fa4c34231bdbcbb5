package model

import (
	"testing"
	"time"
)

func TestNewCandidate(t *testing.T) {
	tests := []struct {
		path     string
		baseName string
		stem     string
	}{
		{"/proj/src/a.ts", "a.ts", "a"},
		{"/proj/src/app.test.ts", "app.test.ts", "app.test"},
		{"/proj/Makefile", "Makefile", "Makefile"},
		{"/proj/.gitignore", ".gitignore", ".gitignore"},
		{"/proj/assets/logo.svg", "logo.svg", "logo"},
	}

	for _, tt := range tests {
		c := NewCandidate(tt.path)
		if c.Path != tt.path {
			t.Errorf("NewCandidate(%q).Path = %q, want %q", tt.path, c.Path, tt.path)
		}
		if c.BaseName != tt.baseName {
			t.Errorf("NewCandidate(%q).BaseName = %q, want %q", tt.path, c.BaseName, tt.baseName)
		}
		if c.Stem != tt.stem {
			t.Errorf("NewCandidate(%q).Stem = %q, want %q", tt.path, c.Stem, tt.stem)
		}
	}
}

func TestSortEntries(t *testing.T) {
	now := time.Now()
	entries := []Entry{
		{Path: "/p/b10.ts", Size: 10, ModTime: now.Add(-1 * time.Hour)},
		{Path: "/p/b2.ts", Size: 30, ModTime: now},
		{Path: "/p/a.ts", Size: 20, ModTime: now.Add(-2 * time.Hour)},
	}

	SortEntries(entries, DefaultSort())
	if entries[0].Path != "/p/a.ts" || entries[1].Path != "/p/b2.ts" || entries[2].Path != "/p/b10.ts" {
		t.Errorf("name ascending order = %q, %q, %q", entries[0].Path, entries[1].Path, entries[2].Path)
	}

	SortEntries(entries, SortConfig{Field: SortBySize, Order: SortDesc})
	if entries[0].Size != 30 || entries[1].Size != 20 || entries[2].Size != 10 {
		t.Error("expected entries sorted by size descending")
	}

	SortEntries(entries, SortConfig{Field: SortByMtime, Order: SortAsc})
	if entries[0].Path != "/p/a.ts" {
		t.Errorf("expected oldest first, got %q", entries[0].Path)
	}
}

func TestSortEntries_TieBreak(t *testing.T) {
	entries := []Entry{
		{Path: "/p/z.ts", Size: 5},
		{Path: "/p/a.ts", Size: 5},
	}
	SortEntries(entries, SortConfig{Field: SortBySize, Order: SortAsc})
	if entries[0].Path != "/p/a.ts" {
		t.Errorf("equal sizes should fall back to path order, got %q first", entries[0].Path)
	}
	// The descending swap applies to the tie-break too.
	SortEntries(entries, SortConfig{Field: SortBySize, Order: SortDesc})
	if entries[0].Path != "/p/z.ts" {
		t.Errorf("descending tie-break should reverse path order, got %q first", entries[0].Path)
	}
}

func TestClassifyFile(t *testing.T) {
	tests := []struct {
		name string
		want FileCategory
	}{
		{"main.go", CatCode},
		{"App.TSX", CatCode},
		{"theme.scss", CatStyle},
		{"index.html", CatMarkup},
		{"photo.jpg", CatMedia},
		{"icon.svg", CatMedia},
		{"inter.woff2", CatFont},
		{"config.yaml", CatData},
		{"readme.md", CatDoc},
		{"noext", CatOther},
		{".hidden", CatOther},
	}

	for _, tt := range tests {
		got := ClassifyFile(tt.name)
		if got != tt.want {
			t.Errorf("ClassifyFile(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}
