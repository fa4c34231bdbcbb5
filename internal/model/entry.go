package model

import "time"

// Entry is one reportable file: an unused path plus the metadata the list
// view and the exported report carry for it.
type Entry struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
	// Pinned marks a file the user explicitly pinned as unused; it stays
	// in the report regardless of what the content scan says.
	Pinned   bool         `json:"pinned,omitempty"`
	Category FileCategory `json:"-"`
}

// ReportVersion is bumped whenever the report layout changes shape.
const ReportVersion = 1

// Report is the JSON document written by export and read back by --load.
type Report struct {
	Version     int        `json:"version"`
	Root        string     `json:"root"`
	GeneratedAt time.Time  `json:"generatedAt"`
	FileTypes   []string   `json:"fileTypes"`
	Unused      []Entry    `json:"unused"`
	Duplicates  []DupGroup `json:"duplicates,omitempty"`
}

// DupGroup is a set of tracked files whose contents are byte-identical.
type DupGroup struct {
	Size  int64    `json:"size"`
	Paths []string `json:"paths"`
}
