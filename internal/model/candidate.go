package model

import (
	"path/filepath"
	"strings"
)

// Candidate is a tracked file under consideration for the unused report.
// It has no identity beyond its absolute path; derived names are computed
// once per scan.
type Candidate struct {
	Path     string
	BaseName string
	Stem     string
}

// NewCandidate derives the base name and stem for an absolute path. The
// stem is the base name with its final extension removed; names that are
// all extension (".gitignore") keep the full base name as their stem.
func NewCandidate(path string) Candidate {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return Candidate{Path: path, BaseName: base, Stem: stem}
}
