// Package config resolves the scan configuration for a project root.
//
// A project may carry a single optional config file (FileName) at its
// root. Each key it provides replaces the matching built-in default
// wholesale; anything missing or malformed quietly keeps the defaults.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the project-local config file read by Resolve.
const FileName = ".strayrc.json"

// Config is the resolved scan configuration, immutable once built.
// Membership checks go through precomputed sets.
type Config struct {
	FileTypes       []string
	IgnoreFolders   []string
	IgnoreRootFiles []string

	extSet      map[string]struct{}
	folderSet   map[string]struct{}
	rootFileSet map[string]struct{}
}

// fileConfig mirrors the on-disk JSON shape. Slices stay nil when a key
// is absent, which is how partial configs keep their defaults.
type fileConfig struct {
	FileTypes       []string `json:"fileTypes"`
	IgnoreFolders   []string `json:"ignoreFolders"`
	IgnoreRootFiles []string `json:"ignoreRootFiles"`
}

// Default returns the built-in configuration.
func Default() Config {
	return build(defaultFileTypes, defaultIgnoreFolders, defaultIgnoreRootFiles)
}

// New builds a configuration from explicit sets, bypassing the defaults.
func New(fileTypes, ignoreFolders, ignoreRootFiles []string) Config {
	return build(fileTypes, ignoreFolders, ignoreRootFiles)
}

// Resolve reads FileName under root on the local filesystem and overlays
// it onto the defaults. Missing or unparsable config falls back to the
// defaults; Resolve never fails.
func Resolve(root string) Config {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		return Default()
	}
	return ResolveBytes(data)
}

// ResolveBytes overlays raw config JSON onto the defaults. A provided
// key replaces its default entirely (no deep merge); nil or unparsable
// data yields the defaults unchanged. Scans of remote trees read the
// file through their own transport and resolve here.
func ResolveBytes(data []byte) Config {
	fileTypes := defaultFileTypes
	folders := defaultIgnoreFolders
	rootFiles := defaultIgnoreRootFiles

	if len(data) > 0 {
		var fc fileConfig
		if err := json.Unmarshal(data, &fc); err == nil {
			if fc.FileTypes != nil {
				fileTypes = fc.FileTypes
			}
			if fc.IgnoreFolders != nil {
				folders = fc.IgnoreFolders
			}
			if fc.IgnoreRootFiles != nil {
				rootFiles = fc.IgnoreRootFiles
			}
		}
	}
	return build(fileTypes, folders, rootFiles)
}

// WithIgnoredFolders returns a copy with extra folder names pruned on
// top of the resolved set.
func (c Config) WithIgnoredFolders(extra []string) Config {
	if len(extra) == 0 {
		return c
	}
	folders := append(append([]string(nil), c.IgnoreFolders...), extra...)
	return build(c.FileTypes, folders, c.IgnoreRootFiles)
}

// TracksFile reports whether the file name carries a tracked extension.
// Extensions compare case-insensitively.
func (c Config) TracksFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	_, ok := c.extSet[ext]
	return ok
}

// IgnoresFolder reports whether a directory with this exact name is
// pruned from traversal.
func (c Config) IgnoresFolder(name string) bool {
	_, ok := c.folderSet[name]
	return ok
}

// IgnoresFile reports whether a file with this exact name is skipped.
func (c Config) IgnoresFile(name string) bool {
	_, ok := c.rootFileSet[name]
	return ok
}

func build(fileTypes, folders, rootFiles []string) Config {
	c := Config{
		FileTypes:       normalizeExts(fileTypes),
		IgnoreFolders:   append([]string(nil), folders...),
		IgnoreRootFiles: append([]string(nil), rootFiles...),
	}
	c.extSet = make(map[string]struct{}, len(c.FileTypes))
	for _, e := range c.FileTypes {
		c.extSet[e] = struct{}{}
	}
	c.folderSet = make(map[string]struct{}, len(c.IgnoreFolders))
	for _, f := range c.IgnoreFolders {
		c.folderSet[f] = struct{}{}
	}
	c.rootFileSet = make(map[string]struct{}, len(c.IgnoreRootFiles))
	for _, f := range c.IgnoreRootFiles {
		c.rootFileSet[f] = struct{}{}
	}
	return c
}

// normalizeExts lower-cases extensions and guarantees the leading dot.
func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
