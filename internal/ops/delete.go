package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Delete removes a single file. Scan results only ever hold files, so
// directories are refused rather than removed recursively.
// rootPath constrains deletion to descendants of the scan root; the
// parent directory is resolved first so a symlinked directory under the
// root cannot redirect the delete outside it.
func Delete(path string, rootPath string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return fmt.Errorf("cannot resolve root %s: %w", rootPath, err)
	}

	// Ensure the target is strictly inside the root (not the root itself).
	if !insideRoot(absRoot, absPath) {
		return fmt.Errorf("refusing to delete %s: outside scan root %s", absPath, absRoot)
	}

	resolvedRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return fmt.Errorf("cannot resolve root %s: %w", absRoot, err)
	}
	parent, err := filepath.EvalSymlinks(filepath.Dir(absPath))
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", absPath, err)
	}
	if parent != resolvedRoot && !insideRoot(resolvedRoot, parent) {
		return fmt.Errorf("refusing to delete %s: resolves outside scan root %s", absPath, absRoot)
	}

	base := filepath.Base(absPath)
	info, err := os.Lstat(filepath.Join(parent, base))
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", absPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to delete %s: is a directory", absPath)
	}
	return deleteResolvedFile(parent, base)
}

// insideRoot reports whether path is a strict descendant of root.
// Both must be absolute and cleaned. A name that merely starts with
// ".." (such as "..cache") is still a descendant.
func insideRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
