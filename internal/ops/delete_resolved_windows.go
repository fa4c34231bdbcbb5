//go:build windows

package ops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// deleteResolvedFile removes name inside the already-resolved parent
// directory. Windows has no unlinkat, so a plain Remove after a type
// check is the closest equivalent.
func deleteResolvedFile(parentPath, name string) error {
	target := filepath.Join(parentPath, name)
	info, err := os.Lstat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fs.ErrNotExist
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to delete %s: is a directory", target)
	}
	return os.Remove(target)
}
