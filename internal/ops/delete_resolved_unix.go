//go:build !windows

package ops

import (
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sys/unix"
)

// deleteResolvedFile unlinks name relative to the already-resolved
// parent directory. Opening the parent with O_NOFOLLOW means a symlink
// swapped in after resolution fails the open instead of being followed.
func deleteResolvedFile(parentPath, name string) error {
	parentFD, err := unix.Open(parentPath, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_NOFOLLOW|unix.O_CLOEXEC, 0)
	if err != nil {
		return err
	}
	defer unix.Close(parentFD)

	if err := unix.Unlinkat(parentFD, name, 0); err != nil {
		if errors.Is(err, unix.ENOENT) {
			return fs.ErrNotExist
		}
		// EISDIR on Linux, EPERM on BSDs: the entry turned into a
		// directory after the Lstat check.
		if errors.Is(err, unix.EISDIR) || errors.Is(err, unix.EPERM) {
			return fmt.Errorf("refusing to delete %s/%s: is a directory", parentPath, name)
		}
		return err
	}
	return nil
}
