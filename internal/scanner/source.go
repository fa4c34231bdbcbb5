package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Source abstracts the filesystem a scan runs against, so local and
// remote (SFTP) trees walk and read identically.
type Source interface {
	// Abs resolves a possibly relative root into the absolute form all
	// reported paths are built from.
	Abs(path string) (string, error)
	// Join joins a directory and a child name using the source's
	// separator conventions.
	Join(dir, name string) string
	// ReadDir lists a directory. Implementations may silently drop
	// entries that vanish between listing and stat.
	ReadDir(path string) ([]fs.FileInfo, error)
	// ReadFile returns a file's full contents.
	ReadFile(path string) ([]byte, error)
	// Stat describes a single path.
	Stat(path string) (fs.FileInfo, error)
}

// Local is the Source backed by the machine's own filesystem.
type Local struct{}

func (Local) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func (Local) Join(dir, name string) string {
	return filepath.Join(dir, name)
}

func (Local) ReadDir(path string) ([]fs.FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	infos := make([]fs.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// Entry vanished between ReadDir and Info.
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (Local) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (Local) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}
