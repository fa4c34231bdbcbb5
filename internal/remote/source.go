package remote

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	pathpkg "path"
	"strings"

	"github.com/pkg/sftp"
	"github.com/sadopc/stray/internal/scanner"
)

const defaultRemotePath = "."

// Source adapts an SFTP session to scanner.Source, so the walker and the
// reference engine work on remote projects unchanged.
type Source struct {
	client sftpClient
}

type sftpClient interface {
	ReadDir(path string) ([]os.FileInfo, error)
	Stat(path string) (os.FileInfo, error)
	RealPath(path string) (string, error)
	Open(path string) (io.ReadCloser, error)
}

var _ scanner.Source = (*Source)(nil)

func newSource(client sftpClient) *Source {
	return &Source{client: client}
}

// Abs resolves path on the server. An empty path means the session's
// default directory, usually the login home. Resolution failures fall
// back to the cleaned path; a real problem surfaces at the Stat that
// follows.
func (s *Source) Abs(path string) (string, error) {
	p := cleanRemotePath(path)
	if resolved, err := s.client.RealPath(p); err == nil {
		return cleanRemotePath(resolved), nil
	}
	return p, nil
}

// Join uses POSIX separators regardless of the local OS.
func (s *Source) Join(dir, name string) string {
	return pathpkg.Join(dir, name)
}

func (s *Source) ReadDir(path string) ([]fs.FileInfo, error) {
	return s.client.ReadDir(path)
}

func (s *Source) Stat(path string) (fs.FileInfo, error) {
	return s.client.Stat(path)
}

func (s *Source) ReadFile(path string) ([]byte, error) {
	f, err := s.client.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	// io.Copy lets sftp.File stream the transfer with concurrent reads.
	if _, err := io.Copy(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cleanRemotePath(p string) string {
	if p == "" {
		return defaultRemotePath
	}
	clean := pathpkg.Clean(strings.ReplaceAll(p, "\\", "/"))
	if clean == "" {
		return defaultRemotePath
	}
	return clean
}

// openAdapter bridges *sftp.Client's concrete Open return type to the
// sftpClient interface.
type openAdapter struct {
	*sftp.Client
}

func (a openAdapter) Open(path string) (io.ReadCloser, error) {
	return a.Client.Open(path)
}
