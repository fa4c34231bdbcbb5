package ops

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sadopc/stray/internal/model"
	"github.com/sadopc/stray/internal/scanner"
)

// CollectEntries stats every path through src and fills in the metadata
// a report carries for it. Paths that cannot be stat'ed keep zero
// metadata rather than dropping off the list.
func CollectEntries(src scanner.Source, paths []string) []model.Entry {
	entries := make([]model.Entry, 0, len(paths))
	for _, p := range paths {
		e := model.Entry{Path: p, Category: model.ClassifyFile(p)}
		if info, err := src.Stat(p); err == nil {
			e.Size = info.Size()
			e.ModTime = info.ModTime()
		}
		entries = append(entries, e)
	}
	return entries
}

// WriteReport writes a scan report as JSON. A path of "-" writes to
// stdout. For file targets, it writes to a temp file first and atomically
// renames on success, so a partial file is never left behind on error.
func WriteReport(r *model.Report, path string) (retErr error) {
	if path == "-" {
		return writeReportTo(r, os.Stdout)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".stray-report-*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create report file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if retErr != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := writeReportTo(r, tmp); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		// On Windows, Rename cannot replace an existing destination.
		if runtime.GOOS != "windows" {
			return err
		}
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return fmt.Errorf("cannot replace report file %s: %w", path, err)
		}
		if err := os.Rename(tmpPath, path); err != nil {
			return err
		}
	}
	return nil
}

func writeReportTo(r *model.Report, out io.Writer) error {
	bw := bufio.NewWriterSize(out, 64*1024)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return err
	}
	return bw.Flush()
}
