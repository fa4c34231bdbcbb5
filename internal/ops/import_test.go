package ops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeReportFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadReport_MissingFile(t *testing.T) {
	_, err := ReadReport(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "cannot open report file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadReport_InvalidJSON(t *testing.T) {
	path := writeReportFile(t, `{"version": 1,`)
	_, err := ReadReport(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "invalid JSON") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadReport_UnsupportedVersion(t *testing.T) {
	path := writeReportFile(t, `{"version": 99, "root": "/proj", "generatedAt": "2026-03-14T09:30:00Z", "fileTypes": [], "unused": []}`)
	_, err := ReadReport(path)
	if err == nil {
		t.Fatal("expected error for unsupported version")
	}
	if !strings.Contains(err.Error(), "unsupported report version 99") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadReport_MissingRoot(t *testing.T) {
	path := writeReportFile(t, `{"version": 1, "generatedAt": "2026-03-14T09:30:00Z", "fileTypes": [], "unused": []}`)
	_, err := ReadReport(path)
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if !strings.Contains(err.Error(), "missing root") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadReport_EmptyUnusedList(t *testing.T) {
	path := writeReportFile(t, `{"version": 1, "root": "/proj", "generatedAt": "2026-03-14T09:30:00Z", "fileTypes": [".ts"], "unused": []}`)
	r, err := ReadReport(path)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(r.Unused) != 0 {
		t.Fatalf("expected empty unused list, got %d entries", len(r.Unused))
	}
	if len(r.FileTypes) != 1 || r.FileTypes[0] != ".ts" {
		t.Fatalf("file types not preserved: %v", r.FileTypes)
	}
}
