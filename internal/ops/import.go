package ops

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sadopc/stray/internal/model"
)

// ReadReport loads a report previously written by WriteReport.
func ReadReport(path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open report file: %w", err)
	}

	var r model.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if r.Version != model.ReportVersion {
		return nil, fmt.Errorf("unsupported report version %d (want %d)", r.Version, model.ReportVersion)
	}
	if r.Root == "" {
		return nil, fmt.Errorf("invalid report: missing root")
	}
	return &r, nil
}
