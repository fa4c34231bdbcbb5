package scanner

import "time"

// Progress reports walk progress.
type Progress struct {
	// FilesFound is the count of surviving files so far.
	FilesFound int64
	// DirsWalked is the count of directories listed so far.
	DirsWalked int64
	// Errors is the count of unreadable directories skipped.
	Errors int64
	// Done indicates the walk is complete.
	Done bool
	// StartTime is when the walk began.
	StartTime time.Time
	// Duration is elapsed time.
	Duration time.Duration
}

// ItemsPerSecond returns the walk rate.
func (p Progress) ItemsPerSecond() float64 {
	if p.Duration.Seconds() == 0 {
		return 0
	}
	return float64(p.FilesFound+p.DirsWalked) / p.Duration.Seconds()
}
