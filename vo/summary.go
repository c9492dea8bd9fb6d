package vo

import "time"

// Summary of an export run
type Summary struct {
	ExportDir string
	Duration  time.Duration
	Exported  int
	Skipped   int
}
