// Package harness launches the external bench executable and records how
// each invocation ended.
package harness

import "time"

// Result describes a single bench invocation.
type Result struct {
	Size     int64         `json:"size"`
	ExitCode int           `json:"exit_code"`
	WallTime time.Duration `json:"wall_time_ns"`
}

// Failed reports whether bench exited with a non-zero status.
func (r Result) Failed() bool {
	return r.ExitCode != 0
}
