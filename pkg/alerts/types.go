package alerts

import (
	"context"
	"time"
)

// Alert records one directory that exceeded its size threshold.
type Alert struct {
	Name           string `json:"name"`
	Path           string `json:"path"`
	SizeBytes      int64  `json:"size_bytes"`
	ThresholdBytes int64  `json:"threshold_bytes"`
}

// ExceededBy returns how far past the threshold the directory is.
func (a Alert) ExceededBy() int64 {
	return a.SizeBytes - a.ThresholdBytes
}

// Report is the full result of one alerting run.
type Report struct {
	Hostname    string    `json:"hostname"`
	GeneratedAt time.Time `json:"generated_at"`
	RunID       string    `json:"run_id"`
	Alerts      []Alert   `json:"alerts"`
}

// Notifier delivers alert reports to external systems.
type Notifier interface {
	// Name returns the notifier identifier.
	Name() string

	// Send delivers a report covering every alert from the run.
	Send(ctx context.Context, report Report) error
}
