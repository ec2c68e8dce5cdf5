// Package monitor evaluates configured directory checks against their size
// thresholds and dispatches alerts.
package monitor

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/yapay-ai/dirsentry/internal/config"
	"github.com/yapay-ai/dirsentry/pkg/alerts"
	"github.com/yapay-ai/dirsentry/pkg/scanner"
	"github.com/yapay-ai/dirsentry/pkg/sizeutil"
)

// Monitor runs directory checks and hands exceeded ones to its notifiers.
type Monitor struct {
	sizer     *scanner.Sizer
	notifiers []alerts.Notifier
	logger    *slog.Logger
	runID     string
}

// New creates a monitor. runID tags the report produced by this run.
func New(sizer *scanner.Sizer, notifiers []alerts.Notifier, logger *slog.Logger, runID string) *Monitor {
	return &Monitor{
		sizer:     sizer,
		notifiers: notifiers,
		logger:    logger,
		runID:     runID,
	}
}

// Run evaluates every check in order and, if any directory exceeded its
// threshold, dispatches one report covering all of them. A failing check is
// logged and skipped; it never aborts the remaining checks. The collected
// alerts are returned either way.
func (m *Monitor) Run(ctx context.Context, checks []config.DirectoryCheck) []alerts.Alert {
	var found []alerts.Alert

	for _, check := range checks {
		alert, ok := m.evaluate(check)
		if ok {
			found = append(found, alert)
		}
	}

	if len(found) > 0 {
		m.dispatch(ctx, found)
	}
	return found
}

// evaluate runs a single check. The probe distinguishes an absent path,
// which is skipped as "nothing to check yet", from a path that cannot be
// statted, which is a logged failure of this check only.
func (m *Monitor) evaluate(check config.DirectoryCheck) (alerts.Alert, bool) {
	if _, err := os.Stat(check.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Warn("directory does not exist, skipping", "name", check.Name, "path", check.Path)
		} else {
			m.logger.Error("probe directory", "name", check.Name, "path", check.Path, "error", err)
		}
		return alerts.Alert{}, false
	}

	threshold, err := sizeutil.ParseSize(check.Threshold)
	if err != nil {
		m.logger.Error("parse threshold", "name", check.Name, "threshold", check.Threshold, "error", err)
		return alerts.Alert{}, false
	}

	m.logger.Info("checking directory", "name", check.Name, "path", check.Path)
	size, err := m.sizer.DirectorySize(check.Path)
	if err != nil {
		m.logger.Error("measure directory", "name", check.Name, "path", check.Path, "error", err)
		return alerts.Alert{}, false
	}

	if size <= threshold {
		return alerts.Alert{}, false
	}

	m.logger.Warn("directory exceeds threshold",
		"name", check.Name,
		"path", check.Path,
		"size", sizeutil.FormatSize(size),
		"threshold", sizeutil.FormatSize(threshold),
	)
	return alerts.Alert{
		Name:           check.Name,
		Path:           check.Path,
		SizeBytes:      size,
		ThresholdBytes: threshold,
	}, true
}

// dispatch sends one report covering all alerts through every notifier.
// Delivery failures are logged and not retried.
func (m *Monitor) dispatch(ctx context.Context, found []alerts.Alert) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	report := alerts.Report{
		Hostname:    hostname,
		GeneratedAt: time.Now(),
		RunID:       m.runID,
		Alerts:      found,
	}

	for _, notifier := range m.notifiers {
		if err := notifier.Send(ctx, report); err != nil {
			m.logger.Error("send alert report failed",
				"notifier", notifier.Name(),
				"alerts", len(found),
				"error", err,
			)
			continue
		}
		m.logger.Info("alert report sent", "notifier", notifier.Name(), "alerts", len(found))
	}
}
