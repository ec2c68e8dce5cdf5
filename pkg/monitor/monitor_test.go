package monitor_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yapay-ai/dirsentry/internal/config"
	"github.com/yapay-ai/dirsentry/pkg/alerts"
	"github.com/yapay-ai/dirsentry/pkg/monitor"
	"github.com/yapay-ai/dirsentry/pkg/scanner"
)

// recordingNotifier captures every report it is asked to send.
type recordingNotifier struct {
	reports []alerts.Report
	err     error
}

func (n *recordingNotifier) Name() string { return "recording" }

func (n *recordingNotifier) Send(_ context.Context, report alerts.Report) error {
	n.reports = append(n.reports, report)
	return n.err
}

func newTestMonitor(notifiers ...alerts.Notifier) *monitor.Monitor {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return monitor.New(scanner.New(logger), notifiers, logger, "test-run")
}

func dirWithFile(t *testing.T, size int) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data"), make([]byte, size), 0o644))
	return dir
}

func TestRun_OverThreshold(t *testing.T) {
	notifier := &recordingNotifier{}
	m := newTestMonitor(notifier)

	dir := dirWithFile(t, 2048)
	found := m.Run(context.Background(), []config.DirectoryCheck{
		{Name: "data", Path: dir, Threshold: "1KB"},
	})

	require.Len(t, found, 1)
	assert.Equal(t, "data", found[0].Name)
	assert.Equal(t, dir, found[0].Path)
	assert.Equal(t, int64(2048), found[0].SizeBytes)
	assert.Equal(t, int64(1024), found[0].ThresholdBytes)
	assert.Equal(t, int64(1024), found[0].ExceededBy())

	require.Len(t, notifier.reports, 1)
	assert.Equal(t, "test-run", notifier.reports[0].RunID)
	assert.NotEmpty(t, notifier.reports[0].Hostname)
	assert.Equal(t, found, notifier.reports[0].Alerts)
}

func TestRun_EqualIsNotAnAlert(t *testing.T) {
	notifier := &recordingNotifier{}
	m := newTestMonitor(notifier)

	found := m.Run(context.Background(), []config.DirectoryCheck{
		{Name: "data", Path: dirWithFile(t, 1024), Threshold: "1KB"},
	})

	assert.Empty(t, found)
	assert.Empty(t, notifier.reports)
}

func TestRun_OneByteOver(t *testing.T) {
	notifier := &recordingNotifier{}
	m := newTestMonitor(notifier)

	found := m.Run(context.Background(), []config.DirectoryCheck{
		{Name: "data", Path: dirWithFile(t, 1025), Threshold: "1KB"},
	})

	require.Len(t, found, 1)
	assert.Equal(t, int64(1), found[0].ExceededBy())
}

func TestRun_OnlyExceedingDirectoryReported(t *testing.T) {
	notifier := &recordingNotifier{}
	m := newTestMonitor(notifier)

	found := m.Run(context.Background(), []config.DirectoryCheck{
		{Name: "small", Path: dirWithFile(t, 10), Threshold: "1KB"},
		{Name: "big", Path: dirWithFile(t, 4096), Threshold: "1KB"},
	})

	require.Len(t, found, 1)
	assert.Equal(t, "big", found[0].Name)

	require.Len(t, notifier.reports, 1)
	require.Len(t, notifier.reports[0].Alerts, 1)
	assert.Equal(t, "big", notifier.reports[0].Alerts[0].Name)
}

func TestRun_MissingPathSkipped(t *testing.T) {
	notifier := &recordingNotifier{}
	m := newTestMonitor(notifier)

	found := m.Run(context.Background(), []config.DirectoryCheck{
		{Name: "ghost", Path: filepath.Join(t.TempDir(), "nope"), Threshold: "1KB"},
	})

	assert.Empty(t, found)
	assert.Empty(t, notifier.reports)
}

func TestRun_BadThresholdAbandonsOnlyThatCheck(t *testing.T) {
	notifier := &recordingNotifier{}
	m := newTestMonitor(notifier)

	found := m.Run(context.Background(), []config.DirectoryCheck{
		{Name: "broken", Path: dirWithFile(t, 4096), Threshold: "100XB"},
		{Name: "big", Path: dirWithFile(t, 4096), Threshold: "1KB"},
	})

	require.Len(t, found, 1)
	assert.Equal(t, "big", found[0].Name)
}

func TestRun_NotifierFailureDoesNotPanic(t *testing.T) {
	notifier := &recordingNotifier{err: context.DeadlineExceeded}
	m := newTestMonitor(notifier)

	found := m.Run(context.Background(), []config.DirectoryCheck{
		{Name: "big", Path: dirWithFile(t, 4096), Threshold: "1KB"},
	})

	require.Len(t, found, 1)
	require.Len(t, notifier.reports, 1)
}

func TestRun_NoNotifiers(t *testing.T) {
	m := newTestMonitor()
	found := m.Run(context.Background(), []config.DirectoryCheck{
		{Name: "big", Path: dirWithFile(t, 4096), Threshold: "1KB"},
	})
	require.Len(t, found, 1)
}
