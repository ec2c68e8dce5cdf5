package alerts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yapay-ai/dirsentry/pkg/alerts"
)

func testReport() alerts.Report {
	return alerts.Report{
		Hostname:    "web01",
		GeneratedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local),
		RunID:       "6f1c0d5e-4a1b-4a2f-9c3d-1234567890ab",
		Alerts: []alerts.Alert{
			{Name: "logs", Path: "/var/log/myapp", SizeBytes: 1500000, ThresholdBytes: 1048576},
			{Name: "cache", Path: "/var/cache/myapp", SizeBytes: 3 << 30, ThresholdBytes: 2 << 30},
		},
	}
}

func TestAlert_ExceededBy(t *testing.T) {
	a := alerts.Alert{SizeBytes: 1048577, ThresholdBytes: 1048576}
	assert.Equal(t, int64(1), a.ExceededBy())
}

func TestSubject(t *testing.T) {
	got := alerts.Subject(testReport())
	assert.Equal(t, "Directory size alert on web01 - 2026-03-14 09:26", got)
}

func TestBody(t *testing.T) {
	body := alerts.Body(testReport())

	assert.Contains(t, body, "The following directories have exceeded their size thresholds:")
	assert.Contains(t, body, "Directory: logs (/var/log/myapp)")
	assert.Contains(t, body, "Current Size: 1.43 MB (1,500,000 bytes)")
	assert.Contains(t, body, "Threshold: 1 MB")
	assert.Contains(t, body, "Exceeded by: 440.84 KB")
	assert.Contains(t, body, "Directory: cache (/var/cache/myapp)")
	assert.Contains(t, body, "Threshold: 2 GB")
	assert.Contains(t, body, "Exceeded by: 1 GB")
	assert.Contains(t, body, "This is an automated message from dirsentry running on web01.")
}

func TestEmailNotifier_Name(t *testing.T) {
	n := alerts.NewEmailNotifier("localhost", 25, "", "", false, []string{"ops@example.com"})
	assert.Equal(t, "email", n.Name())
}
