// Package cli wires the dirsentry components into a single-shot command.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/yapay-ai/dirsentry/internal/config"
	"github.com/yapay-ai/dirsentry/pkg/alerts"
	"github.com/yapay-ai/dirsentry/pkg/monitor"
	"github.com/yapay-ai/dirsentry/pkg/scanner"
)

// Version is set at build time via ldflags.
var Version = "dev"

// logFile receives a copy of everything written to stdout.
const logFile = "directory_monitor.log"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "dirsentry",
	Short: "Check directory sizes against thresholds and mail an alert",
	Long: `dirsentry performs one pass over the directories named in its configuration
file, sums the size of every regular file in each tree, and sends a single
email covering every directory whose size exceeds its threshold. It is meant
to be run from cron or a systemd timer; it keeps no state between runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCheck,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = Version
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", config.DefaultPath, "path to configuration file")
}

// newLogger builds the process log stream: one timestamped line per event,
// written to both the log file and stdout. If the file cannot be opened the
// logger falls back to stdout alone.
func newLogger() (*slog.Logger, func()) {
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		logger.Warn("could not open log file, logging to stdout only", "path", logFile, "error", err)
		return logger, func() {}
	}

	w := io.MultiWriter(os.Stdout, f)
	logger := slog.New(slog.NewTextHandler(w, nil))
	return logger, func() { _ = f.Close() }
}

func runCheck(cmd *cobra.Command, _ []string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	logger.Info("starting directory size check", "config", cfgFile)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		logger.Error("load configuration", "error", err)
		return err
	}

	notifier := alerts.NewEmailNotifier(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.UseTLS,
		cfg.Email.Recipients,
	)

	sizer := scanner.New(logger)
	mon := monitor.New(sizer, []alerts.Notifier{notifier}, logger, runID)

	found := mon.Run(cmd.Context(), cfg.Directories)

	logger.Info("directory size check completed", "checked", len(cfg.Directories), "alerts", len(found))
	return nil
}
