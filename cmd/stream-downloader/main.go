package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ytget/stream-downloader/internal/caption"
	"github.com/ytget/stream-downloader/internal/config"
	"github.com/ytget/stream-downloader/internal/logging"
	"github.com/ytget/stream-downloader/internal/orchestrator"
	"github.com/ytget/stream-downloader/internal/platform"
	"github.com/ytget/stream-downloader/internal/progress"
	"github.com/ytget/stream-downloader/internal/resolve"
	"github.com/ytget/stream-downloader/internal/taskstore"
	"github.com/ytget/stream-downloader/internal/transcode"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var settings config.Settings

	cmd := &cobra.Command{
		Use:     "stream-downloader",
		Short:   "Batch-download media streams from a JSON task file",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(settings)
		},
	}

	cmd.Flags().StringVar(&settings.TaskFile, "tasks", config.DefaultTaskFile, "path to the JSON task file")
	cmd.Flags().IntVar(&settings.Workers, "workers", config.DefaultMaxWorkers, "number of concurrent download workers")
	cmd.Flags().StringVar(&settings.MediaDir, "media-dir", "", "output directory for media files (default: ~/Desktop/"+config.DefaultMediaDirName+")")
	cmd.Flags().StringVar(&settings.CaptionsDir, "captions-dir", "", "output directory for caption files (default: ~/Desktop/"+config.DefaultCaptionsDirName+")")

	return cmd
}

func run(settings config.Settings) error {
	if err := settings.ApplyDefaults(); err != nil {
		return err
	}

	for _, dir := range []string{settings.MediaDir, settings.CaptionsDir} {
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	logger, closeLog, err := logging.NewRunLogger(settings.LogsDir())
	if err != nil {
		// Degraded to stderr-only logging; the run still proceeds
		logger.Printf("Log file unavailable: %v", err)
	}
	defer closeLog()

	// The external process is killed on shutdown through the context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tasks := taskstore.NewStore(settings.TaskFile, logger).Load()
	if len(tasks) == 0 {
		logger.Printf("No download tasks found")
		return nil
	}

	logger.Printf("Media output directory: %s", settings.MediaDir)
	logger.Printf("Caption output directory: %s", settings.CaptionsDir)
	logger.Printf("Processing %d download tasks with %d workers", len(tasks), settings.Workers)

	orch := orchestrator.New(
		resolve.NewService(logger),
		caption.NewService(settings.CaptionsDir, logger),
		transcode.NewService(logger),
		progress.NewConsoleSink(os.Stdout),
		settings.MediaDir,
		logger,
	)

	summary := orch.RunAll(ctx, tasks, settings.Workers)

	logger.Printf("Download finished: %d/%d succeeded (%d failed, %d skipped)",
		summary.Succeeded, summary.Total, summary.Failed, summary.Skipped)

	// Clear the meter line before the final console summary
	fmt.Println()
	color.New(color.FgGreen, color.Bold).Printf("Done: %d/%d succeeded\n", summary.Succeeded, summary.Total)
	return nil
}
