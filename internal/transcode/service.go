package transcode

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
)

// FFmpeg constants for the transcode template
const (
	FFmpegCommand = "ffmpeg"

	// Video is stream-copied; audio is re-encoded to a fixed codec/bitrate
	StreamCopyCodec = "copy"
	AudioCodec      = "aac"
	AudioBitrate    = "128k"

	// Output naming
	OutputSuffix    = "-acc"
	OutputExtension = ".mp4"
)

// Service runs ffmpeg jobs with progress tracking
type Service struct {
	command string
	logger  *log.Logger
}

// NewService creates a transcode runner using the ffmpeg binary on PATH
func NewService(logger *log.Logger) *Service {
	return &Service{
		command: FFmpegCommand,
		logger:  logger,
	}
}

// OutputFileName returns the output file name for a sanitized title
func OutputFileName(safeTitle string) string {
	return safeTitle + OutputSuffix + OutputExtension
}

// Run probes the media for its total duration, then transcodes it to
// outputPath while publishing percent-complete updates. Any failure —
// missing duration, spawn error, nonzero exit — is logged and reported
// as false; nothing propagates to the caller.
func (s *Service) Run(ctx context.Context, mediaURL, outputPath, title string, progress ProgressFunc) bool {
	totalDuration, err := s.probeDuration(ctx, mediaURL)
	if err != nil {
		// Progress cannot be computed without a duration, so the whole
		// job fails fast rather than running blind.
		s.logger.Printf("Duration probe failed for %q: %v", title, err)
		return false
	}

	cmd := exec.CommandContext(ctx, s.command, s.buildTranscodeArgs(mediaURL, outputPath)...)

	tail, err := s.runMonitored(cmd, totalDuration, progress)
	if err != nil {
		s.logger.Printf("Transcode failed for %q: %v", title, err)
		s.logger.Printf("ffmpeg output for %q:\n%s", title, tail)
		return false
	}

	if progress != nil {
		progress(100)
	}
	s.logger.Printf("Transcode completed: %s", title)
	return true
}

// runMonitored starts the command and drains its stderr through the
// progress monitor, returning the captured tail and the process's exit
// error. The monitor reads to EOF before Wait is called; os/exec forbids
// waiting while pipe reads are still in flight.
func (s *Service) runMonitored(cmd *exec.Cmd, totalDuration float64, progress ProgressFunc) (string, error) {
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start %s: %w", s.command, err)
	}

	tail := monitorProgress(stderr, totalDuration, progress)
	return tail, cmd.Wait()
}

// probeDuration invokes ffmpeg in metadata-only mode and parses the total
// media duration from its diagnostic output.
func (s *Service) probeDuration(ctx context.Context, mediaURL string) (float64, error) {
	var errBuffer bytes.Buffer
	cmd := exec.CommandContext(ctx, s.command, "-hide_banner", "-i", mediaURL)
	cmd.Stderr = &errBuffer

	// The probe requests no output file, so ffmpeg always exits nonzero.
	// Only spawn failures matter here.
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return 0, fmt.Errorf("failed to run %s: %w", s.command, err)
		}
	}

	duration, ok := ExtractDuration(errBuffer.String())
	if !ok {
		return 0, fmt.Errorf("no duration found in probe output")
	}
	return duration, nil
}

// buildTranscodeArgs builds the fixed transcode argument template
func (s *Service) buildTranscodeArgs(mediaURL, outputPath string) []string {
	return []string{
		"-i", mediaURL, // Input stream
		"-c", StreamCopyCodec, // Stream-copy all tracks
		"-c:a", AudioCodec, // Re-encode audio
		"-b:a", AudioBitrate, // Fixed audio bitrate
		"-y",       // Overwrite destination unconditionally
		outputPath, // Output file
	}
}
