package transcode

import "context"

// ProgressFunc receives percent-complete updates for a running transcode
type ProgressFunc func(percent float64)

// Runner executes the external transcode for one task.
type Runner interface {
	Run(ctx context.Context, mediaURL, outputPath, title string, progress ProgressFunc) bool
}
