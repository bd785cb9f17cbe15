package caption

import "context"

// Fetcher downloads a task's caption track to the captions directory.
type Fetcher interface {
	Fetch(ctx context.Context, captionURL, title string) bool
}
