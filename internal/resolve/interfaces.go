package resolve

import (
	"context"

	"github.com/ytget/stream-downloader/internal/model"
)

// Resolver extracts the real media URL and caption URL from a task's page.
type Resolver interface {
	Resolve(ctx context.Context, pageURL string) model.ResolvedTarget
}
