package caption

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ytget/stream-downloader/internal/platform"
)

const (
	// FileExtension for caption tracks
	FileExtension = ".vtt"

	// TitlePrefixLength limits caption names to the title's first three
	// characters. Short names are deliberate; collisions mean the caption
	// was already fetched for a sibling episode.
	TitlePrefixLength = 3

	RequestTimeout = 30 * time.Second
)

// Service fetches caption files over HTTP
type Service struct {
	client *http.Client
	dir    string
	logger *log.Logger
}

// NewService creates a caption fetcher writing into dir
func NewService(dir string, logger *log.Logger) *Service {
	return &Service{
		client: &http.Client{Timeout: RequestTimeout},
		dir:    dir,
		logger: logger,
	}
}

// TargetPath returns where the caption for the given title is written
func (s *Service) TargetPath(title string) string {
	name := platform.SanitizeFilename(platform.TruncateRunes(title, TitlePrefixLength))
	return filepath.Join(s.dir, name+FileExtension)
}

// Fetch downloads the caption bytes to the target path. An existing file
// means the caption is already satisfied and is reported as false without
// touching the network. Any error is logged and reported as false.
func (s *Service) Fetch(ctx context.Context, captionURL, title string) bool {
	outputPath := s.TargetPath(title)

	if platform.FileExists(outputPath) {
		s.logger.Printf("Caption file already exists: %s", outputPath)
		return false
	}

	data, err := s.download(ctx, captionURL)
	if err != nil {
		s.logger.Printf("Failed to download caption for %q: %v", title, err)
		return false
	}

	if err := os.WriteFile(outputPath, data, platform.DefaultFilePermissions); err != nil {
		s.logger.Printf("Failed to write caption file %s: %v", outputPath, err)
		return false
	}

	s.logger.Printf("Caption downloaded: %s", filepath.Base(outputPath))
	return true
}

func (s *Service) download(ctx context.Context, captionURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, captionURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
