package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ytget/stream-downloader/internal/model"
)

// Request constants
const (
	// BrowserUserAgent identifies us as a regular browser; some origins
	// reject default client identifiers outright.
	BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	RequestTimeout = 30 * time.Second
)

// Embedded structured-data constants
const (
	ScriptSelector = `script[type="application/json"]`

	sourceKey     = "source"
	captionsKey   = "captions"
	captionSrcKey = "src"
)

// Service resolves pages by scanning their embedded JSON blocks
type Service struct {
	client *http.Client
	logger *log.Logger
}

// NewService creates a page resolver
func NewService(logger *log.Logger) *Service {
	return &Service{
		client: &http.Client{Timeout: RequestTimeout},
		logger: logger,
	}
}

// Resolve fetches pageURL and searches every embedded JSON block for a
// media source URL and a caption track URL. It fails soft: any network or
// parse error is logged and an empty target returned, so the caller can
// fall back to the page URL itself.
func (s *Service) Resolve(ctx context.Context, pageURL string) model.ResolvedTarget {
	var target model.ResolvedTarget

	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		s.logger.Printf("Failed to fetch page %s: %v", pageURL, err)
		return target
	}

	doc.Find(ScriptSelector).EachWithBreak(func(_ int, block *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(block.Text()), &data); err != nil {
			// One malformed block must not abort the scan of the rest
			return true
		}

		if target.MediaURL == "" {
			if src, ok := findSource(data); ok {
				target.MediaURL = src
			}
		}
		if target.CaptionURL == "" {
			if src, ok := findCaptions(data); ok {
				target.CaptionURL = src
			}
		}

		// Stop scanning once both fields are found
		return target.MediaURL == "" || target.CaptionURL == ""
	})

	if target.MediaURL != "" {
		s.logger.Printf("Found source URL: %s", target.MediaURL)
	}
	if target.CaptionURL != "" {
		s.logger.Printf("Found caption URL: %s", target.CaptionURL)
	}
	return target
}

// fetchDocument fetches the page body and parses it as HTML
func (s *Service) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", BrowserUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// findSource walks the decoded JSON depth-first and returns the value of
// the first "source" key it encounters.
func findSource(v any) (string, bool) {
	switch node := v.(type) {
	case map[string]any:
		if raw, ok := node[sourceKey]; ok {
			if src, ok := raw.(string); ok && src != "" {
				return src, true
			}
		}
		for _, child := range node {
			if src, ok := findSource(child); ok {
				return src, true
			}
		}
	case []any:
		for _, item := range node {
			if src, ok := findSource(item); ok {
				return src, true
			}
		}
	}
	return "", false
}

// findCaptions walks the decoded JSON depth-first looking for a "captions"
// key holding a non-empty array of objects. The first entry's "src" wins,
// whether or not later entries duplicate it.
func findCaptions(v any) (string, bool) {
	switch node := v.(type) {
	case map[string]any:
		if raw, ok := node[captionsKey]; ok {
			if entries, ok := raw.([]any); ok && len(entries) > 0 {
				if first, ok := entries[0].(map[string]any); ok {
					if src, ok := first[captionSrcKey].(string); ok && src != "" {
						return src, true
					}
				}
			}
		}
		for _, child := range node {
			if src, ok := findCaptions(child); ok {
				return src, true
			}
		}
	case []any:
		for _, item := range node {
			if src, ok := findCaptions(item); ok {
				return src, true
			}
		}
	}
	return "", false
}
