package resolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ytget/stream-downloader/internal/logging"
)

func newTestService() *Service {
	return NewService(logging.NewTestLogger())
}

func servePage(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestResolve_NestedSourceAndCaptions(t *testing.T) {
	server := servePage(t, `<html><head>
		<script type="application/json">
		{"player": {"config": {"media": {"source": "http://cdn/stream.m3u8"},
			"tracks": {"captions": [{"src": "http://cdn/a.vtt"}, {"src": "http://cdn/b.vtt"}]}}}}
		</script>
	</head><body></body></html>`)

	target := newTestService().Resolve(context.Background(), server.URL)

	if target.MediaURL != "http://cdn/stream.m3u8" {
		t.Errorf("MediaURL = %q, expected nested source value", target.MediaURL)
	}
	// First caption entry wins even when entries differ
	if target.CaptionURL != "http://cdn/a.vtt" {
		t.Errorf("CaptionURL = %q, expected first entry's src", target.CaptionURL)
	}
}

func TestResolve_NoStructuredDataBlocks(t *testing.T) {
	server := servePage(t, `<html><head>
		<script>var notJSON = 1;</script>
	</head><body><p>nothing here</p></body></html>`)

	target := newTestService().Resolve(context.Background(), server.URL)

	if target.MediaURL != "" || target.CaptionURL != "" {
		t.Errorf("Expected empty target, got %+v", target)
	}
}

func TestResolve_MalformedBlockDoesNotAbortScan(t *testing.T) {
	server := servePage(t, `<html><head>
		<script type="application/json">{"broken": </script>
		<script type="application/json">{"source": "http://cdn/ok.m3u8"}</script>
	</head></html>`)

	target := newTestService().Resolve(context.Background(), server.URL)

	if target.MediaURL != "http://cdn/ok.m3u8" {
		t.Errorf("MediaURL = %q, expected scan to continue past malformed block", target.MediaURL)
	}
}

func TestResolve_FirstFoundWinsAcrossBlocks(t *testing.T) {
	server := servePage(t, `<html><head>
		<script type="application/json">{"source": "http://cdn/first.m3u8"}</script>
		<script type="application/json">{"source": "http://cdn/second.m3u8"}</script>
	</head></html>`)

	target := newTestService().Resolve(context.Background(), server.URL)

	if target.MediaURL != "http://cdn/first.m3u8" {
		t.Errorf("MediaURL = %q, expected first block's source", target.MediaURL)
	}
}

func TestResolve_SingleCaptionEntry(t *testing.T) {
	server := servePage(t, `<html><head>
		<script type="application/json">{"captions": [{"src": "http://cdn/only.vtt"}]}</script>
	</head></html>`)

	target := newTestService().Resolve(context.Background(), server.URL)

	if target.CaptionURL != "http://cdn/only.vtt" {
		t.Errorf("CaptionURL = %q, expected the single entry's src", target.CaptionURL)
	}
}

func TestResolve_SendsBrowserUserAgent(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
	}))
	t.Cleanup(server.Close)

	newTestService().Resolve(context.Background(), server.URL)

	if !strings.HasPrefix(userAgent, "Mozilla/5.0") {
		t.Errorf("Expected browser-identifying User-Agent, got %q", userAgent)
	}
}

func TestResolve_ServerErrorFailsSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	target := newTestService().Resolve(context.Background(), server.URL)

	if target.MediaURL != "" || target.CaptionURL != "" {
		t.Errorf("Expected empty target on server error, got %+v", target)
	}
}

func TestResolve_UnreachableHostFailsSoft(t *testing.T) {
	target := newTestService().Resolve(context.Background(), "http://127.0.0.1:1/none")

	if target.MediaURL != "" || target.CaptionURL != "" {
		t.Errorf("Expected empty target on network error, got %+v", target)
	}
}
