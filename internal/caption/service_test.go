package caption

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ytget/stream-downloader/internal/logging"
)

func TestTargetPath(t *testing.T) {
	service := NewService("/data/captions", logging.NewTestLogger())

	tests := []struct {
		title    string
		expected string
	}{
		{"Ep｜1", filepath.Join("/data/captions", "Ep_.vtt")},
		{"abcdef", filepath.Join("/data/captions", "abc.vtt")},
		{"ab", filepath.Join("/data/captions", "ab.vtt")},
	}

	for _, test := range tests {
		if result := service.TargetPath(test.title); result != test.expected {
			t.Errorf("TargetPath(%q) = %q, expected %q", test.title, result, test.expected)
		}
	}
}

func TestFetch(t *testing.T) {
	content := "WEBVTT\n\n00:00.000 --> 00:01.000\nhello\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(content)); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	service := NewService(dir, logging.NewTestLogger())

	if !service.Fetch(context.Background(), server.URL, "Ep｜1") {
		t.Fatal("Expected fetch to succeed")
	}

	data, err := os.ReadFile(filepath.Join(dir, "Ep_.vtt"))
	if err != nil {
		t.Fatalf("Caption file was not written: %v", err)
	}
	if string(data) != content {
		t.Errorf("Caption bytes were not written verbatim: %q", data)
	}
}

func TestFetch_ExistingFileSkipsNetwork(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Ep_.vtt"), []byte("old"), 0644); err != nil {
		t.Fatalf("Failed to seed caption file: %v", err)
	}

	service := NewService(dir, logging.NewTestLogger())
	if service.Fetch(context.Background(), server.URL, "Ep｜1") {
		t.Error("Expected fetch to report false for an existing file")
	}
	if requests != 0 {
		t.Errorf("Expected no network calls, got %d", requests)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Ep_.vtt"))
	if err != nil || string(data) != "old" {
		t.Errorf("Existing caption file was modified: %q, %v", data, err)
	}
}

func TestFetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	service := NewService(dir, logging.NewTestLogger())

	if service.Fetch(context.Background(), server.URL, "Ep｜1") {
		t.Error("Expected fetch to fail on server error")
	}
	if _, err := os.Stat(filepath.Join(dir, "Ep_.vtt")); !os.IsNotExist(err) {
		t.Error("Expected no caption file after failed fetch")
	}
}

func TestFetch_UnreachableHost(t *testing.T) {
	service := NewService(t.TempDir(), logging.NewTestLogger())

	if service.Fetch(context.Background(), "http://127.0.0.1:1/cap.vtt", "Ep｜1") {
		t.Error("Expected fetch to fail for unreachable host")
	}
}
