package drive

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"argus-hub-go/internal/config"
)

func newTestService(baseURL string) *Service {
	return NewService(&config.Config{
		DriveBaseURL:   baseURL,
		DriveAPIKey:    "test-key",
		DriveFolderID:  "folder-123",
		DriveTimeout:   5 * time.Second,
		DriveListLimit: 25,
	})
}

func TestListVideos(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if key := r.URL.Query().Get("key"); key != "test-key" {
			t.Errorf("missing api key, got %q", key)
		}
		q := r.URL.Query().Get("q")
		if !strings.Contains(q, "'folder-123' in parents") {
			t.Errorf("query not scoped to folder: %q", q)
		}
		if !strings.Contains(q, "mimeType contains 'video/'") {
			t.Errorf("query not filtered to videos: %q", q)
		}
		if pageSize := r.URL.Query().Get("pageSize"); pageSize != "25" {
			t.Errorf("unexpected pageSize %q", pageSize)
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"files": [
				{
					"id": "vid-2",
					"name": "evening.mp4",
					"mimeType": "video/mp4",
					"thumbnailLink": "https://thumbs.example/vid-2",
					"size": "1048576",
					"createdTime": "2026-02-01T18:30:00Z"
				},
				{
					"id": "vid-1",
					"name": "morning.mp4",
					"mimeType": "video/mp4",
					"createdTime": "2026-02-01T08:00:00Z"
				}
			]
		}`)
	}))
	defer ts.Close()

	videos, err := newTestService(ts.URL).ListVideos(context.Background())
	if err != nil {
		t.Fatalf("ListVideos failed: %v", err)
	}

	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(videos))
	}
	first := videos[0]
	if first.ID != "vid-2" || first.Name != "evening.mp4" || first.MimeType != "video/mp4" {
		t.Errorf("unexpected first video: %+v", first)
	}
	if first.Size != 1048576 {
		t.Errorf("size not parsed: %d", first.Size)
	}
	if first.Thumbnail != "https://thumbs.example/vid-2" {
		t.Errorf("thumbnail not mapped: %q", first.Thumbnail)
	}
	if first.CreatedTime.IsZero() {
		t.Error("createdTime not parsed")
	}
	// Optional fields stay zero when the drive omits them
	if videos[1].Size != 0 || videos[1].Thumbnail != "" {
		t.Errorf("unexpected optional fields: %+v", videos[1])
	}
}

func TestListVideosUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusForbidden)
	}))
	defer ts.Close()

	if _, err := newTestService(ts.URL).ListVideos(context.Background()); err == nil {
		t.Fatal("expected an error on upstream failure")
	}
}

func TestStreamVideoFull(t *testing.T) {
	content := "full video bytes"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/vid-1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if alt := r.URL.Query().Get("alt"); alt != "media" {
			t.Errorf("expected alt=media, got %q", alt)
		}
		if r.Header.Get("Range") != "" {
			t.Errorf("no Range header expected, got %q", r.Header.Get("Range"))
		}
		w.Header().Set("Content-Type", "video/mp4")
		io.WriteString(w, content)
	}))
	defer ts.Close()

	stream, err := newTestService(ts.URL).StreamVideo(context.Background(), "vid-1", "")
	if err != nil {
		t.Fatalf("StreamVideo failed: %v", err)
	}
	defer stream.Body.Close()

	if stream.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", stream.StatusCode)
	}
	if stream.ContentType != "video/mp4" {
		t.Errorf("content type not proxied: %q", stream.ContentType)
	}
	body, err := io.ReadAll(stream.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != content {
		t.Errorf("body altered: %q", body)
	}
}

func TestStreamVideoRangePassthrough(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Range") != "bytes=0-3" {
			t.Errorf("Range header not passed through, got %q", r.Header.Get("Range"))
		}
		w.Header().Set("Content-Type", "video/mp4")
		w.Header().Set("Content-Range", "bytes 0-3/16")
		w.WriteHeader(http.StatusPartialContent)
		io.WriteString(w, "full")
	}))
	defer ts.Close()

	stream, err := newTestService(ts.URL).StreamVideo(context.Background(), "vid-1", "bytes=0-3")
	if err != nil {
		t.Fatalf("StreamVideo failed: %v", err)
	}
	defer stream.Body.Close()

	if stream.StatusCode != http.StatusPartialContent {
		t.Errorf("expected 206, got %d", stream.StatusCode)
	}
	if stream.ContentRange != "bytes 0-3/16" {
		t.Errorf("Content-Range not proxied: %q", stream.ContentRange)
	}
}

func TestStreamVideoNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	_, err := newTestService(ts.URL).StreamVideo(context.Background(), "missing", "")
	if err == nil {
		t.Fatal("expected an error for a missing video")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error: %v", err)
	}
}
