package drive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"argus-hub-go/internal/config"
	"argus-hub-go/internal/models"
)

// Service lists and proxies playback of videos stored in a Google Drive
// folder. It talks to the Drive v3 REST surface directly; the base URL is
// configurable so tests can point it at a local server.
type Service struct {
	cfg *config.Config
	api *resty.Client
	// media skips response parsing so video bytes stream through instead of
	// buffering in memory
	media *resty.Client
}

type driveFile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MimeType      string `json:"mimeType"`
	ThumbnailLink string `json:"thumbnailLink"`
	Size          string `json:"size"`
	CreatedTime   string `json:"createdTime"`
}

type driveFileList struct {
	Files []driveFile `json:"files"`
}

// VideoStream is an open video-content response with range semantics intact.
// The caller owns Body and must close it.
type VideoStream struct {
	Body          io.ReadCloser
	StatusCode    int
	ContentType   string
	ContentLength string
	ContentRange  string
}

// NewService creates the drive client
func NewService(cfg *config.Config) *Service {
	api := resty.New().
		SetBaseURL(cfg.DriveBaseURL).
		SetTimeout(cfg.DriveTimeout).
		SetQueryParam("key", cfg.DriveAPIKey).
		SetHeader("Accept", "application/json")

	media := resty.New().
		SetBaseURL(cfg.DriveBaseURL).
		SetTimeout(cfg.DriveTimeout).
		SetQueryParam("key", cfg.DriveAPIKey).
		SetDoNotParseResponse(true)

	return &Service{
		cfg:   cfg,
		api:   api,
		media: media,
	}
}

// ListVideos returns the playable files in the configured folder, newest
// first.
func (s *Service) ListVideos(ctx context.Context) ([]models.Video, error) {
	var list driveFileList

	resp, err := s.api.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":        fmt.Sprintf("'%s' in parents and mimeType contains 'video/' and trashed = false", s.cfg.DriveFolderID),
			"orderBy":  "createdTime desc",
			"fields":   "files(id,name,mimeType,thumbnailLink,size,createdTime)",
			"pageSize": strconv.Itoa(s.cfg.DriveListLimit),
		}).
		SetResult(&list).
		Get("/files")
	if err != nil {
		return nil, fmt.Errorf("drive file listing failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("drive file listing failed: %s: %s", resp.Status(), resp.String())
	}

	videos := make([]models.Video, 0, len(list.Files))
	for _, f := range list.Files {
		video := models.Video{
			ID:        f.ID,
			Name:      f.Name,
			MimeType:  f.MimeType,
			Thumbnail: f.ThumbnailLink,
		}
		if f.Size != "" {
			if size, err := strconv.ParseInt(f.Size, 10, 64); err == nil {
				video.Size = size
			}
		}
		if f.CreatedTime != "" {
			if created, err := time.Parse(time.RFC3339, f.CreatedTime); err == nil {
				video.CreatedTime = created
			}
		}
		videos = append(videos, video)
	}

	log.Debug().Int("count", len(videos)).Msg("Drive listing fetched")
	return videos, nil
}

// StreamVideo fetches a file's content, passing the client's Range header
// through so partial-content responses keep their standard semantics.
func (s *Service) StreamVideo(ctx context.Context, id, rangeHeader string) (*VideoStream, error) {
	req := s.media.R().
		SetContext(ctx).
		SetQueryParam("alt", "media")
	if rangeHeader != "" {
		req.SetHeader("Range", rangeHeader)
	}

	resp, err := req.Get("/files/" + id)
	if err != nil {
		return nil, fmt.Errorf("drive content fetch failed: %w", err)
	}

	raw := resp.RawResponse
	if raw.StatusCode >= 400 {
		resp.RawBody().Close()
		if raw.StatusCode == 404 {
			return nil, fmt.Errorf("video %s not found", id)
		}
		return nil, fmt.Errorf("drive content fetch failed: %s", raw.Status)
	}

	return &VideoStream{
		Body:          resp.RawBody(),
		StatusCode:    raw.StatusCode,
		ContentType:   raw.Header.Get("Content-Type"),
		ContentLength: raw.Header.Get("Content-Length"),
		ContentRange:  raw.Header.Get("Content-Range"),
	}, nil
}
