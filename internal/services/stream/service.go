package stream

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"argus-hub-go/internal/config"
	"argus-hub-go/internal/models"
)

// Broadcaster fans an event out to every connected client
type Broadcaster interface {
	Broadcast(event string, data any)
}

// Stats is a snapshot of the live feed
type Stats struct {
	FramesReceived uint64    `json:"frames_received"`
	BytesReceived  uint64    `json:"bytes_received"`
	LastFrameAt    time.Time `json:"last_frame_at"`
	FPS            float64   `json:"fps"`
	Stale          bool      `json:"stale"`
}

// Service relays live camera frames. Each inbound frame is rebroadcast to
// every connected client, sender included, as-is: the payload is an opaque
// base64 JPEG and the service never decodes it on the hot path. The most
// recent frame is cached for the snapshot endpoint and the staleness check.
type Service struct {
	cfg *config.Config
	hub Broadcaster

	mu        sync.RWMutex
	lastFrame json.RawMessage
	lastAt    time.Time
	frames    uint64
	bytes     uint64

	// rolling window for FPS, same approach as per-camera FPS elsewhere
	recent []time.Time
}

const fpsWindowSize = 30

// NewService creates the frame relay
func NewService(cfg *config.Config, hub Broadcaster) *Service {
	return &Service{
		cfg: cfg,
		hub: hub,
	}
}

// HandleFrame rebroadcasts one frame payload. Best effort: the hub drops
// frames for consumers that cannot keep up, and no inter-sender ordering is
// promised.
func (s *Service) HandleFrame(data json.RawMessage) {
	if len(data) == 0 {
		return
	}

	now := time.Now()
	s.mu.Lock()
	s.lastFrame = append(s.lastFrame[:0], data...)
	s.lastAt = now
	s.frames++
	s.bytes += uint64(len(data))
	s.recent = append(s.recent, now)
	if len(s.recent) > fpsWindowSize {
		s.recent = s.recent[len(s.recent)-fpsWindowSize:]
	}
	s.mu.Unlock()

	s.hub.Broadcast(models.EventFrame, data)
}

// LatestFrame returns the most recent frame decoded to JPEG bytes
func (s *Service) LatestFrame() ([]byte, time.Time, bool) {
	s.mu.RLock()
	// Copy out: the cache's backing array is reused on the next frame
	raw := append(json.RawMessage(nil), s.lastFrame...)
	at := s.lastAt
	s.mu.RUnlock()

	if len(raw) == 0 {
		return nil, time.Time{}, false
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		log.Warn().Err(err).Msg("Cached frame is not a base64 string")
		return nil, time.Time{}, false
	}
	// Tolerate data-URL prefixed payloads from browser senders
	if idx := strings.IndexByte(encoded, ','); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}

	jpeg, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to decode cached frame")
		return nil, time.Time{}, false
	}
	return jpeg, at, true
}

// Stats returns feed counters and the staleness flag
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		FramesReceived: s.frames,
		BytesReceived:  s.bytes,
		LastFrameAt:    s.lastAt,
	}
	if !s.lastAt.IsZero() {
		stats.Stale = time.Since(s.lastAt) > s.cfg.FrameStaleThreshold
	}
	if len(s.recent) >= 2 {
		window := s.recent[len(s.recent)-1].Sub(s.recent[0]).Seconds()
		if window > 0 {
			stats.FPS = float64(len(s.recent)-1) / window
		}
	}
	return stats
}
