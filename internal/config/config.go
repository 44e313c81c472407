package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Application
	Version     string
	Environment string
	HubID       string
	Port        int
	LogLevel    string

	// Static frontend build, served as-is when the directory is configured
	StaticDir string

	// NATS (audit trail + camera status bridge)
	// Default: nats://localhost:4222 (works with Docker Compose setup)
	// Docker: Use nats://nats:4222 if running the hub in Docker
	NatsURL            string
	NatsConnectTimeout time.Duration
	NatsReconnectWait  time.Duration
	NatsMaxReconnects  int
	NatsDrainTimeout   time.Duration

	// Bus subjects
	ControlSubject      string // lease transitions
	CommandSubject      string // forwarded PTZ/recording commands
	StatusSubjectPrefix string // camera unit status reports

	// Control
	// When true the relay re-checks that the sender holds the manual-control
	// lease before forwarding PTZ/recording commands.
	StrictRelay bool

	// Cloud drive (video listing and playback proxy)
	DriveBaseURL   string
	DriveAPIKey    string
	DriveFolderID  string
	DriveTimeout   time.Duration
	DriveListLimit int

	// Websocket channel
	WSReadBufferSize  int
	WSWriteBufferSize int
	WSMaxMessageSize  int64 // frames are base64 JPEGs, so well above text-chat sizes
	WSSendBuffer      int
	WSPongWait        time.Duration
	WSWriteWait       time.Duration

	// Health
	FrameStaleThreshold time.Duration

	// Graceful Shutdown
	ShutdownTimeout time.Duration

	// Swagger Configuration
	SwaggerHost string
	SwaggerPort int
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file found, using environment variables and defaults")
	} else {
		log.Info().Msg("Loaded configuration from .env file")
	}

	return &Config{
		// Application
		Version:     getEnv("VERSION", "1.0.0"),
		Environment: getEnv("ENVIRONMENT", "development"),
		HubID:       getEnv("HUB_ID", "hub-1"),
		Port:        getEnvInt("PORT", 8000),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		StaticDir: getEnv("STATIC_DIR", ""),

		// NATS
		NatsURL:            getNatsURL(),
		NatsConnectTimeout: getEnvDuration("NATS_CONNECT_TIMEOUT", 10*time.Second),
		NatsReconnectWait:  getEnvDuration("NATS_RECONNECT_WAIT", 2*time.Second),
		NatsMaxReconnects:  getEnvInt("NATS_MAX_RECONNECTS", -1), // -1 = unlimited
		NatsDrainTimeout:   getEnvDuration("NATS_DRAIN_TIMEOUT", 5*time.Second),

		// Bus subjects
		ControlSubject:      getEnv("CONTROL_SUBJECT", "hub.control"),
		CommandSubject:      getEnv("COMMAND_SUBJECT", "hub.commands"),
		StatusSubjectPrefix: getEnv("STATUS_SUBJECT_PREFIX", "camera.status"),

		// Control
		StrictRelay: getEnvBool("CONTROL_STRICT_RELAY", true),

		// Cloud drive
		DriveBaseURL:   getEnv("DRIVE_BASE_URL", "https://www.googleapis.com/drive/v3"),
		DriveAPIKey:    getEnv("DRIVE_API_KEY", ""),
		DriveFolderID:  getEnv("DRIVE_FOLDER_ID", ""),
		DriveTimeout:   getEnvDuration("DRIVE_TIMEOUT", 30*time.Second),
		DriveListLimit: getEnvInt("DRIVE_LIST_LIMIT", 100),

		// Websocket channel
		WSReadBufferSize:  getEnvInt("WS_READ_BUFFER_SIZE", 4096),
		WSWriteBufferSize: getEnvInt("WS_WRITE_BUFFER_SIZE", 4096),
		WSMaxMessageSize:  int64(getEnvInt("WS_MAX_MESSAGE_SIZE", 8*1024*1024)),
		WSSendBuffer:      getEnvInt("WS_SEND_BUFFER", 256),
		WSPongWait:        getEnvDuration("WS_PONG_WAIT", 60*time.Second),
		WSWriteWait:       getEnvDuration("WS_WRITE_WAIT", 10*time.Second),

		// Health
		FrameStaleThreshold: getEnvDuration("FRAME_STALE_THRESHOLD", 10*time.Second),

		// Graceful Shutdown
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		// Swagger Configuration
		SwaggerHost: getEnv("SWAGGER_HOST", "localhost"),
		SwaggerPort: getEnvInt("SWAGGER_PORT", 8000),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Helper functions for Docker environment detection
func isRunningInDocker() bool {
	if os.Getenv("DOCKER_CONTAINER") == "true" {
		return true
	}

	// Check for .dockerenv file
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	return false
}

// getNatsURL returns the appropriate NATS URL based on environment
func getNatsURL() string {
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		return envURL
	}

	// If running in Docker, use service name; otherwise use localhost
	if isRunningInDocker() {
		return "nats://nats:4222"
	}

	return "nats://localhost:4222"
}
