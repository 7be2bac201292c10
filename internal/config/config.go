package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	defaultDatabaseDSN    = "newsroom.db"
	defaultMediaRoot      = "./public/uploads/media"
	defaultMediaWebPrefix = "/uploads/media"
	defaultMaxUploadBytes = 25 * 1024 * 1024
	defaultListenAddr     = ":8080"
)

// Config is the process-wide runtime configuration, immutable after Load.
type Config struct {
	DatabaseDSN    string
	MediaRoot      string
	MediaWebPrefix string
	MaxUploadBytes int64
	ListenAddr     string
}

// Load reads configuration from the environment, falling back to local
// development defaults.
func Load() *Config {
	cfg := &Config{
		DatabaseDSN:    envOr("DATABASE_URL", defaultDatabaseDSN),
		MediaRoot:      envOr("MEDIA_ROOT", defaultMediaRoot),
		MediaWebPrefix: envOr("MEDIA_WEB_PREFIX", defaultMediaWebPrefix),
		MaxUploadBytes: envBytesOr("MEDIA_MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		ListenAddr:     envOr("LISTEN_ADDR", defaultListenAddr),
	}
	cfg.MediaWebPrefix = strings.TrimRight(cfg.MediaWebPrefix, "/")
	return cfg
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envBytesOr(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		log.Printf("config_warn key=%s value=%q using default %d", key, raw, fallback)
		return fallback
	}
	return n
}
