package model

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	YouTube   YouTubeConfig
	Stream    StreamConfig
	RateLimit RateLimitConfig
	Site      SiteConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    int
	Host    string
	Timeout int // seconds, applied to reading requests only
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string
	FilePath string
}

// YouTubeConfig holds extraction client configuration
type YouTubeConfig struct {
	Timeout int // seconds, metadata requests only
}

// StreamConfig holds streaming proxy configuration
type StreamConfig struct {
	Path         string // route the resolver points format URLs at
	UserAgent    string
	Referer      string
	CacheMaxAge  int      // seconds
	AllowedHosts []string // empty allows any upstream host
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	BurstSize         int
	CleanupInterval   int // seconds
}

// SiteConfig holds public site metadata
type SiteConfig struct {
	BaseURL string
}
