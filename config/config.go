package config

import (
	"os"
	"strconv"
	"strings"

	"videograb/internal/model"

	"github.com/joho/godotenv"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultReferer   = "https://www.youtube.com/"
)

// Load loads configuration from environment variables
func Load() *model.Config {
	godotenv.Load()

	return &model.Config{
		Server: model.ServerConfig{
			Port:    getEnvInt("SERVER_PORT", 8080),
			Host:    getEnvStr("SERVER_HOST", "0.0.0.0"),
			Timeout: getEnvInt("SERVER_TIMEOUT", 60),
		},
		Logging: model.LoggingConfig{
			Level:    getEnvStr("LOG_LEVEL", "info"),
			FilePath: getEnvStr("LOG_FILE", "./log/app.log"),
		},
		YouTube: model.YouTubeConfig{
			Timeout: getEnvInt("YOUTUBE_TIMEOUT", 30),
		},
		Stream: model.StreamConfig{
			Path:         getEnvStr("STREAM_PATH", "/api/stream"),
			UserAgent:    getEnvStr("STREAM_USER_AGENT", defaultUserAgent),
			Referer:      getEnvStr("STREAM_REFERER", defaultReferer),
			CacheMaxAge:  getEnvInt("STREAM_CACHE_MAX_AGE", 3600),
			AllowedHosts: parseList(getEnvStr("STREAM_ALLOWED_HOSTS", "")),
		},
		RateLimit: model.RateLimitConfig{
			Enabled:           getEnvBool("RATELIMIT_ENABLED", false),
			RequestsPerMinute: getEnvInt("RATELIMIT_REQUESTS_PER_MINUTE", 60),
			BurstSize:         getEnvInt("RATELIMIT_BURST_SIZE", 10),
			CleanupInterval:   getEnvInt("RATELIMIT_CLEANUP_INTERVAL", 1800),
		},
		Site: model.SiteConfig{
			BaseURL: strings.TrimRight(getEnvStr("SITE_BASE_URL", "https://videodownloader.com"), "/"),
		},
	}
}

// parseList splits a comma-separated list, dropping blanks
func parseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvStr(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	valStr := getEnvStr(key, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	valStr := strings.ToLower(getEnvStr(key, ""))
	if valStr == "true" || valStr == "1" || valStr == "yes" {
		return true
	}
	if valStr == "false" || valStr == "0" || valStr == "no" {
		return false
	}
	return defaultVal
}
