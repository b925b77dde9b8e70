package validator

import (
	"fmt"
	"net/url"
	"strings"

	"videograb/internal/model"
)

// DetectPlatform classifies a video URL by substring match, first match wins.
// The embedded page script mirrors these rules; keep them in sync.
func DetectPlatform(videoURL string) model.Platform {
	switch {
	case strings.Contains(videoURL, "youtube.com"), strings.Contains(videoURL, "youtu.be"):
		return model.PlatformYouTube
	case strings.Contains(videoURL, "instagram.com"):
		return model.PlatformInstagram
	case strings.Contains(videoURL, "tiktok.com"):
		return model.PlatformTikTok
	case strings.Contains(videoURL, "twitter.com"), strings.Contains(videoURL, "x.com"):
		return model.PlatformTwitter
	}
	return model.PlatformUnknown
}

// ValidateUpstreamURL checks that a proxy target is an absolute http(s) URL
// and, when allowedHosts is non-empty, that its host is one of them or a
// subdomain of one.
func ValidateUpstreamURL(rawURL string, allowedHosts []string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("URL has no host")
	}
	if len(allowedHosts) == 0 {
		return nil
	}
	for _, domain := range allowedHosts {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return nil
		}
	}
	return fmt.Errorf("host %q is not allowed", host)
}

// SanitizeFilename removes dangerous characters from filename
func SanitizeFilename(filename string) string {
	dangerousChars := []string{"<", ">", ":", "\"", "/", "\\", "|", "?", "*", "\x00"}
	result := filename
	for _, char := range dangerousChars {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	if result == "" || result == "." || result == ".." {
		return "video"
	}
	return result
}

// TruncateFilename truncates filename to max length while preserving extension
// Uses rune-level truncation to properly handle UTF-8 multi-byte characters
func TruncateFilename(filename string, maxLen int) string {
	runes := []rune(filename)
	if len(runes) <= maxLen {
		return filename
	}

	lastDot := strings.LastIndex(filename, ".")
	if lastDot == -1 {
		return string(runes[:maxLen])
	}

	ext := filename[lastDot:]
	extRunes := []rune(ext)

	availableLen := maxLen - len(extRunes)
	if availableLen <= 0 {
		return string(runes[:maxLen])
	}

	return string(runes[:availableLen]) + ext
}

// componentUnescaper undoes the url.QueryEscape encodings that a browser's
// encodeURIComponent leaves alone.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent percent-encodes s for use inside a query value or a quoted
// header parameter, matching encodeURIComponent: spaces become %20 and
// !'()* stay literal.
func EscapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
