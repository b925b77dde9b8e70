package service

import (
	"fmt"
	"regexp"
	"strings"

	"videograb/internal/model"
)

const invalidYouTubeURLMessage = "Invalid YouTube URL. Please check the video link. Supported formats: youtube.com/watch?v=..., youtube.com/shorts/..., or youtu.be/..."

var (
	shortsIDPattern = regexp.MustCompile(`shorts/([a-zA-Z0-9_-]+)`)
	watchIDPattern  = regexp.MustCompile(`[?&]v=([^&]+)`)
)

// ExtractYouTubeID pulls the video identifier out of a youtube.com/shorts/
// path, a youtu.be/ short link, or a v= query parameter. The first shape the
// URL has picks the rule; an empty result is never retried with the next one.
func ExtractYouTubeID(videoURL string) (string, error) {
	var id string
	switch {
	case strings.Contains(videoURL, "youtube.com/shorts/"):
		if m := shortsIDPattern.FindStringSubmatch(videoURL); m != nil {
			id = m[1]
		}
	case strings.Contains(videoURL, "youtu.be/"):
		_, rest, _ := strings.Cut(videoURL, "youtu.be/")
		id, _, _ = strings.Cut(rest, "?")
		id, _, _ = strings.Cut(id, "&")
		id, _, _ = strings.Cut(id, "/")
	default:
		if m := watchIDPattern.FindStringSubmatch(videoURL); m != nil {
			id = m[1]
		}
	}

	if id == "" {
		return "", model.NewInvalidInput(invalidYouTubeURLMessage)
	}
	return id, nil
}

// FormatDuration renders seconds as H:MM:SS, or M:SS under an hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
