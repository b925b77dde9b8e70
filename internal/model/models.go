package model

// Platform identifies the site a video URL belongs to.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
	PlatformUnknown   Platform = "unknown"
)

// VideoInfo contains metadata about a video
type VideoInfo struct {
	Title     string         `json:"title"`
	Thumbnail string         `json:"thumbnail,omitempty"`
	Duration  string         `json:"duration,omitempty"`
	Formats   []FormatOption `json:"formats"`
}

// FormatOption represents a downloadable format
type FormatOption struct {
	Quality string `json:"quality"` // e.g. 1080p
	URL     string `json:"url"`
	Format  string `json:"format"` // container, e.g. mp4
}

// DownloadRequest represents a user's resolve request
type DownloadRequest struct {
	URL string `json:"url" binding:"required"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error string `json:"error"`
}

// Metadata is the extractor's view of a single video.
type Metadata struct {
	ID              string
	Title           string
	Thumbnails      []string // ascending by size
	DurationSeconds int
	Streams         []Stream
}

// Stream describes one encoded media stream of a video.
type Stream struct {
	Height       int
	QualityLabel string
	Container    string
	URL          string
	HasAudio     bool
	HasVideo     bool
	IsLive       bool
	Bitrate      int
}

// StreamFilter narrows stream selection by media content.
type StreamFilter int

const (
	FilterVideoAndAudio StreamFilter = iota
	FilterVideoOnly
)

// Matches reports whether s satisfies the filter.
func (f StreamFilter) Matches(s Stream) bool {
	switch f {
	case FilterVideoAndAudio:
		return s.HasVideo && s.HasAudio
	case FilterVideoOnly:
		return s.HasVideo && !s.HasAudio
	}
	return false
}
