package extractor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"videograb/internal/model"
	"videograb/pkg/logger"

	"github.com/kkdai/youtube/v2"
	"go.uber.org/zap"
)

// YouTubeExtractor implements Extractor on top of github.com/kkdai/youtube.
type YouTubeExtractor struct {
	httpClient *http.Client
}

// NewYouTubeExtractor creates an extractor that issues requests through httpClient
func NewYouTubeExtractor(httpClient *http.Client) *YouTubeExtractor {
	return &YouTubeExtractor{httpClient: httpClient}
}

// GetMetadata fetches the video and resolves a playable URL for each format.
// youtube.Client mutates itself while fetching (player client selection,
// player cache), so every call gets its own.
func (e *YouTubeExtractor) GetMetadata(ctx context.Context, id string) (*model.Metadata, error) {
	client := &youtube.Client{HTTPClient: e.httpClient}

	video, err := client.GetVideoContext(ctx, id)
	if err != nil {
		return nil, model.NewUpstreamFetch("Failed to get video information", describeError(err))
	}
	if video.Title == "" || len(video.Formats) == 0 {
		return nil, model.NewUpstreamFetch("Failed to get video information",
			errors.New("response is missing title or formats"))
	}

	live := video.HLSManifestURL != ""
	streams := make([]model.Stream, 0, len(video.Formats))
	for i := range video.Formats {
		f := &video.Formats[i]
		s := convertFormat(f, live)
		if !s.HasVideo {
			continue
		}
		streamURL, err := client.GetStreamURLContext(ctx, video, f)
		if err != nil {
			logger.Logger.Debug("Skipping format without stream URL",
				zap.String("video_id", video.ID),
				zap.Int("itag", f.ItagNo),
				zap.Error(err))
			continue
		}
		s.URL = streamURL
		streams = append(streams, s)
	}

	thumbnails := make([]string, 0, len(video.Thumbnails))
	for _, th := range video.Thumbnails {
		thumbnails = append(thumbnails, th.URL)
	}

	return &model.Metadata{
		ID:              video.ID,
		Title:           video.Title,
		Thumbnails:      thumbnails,
		DurationSeconds: int(video.Duration.Seconds()),
		Streams:         streams,
	}, nil
}

// ChooseStream picks the highest stream for filter.
func (e *YouTubeExtractor) ChooseStream(streams []model.Stream, filter model.StreamFilter) (model.Stream, bool) {
	return ChooseHighest(streams, filter)
}

func convertFormat(f *youtube.Format, live bool) model.Stream {
	mediaType, container := parseMimeType(f.MimeType)
	return model.Stream{
		Height:       f.Height,
		QualityLabel: f.QualityLabel,
		Container:    container,
		HasVideo:     mediaType == "video",
		HasAudio:     f.AudioChannels > 0,
		IsLive:       live,
		Bitrate:      f.Bitrate,
	}
}

// parseMimeType splits "video/mp4; codecs=..." into ("video", "mp4").
func parseMimeType(mimeType string) (string, string) {
	base, _, _ := strings.Cut(mimeType, ";")
	mediaType, subtype, ok := strings.Cut(strings.TrimSpace(base), "/")
	if !ok {
		return "", ""
	}
	return mediaType, subtype
}

// describeError turns the library's sentinel errors into readable causes.
func describeError(err error) error {
	var statusErr *youtube.ErrPlayabiltyStatus
	switch {
	case errors.Is(err, youtube.ErrVideoPrivate):
		return fmt.Errorf("video is private: %w", err)
	case errors.Is(err, youtube.ErrLoginRequired):
		return fmt.Errorf("video requires sign-in: %w", err)
	case errors.As(err, &statusErr):
		return fmt.Errorf("video is not playable (%s): %w", statusErr.Reason, err)
	}
	return err
}
