package service

import (
	"context"
	"fmt"

	"videograb/internal/extractor"
	"videograb/internal/model"
	"videograb/pkg/logger"
	"videograb/pkg/validator"

	"go.uber.org/zap"
)

const (
	unsupportedPlatformMessage = "Unsupported platform. Please use YouTube (including Shorts), Instagram, TikTok, or Twitter/X."
	noFormatsMessage           = "No downloadable formats available for this video"
)

// platformPlaceholders are the fixed answers for platforms without an extractor.
var platformPlaceholders = map[model.Platform]string{
	model.PlatformInstagram: "Instagram download is currently being updated. Please try again later.",
	model.PlatformTikTok:    "TikTok download is currently being updated. Please try again later.",
	model.PlatformTwitter:   "Twitter/X download is currently being updated. Please try again later.",
}

// VideoService resolves video URLs into downloadable format lists
type VideoService struct {
	extractor  extractor.Extractor
	streamPath string
}

// NewVideoService creates a new video service. streamPath is the proxy route
// every returned format URL points at.
func NewVideoService(ex extractor.Extractor, streamPath string) *VideoService {
	return &VideoService{
		extractor:  ex,
		streamPath: streamPath,
	}
}

// Resolve detects the platform of videoURL and returns its metadata and formats.
func (s *VideoService) Resolve(ctx context.Context, videoURL string) (*model.VideoInfo, error) {
	platform := validator.DetectPlatform(videoURL)
	switch platform {
	case model.PlatformYouTube:
		return s.resolveYouTube(ctx, videoURL)
	case model.PlatformUnknown:
		return nil, model.NewInvalidInput(unsupportedPlatformMessage)
	}

	if msg, ok := platformPlaceholders[platform]; ok {
		return nil, model.NewNotImplemented(msg)
	}
	return nil, model.NewInvalidInput(unsupportedPlatformMessage)
}

func (s *VideoService) resolveYouTube(ctx context.Context, videoURL string) (*model.VideoInfo, error) {
	id, err := ExtractYouTubeID(videoURL)
	if err != nil {
		return nil, err
	}

	metadata, err := s.extractor.GetMetadata(ctx, id)
	if err != nil {
		logger.Logger.Warn("Failed to fetch video metadata", zap.String("video_id", id), zap.Error(err))
		if _, ok := model.AsAppError(err); ok {
			return nil, err
		}
		return nil, model.NewUpstreamFetch("Failed to get video information", err)
	}

	ranked := rankStreams(metadata.Streams, s.extractor.ChooseStream)
	if len(ranked) == 0 {
		logger.Logger.Warn("No usable streams", zap.String("video_id", id), zap.Int("streams", len(metadata.Streams)))
		return nil, model.NewNoFormats(noFormatsMessage)
	}

	formats := make([]model.FormatOption, 0, len(ranked))
	for _, r := range ranked {
		container := r.Stream.Container
		if container == "" {
			container = "mp4"
		}
		formats = append(formats, model.FormatOption{
			Quality: r.Label,
			URL:     s.proxyURL(r.Stream.URL, metadata.Title),
			Format:  container,
		})
	}

	info := &model.VideoInfo{
		Title:    metadata.Title,
		Duration: FormatDuration(metadata.DurationSeconds),
		Formats:  formats,
	}
	if n := len(metadata.Thumbnails); n > 0 {
		info.Thumbnail = metadata.Thumbnails[n-1]
	}

	logger.Logger.Info("Video info resolved",
		zap.String("video_id", id),
		zap.String("title", info.Title),
		zap.Int("formats", len(info.Formats)))
	return info, nil
}

// proxyURL wraps an upstream media URL into a same-origin stream reference.
func (s *VideoService) proxyURL(upstream, title string) string {
	return fmt.Sprintf("%s?url=%s&title=%s",
		s.streamPath,
		validator.EscapeComponent(upstream),
		validator.EscapeComponent(title))
}
