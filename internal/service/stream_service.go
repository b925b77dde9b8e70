package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"videograb/internal/model"
	"videograb/pkg/logger"
	"videograb/pkg/validator"

	"go.uber.org/zap"
)

const defaultContentType = "video/mp4"

// Upstream is an open media response ready to be relayed.
type Upstream struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64 // -1 when unknown
}

// StreamService proxies upstream media responses
type StreamService struct {
	httpClient *http.Client
	cfg        *model.StreamConfig
}

// NewStreamService creates a new stream service
func NewStreamService(httpClient *http.Client, cfg *model.StreamConfig) *StreamService {
	return &StreamService{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

// Open issues a single GET to upstreamURL. The caller owns the returned body.
func (s *StreamService) Open(ctx context.Context, upstreamURL string) (*Upstream, error) {
	if upstreamURL == "" {
		return nil, model.NewInvalidInput("Video URL is required")
	}
	if err := validator.ValidateUpstreamURL(upstreamURL, s.cfg.AllowedHosts); err != nil {
		return nil, &model.AppError{Kind: model.KindInvalidInput, Message: "Invalid video URL", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, upstreamURL, nil)
	if err != nil {
		return nil, &model.AppError{Kind: model.KindInvalidInput, Message: "Invalid video URL", Err: err}
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Referer", s.cfg.Referer)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Logger.Error("Upstream request failed", zap.Error(err))
		return nil, model.NewUpstreamFetch("Failed to fetch video", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		logger.Logger.Warn("Non-success status from upstream", zap.Int("status", resp.StatusCode))
		return nil, model.NewUpstreamFetch(fmt.Sprintf("Failed to fetch video: %s", statusText(resp)), nil)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	return &Upstream{
		Body:          resp.Body,
		ContentType:   contentType,
		ContentLength: resp.ContentLength,
	}, nil
}

// statusText returns the reason phrase, e.g. "Forbidden" for "403 Forbidden".
func statusText(resp *http.Response) string {
	if _, reason, ok := strings.Cut(resp.Status, " "); ok && reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
