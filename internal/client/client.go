// Package client talks to a videograb server the same way the browser page
// does: local validation, format resolution, and downloads through the proxy.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"videograb/internal/model"
	"videograb/pkg/validator"
)

var (
	ErrBlankURL   = errors.New("Please enter a video URL")
	ErrInvalidURL = errors.New("Please enter a valid video URL from YouTube (including Shorts), Instagram, TikTok, or Twitter")
	ErrNoFormats  = errors.New("No downloadable formats found for this video")
)

var qualityPattern = regexp.MustCompile(`(\d+)p`)

// ServerError is a non-OK answer from the server
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return e.Message
}

// Client resolves and downloads videos through a videograb server
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New creates a client for the server at baseURL
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing server url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("server url %q must be an absolute http(s) url", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, http: httpClient}, nil
}

// Validate applies the same checks the page does before contacting the server.
func Validate(videoURL string) error {
	trimmed := strings.TrimSpace(videoURL)
	if trimmed == "" {
		return ErrBlankURL
	}
	if validator.DetectPlatform(trimmed) == model.PlatformUnknown || !strings.Contains(trimmed, "http") {
		return ErrInvalidURL
	}
	return nil
}

// Fetch resolves videoURL into its metadata with formats sorted best first.
func (c *Client) Fetch(ctx context.Context, videoURL string) (*model.VideoInfo, error) {
	if err := Validate(videoURL); err != nil {
		return nil, err
	}

	body, err := json.Marshal(model.DownloadRequest{URL: strings.TrimSpace(videoURL)})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.JoinPath("api", "download").String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contacting server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp model.ErrorResponse
		json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, &ServerError{Status: resp.StatusCode, Message: errResp.Error}
	}

	var info model.VideoInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(info.Formats) == 0 {
		return nil, ErrNoFormats
	}
	SortFormats(info.Formats)
	return &info, nil
}

// SortFormats orders formats by the number before "p" in their quality label,
// highest first. Labels without one sort as 0; ties keep their order.
func SortFormats(formats []model.FormatOption) {
	sort.SliceStable(formats, func(i, j int) bool {
		return qualityNumber(formats[i].Quality) > qualityNumber(formats[j].Quality)
	})
}

func qualityNumber(label string) int {
	m := qualityPattern.FindStringSubmatch(label)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Download copies the media behind format into w and returns the byte count.
// Absolute URLs are fetched directly; relative ones against the server.
func (c *Client) Download(ctx context.Context, format model.FormatOption, w io.Writer) (int64, error) {
	target, err := c.resolve(format.URL)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("downloading: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp model.ErrorResponse
		json.NewDecoder(resp.Body).Decode(&errResp)
		return 0, &ServerError{Status: resp.StatusCode, Message: errResp.Error}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("copying media: %w", err)
	}
	return n, nil
}

func (c *Client) resolve(ref string) (string, error) {
	if strings.HasPrefix(ref, "http") {
		return ref, nil
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parsing format url: %w", err)
	}
	return c.baseURL.ResolveReference(u).String(), nil
}
