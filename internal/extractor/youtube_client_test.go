package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"videograb/internal/model"

	"github.com/kkdai/youtube/v2"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// playerAPI answers innertube player requests with the body registered for
// the requested video id. Anything else fails.
func playerAPI(bodies map[string]string) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost || !strings.Contains(r.URL.Path, "/youtubei/v1/player") {
			return nil, fmt.Errorf("unexpected request %s %s", r.Method, r.URL)
		}
		var req struct {
			VideoID string `json:"videoId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		body, ok := bodies[req.VideoID]
		if !ok {
			return nil, fmt.Errorf("no canned response for %q", req.VideoID)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    r,
		}, nil
	})}
}

const playableResponse = `{
  "playabilityStatus": {"status": "OK", "playableInEmbed": true},
  "videoDetails": {
    "title": "Clip",
    "lengthSeconds": "125",
    "thumbnail": {"thumbnails": [{"url": "https://i.ytimg.com/s.jpg"}, {"url": "https://i.ytimg.com/l.jpg"}]}
  },
  "streamingData": {
    "formats": [
      {"itag": 18, "url": "https://media.example/18", "mimeType": "video/mp4; codecs=\"avc1.42001E, mp4a.40.2\"",
       "bitrate": 500000, "height": 360, "qualityLabel": "360p", "audioChannels": 2}
    ],
    "adaptiveFormats": [
      {"itag": 137, "url": "https://media.example/137", "mimeType": "video/mp4; codecs=\"avc1.640028\"",
       "bitrate": 4000000, "height": 1080, "qualityLabel": "1080p"},
      {"itag": 140, "url": "https://media.example/140", "mimeType": "audio/mp4; codecs=\"mp4a.40.2\"",
       "bitrate": 128000, "audioChannels": 2}
    ]
  }
}`

func statusResponse(status, reason string) string {
	return fmt.Sprintf(`{"playabilityStatus": {"status": %q, "reason": %q, "playableInEmbed": true}}`, status, reason)
}

func TestGetMetadata(t *testing.T) {
	ex := NewYouTubeExtractor(playerAPI(map[string]string{"dQw4w9WgXcQ": playableResponse}))

	md, err := ex.GetMetadata(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}
	if md.Title != "Clip" || md.DurationSeconds != 125 {
		t.Errorf("title/duration = %q/%d", md.Title, md.DurationSeconds)
	}
	if len(md.Thumbnails) != 2 || md.Thumbnails[1] != "https://i.ytimg.com/l.jpg" {
		t.Errorf("thumbnails = %v", md.Thumbnails)
	}
	if len(md.Streams) != 2 {
		t.Fatalf("got %d streams, want the 2 video formats: %+v", len(md.Streams), md.Streams)
	}

	byURL := map[string]model.Stream{}
	for _, s := range md.Streams {
		byURL[s.URL] = s
	}
	if s := byURL["https://media.example/18"]; !s.HasAudio || !s.HasVideo || s.Height != 360 {
		t.Errorf("combined stream = %+v", s)
	}
	if s := byURL["https://media.example/137"]; s.HasAudio || s.Height != 1080 || s.IsLive {
		t.Errorf("video-only stream = %+v", s)
	}
}

func TestGetMetadataMarksLiveStreams(t *testing.T) {
	live := strings.Replace(playableResponse, `"streamingData": {`,
		`"streamingData": {"hlsManifestUrl": "https://manifest.example/live.m3u8",`, 1)
	ex := NewYouTubeExtractor(playerAPI(map[string]string{"liveStream1": live}))

	md, err := ex.GetMetadata(context.Background(), "liveStream1")
	if err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}
	for _, s := range md.Streams {
		if !s.IsLive {
			t.Errorf("stream %s not marked live", s.URL)
		}
	}
}

func TestGetMetadataErrors(t *testing.T) {
	untitled := strings.Replace(playableResponse, `"title": "Clip",`, ``, 1)

	tests := []struct {
		name     string
		body     string
		wantIs   error
		wantText string
	}{
		{"missing title", untitled, nil, "missing title or formats"},
		{"no formats", `{"playabilityStatus": {"status": "OK"}, "videoDetails": {"title": "Clip"}}`, nil, "no formats"},
		{"private", statusResponse("LOGIN_REQUIRED", "This video is private"), youtube.ErrVideoPrivate, "video is private"},
		{"age restricted", statusResponse("LOGIN_REQUIRED", "Sign in to confirm your age"), youtube.ErrLoginRequired, "video requires sign-in"},
		{"unplayable", statusResponse("UNPLAYABLE", "Not available in your country"), nil, "video is not playable (Not available in your country)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := NewYouTubeExtractor(playerAPI(map[string]string{"dQw4w9WgXcQ": tt.body}))
			_, err := ex.GetMetadata(context.Background(), "dQw4w9WgXcQ")
			if !model.IsKind(err, model.KindUpstreamFetch) {
				t.Fatalf("err = %v, want an upstream fetch error", err)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("err = %v, want it to wrap %v", err, tt.wantIs)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("err = %q, want it to contain %q", err.Error(), tt.wantText)
			}
		})
	}
}

func TestGetMetadataTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	ex := NewYouTubeExtractor(&http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	})})

	_, err := ex.GetMetadata(context.Background(), "dQw4w9WgXcQ")
	if !model.IsKind(err, model.KindUpstreamFetch) || !errors.Is(err, boom) {
		t.Errorf("err = %v, want an upstream fetch error wrapping %v", err, boom)
	}
}

// An age-restricted video switches kkdai to its embedded player. Later
// requests must not inherit that switch: with the embedded player, direct
// format URLs need a player-script fetch, which this transport refuses.
func TestGetMetadataRequestsAreIndependent(t *testing.T) {
	ex := NewYouTubeExtractor(playerAPI(map[string]string{
		"ageLocked01": statusResponse("LOGIN_REQUIRED", "Sign in to confirm your age"),
		"dQw4w9WgXcQ": playableResponse,
	}))

	if _, err := ex.GetMetadata(context.Background(), "ageLocked01"); err == nil {
		t.Fatal("expected the age-restricted video to fail")
	}

	md, err := ex.GetMetadata(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("GetMetadata after age-restricted video: %v", err)
	}
	if len(md.Streams) != 2 {
		t.Errorf("got %d streams, want 2 direct URLs", len(md.Streams))
	}
}

func TestGetMetadataConcurrent(t *testing.T) {
	ex := NewYouTubeExtractor(playerAPI(map[string]string{
		"ageLocked01": statusResponse("LOGIN_REQUIRED", "Sign in to confirm your age"),
		"dQw4w9WgXcQ": playableResponse,
	}))

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		id := "dQw4w9WgXcQ"
		if i%2 == 1 {
			id = "ageLocked01"
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			md, err := ex.GetMetadata(context.Background(), id)
			if id == "ageLocked01" {
				return
			}
			if err != nil {
				errs <- err
				return
			}
			if len(md.Streams) != 2 {
				errs <- fmt.Errorf("got %d streams, want 2", len(md.Streams))
			}
		}(id)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestDescribeError(t *testing.T) {
	other := errors.New("timeout")

	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{"private", youtube.ErrVideoPrivate, "video is private: user restricted access to this video"},
		{"login", youtube.ErrLoginRequired, "video requires sign-in: login required to confirm your age"},
		{"wrapped login", fmt.Errorf("can't bypass age restriction: %w", youtube.ErrLoginRequired), "video requires sign-in: can't bypass age restriction"},
		{"playability", &youtube.ErrPlayabiltyStatus{Status: "UNPLAYABLE", Reason: "Removed"}, "video is not playable (Removed)"},
		{"other", other, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describeError(tt.err)
			if !errors.Is(got, tt.err) {
				t.Errorf("describeError(%v) lost the cause", tt.err)
			}
			if !strings.HasPrefix(got.Error(), tt.wantText) {
				t.Errorf("describeError(%v) = %q, want prefix %q", tt.err, got.Error(), tt.wantText)
			}
		})
	}
}
