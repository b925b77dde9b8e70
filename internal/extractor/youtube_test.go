package extractor

import (
	"testing"

	"videograb/internal/model"

	"github.com/kkdai/youtube/v2"
)

func TestParseMimeType(t *testing.T) {
	tests := []struct {
		mime          string
		wantType      string
		wantContainer string
	}{
		{`video/mp4; codecs="avc1.640028"`, "video", "mp4"},
		{`video/webm; codecs="vp9"`, "video", "webm"},
		{`audio/mp4; codecs="mp4a.40.2"`, "audio", "mp4"},
		{"", "", ""},
		{"garbage", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			gotType, gotContainer := parseMimeType(tt.mime)
			if gotType != tt.wantType || gotContainer != tt.wantContainer {
				t.Errorf("parseMimeType(%q) = (%q, %q), want (%q, %q)",
					tt.mime, gotType, gotContainer, tt.wantType, tt.wantContainer)
			}
		})
	}
}

func TestConvertFormat(t *testing.T) {
	combined := convertFormat(&youtube.Format{
		MimeType:      `video/mp4; codecs="avc1.42001E, mp4a.40.2"`,
		Height:        360,
		QualityLabel:  "360p",
		AudioChannels: 2,
		Bitrate:       500000,
	}, false)
	if !combined.HasVideo || !combined.HasAudio {
		t.Errorf("combined format: HasVideo=%v HasAudio=%v, want both true", combined.HasVideo, combined.HasAudio)
	}
	if combined.Container != "mp4" || combined.QualityLabel != "360p" || combined.Height != 360 {
		t.Errorf("unexpected combined stream %+v", combined)
	}

	videoOnly := convertFormat(&youtube.Format{
		MimeType:     `video/webm; codecs="vp9"`,
		Height:       1080,
		QualityLabel: "1080p",
	}, true)
	if !videoOnly.HasVideo || videoOnly.HasAudio {
		t.Errorf("video-only format: HasVideo=%v HasAudio=%v", videoOnly.HasVideo, videoOnly.HasAudio)
	}
	if !videoOnly.IsLive {
		t.Error("expected live flag to be carried through")
	}

	audio := convertFormat(&youtube.Format{MimeType: "audio/webm", AudioChannels: 2}, false)
	if audio.HasVideo {
		t.Error("audio format must not report video")
	}
}

func TestChooseHighest(t *testing.T) {
	streams := []model.Stream{
		{Height: 360, QualityLabel: "360p", URL: "u360", HasVideo: true, HasAudio: true},
		{Height: 720, QualityLabel: "720p", URL: "u720", HasVideo: true, HasAudio: true, Bitrate: 1},
		{Height: 720, QualityLabel: "720p", URL: "u720b", HasVideo: true, HasAudio: true, Bitrate: 2},
		{Height: 1080, QualityLabel: "1080p", URL: "", HasVideo: true, HasAudio: true},
		{Height: 2160, QualityLabel: "2160p", URL: "u2160", HasVideo: true},
	}

	got, ok := ChooseHighest(streams, model.FilterVideoAndAudio)
	if !ok {
		t.Fatal("expected a combined stream")
	}
	if got.URL != "u720b" {
		t.Errorf("ChooseHighest(combined) = %q, want u720b", got.URL)
	}

	got, ok = ChooseHighest(streams, model.FilterVideoOnly)
	if !ok || got.URL != "u2160" {
		t.Errorf("ChooseHighest(video-only) = %q, %v, want u2160", got.URL, ok)
	}

	if _, ok := ChooseHighest(streams[:1], model.FilterVideoOnly); ok {
		t.Error("expected no video-only stream")
	}
}
