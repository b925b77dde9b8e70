// Package extractor adapts third-party metadata libraries to the typed
// Metadata/Stream model consumed by the resolver.
package extractor

import (
	"context"
	"sort"

	"videograb/internal/model"
)

// Extractor fetches per-video metadata and picks streams from it.
type Extractor interface {
	GetMetadata(ctx context.Context, id string) (*model.Metadata, error)
	ChooseStream(streams []model.Stream, filter model.StreamFilter) (model.Stream, bool)
}

// ChooseHighest returns the highest-quality stream matching filter that has
// a URL. Ties on height break on bitrate.
func ChooseHighest(streams []model.Stream, filter model.StreamFilter) (model.Stream, bool) {
	candidates := make([]model.Stream, 0, len(streams))
	for _, s := range streams {
		if s.URL != "" && filter.Matches(s) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return model.Stream{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Height != candidates[j].Height {
			return candidates[i].Height > candidates[j].Height
		}
		return candidates[i].Bitrate > candidates[j].Bitrate
	})
	return candidates[0], true
}
