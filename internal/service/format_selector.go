package service

import (
	"fmt"
	"sort"

	"videograb/internal/model"
)

// resolutionTiers is the fixed descending order formats are offered in.
var resolutionTiers = []int{2160, 1440, 1080, 720, 480, 360, 240, 144}

// rankedStream is a stream chosen for the result list with its display label.
type rankedStream struct {
	Stream model.Stream
	Label  string
}

// chooseFunc selects the best stream matching a filter.
type chooseFunc func(streams []model.Stream, filter model.StreamFilter) (model.Stream, bool)

// selectionInput is what every strategy sees.
type selectionInput struct {
	Streams []model.Stream // everything the extractor returned
	Working []model.Stream // video, has URL, not live; height descending
	Choose  chooseFunc
}

// selectionStrategy returns entries to append given what was already picked.
type selectionStrategy func(in selectionInput, picked []rankedStream) []rankedStream

var (
	// primaryStrategies all run, each appending to the list.
	primaryStrategies = []selectionStrategy{bestCombined, tieredResolutions}
	// fallbackStrategies run in order only while the list is empty.
	fallbackStrategies = []selectionStrategy{bestVideoOnly, highestCandidate}
)

// rankStreams applies the selection policy and returns the ordered picks.
func rankStreams(streams []model.Stream, choose chooseFunc) []rankedStream {
	in := selectionInput{
		Streams: streams,
		Working: workingCandidates(streams),
		Choose:  choose,
	}

	var picked []rankedStream
	for _, strategy := range primaryStrategies {
		picked = append(picked, strategy(in, picked)...)
	}
	for _, strategy := range fallbackStrategies {
		if len(picked) > 0 {
			break
		}
		picked = append(picked, strategy(in, picked)...)
	}
	return picked
}

// workingCandidates keeps downloadable video streams, tallest first.
func workingCandidates(streams []model.Stream) []model.Stream {
	working := make([]model.Stream, 0, len(streams))
	for _, s := range streams {
		if s.HasVideo && s.URL != "" && !s.IsLive {
			working = append(working, s)
		}
	}
	sort.SliceStable(working, func(i, j int) bool {
		return working[i].Height > working[j].Height
	})
	return working
}

func bestCombined(in selectionInput, _ []rankedStream) []rankedStream {
	s, ok := in.Choose(in.Streams, model.FilterVideoAndAudio)
	if !ok || s.URL == "" {
		return nil
	}
	return []rankedStream{{Stream: s, Label: displayLabel(s, "Best Quality")}}
}

func tieredResolutions(in selectionInput, picked []rankedStream) []rankedStream {
	seen := make(map[string]bool, len(picked))
	for _, p := range picked {
		seen[p.Label] = true
	}

	var added []rankedStream
	for _, height := range resolutionTiers {
		s, ok := findAtHeight(in.Working, height, seen, true)
		if !ok {
			s, ok = findAtHeight(in.Working, height, seen, false)
		}
		if !ok {
			continue
		}
		label := candidateLabel(s)
		seen[label] = true
		added = append(added, rankedStream{Stream: s, Label: label})
	}
	return added
}

func bestVideoOnly(in selectionInput, _ []rankedStream) []rankedStream {
	s, ok := in.Choose(in.Streams, model.FilterVideoOnly)
	if !ok || s.URL == "" {
		return nil
	}
	return []rankedStream{{Stream: s, Label: displayLabel(s, "High Quality")}}
}

func highestCandidate(in selectionInput, _ []rankedStream) []rankedStream {
	if len(in.Working) == 0 {
		return nil
	}
	s := in.Working[0]
	return []rankedStream{{Stream: s, Label: candidateLabel(s)}}
}

func findAtHeight(working []model.Stream, height int, seen map[string]bool, withAudio bool) (model.Stream, bool) {
	for _, s := range working {
		if s.Height == height && s.HasAudio == withAudio && !seen[candidateLabel(s)] {
			return s, true
		}
	}
	return model.Stream{}, false
}

// displayLabel prefers the library label, then the height, then fallback.
func displayLabel(s model.Stream, fallback string) string {
	if s.QualityLabel != "" {
		return s.QualityLabel
	}
	if s.Height > 0 {
		return fmt.Sprintf("%dp", s.Height)
	}
	return fallback
}

func candidateLabel(s model.Stream) string {
	if s.QualityLabel != "" {
		return s.QualityLabel
	}
	return fmt.Sprintf("%dp", s.Height)
}
