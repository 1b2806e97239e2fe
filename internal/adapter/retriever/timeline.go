package retriever

import (
	"sort"

	"vidseg/internal/adapter/timecode"
	"vidseg/internal/domain"
)

// TimelineResolver maps a playback instant to the segment whose interval
// contains it.
type TimelineResolver struct{}

func NewTimelineResolver() *TimelineResolver {
	return &TimelineResolver{}
}

type timedSegment struct {
	segment domain.Segment
	start   float64
	end     float64
}

// ResolveAt returns the first segment, in ascending start order, whose
// [start, start+duration] interval contains seconds. Segments with absent
// or unparsable timing are skipped. The second return is false when no
// interval matches; that is a normal outcome, not an error.
func (r *TimelineResolver) ResolveAt(candidates []domain.Segment, seconds float64) (domain.Segment, bool) {
	if seconds < 0 {
		return domain.Segment{}, false
	}

	timed := make([]timedSegment, 0, len(candidates))
	for _, c := range candidates {
		if c.StartTime == "" || c.Duration == "" {
			continue
		}
		start, err := timecode.Parse(c.StartTime)
		if err != nil {
			continue
		}
		duration, err := timecode.Parse(c.Duration)
		if err != nil {
			continue
		}
		timed = append(timed, timedSegment{segment: c, start: start, end: start + duration})
	}

	sort.Slice(timed, func(i, j int) bool {
		return timed[i].start < timed[j].start
	})

	for _, t := range timed {
		if t.start <= seconds && seconds <= t.end {
			return t.segment, true
		}
	}
	return domain.Segment{}, false
}
