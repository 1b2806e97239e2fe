package port

import "vidseg/internal/domain"

// Ranker orders candidate segments by relevance to a query vector.
// The brute-force cosine ranker implements this; an indexed ANN ranker
// can replace it behind the same signature.
type Ranker interface {
	Rank(query []float32, candidates []domain.Segment, topK int) ([]domain.ScoredSegment, error)
}

// TimeResolver maps a playback instant to its enclosing segment.
// The boolean is false when no segment's interval contains the instant.
type TimeResolver interface {
	ResolveAt(candidates []domain.Segment, seconds float64) (domain.Segment, bool)
}
