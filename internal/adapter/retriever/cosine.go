package retriever

import (
	"fmt"
	"math"
	"sort"

	"vidseg/internal/domain"
)

// CosineRanker orders candidate segments by cosine similarity to a query
// vector. Brute force, O(n·d) per query; candidate sets are bounded to a
// single recording's segments, so no index is needed. A future ANN-backed
// ranker can replace this behind the same Rank signature.
type CosineRanker struct{}

func NewCosineRanker() *CosineRanker {
	return &CosineRanker{}
}

// Rank scores every candidate against query and returns the topK best,
// sorted by descending score with ties broken by ascending segment ID.
// topK <= 0 yields an empty result; topK beyond the candidate count
// returns all candidates.
func (r *CosineRanker) Rank(query []float32, candidates []domain.Segment, topK int) ([]domain.ScoredSegment, error) {
	for _, c := range candidates {
		if len(c.Embedding) != len(query) {
			return nil, fmt.Errorf("%w: query has %d, segment %s has %d",
				domain.ErrDimensionMismatch, len(query), c.ID, len(c.Embedding))
		}
	}

	scored := make([]domain.ScoredSegment, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, domain.ScoredSegment{
			Segment: c,
			Score:   cosineSimilarity(query, c.Embedding),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Segment.ID < scored[j].Segment.ID
	})

	if topK < 0 {
		topK = 0
	}
	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK], nil
}

// cosineSimilarity calculates the cosine similarity between two vectors.
// Defined as 0 when either vector has zero magnitude.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
