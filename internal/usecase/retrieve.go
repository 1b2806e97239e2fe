package usecase

import (
	"errors"
	"fmt"

	"vidseg/internal/adapter/cache"
	"vidseg/internal/adapter/timecode"
	"vidseg/internal/domain"
	"vidseg/internal/port"
)

// RetrieveUseCase is the read facade over the segment store: semantic
// similarity search and point-in-time lookup, both scoped to one
// recording.
type RetrieveUseCase struct {
	store    port.SegmentStore
	embedder port.Embedder
	ranker   port.Ranker
	resolver port.TimeResolver
	cache    *cache.QueryCache
}

// NewRetrieveUseCase creates the retrieval facade. cache may be nil to
// disable result memoization.
func NewRetrieveUseCase(
	store port.SegmentStore,
	embedder port.Embedder,
	ranker port.Ranker,
	resolver port.TimeResolver,
	cache *cache.QueryCache,
) *RetrieveUseCase {
	return &RetrieveUseCase{
		store:    store,
		embedder: embedder,
		ranker:   ranker,
		resolver: resolver,
		cache:    cache,
	}
}

// SearchByText embeds queryText and returns the recording's topK most
// similar segments, best first. A recording with no segments yields an
// empty result, not an error.
func (u *RetrieveUseCase) SearchByText(recordingID, queryText string, topK int) ([]domain.ScoredSegment, error) {
	if u.cache != nil {
		if results, ok := u.cache.Get(recordingID, queryText, topK); ok {
			return results, nil
		}
	}

	embeddings, err := u.embedder.Embed([]string{queryText})
	if err != nil {
		if errors.Is(err, domain.ErrEmbeddingUnavailable) || errors.Is(err, domain.ErrDimensionMismatch) {
			return nil, fmt.Errorf("embed query: %w", err)
		}
		return nil, fmt.Errorf("%w: embed query: %v", domain.ErrEmbeddingUnavailable, err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("%w: embedder returned no vector", domain.ErrEmbeddingUnavailable)
	}

	candidates, err := u.store.GetByRecording(recordingID)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	results, err := u.ranker.Rank(embeddings[0], candidates, topK)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		u.cache.Put(recordingID, queryText, topK, results)
	}

	return results, nil
}

// ResolveAtTime parses a mm.ss timestamp and returns the recording's
// segment covering that instant. The boolean is false when no segment's
// interval contains it.
func (u *RetrieveUseCase) ResolveAtTime(recordingID, timestampText string) (domain.Segment, bool, error) {
	seconds, err := timecode.Parse(timestampText)
	if err != nil {
		return domain.Segment{}, false, err
	}

	candidates, err := u.store.GetByRecording(recordingID)
	if err != nil {
		return domain.Segment{}, false, fmt.Errorf("fetch candidates: %w", err)
	}

	seg, ok := u.resolver.ResolveAt(candidates, seconds)
	return seg, ok, nil
}
