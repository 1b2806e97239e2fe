package usecase

import (
	"fmt"

	"github.com/google/uuid"
	"vidseg/internal/adapter/cache"
	"vidseg/internal/domain"
	"vidseg/internal/port"
)

// IngestUseCase turns upstream segmentation output into stored, embedded
// segments.
type IngestUseCase struct {
	store    port.SegmentStore
	embedder port.Embedder
	cache    *cache.QueryCache
}

// NewIngestUseCase creates an ingest use case. cache may be nil.
func NewIngestUseCase(store port.SegmentStore, embedder port.Embedder, cache *cache.QueryCache) *IngestUseCase {
	return &IngestUseCase{
		store:    store,
		embedder: embedder,
		cache:    cache,
	}
}

// ProgressCallback reports batch progress during ingestion.
type ProgressCallback func(processed, total int)

// Ingest embeds and stores each raw segment under recordingID, assigning
// a fresh unique ID per segment. A failure on one segment is recorded in
// its outcome and does not abort the rest of the batch. progress may be
// nil.
func (u *IngestUseCase) Ingest(recordingID string, raws []domain.RawSegment, progress ProgressCallback) []domain.IngestOutcome {
	outcomes := make([]domain.IngestOutcome, 0, len(raws))
	stored := 0

	for i, raw := range raws {
		seg, err := u.ingestOne(recordingID, raw)
		if err != nil {
			outcomes = append(outcomes, domain.IngestOutcome{Raw: raw, Err: err})
		} else {
			outcomes = append(outcomes, domain.IngestOutcome{Raw: raw, Segment: seg})
			stored++
		}
		if progress != nil {
			progress(i+1, len(raws))
		}
	}

	if stored > 0 && u.cache != nil {
		u.cache.InvalidateRecording(recordingID)
	}

	return outcomes
}

func (u *IngestUseCase) ingestOne(recordingID string, raw domain.RawSegment) (domain.Segment, error) {
	embeddings, err := u.embedder.Embed([]string{EmbedText(raw)})
	if err != nil {
		return domain.Segment{}, fmt.Errorf("embed segment: %w", err)
	}
	if len(embeddings) == 0 {
		return domain.Segment{}, fmt.Errorf("%w: embedder returned no vector", domain.ErrEmbeddingUnavailable)
	}

	seg := domain.Segment{
		ID:          uuid.NewString(),
		RecordingID: recordingID,
		Topic:       raw.Topic,
		Transcript:  raw.Transcript,
		StartTime:   raw.StartTime,
		Duration:    raw.Duration,
		Embedding:   embeddings[0],
	}

	if err := u.store.Put(seg); err != nil {
		return domain.Segment{}, fmt.Errorf("store segment: %w", err)
	}
	return seg, nil
}
