package memstore

import (
	"fmt"
	"sync"

	"vidseg/internal/domain"
)

// MemorySegmentStore is an in-memory SegmentStore used in tests and as a
// fake for the retrieval use cases. Segments are grouped per recording
// under an RWMutex, so writers to different recordings never block readers
// of another one longer than the map access itself.
type MemorySegmentStore struct {
	mu        sync.RWMutex
	dimension int
	segments  map[string][]domain.Segment
}

func NewMemorySegmentStore(dimension int) *MemorySegmentStore {
	return &MemorySegmentStore{
		dimension: dimension,
		segments:  make(map[string][]domain.Segment),
	}
}

func (s *MemorySegmentStore) Put(seg domain.Segment) error {
	if seg.ID == "" || seg.RecordingID == "" {
		return fmt.Errorf("%w: segment is missing id or recording id", domain.ErrStorage)
	}
	if len(seg.Embedding) != s.dimension {
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrDimensionMismatch, s.dimension, len(seg.Embedding))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments[seg.RecordingID] = append(s.segments[seg.RecordingID], seg)
	return nil
}

func (s *MemorySegmentStore) GetByRecording(recordingID string) ([]domain.Segment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	segments := make([]domain.Segment, len(s.segments[recordingID]))
	copy(segments, s.segments[recordingID])
	return segments, nil
}

func (s *MemorySegmentStore) DeleteRecording(recordingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.segments, recordingID)
	return nil
}

func (s *MemorySegmentStore) Stats() (domain.StoreStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := domain.StoreStats{Recordings: len(s.segments)}
	for _, segs := range s.segments {
		stats.TotalSegments += len(segs)
	}
	return stats, nil
}

func (s *MemorySegmentStore) Close() error {
	return nil
}
