package port

import "vidseg/internal/domain"

// SegmentStore is the durable keyed store for transcript segments.
// Implementations must tolerate concurrent writers across different
// recordings and must give read-your-writes within one process.
type SegmentStore interface {
	// Put inserts a segment. Fails when the embedding length disagrees
	// with the store's configured dimension.
	Put(seg domain.Segment) error

	// GetByRecording returns every segment of a recording, in no
	// particular order. An unknown recording yields an empty slice,
	// not an error.
	GetByRecording(recordingID string) ([]domain.Segment, error)

	// DeleteRecording removes all segments of a recording.
	DeleteRecording(recordingID string) error

	// Stats returns recording and segment counts.
	Stats() (domain.StoreStats, error)

	Close() error
}
