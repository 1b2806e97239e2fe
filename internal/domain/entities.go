package domain

// Segment is the atomic retrievable unit: a bounded span of a recording's
// transcript with a topic label, optional mm.ss timing, and an embedding
// vector. Segments are immutable after creation.
type Segment struct {
	ID          string    `json:"id"`
	RecordingID string    `json:"recording_id"`
	Topic       string    `json:"topic"`
	Transcript  string    `json:"transcript"`
	StartTime   string    `json:"start_time,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Embedding   []float32 `json:"embedding"`
}

// RawSegment is one record of upstream segmentation output, before an
// embedding has been computed or an ID assigned.
type RawSegment struct {
	Topic      string `json:"topic"`
	Transcript string `json:"transcript"`
	StartTime  string `json:"start_time,omitempty"`
	Duration   string `json:"duration,omitempty"`
}

// ScoredSegment pairs a segment with its similarity score for a query.
type ScoredSegment struct {
	Segment Segment
	Score   float64
}

// IngestOutcome reports the result of ingesting a single raw segment.
// Exactly one of Segment/Err is meaningful.
type IngestOutcome struct {
	Raw     RawSegment
	Segment Segment
	Err     error
}

// StoreStats summarizes the contents of a segment store.
type StoreStats struct {
	Recordings    int `json:"recordings"`
	TotalSegments int `json:"total_segments"`
}
