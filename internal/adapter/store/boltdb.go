package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"
	"vidseg/internal/domain"
)

var (
	bucketSegments = []byte("segments")
	bucketMeta     = []byte("meta")
	keyStoreInfo   = []byte("store_info")
)

// storeInfo records the parameters the store was built with. Vectors
// embedded under a different dimension or embed-text format are not
// comparable, so a mismatch on open is fatal rather than silently mixed.
type storeInfo struct {
	SchemaVersion int    `json:"schema_version"`
	Dimension     int    `json:"dimension"`
	EmbedFormat   string `json:"embed_format"`
}

const schemaVersion = 1

// BoltSegmentStore is a bbolt-backed SegmentStore. Segments live in one
// nested bucket per recording, keyed by segment ID, so reads scoped to a
// recording never touch other recordings.
type BoltSegmentStore struct {
	db        *bbolt.DB
	dimension int
}

type storedSegment struct {
	Topic      string    `json:"topic"`
	Transcript string    `json:"transcript"`
	StartTime  string    `json:"start_time,omitempty"`
	Duration   string    `json:"duration,omitempty"`
	Embedding  []float32 `json:"embedding"`
}

// NewBoltSegmentStore opens (or creates) the store at path. dimension is
// the embedding dimension every stored vector must have; embedFormat
// identifies the embed-text concatenation the vectors were produced from.
func NewBoltSegmentStore(path string, dimension int, embedFormat string) (*BoltSegmentStore, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("invalid embedding dimension: %d", dimension)
	}

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open bolt db: %v", domain.ErrStorage, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSegments); err != nil {
			return err
		}
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}

		want := storeInfo{SchemaVersion: schemaVersion, Dimension: dimension, EmbedFormat: embedFormat}
		if data := meta.Get(keyStoreInfo); data != nil {
			var have storeInfo
			if err := json.Unmarshal(data, &have); err == nil {
				if have.Dimension != want.Dimension {
					return fmt.Errorf("%w: store built with dimension %d, configured %d; delete the store and re-ingest",
						domain.ErrDimensionMismatch, have.Dimension, want.Dimension)
				}
				if have.EmbedFormat != "" && have.EmbedFormat != want.EmbedFormat {
					return fmt.Errorf("store built with embed format %q, configured %q; delete the store and re-ingest",
						have.EmbedFormat, want.EmbedFormat)
				}
				return nil
			}
		}

		data, err := json.Marshal(want)
		if err != nil {
			return err
		}
		return meta.Put(keyStoreInfo, data)
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltSegmentStore{db: db, dimension: dimension}, nil
}

// Put inserts a segment into its recording's bucket.
func (s *BoltSegmentStore) Put(seg domain.Segment) error {
	if seg.ID == "" || seg.RecordingID == "" {
		return fmt.Errorf("%w: segment is missing id or recording id", domain.ErrStorage)
	}
	if len(seg.Embedding) != s.dimension {
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrDimensionMismatch, s.dimension, len(seg.Embedding))
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		rec, err := tx.Bucket(bucketSegments).CreateBucketIfNotExists([]byte(seg.RecordingID))
		if err != nil {
			return err
		}

		data, err := json.Marshal(storedSegment{
			Topic:      seg.Topic,
			Transcript: seg.Transcript,
			StartTime:  seg.StartTime,
			Duration:   seg.Duration,
			Embedding:  seg.Embedding,
		})
		if err != nil {
			return err
		}
		return rec.Put([]byte(seg.ID), data)
	})
	if err != nil {
		return fmt.Errorf("%w: put segment %s: %v", domain.ErrStorage, seg.ID, err)
	}
	return nil
}

// GetByRecording returns every segment of a recording. Unknown recordings
// yield an empty slice.
func (s *BoltSegmentStore) GetByRecording(recordingID string) ([]domain.Segment, error) {
	segments := []domain.Segment{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		rec := tx.Bucket(bucketSegments).Bucket([]byte(recordingID))
		if rec == nil {
			return nil
		}
		return rec.ForEach(func(k, v []byte) error {
			var stored storedSegment
			if err := json.Unmarshal(v, &stored); err != nil {
				return nil // skip corrupted entries
			}
			segments = append(segments, domain.Segment{
				ID:          string(k),
				RecordingID: recordingID,
				Topic:       stored.Topic,
				Transcript:  stored.Transcript,
				StartTime:   stored.StartTime,
				Duration:    stored.Duration,
				Embedding:   stored.Embedding,
			})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: read recording %s: %v", domain.ErrStorage, recordingID, err)
	}
	return segments, nil
}

// DeleteRecording removes a recording and all its segments.
func (s *BoltSegmentStore) DeleteRecording(recordingID string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		err := tx.Bucket(bucketSegments).DeleteBucket([]byte(recordingID))
		if errors.Is(err, bbolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: delete recording %s: %v", domain.ErrStorage, recordingID, err)
	}
	return nil
}

// Stats counts recordings and segments.
func (s *BoltSegmentStore) Stats() (domain.StoreStats, error) {
	var stats domain.StoreStats
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSegments).ForEachBucket(func(k []byte) error {
			stats.Recordings++
			rec := tx.Bucket(bucketSegments).Bucket(k)
			stats.TotalSegments += rec.Stats().KeyN
			return nil
		})
	})
	if err != nil {
		return domain.StoreStats{}, fmt.Errorf("%w: stats: %v", domain.ErrStorage, err)
	}
	return stats, nil
}

// Dimension returns the embedding dimension the store was opened with.
func (s *BoltSegmentStore) Dimension() int {
	return s.dimension
}

func (s *BoltSegmentStore) Close() error {
	return s.db.Close()
}
