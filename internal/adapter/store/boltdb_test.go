package store

import (
	"errors"
	"path/filepath"
	"testing"

	"vidseg/internal/domain"
)

func newTestStore(t *testing.T, dimension int) *BoltSegmentStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "segments.db")
	st, err := NewBoltSegmentStore(path, dimension, "test-format/v1")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestPutGetRoundTrip(t *testing.T) {
	st := newTestStore(t, 3)

	seg := domain.Segment{
		ID:          "seg-1",
		RecordingID: "vid1",
		Topic:       "Refractive index",
		Transcript:  "Light slows down in denser media.",
		StartTime:   "0.06",
		Duration:    "0.20",
		Embedding:   []float32{0.1, -0.2, 0.3},
	}
	if err := st.Put(seg); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := st.GetByRecording("vid1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(got))
	}

	g := got[0]
	if g.ID != seg.ID || g.RecordingID != seg.RecordingID || g.Topic != seg.Topic ||
		g.Transcript != seg.Transcript || g.StartTime != seg.StartTime || g.Duration != seg.Duration {
		t.Errorf("round-trip mismatch: got %+v", g)
	}
	if len(g.Embedding) != len(seg.Embedding) {
		t.Fatalf("embedding length mismatch: %d vs %d", len(g.Embedding), len(seg.Embedding))
	}
	for i := range g.Embedding {
		if g.Embedding[i] != seg.Embedding[i] {
			t.Errorf("embedding[%d] = %v, want %v", i, g.Embedding[i], seg.Embedding[i])
		}
	}
}

func TestGetUnknownRecording(t *testing.T) {
	st := newTestStore(t, 3)

	got, err := st.GetByRecording("nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty slice for unknown recording, got %d segments", len(got))
	}
}

func TestPutDimensionMismatch(t *testing.T) {
	st := newTestStore(t, 3)

	seg := domain.Segment{
		ID:          "seg-1",
		RecordingID: "vid1",
		Embedding:   []float32{1, 2}, // wrong length
	}
	err := st.Put(seg)
	if err == nil {
		t.Fatal("expected error for wrong embedding length")
	}
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("error %v is not ErrDimensionMismatch", err)
	}
}

func TestPutMissingIDs(t *testing.T) {
	st := newTestStore(t, 2)

	err := st.Put(domain.Segment{RecordingID: "vid1", Embedding: []float32{1, 2}})
	if !errors.Is(err, domain.ErrStorage) {
		t.Errorf("missing id: error %v is not ErrStorage", err)
	}

	err = st.Put(domain.Segment{ID: "seg-1", Embedding: []float32{1, 2}})
	if !errors.Is(err, domain.ErrStorage) {
		t.Errorf("missing recording id: error %v is not ErrStorage", err)
	}
}

func TestRecordingIsolation(t *testing.T) {
	st := newTestStore(t, 2)

	for i, rec := range []string{"vid1", "vid1", "vid2"} {
		seg := domain.Segment{
			ID:          string(rune('a' + i)),
			RecordingID: rec,
			Embedding:   []float32{1, 2},
		}
		if err := st.Put(seg); err != nil {
			t.Fatalf("put failed: %v", err)
		}
	}

	vid1, _ := st.GetByRecording("vid1")
	vid2, _ := st.GetByRecording("vid2")
	if len(vid1) != 2 {
		t.Errorf("expected 2 segments for vid1, got %d", len(vid1))
	}
	if len(vid2) != 1 {
		t.Errorf("expected 1 segment for vid2, got %d", len(vid2))
	}
}

func TestDeleteRecording(t *testing.T) {
	st := newTestStore(t, 2)

	seg := domain.Segment{ID: "seg-1", RecordingID: "vid1", Embedding: []float32{1, 2}}
	if err := st.Put(seg); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	if err := st.DeleteRecording("vid1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	got, err := st.GetByRecording("vid1")
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no segments after delete, got %d", len(got))
	}

	// Deleting an unknown recording is a no-op.
	if err := st.DeleteRecording("unknown"); err != nil {
		t.Errorf("delete of unknown recording failed: %v", err)
	}
}

func TestStats(t *testing.T) {
	st := newTestStore(t, 2)

	segs := []domain.Segment{
		{ID: "a", RecordingID: "vid1", Embedding: []float32{1, 2}},
		{ID: "b", RecordingID: "vid1", Embedding: []float32{3, 4}},
		{ID: "c", RecordingID: "vid2", Embedding: []float32{5, 6}},
	}
	for _, seg := range segs {
		if err := st.Put(seg); err != nil {
			t.Fatalf("put failed: %v", err)
		}
	}

	stats, err := st.Stats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Recordings != 2 {
		t.Errorf("expected 2 recordings, got %d", stats.Recordings)
	}
	if stats.TotalSegments != 3 {
		t.Errorf("expected 3 segments, got %d", stats.TotalSegments)
	}
}

func TestReopenRejectsDimensionChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segments.db")

	st, err := NewBoltSegmentStore(path, 3, "test-format/v1")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	st.Close()

	_, err = NewBoltSegmentStore(path, 4, "test-format/v1")
	if err == nil {
		t.Fatal("expected error when reopening with a different dimension")
	}
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("error %v is not ErrDimensionMismatch", err)
	}
}

func TestReopenRejectsEmbedFormatChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segments.db")

	st, err := NewBoltSegmentStore(path, 3, "test-format/v1")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	st.Close()

	if _, err = NewBoltSegmentStore(path, 3, "test-format/v2"); err == nil {
		t.Fatal("expected error when reopening with a different embed format")
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segments.db")

	st, err := NewBoltSegmentStore(path, 2, "test-format/v1")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	seg := domain.Segment{ID: "seg-1", RecordingID: "vid1", Embedding: []float32{1, 2}}
	if err := st.Put(seg); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	st.Close()

	st, err = NewBoltSegmentStore(path, 2, "test-format/v1")
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer st.Close()

	got, err := st.GetByRecording("vid1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "seg-1" {
		t.Errorf("segment did not survive reopen: %+v", got)
	}
}
