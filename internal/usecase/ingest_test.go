package usecase

import (
	"errors"
	"fmt"
	"testing"

	"vidseg/internal/adapter/memstore"
	"vidseg/internal/domain"
)

// stubEmbedder returns canned vectors per input text and can be told to
// fail for specific inputs.
type stubEmbedder struct {
	dimension int
	vectors   map[string][]float32
	failOn    map[string]bool
	calls     int
}

func newStubEmbedder(dimension int) *stubEmbedder {
	return &stubEmbedder{
		dimension: dimension,
		vectors:   make(map[string][]float32),
		failOn:    make(map[string]bool),
	}
}

func (e *stubEmbedder) Embed(texts []string) ([][]float32, error) {
	e.calls++
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		if e.failOn[text] {
			return nil, fmt.Errorf("provider rejected input")
		}
		if v, ok := e.vectors[text]; ok {
			out = append(out, v)
			continue
		}
		v := make([]float32, e.dimension)
		for i := range v {
			v[i] = 0.5
		}
		out = append(out, v)
	}
	return out, nil
}

func (e *stubEmbedder) Dimension() int    { return e.dimension }
func (e *stubEmbedder) ModelName() string { return "stub" }

func rawSeg(topic string) domain.RawSegment {
	return domain.RawSegment{
		Topic:      topic,
		Transcript: "transcript of " + topic,
		StartTime:  "0.00",
		Duration:   "0.30",
	}
}

func TestEmbedText_Format(t *testing.T) {
	raw := domain.RawSegment{
		Topic:      "Refraction",
		Transcript: "Light bends.",
		StartTime:  "0.06",
		Duration:   "0.20",
	}

	want := "topic: Refraction, transcript: Light bends., start_time: 0.06, duration: 0.20"
	if got := EmbedText(raw); got != want {
		t.Errorf("EmbedText = %q, want %q", got, want)
	}
}

func TestIngest_StoresAllSegments(t *testing.T) {
	st := memstore.NewMemorySegmentStore(4)
	uc := NewIngestUseCase(st, newStubEmbedder(4), nil)

	raws := []domain.RawSegment{rawSeg("a"), rawSeg("b"), rawSeg("c")}
	outcomes := uc.Ingest("vid1", raws, nil)

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	seen := make(map[string]bool)
	for _, o := range outcomes {
		if o.Err != nil {
			t.Errorf("unexpected failure for %q: %v", o.Raw.Topic, o.Err)
			continue
		}
		if o.Segment.ID == "" {
			t.Error("stored segment has no ID")
		}
		if seen[o.Segment.ID] {
			t.Errorf("duplicate segment ID %s", o.Segment.ID)
		}
		seen[o.Segment.ID] = true
		if o.Segment.RecordingID != "vid1" {
			t.Errorf("wrong recording ID: %s", o.Segment.RecordingID)
		}
	}

	stored, err := st.GetByRecording("vid1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored) != 3 {
		t.Errorf("expected 3 stored segments, got %d", len(stored))
	}
}

func TestIngest_PartialFailure(t *testing.T) {
	st := memstore.NewMemorySegmentStore(4)
	embedder := newStubEmbedder(4)

	raws := []domain.RawSegment{rawSeg("a"), rawSeg("b"), rawSeg("c")}
	embedder.failOn[EmbedText(raws[1])] = true

	uc := NewIngestUseCase(st, embedder, nil)
	outcomes := uc.Ingest("vid1", raws, nil)

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Err != nil || outcomes[2].Err != nil {
		t.Error("expected segments a and c to succeed")
	}
	if outcomes[1].Err == nil {
		t.Error("expected segment b to fail")
	}

	stored, _ := st.GetByRecording("vid1")
	if len(stored) != 2 {
		t.Errorf("expected 2 stored segments after partial failure, got %d", len(stored))
	}
}

func TestIngest_StoreRejection(t *testing.T) {
	// Store expects dimension 4, embedder produces 3: every put fails,
	// each failure lands in its own outcome.
	st := memstore.NewMemorySegmentStore(4)
	uc := NewIngestUseCase(st, newStubEmbedder(3), nil)

	outcomes := uc.Ingest("vid1", []domain.RawSegment{rawSeg("a")}, nil)

	if len(outcomes) != 1 || outcomes[0].Err == nil {
		t.Fatal("expected a failed outcome")
	}
	if !errors.Is(outcomes[0].Err, domain.ErrDimensionMismatch) {
		t.Errorf("error %v is not ErrDimensionMismatch", outcomes[0].Err)
	}
}

func TestIngest_ProgressCallback(t *testing.T) {
	st := memstore.NewMemorySegmentStore(4)
	uc := NewIngestUseCase(st, newStubEmbedder(4), nil)

	var reported []int
	uc.Ingest("vid1", []domain.RawSegment{rawSeg("a"), rawSeg("b")}, func(processed, total int) {
		if total != 2 {
			t.Errorf("expected total 2, got %d", total)
		}
		reported = append(reported, processed)
	})

	if len(reported) != 2 || reported[0] != 1 || reported[1] != 2 {
		t.Errorf("unexpected progress reports: %v", reported)
	}
}
