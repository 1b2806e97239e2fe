package port

import "vidseg/internal/domain"

// The upstream production pipeline (audio acquisition, speech-to-text,
// LLM topic segmentation) lives outside this module. These interfaces
// describe the shape this core consumes it through; implementations are
// supplied by the host system.

// Transcriber converts an audio source to timestamped transcript text.
type Transcriber interface {
	// Transcribe returns the full transcript of the audio at the given
	// location, with sentence-level mm.ss timestamps embedded.
	Transcribe(audioPath string) (string, error)
}

// TopicSegmenter partitions a timestamped transcript into topic segments.
type TopicSegmenter interface {
	Segment(transcript string) ([]domain.RawSegment, error)
}
