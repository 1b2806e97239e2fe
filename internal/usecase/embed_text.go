package usecase

import (
	"fmt"

	"vidseg/internal/domain"
)

// EmbedTextFormat identifies the exact raw-segment to embedding-input
// concatenation below. Stored vectors are only comparable with queries
// embedded under the same format, so any change to EmbedText must come
// with a new format string, which forces a re-ingest of existing stores.
const EmbedTextFormat = "topic-transcript-timing/v1"

// EmbedText builds the text a segment is embedded from. Field order is
// part of the format: the same fields in a different order produce a
// different vector.
func EmbedText(raw domain.RawSegment) string {
	return fmt.Sprintf("topic: %s, transcript: %s, start_time: %s, duration: %s",
		raw.Topic, raw.Transcript, raw.StartTime, raw.Duration)
}
