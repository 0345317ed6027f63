package meeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetsync/internal/granola"
)

func snapWith(docs map[string]granola.Document, transcripts map[string][]granola.Segment) *granola.Snapshot {
	return &granola.Snapshot{Documents: docs, Transcripts: transcripts}
}

func seg(text, start, end string) granola.Segment {
	return granola.Segment{Source: "system", Text: text, StartTimestamp: start, EndTimestamp: end}
}

func TestDetectContinuationsMergesUntitledTail(t *testing.T) {
	snap := snapWith(
		map[string]granola.Document{
			"doc-a": {ID: "doc-a", Title: "Planning"},
			"doc-b": {ID: "doc-b", Title: ""},
		},
		map[string][]granola.Segment{
			"doc-a": {seg("part one", "2025-03-10T09:00:00Z", "2025-03-10T09:30:00Z")},
			// Starts 60s after doc-a ends.
			"doc-b": {seg("part two", "2025-03-10T09:31:00Z", "2025-03-10T09:45:00Z")},
		},
	)

	splits := DetectContinuations(snap)
	require.Len(t, splits, 1)
	assert.Equal(t, []string{"doc-b"}, splits["doc-a"])
}

func TestDetectContinuationsRespectsGapLimit(t *testing.T) {
	snap := snapWith(
		map[string]granola.Document{
			"doc-a": {ID: "doc-a", Title: "Planning"},
			"doc-b": {ID: "doc-b", Title: ""},
		},
		map[string][]granola.Segment{
			"doc-a": {seg("part one", "2025-03-10T09:00:00Z", "2025-03-10T09:30:00Z")},
			// Five minutes later: a separate meeting, not a continuation.
			"doc-b": {seg("other", "2025-03-10T09:35:00Z", "2025-03-10T09:45:00Z")},
		},
	)

	assert.Empty(t, DetectContinuations(snap))
}

func TestDetectContinuationsGapBoundary(t *testing.T) {
	snap := snapWith(
		map[string]granola.Document{
			"doc-a": {ID: "doc-a", Title: "Planning"},
			"doc-b": {ID: "doc-b", Title: ""},
		},
		map[string][]granola.Segment{
			"doc-a": {seg("part one", "2025-03-10T09:00:00Z", "2025-03-10T09:30:00Z")},
			// Exactly 120s after doc-a ends: still a continuation.
			"doc-b": {seg("part two", "2025-03-10T09:32:00Z", "2025-03-10T09:40:00Z")},
		},
	)

	splits := DetectContinuations(snap)
	assert.Equal(t, []string{"doc-b"}, splits["doc-a"])
}

func TestDetectContinuationsTitledNeverMerged(t *testing.T) {
	snap := snapWith(
		map[string]granola.Document{
			"doc-a": {ID: "doc-a", Title: "Planning"},
			"doc-b": {ID: "doc-b", Title: "Retro"},
		},
		map[string][]granola.Segment{
			"doc-a": {seg("one", "2025-03-10T09:00:00Z", "2025-03-10T09:30:00Z")},
			"doc-b": {seg("two", "2025-03-10T09:31:00Z", "2025-03-10T09:45:00Z")},
		},
	)

	assert.Empty(t, DetectContinuations(snap))
}

func TestDetectContinuationsChainAttachesToHead(t *testing.T) {
	snap := snapWith(
		map[string]granola.Document{
			"doc-a": {ID: "doc-a", Title: "Planning"},
			"doc-b": {ID: "doc-b", Title: ""},
			"doc-c": {ID: "doc-c", Title: ""},
		},
		map[string][]granola.Segment{
			"doc-a": {seg("one", "2025-03-10T09:00:00Z", "2025-03-10T09:30:00Z")},
			"doc-b": {seg("two", "2025-03-10T09:31:00Z", "2025-03-10T09:45:00Z")},
			// Continues doc-b, which itself continues doc-a; the whole
			// chain lands under doc-a.
			"doc-c": {seg("three", "2025-03-10T09:46:00Z", "2025-03-10T09:50:00Z")},
		},
	)

	splits := DetectContinuations(snap)
	require.Len(t, splits, 1)
	assert.Equal(t, []string{"doc-b", "doc-c"}, splits["doc-a"])
}

func TestDetectContinuationsSkipsUnresolvable(t *testing.T) {
	snap := snapWith(
		map[string]granola.Document{
			"doc-a": {ID: "doc-a", Title: "Planning"},
			"doc-b": {ID: "doc-b", Title: ""},
			"doc-c": {ID: "doc-c", Title: ""},
		},
		map[string][]granola.Segment{
			"doc-a": {seg("one", "2025-03-10T09:00:00Z", "2025-03-10T09:30:00Z")},
			// Unparsable start: never a continuation candidate.
			"doc-b": {seg("two", "garbage", "2025-03-10T09:45:00Z")},
			// No transcript at all.
			"doc-c": {},
		},
	)

	assert.Empty(t, DetectContinuations(snap))
}

func TestDetectContinuationsOverlapScansEarlier(t *testing.T) {
	snap := snapWith(
		map[string]granola.Document{
			"doc-a": {ID: "doc-a", Title: "Planning"},
			"doc-b": {ID: "doc-b", Title: "Running Late"},
			"doc-c": {ID: "doc-c", Title: ""},
		},
		map[string][]granola.Segment{
			"doc-a": {seg("one", "2025-03-10T09:00:00Z", "2025-03-10T09:30:00Z")},
			// Still running when doc-c starts; overlap is not a match,
			// but the scan keeps looking further back.
			"doc-b": {seg("late", "2025-03-10T09:10:00Z", "2025-03-10T10:00:00Z")},
			"doc-c": {seg("tail", "2025-03-10T09:31:00Z", "2025-03-10T09:40:00Z")},
		},
	)

	splits := DetectContinuations(snap)
	assert.Equal(t, []string{"doc-c"}, splits["doc-a"])
}

func TestContinuationSet(t *testing.T) {
	set := ContinuationSet(map[string][]string{
		"doc-a": {"doc-b", "doc-c"},
		"doc-x": {"doc-y"},
	})

	assert.Len(t, set, 3)
	assert.Contains(t, set, "doc-b")
	assert.Contains(t, set, "doc-y")
	assert.NotContains(t, set, "doc-a")
}
