package meeting

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetsync/internal/granola"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "weekly-planning-meeting", Slugify("Weekly Planning Meeting"))
	assert.Equal(t, "q3-review-budget", Slugify("Q3 Review: Budget!"))
	assert.Equal(t, "one-two", Slugify("  one -- two  "))
	assert.Equal(t, "snake-case", Slugify("snake_case"))
	assert.Equal(t, "", Slugify("!!!"))

	// Accented titles keep their letters.
	assert.Equal(t, "réunion-équipe", Slugify("Réunion Équipe"))

	long := Slugify(strings.Repeat("meeting ", 20))
	assert.LessOrEqual(t, len([]rune(long)), 50)

	longAccented := Slugify(strings.Repeat("é", 60))
	assert.Len(t, []rune(longAccented), 50)
}

func TestMeetingDateFallbacks(t *testing.T) {
	m := &Meeting{CreatedAt: "2025-03-10T09:00:00Z"}
	assert.Equal(t, "2025-03-10", m.Date())

	m = &Meeting{
		Start:         mustParse(t, "2025-03-11T09:00:00Z"),
		StartResolved: true,
		CreatedAt:     "2025-03-10T09:00:00Z",
	}
	assert.Equal(t, "2025-03-11", m.Date())
}

func TestMeetingIdentity(t *testing.T) {
	m := &Meeting{
		Title:         "Weekly Planning",
		Start:         mustParse(t, "2025-03-10T09:00:00Z"),
		StartResolved: true,
	}
	assert.Equal(t, "2025-03-10-weekly-planning", m.Identity())
}

func TestAssembleSingleDocument(t *testing.T) {
	snap := snapWith(
		map[string]granola.Document{
			"doc-a": {ID: "doc-a", Title: "Planning", CreatedAt: "2025-03-10T08:59:00Z"},
		},
		map[string][]granola.Segment{
			"doc-a": {
				{Source: "microphone", Text: "hello all", StartTimestamp: "2025-03-10T09:00:00Z", EndTimestamp: "2025-03-10T09:00:05Z"},
				{Source: "system", Text: "hi there", StartTimestamp: "2025-03-10T09:00:05Z", EndTimestamp: "2025-03-10T09:30:00Z"},
			},
		},
	)

	m := Assemble(snap, "doc-a", nil, "me@x.com")
	assert.Equal(t, "Planning", m.Title)
	assert.True(t, m.HasTranscript)
	assert.False(t, m.WasSplit)
	assert.Equal(t, 2, m.Segments)
	assert.Equal(t, 30.0, m.DurationMinutes)
	assert.Equal(t, "[YOU]: hello all\n[CALL]: hi there", m.TranscriptText)
}

func TestAssembleMergesContinuationChronologically(t *testing.T) {
	snap := snapWith(
		map[string]granola.Document{
			"doc-a": {ID: "doc-a", Title: "Planning"},
			"doc-b": {ID: "doc-b", Title: ""},
		},
		map[string][]granola.Segment{
			"doc-a": {seg("part one", "2025-03-10T09:00:00Z", "2025-03-10T09:30:00Z")},
			"doc-b": {seg("part two", "2025-03-10T09:31:00Z", "2025-03-10T09:45:00Z")},
		},
	)

	m := Assemble(snap, "doc-a", []string{"doc-b"}, "me@x.com")
	assert.True(t, m.WasSplit)
	assert.Equal(t, "[CALL]: part one\n[CALL]: part two", m.TranscriptText)
	// Span covers the primary's start through the continuation's end.
	assert.Equal(t, 45.0, m.DurationMinutes)
}

func TestAssembleDurationRounding(t *testing.T) {
	snap := snapWith(
		map[string]granola.Document{"doc-a": {ID: "doc-a", Title: "Quick Chat"}},
		map[string][]granola.Segment{
			"doc-a": {seg("hi", "2025-03-10T09:00:00Z", "2025-03-10T09:12:20Z")},
		},
	)

	m := Assemble(snap, "doc-a", nil, "me@x.com")
	assert.Equal(t, 12.3, m.DurationMinutes)
}

func TestAssembleUntitledPlaceholder(t *testing.T) {
	snap := snapWith(
		map[string]granola.Document{"doc-a": {ID: "doc-a", Title: "   "}},
		map[string][]granola.Segment{
			"doc-a": {seg("hi", "2025-03-10T09:00:00Z", "2025-03-10T09:05:00Z")},
		},
	)

	m := Assemble(snap, "doc-a", nil, "me@x.com")
	assert.Equal(t, UntitledPlaceholder, m.Title)
}

func TestAssembleTranscriptlessStub(t *testing.T) {
	snap := snapWith(
		map[string]granola.Document{
			"doc-a": {ID: "doc-a", Title: "Planning", CreatedAt: "2025-03-10T09:00:00Z"},
		},
		map[string][]granola.Segment{},
	)

	m := Assemble(snap, "doc-a", nil, "me@x.com")
	assert.False(t, m.HasTranscript)
	assert.Empty(t, m.TranscriptText)
	assert.Zero(t, m.DurationMinutes)
	assert.Equal(t, "2025-03-10", m.Date())
}

func TestTranscriptTextSkipsEmptySegments(t *testing.T) {
	text := TranscriptText([]granola.Segment{
		{Source: "microphone", Text: "  "},
		{Source: "system", Text: "real words"},
	})
	assert.Equal(t, "[CALL]: real words", text)
}

func mustParse(t *testing.T, ts string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, ts)
	require.NoError(t, err)
	return parsed
}
