package meeting

import (
	"math"
	"sort"
	"strings"

	"meetsync/internal/granola"
)

// Assemble combines a primary document with its continuations into one
// logical Meeting. Continuation transcripts are concatenated in
// chronological order of each document's first segment, not in
// detection order.
func Assemble(snap *granola.Snapshot, primaryID string, continuationIDs []string, userEmail string) *Meeting {
	doc := snap.Documents[primaryID]

	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = UntitledPlaceholder
	}

	m := &Meeting{
		DocID:           primaryID,
		ContinuationIDs: continuationIDs,
		Title:           title,
		WasSplit:        len(continuationIDs) > 0,
		CalendarEvent:   doc.CalendarEvent,
		CreatedAt:       doc.CreatedAt,
		Attendees:       MergeAttendees(doc.CalendarEvent, doc.People, userEmail),
	}

	type part struct {
		start    int64
		resolved bool
		segments []granola.Segment
	}

	parts := make([]part, 0, 1+len(continuationIDs))
	appendPart := func(docID string) {
		segs := snap.Transcript(docID)
		if len(segs) == 0 {
			return
		}
		start, ok := granola.ParseTimestamp(segs[0].StartTimestamp)
		parts = append(parts, part{start: start.Unix(), resolved: ok, segments: segs})
	}
	appendPart(primaryID)
	for _, id := range continuationIDs {
		appendPart(id)
	}

	// Unresolved parts sort first so the primary stays ahead of any
	// timed continuation; the sort is stable to preserve input order
	// among equals.
	sort.SliceStable(parts, func(i, j int) bool {
		if parts[i].resolved != parts[j].resolved {
			return !parts[i].resolved
		}
		return parts[i].start < parts[j].start
	})

	var all []granola.Segment
	for _, p := range parts {
		all = append(all, p.segments...)
	}

	if len(all) == 0 {
		// Transcript-less stub: title and metadata only. The sync
		// gate rejects it, and a later run picks it up once the
		// transcript lands.
		return m
	}

	m.Segments = len(all)
	m.TranscriptText = TranscriptText(all)
	m.HasTranscript = m.TranscriptText != ""

	m.Start, m.StartResolved = granola.ParseTimestamp(all[0].StartTimestamp)
	m.End, m.EndResolved = granola.ParseTimestamp(all[len(all)-1].EndTimestamp)
	if m.StartResolved && m.EndResolved {
		minutes := m.End.Sub(m.Start).Minutes()
		m.DurationMinutes = math.Round(minutes*10) / 10
	}

	return m
}

// TranscriptText renders segments to readable text, one line per
// segment, tagged by audio source.
func TranscriptText(segments []granola.Segment) string {
	var lines []string
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		speaker := "[CALL]"
		if seg.Source == "microphone" {
			speaker = "[YOU]"
		}
		lines = append(lines, speaker+": "+text)
	}
	return strings.Join(lines, "\n")
}
