package granola

// Segment is one transcript fragment. Source tags where the audio came
// from: "microphone" for the local mic, anything else is call audio.
type Segment struct {
	Source         string `json:"source"`
	Text           string `json:"text"`
	StartTimestamp string `json:"start_timestamp"`
	EndTimestamp   string `json:"end_timestamp"`
}

// EventTime is a calendar instant: timed events carry DateTime,
// all-day events only carry Date.
type EventTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
}

// Value returns whichever representation the event carries.
func (t EventTime) Value() string {
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}

// CalendarAttendee is an invitee on a calendar event.
type CalendarAttendee struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName"`
	ResponseStatus string `json:"responseStatus"`
	Self           bool   `json:"self"`
}

// CalendarEvent is a scheduled calendar entry attached to a document
// or listed in the cache's event feed.
type CalendarEvent struct {
	ID        string             `json:"id"`
	Summary   string             `json:"summary"`
	Start     EventTime          `json:"start"`
	End       EventTime          `json:"end"`
	Attendees []CalendarAttendee `json:"attendees"`
}

// PersonAttendee is an attendee record from the recording app's own
// people data. Names live a few levels down.
type PersonAttendee struct {
	Email   string `json:"email"`
	Details struct {
		Person struct {
			Name struct {
				FullName string `json:"fullName"`
			} `json:"name"`
		} `json:"person"`
	} `json:"details"`
}

// People is the people block on a document.
type People struct {
	Attendees []PersonAttendee `json:"attendees"`
}

// Document is one recorded unit in the cache. Read-only to meetsync.
type Document struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
	NotesPlain    string         `json:"notes_plain"`
	Overview      string         `json:"overview"`
	CalendarEvent *CalendarEvent `json:"google_calendar_event"`
	People        *People        `json:"people"`
}

// Snapshot is the state of the cache at one read: documents keyed by
// id, transcripts keyed by the same ids, and the calendar event feed.
type Snapshot struct {
	Documents   map[string]Document
	Transcripts map[string][]Segment
	Events      []CalendarEvent
}

// Transcript returns the segments recorded for a document, nil if none.
func (s *Snapshot) Transcript(docID string) []Segment {
	return s.Transcripts[docID]
}

// TranscriptIDs returns the set of document ids that have at least one
// transcript segment.
func (s *Snapshot) TranscriptIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(s.Transcripts))
	for id, segs := range s.Transcripts {
		if len(segs) > 0 {
			ids[id] = struct{}{}
		}
	}
	return ids
}
