package meeting

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"meetsync/internal/granola"
)

// UntitledPlaceholder is used when a document carries no title.
const UntitledPlaceholder = "[Untitled]"

// Attendee is a deduplicated meeting participant. Email is the
// identity key and is stored lower-cased.
type Attendee struct {
	Email    string
	Name     string
	Response string
}

// Meeting is one logical meeting assembled from a primary document and
// its detected continuations. It is the unit that gets persisted.
type Meeting struct {
	DocID           string
	ContinuationIDs []string
	Title           string
	Start           time.Time
	End             time.Time
	StartResolved   bool
	EndResolved     bool
	DurationMinutes float64
	TranscriptText  string
	Segments        int
	Attendees       []Attendee
	WasSplit        bool
	HasTranscript   bool
	CalendarEvent   *granola.CalendarEvent
	CreatedAt       string
}

// Date returns the meeting's date as YYYY-MM-DD, falling back to the
// document's created_at and finally to today.
func (m *Meeting) Date() string {
	if m.StartResolved {
		return m.Start.Format("2006-01-02")
	}
	if len(m.CreatedAt) >= 10 {
		return m.CreatedAt[:10]
	}
	return time.Now().Format("2006-01-02")
}

// Identity returns the deterministic persisted identity for the
// meeting: date plus a slug of its title.
func (m *Meeting) Identity() string {
	return m.Date() + "-" + Slugify(m.Title)
}

var (
	slugSpaceRe    = regexp.MustCompile(`[\s_]+`)
	slugCollapseRe = regexp.MustCompile(`-+`)
)

// Slugify converts a title to a filename-safe slug: lower-cased,
// non-word runs collapsed to single dashes, capped at 50 characters.
// Letters and digits in any script survive, so accented titles keep
// their spelling.
func Slugify(text string) string {
	var kept strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			kept.WriteRune(r)
		case unicode.IsSpace(r):
			kept.WriteRune(' ')
		}
	}

	slug := slugSpaceRe.ReplaceAllString(kept.String(), "-")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if runes := []rune(slug); len(runes) > 50 {
		slug = string(runes[:50])
	}
	return slug
}
