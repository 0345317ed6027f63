package meeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetsync/internal/granola"
)

func personAttendee(email, name string) granola.PersonAttendee {
	var att granola.PersonAttendee
	att.Email = email
	att.Details.Person.Name.FullName = name
	return att
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.c"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("nodomain"))
}

func TestMergeAttendeesDedupesByCaseInsensitiveEmail(t *testing.T) {
	event := &granola.CalendarEvent{
		Attendees: []granola.CalendarAttendee{
			{Email: "Bob@y.com", ResponseStatus: "accepted"},
		},
	}
	people := &granola.People{
		Attendees: []granola.PersonAttendee{personAttendee("bob@y.com", "Bob Smith")},
	}

	merged := MergeAttendees(event, people, "me@x.com")
	require.Len(t, merged, 1)
	assert.Equal(t, "bob@y.com", merged[0].Email)
	assert.Equal(t, "Bob Smith", merged[0].Name)
	assert.Equal(t, "accepted", merged[0].Response)
}

func TestMergeAttendeesExcludesSelf(t *testing.T) {
	event := &granola.CalendarEvent{
		Attendees: []granola.CalendarAttendee{
			{Email: "me@x.com"},
			{Email: "also-me@x.com", Self: true},
			{Email: "bob@y.com"},
		},
	}
	people := &granola.People{
		Attendees: []granola.PersonAttendee{personAttendee("ME@x.com", "Me")},
	}

	merged := MergeAttendees(event, people, "me@x.com")
	require.Len(t, merged, 1)
	assert.Equal(t, "bob@y.com", merged[0].Email)
}

func TestMergeAttendeesDropsInvalidEmails(t *testing.T) {
	event := &granola.CalendarEvent{
		Attendees: []granola.CalendarAttendee{
			{Email: ""},
			{Email: "x@y"},
			{Email: "ok@y.com"},
		},
	}

	merged := MergeAttendees(event, nil, "me@x.com")
	require.Len(t, merged, 1)
	assert.Equal(t, "ok@y.com", merged[0].Email)
}

func TestMergeAttendeesCalendarOrderFirst(t *testing.T) {
	event := &granola.CalendarEvent{
		Attendees: []granola.CalendarAttendee{
			{Email: "alice@y.com", DisplayName: "Alice"},
			{Email: "bob@y.com"},
		},
	}
	people := &granola.People{
		Attendees: []granola.PersonAttendee{
			personAttendee("carol@z.com", "Carol Jones"),
			personAttendee("bob@y.com", "Bob Smith"),
		},
	}

	merged := MergeAttendees(event, people, "me@x.com")
	require.Len(t, merged, 3)
	assert.Equal(t, "alice@y.com", merged[0].Email)
	assert.Equal(t, "bob@y.com", merged[1].Email)
	assert.Equal(t, "Bob Smith", merged[1].Name) // filled from people data
	assert.Equal(t, "carol@z.com", merged[2].Email)
}

func TestMergeAttendeesKeepsCalendarName(t *testing.T) {
	event := &granola.CalendarEvent{
		Attendees: []granola.CalendarAttendee{
			{Email: "bob@y.com", DisplayName: "Bobby"},
		},
	}
	people := &granola.People{
		Attendees: []granola.PersonAttendee{personAttendee("bob@y.com", "Bob Smith")},
	}

	merged := MergeAttendees(event, people, "me@x.com")
	require.Len(t, merged, 1)
	assert.Equal(t, "Bobby", merged[0].Name)
}

func TestMergeAttendeesNilSources(t *testing.T) {
	assert.Empty(t, MergeAttendees(nil, nil, "me@x.com"))
}
