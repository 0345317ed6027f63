package meeting

import (
	"strings"

	"meetsync/internal/granola"
)

// ValidEmail reports whether an attendee email is usable as an
// identity key.
func ValidEmail(email string) bool {
	return len(email) >= 5 && strings.Contains(email, "@")
}

// MergeAttendees merges the two attendee sources into one list keyed
// by lower-cased email. The calendar event is authoritative for
// response status; the recording app's people data tends to carry
// richer display names, so it fills in names the calendar left blank.
// The operating user and entries with unusable emails are dropped.
// Calendar-sourced entries come first in calendar order, then
// people-only entries in people order.
func MergeAttendees(event *granola.CalendarEvent, people *granola.People, userEmail string) []Attendee {
	selfEmail := strings.ToLower(userEmail)

	var merged []Attendee
	byEmail := map[string]int{}

	if event != nil {
		for _, att := range event.Attendees {
			if att.Self || !ValidEmail(att.Email) {
				continue
			}
			email := strings.ToLower(att.Email)
			if email == selfEmail {
				continue
			}
			if _, ok := byEmail[email]; ok {
				continue
			}
			byEmail[email] = len(merged)
			merged = append(merged, Attendee{
				Email:    email,
				Name:     att.DisplayName,
				Response: att.ResponseStatus,
			})
		}
	}

	if people != nil {
		for _, att := range people.Attendees {
			if !ValidEmail(att.Email) {
				continue
			}
			email := strings.ToLower(att.Email)
			if email == selfEmail {
				continue
			}
			name := att.Details.Person.Name.FullName
			if idx, ok := byEmail[email]; ok {
				if name != "" && merged[idx].Name == "" {
					merged[idx].Name = name
				}
				continue
			}
			byEmail[email] = len(merged)
			merged = append(merged, Attendee{
				Email: email,
				Name:  name,
			})
		}
	}

	return merged
}
