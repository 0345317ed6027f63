package syncer

import (
	"strings"

	"meetsync/internal/meeting"
	"meetsync/internal/models"
)

// reconcileProfiles creates or updates a profile for every attendee on
// an accepted meeting and appends their interaction log entry. Each
// failure is logged with the meeting identity and attendee email and
// counted, but never blocks the remaining attendees.
func (s *Syncer) reconcileProfiles(m *meeting.Meeting, result *Result) {
	identity := m.Identity()
	date := m.Date()

	for _, att := range m.Attendees {
		if !meeting.ValidEmail(att.Email) {
			continue
		}
		if strings.EqualFold(att.Email, s.UserEmail) {
			continue // self-attendance is never recorded
		}

		person, err := s.People.Find(att.Email)
		if err != nil {
			s.Log.Errorf("profile lookup failed (meeting %s, attendee %s): %v", identity, att.Email, err)
			result.Failures++
			continue
		}

		if person == nil {
			person = s.newPerson(att, date)
			if err := s.People.Create(person); err != nil {
				s.Log.Errorf("profile create failed (meeting %s, attendee %s): %v", identity, att.Email, err)
				result.Failures++
				continue
			}
			s.Log.Infof("created %s profile: %s", person.Kind, person.Slug)
		} else {
			// Exactly one increment per meeting processed, regardless
			// of how many meetings this run handles for the attendee.
			person.LastInteraction = date
			person.InteractionCount++
			if err := s.People.Update(person); err != nil {
				s.Log.Errorf("profile update failed (meeting %s, attendee %s): %v", identity, att.Email, err)
				result.Failures++
				continue
			}
		}

		if err := s.Interactions.AppendInteraction(person, m); err != nil {
			s.Log.Errorf("interaction log append failed (meeting %s, attendee %s): %v", identity, att.Email, err)
			result.Failures++
		}
	}
}

// newPerson builds a fresh profile row for a first-seen attendee.
func (s *Syncer) newPerson(att meeting.Attendee, date string) *models.Person {
	email := strings.ToLower(att.Email)
	domain := email[strings.Index(email, "@")+1:]

	kind := models.PersonExternal
	if strings.EqualFold(domain, s.OrgDomain) {
		kind = models.PersonInternal
	}

	name := att.Name
	if name == "" {
		// Fall back to the email local part: "jane.doe" -> "Jane Doe".
		local := email[:strings.Index(email, "@")]
		name = titleCase(strings.ReplaceAll(local, ".", " "))
	}

	company := companyFromDomain(domain)
	if kind == models.PersonInternal {
		company = companyFromDomain(s.OrgDomain)
	}

	return &models.Person{
		Email:            email,
		Slug:             meeting.Slugify(name),
		Kind:             kind,
		Name:             name,
		Company:          company,
		FirstInteraction: date,
		LastInteraction:  date,
		InteractionCount: 1,
	}
}

// companyFromDomain derives a display company name from an email
// domain's leading label: "acme.io" -> "Acme".
func companyFromDomain(domain string) string {
	if domain == "" {
		return "Unknown"
	}
	label := domain
	if i := strings.Index(domain, "."); i > 0 {
		label = domain[:i]
	}
	return titleCase(label)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
