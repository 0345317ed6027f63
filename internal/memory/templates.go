package memory

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"meetsync/internal/meeting"
	"meetsync/internal/models"
)

// transcriptPreviewLimit bounds how much transcript lands in the
// meeting file; the full text stays in the source cache.
const transcriptPreviewLimit = 2000

type attendeeFrontmatter struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name,omitempty"`
}

type meetingFrontmatter struct {
	Title           string                `yaml:"title"`
	Date            string                `yaml:"date"`
	DurationMinutes float64               `yaml:"duration_minutes"`
	Source          string                `yaml:"source"`
	DocID           string                `yaml:"doc_id"`
	WasSplit        bool                  `yaml:"was_split"`
	Attendees       []attendeeFrontmatter `yaml:"attendees"`
	Topics          []string              `yaml:"topics"`
	Outcome         string                `yaml:"outcome"`
}

func renderMeeting(m *meeting.Meeting) (string, error) {
	fm := meetingFrontmatter{
		Title:           m.Title,
		Date:            m.Date(),
		DurationMinutes: m.DurationMinutes,
		Source:          "granola",
		DocID:           m.DocID,
		WasSplit:        m.WasSplit,
		Topics:          []string{},
		Outcome:         "pending_review",
	}
	for _, att := range m.Attendees {
		fm.Attendees = append(fm.Attendees, attendeeFrontmatter{Email: att.Email, Name: att.Name})
	}

	head, err := yaml.Marshal(&fm)
	if err != nil {
		return "", err
	}

	preview := m.TranscriptText
	truncated := ""
	if len(preview) > transcriptPreviewLimit {
		preview = preview[:transcriptPreviewLimit]
		truncated = "\n...[truncated]"
	}

	splitNote := ""
	if m.WasSplit {
		splitNote = "\n**Note:** This meeting was split across multiple recordings and merged."
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", m.Title)
	b.WriteString("## Summary\n\n*[Auto-captured from recording cache - needs review]*\n\n")
	b.WriteString("## Key Points\n\n-\n\n")
	b.WriteString("## Action Items\n\n- [ ] Review and update this meeting summary\n\n")
	b.WriteString("## Notes\n\n")
	fmt.Fprintf(&b, "Meeting duration: %.1f minutes\n", m.DurationMinutes)
	fmt.Fprintf(&b, "Transcript segments: %d%s\n\n", m.Segments, splitNote)
	b.WriteString("## Transcript Preview\n\n")
	fmt.Fprintf(&b, "```\n%s%s\n```\n", preview, truncated)

	return b.String(), nil
}

func renderDailyEntry(m *meeting.Meeting) string {
	splitNote := ""
	if m.WasSplit {
		splitNote = "\n- Note: Meeting was split and auto-merged"
	}
	return fmt.Sprintf(`
### %s - Meeting: %s

- Duration: %.1f minutes
- Attendees: %d
- Source: granola%s

---
`, m.Date(), m.Title, m.DurationMinutes, len(m.Attendees), splitNote)
}

type profileFrontmatter struct {
	Name             string `yaml:"name"`
	CanonicalName    string `yaml:"canonical_name"`
	Email            string `yaml:"email"`
	Type             string `yaml:"type"`
	Company          string  `yaml:"company"`
	Team             *string `yaml:"team,omitempty"`
	Role             string  `yaml:"role"`
	FirstInteraction string `yaml:"first_interaction"`
	LastInteraction  string `yaml:"last_interaction"`
	InteractionCount int    `yaml:"interaction_count"`
}

func renderProfile(p *models.Person) (string, error) {
	fm := profileFrontmatter{
		Name:             p.Name,
		CanonicalName:    p.Slug,
		Email:            p.Email,
		Type:             string(p.Kind),
		Company:          p.Company,
		FirstInteraction: p.FirstInteraction,
		LastInteraction:  p.LastInteraction,
		InteractionCount: p.InteractionCount,
	}
	if p.Kind == models.PersonInternal {
		// Internal profiles carry a team field for the user to fill in.
		empty := ""
		fm.Team = &empty
	}

	head, err := yaml.Marshal(&fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", p.Name)

	if p.Kind == models.PersonInternal {
		fmt.Fprintf(&b, "## Role at %s\n\n", p.Company)
		fmt.Fprintf(&b, "- Email: %s\n", p.Email)
		b.WriteString("- Team: *[To be filled in]*\n")
		b.WriteString("- Role: *[To be filled in]*\n\n")
		b.WriteString("## Working Relationship\n\n")
		b.WriteString("*[Notes about how you work together, communication preferences, etc.]*\n\n")
	} else {
		b.WriteString("## Background\n\n")
		fmt.Fprintf(&b, "- Company: %s\n", p.Company)
		fmt.Fprintf(&b, "- Email: %s\n", p.Email)
		b.WriteString("- Role: *[To be filled in]*\n\n")
		b.WriteString("## Relationship\n\n")
		b.WriteString("*[How did you meet? What's the context of your interactions?]*\n\n")
	}

	b.WriteString("## Notes\n\n")
	fmt.Fprintf(&b, "*Profile auto-created from meeting attendance on %s*\n", p.FirstInteraction)

	return b.String(), nil
}

func renderInteractionEntry(m *meeting.Meeting) string {
	return fmt.Sprintf(`
## %s - %s

**Type:** Meeting
**Duration:** %.1f minutes

*[See meeting log for details]*

---
`, m.Date(), m.Title, m.DurationMinutes)
}
