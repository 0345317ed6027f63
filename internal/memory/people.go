package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"meetsync/internal/db"
	"meetsync/internal/meeting"
	"meetsync/internal/models"
)

// People stores person profiles: a markdown profile per person under
// people/<kind>/<slug>/ plus an index row keyed by email. Lookups go
// through the index so "does this email have a profile anywhere" never
// rescans the directory tree.
type People struct {
	root string
}

// NewPeople returns a People store rooted at the memory root.
func NewPeople(root string) *People {
	return &People{root: root}
}

func (p *People) personDir(person *models.Person) string {
	return filepath.Join(p.root, "people", string(person.Kind), person.Slug)
}

func (p *People) profilePath(person *models.Person) string {
	return filepath.Join(p.personDir(person), "profile.md")
}

// Find looks up a profile by email across both partitions.
func (p *People) Find(email string) (*models.Person, error) {
	return db.FindPersonByEmail(email)
}

// Create writes a new markdown profile and its index row.
func (p *People) Create(person *models.Person) error {
	dir := p.personDir(person)
	if err := os.MkdirAll(filepath.Join(dir, "interactions"), 0o755); err != nil {
		return err
	}

	// Don't clobber a profile the user already has on disk; just make
	// sure it gets an index row.
	path := p.profilePath(person)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		content, err := renderProfile(person)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}

	return db.CreatePerson(person)
}

var (
	lastInteractionRe  = regexp.MustCompile(`last_interaction: "?\d{4}-\d{2}-\d{2}"?`)
	interactionCountRe = regexp.MustCompile(`interaction_count: \d+`)
)

// Update saves changed recency metadata to the index and rewrites the
// matching frontmatter fields in the markdown profile. Everything else
// in the profile is the user's and stays untouched.
func (p *People) Update(person *models.Person) error {
	if err := db.SavePerson(person); err != nil {
		return err
	}

	path := p.profilePath(person)
	raw, err := os.ReadFile(path)
	if err != nil {
		// Index row without a profile file; recreate the profile.
		if os.IsNotExist(err) {
			content, rerr := renderProfile(person)
			if rerr != nil {
				return rerr
			}
			if merr := os.MkdirAll(filepath.Dir(path), 0o755); merr != nil {
				return merr
			}
			return os.WriteFile(path, []byte(content), 0o644)
		}
		return err
	}

	content := lastInteractionRe.ReplaceAllString(string(raw),
		fmt.Sprintf("last_interaction: %q", person.LastInteraction))
	content = interactionCountRe.ReplaceAllString(content,
		fmt.Sprintf("interaction_count: %d", person.InteractionCount))

	return os.WriteFile(path, []byte(content), 0o644)
}

// AppendInteraction appends one meeting entry to the person's monthly
// interaction log.
func (p *People) AppendInteraction(person *models.Person, m *meeting.Meeting) error {
	month := m.Date()[:7]
	path := filepath.Join(p.personDir(person), "interactions", month+".md")
	header := fmt.Sprintf("# Interactions - %s\n\n", month)
	return appendWithHeader(path, header, renderInteractionEntry(m))
}
