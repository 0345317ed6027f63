package memory

import (
	"fmt"
	"os"
	"path/filepath"

	"meetsync/internal/meeting"
)

// Store is the markdown knowledge store rooted at the memory root.
// Layout:
//
//	meetings/YYYY-MM/<date>-<slug>.md
//	people/{internal,external}/<slug>/profile.md
//	people/{internal,external}/<slug>/interactions/YYYY-MM.md
//	logs/YYYY-MM.md
//
// Files are human-editable; apart from two profile frontmatter fields
// the store only ever creates and appends, never rewrites.
type Store struct {
	root string
}

// NewStore returns a Store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// MeetingPath returns where a meeting with the given identity lives.
// The month directory comes from the identity's date prefix.
func (s *Store) MeetingPath(identity string) string {
	month := identity
	if len(month) > 7 {
		month = month[:7]
	}
	return filepath.Join(s.root, "meetings", month, identity+".md")
}

// Exists reports whether a meeting with this identity is already
// persisted.
func (s *Store) Exists(identity string) bool {
	_, err := os.Stat(s.MeetingPath(identity))
	return err == nil
}

// Persist writes the meeting markdown file. Creation is exclusive, so
// a concurrent or repeated write of the same identity fails rather
// than overwriting.
func (s *Store) Persist(m *meeting.Meeting) (string, error) {
	path := s.MeetingPath(m.Identity())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	content, err := renderMeeting(m)
	if err != nil {
		return "", fmt.Errorf("rendering meeting %s: %w", m.Identity(), err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return "", err
	}
	return path, nil
}

// AppendDailyLog appends one meeting entry to the monthly activity log.
func (s *Store) AppendDailyLog(m *meeting.Meeting) error {
	date := m.Date()
	month := date[:7]
	logFile := filepath.Join(s.root, "logs", month+".md")

	header := fmt.Sprintf("# Activity Log - %s\n\n", month)
	return appendWithHeader(logFile, header, renderDailyEntry(m))
}

// appendWithHeader appends entry to path, writing the header first if
// the file does not exist yet.
func appendWithHeader(path, header, entry string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if fresh {
		if _, err := f.WriteString(header); err != nil {
			return err
		}
	}
	_, err = f.WriteString(entry)
	return err
}
