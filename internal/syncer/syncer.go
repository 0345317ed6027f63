package syncer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"meetsync/internal/granola"
	"meetsync/internal/meeting"
	"meetsync/internal/models"
)

// MeetingStore persists assembled meetings.
type MeetingStore interface {
	Exists(identity string) bool
	Persist(m *meeting.Meeting) (path string, err error)
}

// PersonaStore finds, creates, and updates person profiles. Find must
// search across both partitions and return nil when nothing matches.
type PersonaStore interface {
	Find(email string) (*models.Person, error)
	Create(person *models.Person) error
	Update(person *models.Person) error
}

// InteractionLog appends per-person interaction entries.
type InteractionLog interface {
	AppendInteraction(person *models.Person, m *meeting.Meeting) error
}

// DailyLog appends meeting entries to the activity log.
type DailyLog interface {
	AppendDailyLog(m *meeting.Meeting) error
}

// SyncIndex is the dedup index over already-persisted meetings.
type SyncIndex interface {
	IsSynced(docID string) (bool, error)
	RecordSynced(docID, identity, path string, wasSplit bool) error
}

// Request selects which meetings a pipeline run considers.
// Exactly one of Date, RecentMinutes, or DocID should be set; Date
// defaults to today when all are empty.
type Request struct {
	Date          string
	RecentMinutes int
	DocID         string
	DryRun        bool

	// RequireQuiet makes the gate defer meetings until Grace has
	// passed since the meeting end. The daemon sets it; one-shot runs
	// don't.
	RequireQuiet bool
	Grace        time.Duration
}

// Result reports what one pipeline run did.
type Result struct {
	Synced        []string // identities of newly persisted meetings
	Considered    int
	AlreadySynced int
	NoTranscript  int
	Deferred      int
	Failures      int
}

// Syncer drives the reconcile-and-sync pipeline against a snapshot.
type Syncer struct {
	Meetings     MeetingStore
	People       PersonaStore
	Interactions InteractionLog
	Daily        DailyLog
	Index        SyncIndex

	UserEmail string
	OrgDomain string

	Log *logrus.Logger

	// Now is the clock, replaceable in tests.
	Now func() time.Time
}

func (s *Syncer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ReconcileAndSync runs the full pipeline over a snapshot: detect
// continuations, assemble logical meetings for the requested mode, and
// sync each one that passes the gate. It returns the identities of
// newly persisted meetings.
func (s *Syncer) ReconcileAndSync(snap *granola.Snapshot, req Request) (*Result, error) {
	meetings := s.AssembleMeetings(snap, req)

	result := &Result{Considered: len(meetings)}
	for _, m := range meetings {
		s.syncOne(m, req, result)
	}
	return result, nil
}

// AssembleMeetings reconciles the snapshot into logical meetings for
// the requested mode, without syncing anything.
func (s *Syncer) AssembleMeetings(snap *granola.Snapshot, req Request) []*meeting.Meeting {
	splits := meeting.DetectContinuations(snap)
	absorbed := meeting.ContinuationSet(splits)

	var cutoff time.Time
	if req.RecentMinutes > 0 {
		cutoff = s.now().Add(-time.Duration(req.RecentMinutes) * time.Minute)
	}
	date := req.Date
	if date == "" && req.RecentMinutes == 0 && req.DocID == "" {
		date = s.now().Format("2006-01-02")
	}

	var ids []string
	for id := range snap.Documents {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var meetings []*meeting.Meeting
	for _, id := range ids {
		if _, ok := absorbed[id]; ok {
			continue // merged into its primary
		}

		switch {
		case req.DocID != "":
			if id != req.DocID {
				continue
			}
		case req.RecentMinutes > 0:
			segs := snap.Transcript(id)
			if len(segs) == 0 {
				continue
			}
			end, ok := granola.ParseTimestamp(segs[len(segs)-1].EndTimestamp)
			if !ok || end.Before(cutoff) {
				continue
			}
		default:
			if !strings.HasPrefix(snap.Documents[id].CreatedAt, date) {
				continue
			}
		}

		meetings = append(meetings, meeting.Assemble(snap, id, splits[id], s.UserEmail))
	}

	return meetings
}

// syncOne pushes one meeting through the gate and, if accepted,
// persists it and runs the downstream profile and log updates.
func (s *Syncer) syncOne(m *meeting.Meeting, req Request, result *Result) {
	identity := m.Identity()

	if !m.HasTranscript || m.TranscriptText == "" {
		// Not an error; a later run retries once the transcript lands.
		s.Log.Debugf("skipping %s: no transcript yet", identity)
		result.NoTranscript++
		return
	}

	if synced, err := s.Index.IsSynced(m.DocID); err != nil {
		s.Log.Warnf("index lookup for %s failed: %v", identity, err)
	} else if synced {
		result.AlreadySynced++
		return
	}
	if s.Meetings.Exists(identity) {
		// Persisted by an earlier run the index doesn't know about.
		result.AlreadySynced++
		if !req.DryRun {
			if err := s.Index.RecordSynced(m.DocID, identity, "", m.WasSplit); err != nil {
				s.Log.Warnf("backfilling index for %s failed: %v", identity, err)
			}
		}
		return
	}

	if req.RequireQuiet && m.EndResolved {
		if s.now().Before(m.End.Add(req.Grace)) {
			s.Log.Debugf("deferring %s: within grace window", identity)
			result.Deferred++
			return
		}
	}

	if req.DryRun {
		s.Log.Infof("would sync %s (%.1f min, %d attendees)", identity, m.DurationMinutes, len(m.Attendees))
		result.Synced = append(result.Synced, identity)
		return
	}

	path, err := s.Meetings.Persist(m)
	if err != nil {
		s.Log.Errorf("persisting %s failed: %v", identity, err)
		result.Failures++
		return
	}
	if err := s.Index.RecordSynced(m.DocID, identity, path, m.WasSplit); err != nil {
		s.Log.Warnf("recording %s in index failed: %v", identity, err)
	}

	// The meeting file is in; downstream profile and log failures are
	// reported but never roll it back.
	s.reconcileProfiles(m, result)
	if err := s.Daily.AppendDailyLog(m); err != nil {
		s.Log.Errorf("daily log append for %s failed: %v", identity, err)
		result.Failures++
	}

	s.Log.Infof("synced %s -> %s", identity, path)
	result.Synced = append(result.Synced, identity)
}

// Summary renders a one-line human summary of a run.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d synced, %d already synced, %d without transcript, %d deferred, %d failures",
		len(r.Synced), r.AlreadySynced, r.NoTranscript, r.Deferred, r.Failures)
}
