package daemon

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"meetsync/internal/granola"
	"meetsync/internal/meeting"
	"meetsync/internal/syncer"
)

// SnapshotSource provides fresh reads of the recording cache.
type SnapshotSource interface {
	Load() (*granola.Snapshot, error)
}

// recentWindowMinutes is how far back the scheduler looks for a
// transcript once a calendar event's sync instant has passed.
const recentWindowMinutes = 30

// SyncTarget pairs a calendar event with the instant its transcript
// should be synced (event end + grace delay).
type SyncTarget struct {
	At    time.Time
	Event granola.CalendarEvent
}

// SyncTargets computes the sync schedule from the snapshot's calendar
// feed: one target per event ending on the given day, ordered by sync
// instant. Events without a parsable end are skipped.
func SyncTargets(snap *granola.Snapshot, day string, grace time.Duration) []SyncTarget {
	var targets []SyncTarget
	for _, event := range snap.Events {
		end, ok := granola.ParseTimestamp(event.End.Value())
		if !ok || end.Format("2006-01-02") != day {
			continue
		}
		targets = append(targets, SyncTarget{At: end.Add(grace), Event: event})
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].At.Before(targets[j].At) })
	return targets
}

// TitlesMatch is the best-effort matcher between a calendar event
// title and a transcript title: case-insensitive containment in either
// direction. It can misfire on very generic titles; the scheduler
// treats it as a heuristic, not an identity.
func TitlesMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Scheduler is the calendar-anchored daemon driver: every tick it
// re-reads the cache, finds calendar events whose sync instant has
// passed, and syncs once a matching transcript shows up. Handled
// events are tracked for the scheduler's lifetime.
type Scheduler struct {
	Source SnapshotSource
	Syncer *syncer.Syncer
	Log    *logrus.Logger
	Grace  time.Duration
	Tick   time.Duration

	handled map[string]struct{}
}

// NewScheduler builds a Scheduler with an empty handled set.
func NewScheduler(source SnapshotSource, sy *syncer.Syncer, log *logrus.Logger, grace, tick time.Duration) *Scheduler {
	return &Scheduler{
		Source:  source,
		Syncer:  sy,
		Log:     log,
		Grace:   grace,
		Tick:    tick,
		handled: make(map[string]struct{}),
	}
}

// Run ticks until the context is cancelled. Each tick completes its
// whole read-detect-sync pass before sleeping; cancellation is only
// observed between ticks.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Log.Infof("calendar scheduler started, syncing %s after each meeting ends", s.Grace)
	for {
		s.runTick(time.Now())
		select {
		case <-ctx.Done():
			s.Log.Info("calendar scheduler stopping")
			return ctx.Err()
		case <-time.After(s.Tick):
		}
	}
}

func (s *Scheduler) runTick(now time.Time) {
	snap, err := s.Source.Load()
	if err != nil {
		// Transient read failures just wait for the next tick.
		s.Log.Warnf("cache read failed, will retry: %v", err)
		return
	}

	for _, target := range SyncTargets(snap, now.Format("2006-01-02"), s.Grace) {
		if _, done := s.handled[target.Event.ID]; done {
			continue
		}
		if target.At.After(now) {
			continue
		}

		s.Log.Infof("meeting ended: %s, checking for transcript", target.Event.Summary)

		candidates := s.Syncer.AssembleMeetings(snap, syncer.Request{RecentMinutes: recentWindowMinutes})
		matched := s.matchTranscript(target.Event, candidates)
		if matched == nil {
			s.Log.Info("no transcript found yet, will retry")
			continue
		}

		result, err := s.Syncer.ReconcileAndSync(snap, syncer.Request{
			RecentMinutes: recentWindowMinutes + 5,
			RequireQuiet:  true,
			Grace:         s.Grace,
		})
		if err != nil {
			s.Log.Errorf("sync failed for %q: %v", target.Event.Summary, err)
			continue
		}
		s.Log.Infof("sync complete: %s", result.Summary())

		// A meeting that ran past its scheduled end gets deferred by
		// the gate; leave the event unhandled so the next tick retries.
		if s.completed(matched, result) {
			s.handled[target.Event.ID] = struct{}{}
		} else {
			s.Log.Infof("%s still within grace window, will retry", target.Event.Summary)
		}
	}
}

// matchTranscript looks for a transcript belonging to the event,
// preferring the propagated calendar event id and falling back to the
// fuzzy title match. Returns nil when nothing matches.
func (s *Scheduler) matchTranscript(event granola.CalendarEvent, candidates []*meeting.Meeting) *meeting.Meeting {
	for _, m := range candidates {
		if !m.HasTranscript {
			continue
		}
		if event.ID != "" && m.CalendarEvent != nil && m.CalendarEvent.ID == event.ID {
			return m
		}
		if TitlesMatch(event.Summary, m.Title) {
			return m
		}
	}
	return nil
}

// completed reports whether the matched meeting actually landed: either
// this run synced it or the index already had it.
func (s *Scheduler) completed(m *meeting.Meeting, result *syncer.Result) bool {
	identity := m.Identity()
	for _, id := range result.Synced {
		if id == identity {
			return true
		}
	}
	synced, err := s.Syncer.Index.IsSynced(m.DocID)
	return err == nil && synced
}
