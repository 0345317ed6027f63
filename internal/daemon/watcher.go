package daemon

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"meetsync/internal/syncer"
)

// pollInterval is how often the fallback loop re-reads the cache when
// filesystem notifications are unavailable.
const pollInterval = 2 * time.Minute

// Watcher is the change-anchored daemon driver: it watches the cache
// file for writes and syncs any transcript that newly appeared. A
// cooldown suppresses rapid re-triggers and a settle delay tolerates
// the recording app being mid-write.
type Watcher struct {
	CachePath string
	Source    SnapshotSource
	Syncer    *syncer.Syncer
	Log       *logrus.Logger
	Grace     time.Duration
	Cooldown  time.Duration
	Settle    time.Duration

	// SyncedIDs returns document ids already persisted, so known-but-
	// unsynced transcripts don't retrigger forever.
	SyncedIDs func() (map[string]struct{}, error)

	known    map[string]struct{}
	lastSync time.Time
}

// Run watches until the context is cancelled. If the watcher cannot be
// created it falls back to polling.
func (w *Watcher) Run(ctx context.Context) error {
	w.seedKnown()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.Log.Warnf("filesystem watcher unavailable (%v), falling back to polling", err)
		return w.runPolling(ctx)
	}
	defer watcher.Close()

	// Watch the containing directory; the recording app replaces the
	// cache file rather than appending to it.
	watchDir := filepath.Dir(w.CachePath)
	if err := watcher.Add(watchDir); err != nil {
		w.Log.Warnf("cannot watch %s (%v), falling back to polling", watchDir, err)
		return w.runPolling(ctx)
	}

	w.Log.Infof("watching %s for transcript changes", w.CachePath)

	for {
		select {
		case <-ctx.Done():
			w.Log.Info("watcher stopping")
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(w.CachePath) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			now := time.Now()
			if now.Sub(w.lastSync) < w.Cooldown {
				continue
			}
			w.Log.Info("cache updated, checking for new transcripts")

			// Give the writer a moment to finish.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.Settle):
			}

			w.handleChange()
			w.lastSync = now
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.Log.Warnf("watch error: %v", err)
		}
	}
}

// runPolling diffs transcript ids on a fixed interval.
func (w *Watcher) runPolling(ctx context.Context) error {
	w.Log.Infof("polling %s every %s", w.CachePath, pollInterval)
	for {
		select {
		case <-ctx.Done():
			w.Log.Info("poller stopping")
			return ctx.Err()
		case <-time.After(pollInterval):
		}
		w.handleChange()
	}
}

// seedKnown initializes the known transcript set so startup doesn't
// re-announce everything already in the cache.
func (w *Watcher) seedKnown() {
	w.known = map[string]struct{}{}
	snap, err := w.Source.Load()
	if err != nil {
		w.Log.Warnf("initial cache read failed: %v", err)
		return
	}
	w.known = snap.TranscriptIDs()
	w.Log.Infof("initialized with %d known transcripts", len(w.known))
}

func (w *Watcher) handleChange() {
	snap, err := w.Source.Load()
	if err != nil {
		w.Log.Warnf("cache read failed, will retry: %v", err)
		return
	}

	var fresh []string
	for id := range snap.TranscriptIDs() {
		if _, ok := w.known[id]; !ok {
			fresh = append(fresh, id)
		}
	}
	if len(fresh) == 0 {
		w.Log.Debug("no new transcripts detected")
		return
	}
	w.Log.Infof("found %d new transcript(s)", len(fresh))

	toSync := fresh
	if w.SyncedIDs != nil {
		synced, err := w.SyncedIDs()
		if err != nil {
			w.Log.Warnf("synced-id lookup failed: %v", err)
		} else {
			toSync = toSync[:0]
			for _, id := range fresh {
				if _, ok := synced[id]; ok {
					w.known[id] = struct{}{}
				} else {
					toSync = append(toSync, id)
				}
			}
		}
	}

	if len(toSync) == 0 {
		w.Log.Info("all new transcripts already synced")
		return
	}

	result, err := w.Syncer.ReconcileAndSync(snap, syncer.Request{
		RecentMinutes: recentWindowMinutes,
		RequireQuiet:  true,
		Grace:         w.Grace,
	})
	if err != nil {
		w.Log.Errorf("sync failed: %v", err)
		return
	}
	w.Log.Infof("sync complete: %s", result.Summary())

	// Only ids that made it through the gate become known; a meeting
	// deferred inside the grace window is retried on the next change.
	w.markDone(toSync, result)
}

// markDone folds ids into the known set. When nothing was deferred the
// whole batch is settled, continuations of a synced primary included;
// otherwise only ids the index confirms are folded, so deferred
// meetings stay eligible for the next change.
func (w *Watcher) markDone(ids []string, result *syncer.Result) {
	if result.Deferred == 0 {
		for _, id := range ids {
			w.known[id] = struct{}{}
		}
		return
	}
	for _, id := range ids {
		synced, err := w.Syncer.Index.IsSynced(id)
		if err != nil {
			w.Log.Warnf("index lookup for %s failed: %v", id, err)
			continue
		}
		if synced {
			w.known[id] = struct{}{}
		}
	}
}
