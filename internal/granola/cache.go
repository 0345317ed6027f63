package granola

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrSourceUnavailable is returned when the cache file cannot be read
// or parsed. Single-shot runs treat it as fatal; the daemon retries.
var ErrSourceUnavailable = errors.New("recording cache unavailable")

// Loader reads snapshots from the recording app's cache file. The file
// is JSON with a twist: the payload is a JSON document embedded as a
// string under the "cache" key.
type Loader struct {
	Path string
}

// NewLoader returns a Loader for the given cache file path.
func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

type outerCache struct {
	Cache string `json:"cache"`
}

type innerCache struct {
	State struct {
		Documents   map[string]json.RawMessage `json:"documents"`
		Transcripts map[string][]Segment       `json:"transcripts"`
		Events      []json.RawMessage          `json:"events"`
	} `json:"state"`
}

// Load reads and decodes the cache file into a Snapshot.
func (l *Loader) Load() (*Snapshot, error) {
	raw, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var outer outerCache
	if err := json.Unmarshal(raw, &outer); err != nil {
		return nil, fmt.Errorf("%w: decoding outer cache: %v", ErrSourceUnavailable, err)
	}

	var inner innerCache
	if err := json.Unmarshal([]byte(outer.Cache), &inner); err != nil {
		return nil, fmt.Errorf("%w: decoding inner cache: %v", ErrSourceUnavailable, err)
	}

	snap := &Snapshot{
		Documents:   make(map[string]Document, len(inner.State.Documents)),
		Transcripts: inner.State.Transcripts,
	}
	if snap.Transcripts == nil {
		snap.Transcripts = map[string][]Segment{}
	}

	// The cache occasionally holds non-object entries; skip anything
	// that doesn't decode instead of failing the whole snapshot.
	for id, rawDoc := range inner.State.Documents {
		var doc Document
		if err := json.Unmarshal(rawDoc, &doc); err != nil {
			continue
		}
		doc.ID = id
		snap.Documents[id] = doc
	}

	for _, rawEvent := range inner.State.Events {
		var event CalendarEvent
		if err := json.Unmarshal(rawEvent, &event); err != nil {
			continue
		}
		snap.Events = append(snap.Events, event)
	}

	return snap, nil
}
