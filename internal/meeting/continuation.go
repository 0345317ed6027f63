package meeting

import (
	"sort"
	"strings"

	"meetsync/internal/granola"
)

// continuationGapSeconds is the largest gap between one document's
// last segment and the next document's first segment for the second
// document to count as a continuation of the first.
const continuationGapSeconds = 120

type timedDoc struct {
	id         string
	title      string
	start, end int64 // unix seconds
	untitled   bool
}

// DetectContinuations identifies documents that are tail continuations
// of an immediately preceding document: untitled, starting within two
// minutes of another document's end. It returns a map from primary
// document id to its continuation ids in detection order. Documents
// without a transcript or without resolvable start/end instants never
// participate, on either side.
func DetectContinuations(snap *granola.Snapshot) map[string][]string {
	docs := make([]timedDoc, 0, len(snap.Documents))
	for id, doc := range snap.Documents {
		segs := snap.Transcript(id)
		if len(segs) == 0 {
			continue
		}
		start, okStart := granola.ParseTimestamp(segs[0].StartTimestamp)
		end, okEnd := granola.ParseTimestamp(segs[len(segs)-1].EndTimestamp)
		if !okStart || !okEnd {
			continue
		}
		docs = append(docs, timedDoc{
			id:       id,
			title:    doc.Title,
			start:    start.Unix(),
			end:      end.Unix(),
			untitled: strings.TrimSpace(doc.Title) == "",
		})
	}

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].start != docs[j].start {
			return docs[i].start < docs[j].start
		}
		return docs[i].id < docs[j].id
	})

	splits := map[string][]string{}
	// continuation doc id -> the primary it was attached to, so a
	// chain of splits all lands under one primary.
	assigned := map[string]string{}

	for i, doc := range docs {
		if !doc.untitled {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			prev := docs[j]
			gap := doc.start - prev.end
			if gap >= 0 && gap <= continuationGapSeconds {
				primary := prev.id
				if head, ok := assigned[prev.id]; ok {
					primary = head
				}
				splits[primary] = append(splits[primary], doc.id)
				assigned[doc.id] = primary
				break
			}
			if gap > continuationGapSeconds {
				// Docs are sorted by start, so every earlier
				// candidate ended even further back.
				break
			}
		}
	}

	return splits
}

// ContinuationSet flattens a split map into the set of document ids
// that were absorbed as continuations.
func ContinuationSet(splits map[string][]string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, ids := range splits {
		for _, id := range ids {
			set[id] = struct{}{}
		}
	}
	return set
}
