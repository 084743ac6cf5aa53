// Package search ranks records from both collections against a query
// using the fuzzy scorer. There is no index; candidates are scored by
// linear scan at query time.
package search

import (
	"sort"

	"github.com/clippyd/clippy/internal/fuzzy"
	"github.com/clippyd/clippy/internal/record"
)

// Source identifies which collection a result came from.
type Source int

const (
	FromHistory Source = iota
	FromPins
)

// Result is a single ranked match.
type Result struct {
	Record record.Record
	Source Source
	// Index is the record's 1-based position within its collection,
	// usable directly with get/pin/unpin commands.
	Index int
	Score int
}

// Run scores every record's content against query and returns matches
// sorted descending by score. Ties keep original order: history records
// before pins, each collection in its stored order. An empty query
// matches everything with score 0.
func Run(query string, history, pinned []record.Record) []Result {
	results := make([]Result, 0, len(history)+len(pinned))

	for i, r := range history {
		if ok, score := fuzzy.Score(query, r.Content); ok {
			results = append(results, Result{Record: r, Source: FromHistory, Index: i + 1, Score: score})
		}
	}
	for i, r := range pinned {
		if ok, score := fuzzy.Score(query, r.Content); ok {
			results = append(results, Result{Record: r, Source: FromPins, Index: i + 1, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
