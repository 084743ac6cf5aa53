// Package fuzzy implements the scoring function used to rank records
// during interactive search. Matching is case-insensitive subsequence
// matching: every query character must appear in the candidate in order,
// not necessarily contiguously.
package fuzzy

import "unicode"

// Bonus schedule. Consecutive matches compound: the streak bonus grows
// by streakStep for each additional consecutive match.
const (
	baseScore      = 1
	streakStep     = 2
	firstCharBonus = 10
	boundaryBonus  = 5
	decayWindow    = 50
)

// Score reports whether query matches candidate as a case-insensitive
// subsequence, and the match's score. An empty query matches everything
// with score 0; a non-empty query never matches an empty candidate. A
// query that cannot be fully consumed scores 0 regardless of any partial
// accumulation. The function is pure and deterministic.
func Score(query, candidate string) (bool, int) {
	if query == "" {
		return true, 0
	}
	if candidate == "" {
		return false, 0
	}

	q := []rune(query)
	c := []rune(candidate)

	score := 0
	streak := 0
	qi := 0
	lastMatch := -2 // no previous match

	for pos := 0; pos < len(c) && qi < len(q); pos++ {
		if unicode.ToLower(c[pos]) != unicode.ToLower(q[qi]) {
			continue
		}

		score += baseScore

		if pos == lastMatch+1 {
			streak += streakStep
			score += streak
		} else {
			streak = 0
		}

		// Position-0 and word-boundary bonuses are mutually exclusive.
		if pos == 0 {
			score += firstCharBonus
		} else if isBoundary(c[pos-1]) {
			score += boundaryBonus
		}

		if pos < decayWindow {
			score += decayWindow - pos
		}

		lastMatch = pos
		qi++
	}

	if qi < len(q) {
		return false, 0
	}
	return true, score
}

func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}
