// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match reconciles a parsed suggestion against the book catalog.
//
// Matching is filter-then-rank. A suitability predicate decides whether an
// entry is plausible at all; only plausible entries are ranked by a
// weighted similarity score and the highest score wins.
package match

import (
	"strings"

	"github.com/pdiddy/bookmatch/internal/similarity"
	"github.com/pdiddy/bookmatch/internal/suggestion"
	"github.com/pdiddy/bookmatch/pkg/types"
)

// Predicate thresholds. Comparisons are strict.
const (
	titleThreshold       = 0.8
	authorThreshold      = 0.7
	authorGenreThreshold = 0.6
	genreThreshold       = 0.8
)

// Ranking weights.
const (
	titleWeight  = 0.4
	authorWeight = 0.3
	genreWeight  = 0.3
)

// ScoredCandidate is a catalog entry that passed the suitability predicate,
// with its per-field similarities and weighted score.
type ScoredCandidate struct {
	Entry     types.CatalogEntry `json:"entry"`
	TitleSim  float64            `json:"title_sim"`
	AuthorSim float64            `json:"author_sim"`
	GenreSim  float64            `json:"genre_sim"`
	Score     float64            `json:"score"`
}

// Best returns the highest-scoring suitable entry. Ties keep the entry
// seen first in catalog order. The second result is false when no entry
// is suitable.
func Best(s suggestion.Suggestion, entries []types.CatalogEntry, req types.PreferenceRequest) (types.CatalogEntry, bool) {
	var (
		best  ScoredCandidate
		found bool
	)
	for _, e := range entries {
		c, ok := evaluate(s, e, req)
		if !ok {
			continue
		}
		if !found || c.Score > best.Score {
			best = c
			found = true
		}
	}
	return best.Entry, found
}

// Candidates returns every suitable entry in catalog order.
func Candidates(s suggestion.Suggestion, entries []types.CatalogEntry, req types.PreferenceRequest) []ScoredCandidate {
	var out []ScoredCandidate
	for _, e := range entries {
		if c, ok := evaluate(s, e, req); ok {
			out = append(out, c)
		}
	}
	return out
}

// evaluate scores one entry and applies the suitability predicate.
// Entries without a title, author, or genre are never suitable.
func evaluate(s suggestion.Suggestion, e types.CatalogEntry, req types.PreferenceRequest) (ScoredCandidate, bool) {
	if !e.Complete() {
		return ScoredCandidate{}, false
	}

	c := ScoredCandidate{
		Entry:     e,
		TitleSim:  similarity.Optional(&e.Title, s.Title.Ptr()),
		AuthorSim: similarity.Optional(&e.Author, s.Author.Ptr()),
		GenreSim:  similarity.Optional(&e.Genre, s.Genre.Ptr()),
	}
	if !suitable(c, req) {
		return ScoredCandidate{}, false
	}
	c.Score = titleWeight*c.TitleSim + authorWeight*c.AuthorSim + genreWeight*c.GenreSim
	return c, true
}

func suitable(c ScoredCandidate, req types.PreferenceRequest) bool {
	switch {
	case c.TitleSim > titleThreshold:
		return true
	case c.AuthorSim > authorThreshold && c.GenreSim > authorGenreThreshold:
		return true
	case c.GenreSim > genreThreshold && strings.EqualFold(req.Genre, c.Entry.Genre):
		return true
	}
	return false
}
