// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for bookmatch.
// Implements: recommendation request/outcome, catalog entries, and the
// typed configuration consumed by the CLI.
package types

import "strings"

// PreferenceRequest holds one user's answers to the preference
// questionnaire. It is immutable for the duration of a recommendation.
type PreferenceRequest struct {
	// Genre is the preferred genre in the user's own words (e.g. "Bilim Kurgu").
	Genre string `json:"genre" yaml:"genre" validate:"required"`

	// Expectation describes what the reader hopes to get from the book.
	Expectation string `json:"expectation" yaml:"expectation" validate:"required"`

	// ReadingTime is the available reading time (e.g. "günde 30 dakika").
	ReadingTime string `json:"readingTime" yaml:"reading_time" validate:"required"`

	// CanFocus reports whether the reader can concentrate on dense text.
	CanFocus bool `json:"canFocus" yaml:"can_focus"`

	// UserID identifies the requesting user. Filled from the identity
	// collaborator when empty.
	UserID string `json:"userId" yaml:"user_id"`
}

// CatalogEntry is a read-only projection of a book record in the catalog.
// A blank Title, Author, or Genre means the underlying column is NULL.
type CatalogEntry struct {
	// ID is a stable identifier derived from the normalized title and author.
	ID string `json:"id" yaml:"id,omitempty"`

	Title    string `json:"title" yaml:"title"`
	Author   string `json:"author" yaml:"author"`
	Genre    string `json:"genre" yaml:"genre"`
	Summary  string `json:"summary,omitempty" yaml:"summary,omitempty"`
	ImageURL string `json:"imageUrl,omitempty" yaml:"image_url,omitempty"`
}

// Complete reports whether the entry carries a title, author, and genre.
// Incomplete entries never take part in matching.
func (e CatalogEntry) Complete() bool {
	return strings.TrimSpace(e.Title) != "" &&
		strings.TrimSpace(e.Author) != "" &&
		strings.TrimSpace(e.Genre) != ""
}

// RecommendationOutcome is the terminal result of a recommendation. Nil
// book fields signal that no catalog entry matched.
type RecommendationOutcome struct {
	Recommendation string  `json:"recommendation" yaml:"recommendation"`
	Title          *string `json:"title" yaml:"title"`
	Author         *string `json:"author" yaml:"author"`
	Genre          *string `json:"genre" yaml:"genre"`
	ImageURL       *string `json:"imageUrl" yaml:"image_url"`
	Summary        *string `json:"summary" yaml:"summary"`
}

// Matched reports whether the outcome names a catalog book.
func (o RecommendationOutcome) Matched() bool {
	return o.Title != nil
}
