// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity scores how alike two free-text strings are.
//
// Scores are in [0,1]. Equal strings (after normalization) score 1.0, a
// string contained in the other scores a flat 0.8, and everything else is
// scored by normalized Levenshtein distance.
package similarity

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ContainmentScore is returned when one normalized string contains the
// other. It is a fixed shortcut, not a distance.
const ContainmentScore = 0.8

// Optional scores two nullable strings. A nil input scores 0.0.
func Optional(a, b *string) float64 {
	if a == nil || b == nil {
		return 0.0
	}
	return Similarity(*a, *b)
}

// Similarity scores two strings after normalization. The first rule that
// applies wins: equality, containment, then edit distance.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1.0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return ContainmentScore
	}

	ra, rb := []rune(na), []rune(nb)
	maxLen := max(len(ra), len(rb))
	score := 1.0 - float64(levenshtein(ra, rb))/float64(maxLen)
	return min(1.0, max(0.0, score))
}

// Normalize lower-cases and trims s and composes it to NFC so that
// precomposed and combining forms of Turkish letters compare equal.
func Normalize(s string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
}

// Distance returns the Levenshtein distance between the normalized forms
// of a and b, counted in runes.
func Distance(a, b string) int {
	return levenshtein([]rune(Normalize(a)), []rune(Normalize(b)))
}

// levenshtein computes the exact edit distance with unit insertion,
// deletion, and substitution costs.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
