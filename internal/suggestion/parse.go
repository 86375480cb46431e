// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package suggestion renders recommendation prompts and reads the labeled
// free-text answers the generative service sends back.
package suggestion

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Key is a canonical suggestion field.
type Key string

const (
	KeyTitle       Key = "title"
	KeyAuthor      Key = "author"
	KeyGenre       Key = "genre"
	KeyExplanation Key = "explanation"
	KeyDifficulty  Key = "difficulty"
)

// Keys lists every canonical key in prompt order.
var Keys = []Key{KeyTitle, KeyAuthor, KeyGenre, KeyExplanation, KeyDifficulty}

// labels maps lower-cased localized labels to canonical keys. Lookup is
// exact; anything else is dropped.
var labels = map[string]Key{
	"başlık":      KeyTitle,
	"baslik":      KeyTitle,
	"kitap":       KeyTitle,
	"kitap adı":   KeyTitle,
	"title":       KeyTitle,
	"yazar":       KeyAuthor,
	"author":      KeyAuthor,
	"tür":         KeyGenre,
	"tur":         KeyGenre,
	"genre":       KeyGenre,
	"açıklama":    KeyExplanation,
	"aciklama":    KeyExplanation,
	"explanation": KeyExplanation,
	"zorluk":      KeyDifficulty,
	"difficulty":  KeyDifficulty,
}

// Field is an optional suggestion value.
type Field struct {
	Value   string
	Present bool
}

// Known reports whether the field carries a non-blank value. Absent and
// blank fields are both unknown.
func (f Field) Known() bool {
	return f.Present && strings.TrimSpace(f.Value) != ""
}

// Ptr returns the value, or nil when the field is unknown.
func (f Field) Ptr() *string {
	if !f.Known() {
		return nil
	}
	v := f.Value
	return &v
}

// String returns the value, or "" when the field is unknown.
func (f Field) String() string {
	if !f.Known() {
		return ""
	}
	return f.Value
}

// Suggestion is the parsed form of one generative answer.
type Suggestion struct {
	Title       Field
	Author      Field
	Genre       Field
	Explanation Field
	Difficulty  Field
}

// Get returns the field for key. Unknown keys return an absent field.
func (s Suggestion) Get(key Key) Field {
	switch key {
	case KeyTitle:
		return s.Title
	case KeyAuthor:
		return s.Author
	case KeyGenre:
		return s.Genre
	case KeyExplanation:
		return s.Explanation
	case KeyDifficulty:
		return s.Difficulty
	}
	return Field{}
}

// IsEmpty reports whether no field is known.
func (s Suggestion) IsEmpty() bool {
	for _, k := range Keys {
		if s.Get(k).Known() {
			return false
		}
	}
	return true
}

func (s *Suggestion) set(key Key, value string) {
	f := Field{Value: value, Present: true}
	switch key {
	case KeyTitle:
		s.Title = f
	case KeyAuthor:
		s.Author = f
	case KeyGenre:
		s.Genre = f
	case KeyExplanation:
		s.Explanation = f
	case KeyDifficulty:
		s.Difficulty = f
	}
}

// Parse reads "Label: value" lines from raw. Each line is split at its
// first colon; the label is matched against the localized label table and
// unknown labels are ignored. A later line for the same key overwrites an
// earlier one. Text without any known label yields an empty Suggestion.
func Parse(raw string) Suggestion {
	var s Suggestion
	for _, line := range strings.Split(raw, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, known := lookupLabel(label)
		if !known {
			continue
		}
		s.set(key, cleanValue(value))
	}
	return s
}

// lookupLabel trims a label, drops the markdown decoration models like to
// add ("**Başlık**", "- Yazar"), and looks it up lower-cased. Turkish
// casing is tried first; plain casing covers English labels such as
// "TITLE", which Turkish rules would fold to "tıtle".
func lookupLabel(label string) (Key, bool) {
	label = strings.Trim(norm.NFC.String(label), " \t\r*_#-")
	// Casers are stateful; one per call keeps Parse safe for concurrent use.
	if key, ok := labels[cases.Lower(language.Turkish).String(label)]; ok {
		return key, true
	}
	key, ok := labels[strings.ToLower(label)]
	return key, ok
}

func cleanValue(value string) string {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, "*_")
	return strings.TrimSpace(value)
}
