// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package suggestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bookmatch/pkg/types"
)

func testRequest() types.PreferenceRequest {
	return types.PreferenceRequest{
		Genre:       "Bilim Kurgu",
		Expectation: "Düşündürücü bir dünya",
		ReadingTime: "Günde 1 saat",
		CanFocus:    true,
		UserID:      "user-1",
	}
}

// --- BuildPrompt ---

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(testRequest())
	require.NoError(t, err)

	for _, want := range []string{
		"Tür: Bilim Kurgu",
		"Beklenti: Düşündürücü bir dünya",
		"Okuma süresi: Günde 1 saat",
		"yoğun metinlere odaklanabiliyor",
		"Başlık:", "Yazar:", "Tür:", "Açıklama:", "Zorluk:",
	} {
		assert.Contains(t, prompt, want)
	}
	assert.NotContains(t, prompt, "farklı bir kitap")
}

func TestBuildPrompt_CannotFocus(t *testing.T) {
	req := testRequest()
	req.CanFocus = false

	prompt, err := BuildPrompt(req)
	require.NoError(t, err)
	assert.Contains(t, prompt, "odaklanmakta zorlanıyor")
	assert.NotContains(t, prompt, "yoğun metinlere odaklanabiliyor")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	a, err := BuildPrompt(testRequest())
	require.NoError(t, err)
	b, err := BuildPrompt(testRequest())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildRetryPrompt(t *testing.T) {
	first, err := BuildPrompt(testRequest())
	require.NoError(t, err)
	retry, err := BuildRetryPrompt(testRequest())
	require.NoError(t, err)

	assert.Contains(t, retry, "farklı bir kitap öner")
	assert.True(t, strings.HasPrefix(retry, strings.TrimRight(first, "\n")),
		"retry prompt should extend the first prompt")
}

// --- Parse ---

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[Key]string
	}{
		{
			name: "all five labels",
			raw: "Başlık: Dune\nYazar: Frank Herbert\nTür: Bilim Kurgu\n" +
				"Açıklama: Çöl gezegeninde geçen bir destan.\nZorluk: Orta",
			want: map[Key]string{
				KeyTitle:       "Dune",
				KeyAuthor:      "Frank Herbert",
				KeyGenre:       "Bilim Kurgu",
				KeyExplanation: "Çöl gezegeninde geçen bir destan.",
				KeyDifficulty:  "Orta",
			},
		},
		{
			name: "upper-case Turkish labels",
			raw:  "BAŞLIK: Dune\nAÇIKLAMA: Klasik.",
			want: map[Key]string{KeyTitle: "Dune", KeyExplanation: "Klasik."},
		},
		{
			name: "upper-case English labels",
			raw:  "TITLE: Dune\nAUTHOR: Frank Herbert",
			want: map[Key]string{KeyTitle: "Dune", KeyAuthor: "Frank Herbert"},
		},
		{
			name: "ascii labels and markdown decoration",
			raw:  "**Baslik:** Dune\n- Yazar: Frank Herbert\n### Tur: Kurgu",
			want: map[Key]string{KeyTitle: "Dune", KeyAuthor: "Frank Herbert", KeyGenre: "Kurgu"},
		},
		{
			name: "split at first colon only",
			raw:  "Açıklama: Not: çok sürükleyici.",
			want: map[Key]string{KeyExplanation: "Not: çok sürükleyici."},
		},
		{
			name: "unknown labels dropped",
			raw:  "Merhaba!\nYayınevi: İthaki\nBaşlık: Dune\nSayfa: 600",
			want: map[Key]string{KeyTitle: "Dune"},
		},
		{
			name: "later duplicate wins",
			raw:  "Başlık: Dune\nBaşlık: Dune Mesihi",
			want: map[Key]string{KeyTitle: "Dune Mesihi"},
		},
		{
			name: "windows line endings",
			raw:  "Başlık: Dune\r\nYazar: Frank Herbert\r\n",
			want: map[Key]string{KeyTitle: "Dune", KeyAuthor: "Frank Herbert"},
		},
		{
			name: "no labels",
			raw:  "Şu anda öneri servisine ulaşılamıyor.",
			want: map[Key]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Parse(tt.raw)
			for _, k := range Keys {
				want, ok := tt.want[k]
				got := s.Get(k)
				if ok {
					assert.True(t, got.Known(), "key %s should be known", k)
					assert.Equal(t, want, got.String(), "key %s", k)
				} else {
					assert.False(t, got.Known(), "key %s should be unknown, got %q", k, got.Value)
				}
			}
		})
	}
}

func TestParse_EmptyIsNotAnError(t *testing.T) {
	s := Parse("")
	assert.True(t, s.IsEmpty())
	assert.Nil(t, s.Title.Ptr())
}

func TestField_BlankEqualsAbsent(t *testing.T) {
	s := Parse("Başlık:   \nYazar: Orhan Pamuk")

	assert.True(t, s.Title.Present)
	assert.False(t, s.Title.Known())
	assert.Nil(t, s.Title.Ptr())
	assert.Equal(t, "", s.Title.String())

	require.NotNil(t, s.Author.Ptr())
	assert.Equal(t, "Orhan Pamuk", *s.Author.Ptr())
	assert.False(t, s.IsEmpty())
}

func TestGet_UnknownKey(t *testing.T) {
	s := Parse("Başlık: Dune")
	assert.Equal(t, Field{}, s.Get(Key("publisher")))
}
