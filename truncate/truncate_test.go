package truncate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hiconvo/notifier/truncate"
)

func TestWords(t *testing.T) {
	tests := []struct {
		Name   string
		Given  string
		MaxLen int
		Expect string
	}{
		{Name: "ascii", Given: "This post contains ASCII.", MaxLen: 17, Expect: "This post..."},
		{Name: "latin-1", Given: "Thís pøst çòñtáins Lätin-1 tæxt", MaxLen: 17, Expect: "Thís pøst..."},
		{Name: "cjk", Given: "ｲんﾉ丂 ｱo丂ｲ co刀ｲﾑﾉ刀丂 cﾌズ", MaxLen: 17, Expect: "ｲんﾉ丂 ｱo丂ｲ..."},
		{
			Name:   "non-bmp",
			Given:  "𝕋𝕙𝕚𝕤 𝕡𝕠𝕤𝕥 𝕔𝕠𝕟𝕥𝕒𝕚𝕟𝕤 𝕔𝕙𝕒𝕣𝕒𝕔𝕥𝕖𝕣𝕤 𝕠𝕦𝕥𝕤𝕚𝕕𝕖 𝕥𝕙𝕖 𝔹𝕄ℙ",
			MaxLen: 17,
			Expect: "𝕋𝕙𝕚𝕤 𝕡𝕠𝕤𝕥...",
		},
		{
			Name:   "special chars",
			Given:  "\" This , post > contains < delimiter ] and [ other } special { characters ; that & may ' break things",
			MaxLen: 17,
			Expect: "\" This , post...",
		},
		{
			Name:   "string interpolation",
			Given:  "This post contains %s string interpolation #{syntax}",
			MaxLen: 17,
			Expect: "This post...",
		},
		{Name: "short", Given: "short", MaxLen: 17, Expect: "short"},
		{Name: "exact length", Given: "exactly seventeen", MaxLen: 17, Expect: "exactly seventeen"},
		{Name: "empty", Given: "", MaxLen: 17, Expect: ""},
		{Name: "whitespace normalized", Given: "This\t\tpost\n contains ASCII.", MaxLen: 17, Expect: "This post..."},
		{Name: "oversized first word", Given: "Supercalifragilistic word", MaxLen: 17, Expect: "..."},
		{Name: "exact budget", Given: "abcd efghi jklmnop", MaxLen: 13, Expect: "abcd efghi..."},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Expect, truncate.Words(tt.Given, tt.MaxLen))
		})
	}
}

func TestWordsNonBMPCountsLikeASCII(t *testing.T) {
	ascii := strings.Repeat("ab ", 10)
	wide := strings.Repeat("𝕒𝕓 ", 10)

	for maxLen := 3; maxLen < 35; maxLen++ {
		gotASCII := truncate.Words(ascii, maxLen)
		gotWide := truncate.Words(wide, maxLen)

		assert.Equal(t, truncate.Len(gotASCII), truncate.Len(gotWide), "maxLen=%d", maxLen)
	}
}

func TestWordsMaximal(t *testing.T) {
	text := "one two three four five six seven eight nine ten"

	for maxLen := 3; maxLen < truncate.Len(text); maxLen++ {
		got := truncate.Words(text, maxLen)
		prefix := strings.TrimSuffix(got, truncate.Ellipsis)

		assert.True(t, strings.HasSuffix(got, truncate.Ellipsis))
		assert.LessOrEqual(t, truncate.Len(prefix), maxLen-3)
		assert.True(t, strings.HasPrefix(text, prefix))

		// One more word would not have fit.
		rest := strings.Fields(strings.TrimPrefix(text, prefix))
		if len(rest) > 0 {
			next := rest[0]
			if prefix != "" {
				next = " " + next
			}

			assert.Greater(t, truncate.Len(prefix+next), maxLen-3)
		}
	}
}
