// Package lyrics turns hyphenated text into syllables and lays them under a
// melody.
package lyrics

import (
	"strings"

	"github.com/Conceptual-Machines/magda-composer/internal/music"
)

// TextToLyrics splits text into words on whitespace and words into syllables
// on hyphens, e.g. "Plan-ge qua-si vir-go".
func TextToLyrics(text string) []music.Lyric {
	var lyrics []music.Lyric
	for _, word := range strings.Fields(text) {
		syllables := splitSyllables(word)
		for i, s := range syllables {
			lyrics = append(lyrics, music.Lyric{Text: s, Syllabic: syllabic(i, len(syllables))})
		}
	}
	return lyrics
}

func splitSyllables(word string) []string {
	parts := strings.Split(word, "-")
	syllables := parts[:0]
	for _, p := range parts {
		if p != "" {
			syllables = append(syllables, p)
		}
	}
	return syllables
}

func syllabic(i, n int) string {
	switch {
	case n == 1:
		return music.SyllabicSingle
	case i == 0:
		return music.SyllabicBegin
	case i == n-1:
		return music.SyllabicEnd
	default:
		return music.SyllabicMiddle
	}
}

// Apply attaches one syllable per note. A note shorter than minInterval still
// takes its syllable but the next note is skipped, giving a two-note melisma.
// Application stops when the syllables run out. A new voice is returned.
func Apply(melody music.Voice, lyrics []music.Lyric, minInterval music.Duration) music.Voice {
	out := melody.Clone()

	next := 0
	skip := false
	for i, e := range out {
		if next >= len(lyrics) {
			break
		}
		if !e.IsNote() {
			continue
		}
		if skip {
			skip = false
			continue
		}
		if e.Duration < minInterval {
			skip = true
		}
		out[i] = e.WithLyric(lyrics[next])
		next++
	}

	return out
}

// Text joins syllables back into hyphenated words
func Text(lyrics []music.Lyric) string {
	var b strings.Builder
	for i, l := range lyrics {
		if i > 0 {
			if l.Syllabic == music.SyllabicMiddle || l.Syllabic == music.SyllabicEnd {
				b.WriteByte('-')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(l.Text)
	}
	return b.String()
}
