package lyrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/magda-composer/internal/music"
)

func TestTextToLyrics(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []music.Lyric
	}{
		{
			name: "single and multi syllable words",
			text: "Ky-ri-e e-lei-son lux",
			expected: []music.Lyric{
				{Text: "Ky", Syllabic: music.SyllabicBegin},
				{Text: "ri", Syllabic: music.SyllabicMiddle},
				{Text: "e", Syllabic: music.SyllabicEnd},
				{Text: "e", Syllabic: music.SyllabicBegin},
				{Text: "lei", Syllabic: music.SyllabicMiddle},
				{Text: "son", Syllabic: music.SyllabicEnd},
				{Text: "lux", Syllabic: music.SyllabicSingle},
			},
		},
		{
			name: "extra whitespace",
			text: "  plan-ge \n  vir-go ",
			expected: []music.Lyric{
				{Text: "plan", Syllabic: music.SyllabicBegin},
				{Text: "ge", Syllabic: music.SyllabicEnd},
				{Text: "vir", Syllabic: music.SyllabicBegin},
				{Text: "go", Syllabic: music.SyllabicEnd},
			},
		},
		{
			name:     "dangling hyphen",
			text:     "la-",
			expected: []music.Lyric{{Text: "la", Syllabic: music.SyllabicSingle}},
		},
		{
			name:     "empty",
			text:     "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TextToLyrics(tt.text))
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "Ky-ri-e e-lei-son lux", Text(TextToLyrics("Ky-ri-e  e-lei-son lux")))
}

func TestApply(t *testing.T) {
	melody := music.Voice{
		music.NewNote(music.FromMIDI(60), 1),
		music.NewNote(music.FromMIDI(62), 0.5),
		music.NewNote(music.FromMIDI(64), 0.5),
		music.NewRest(1),
		music.NewNote(music.FromMIDI(65), 1),
		music.NewNote(music.FromMIDI(67), 1),
		music.NewNote(music.FromMIDI(69), 1),
	}
	syllables := TextToLyrics("a-ve ma-ri")

	out := Apply(melody, syllables, 1)
	require.Len(t, out, len(melody))

	texts := make([]string, len(out))
	for i, e := range out {
		if e.Lyric != nil {
			texts[i] = e.Lyric.Text
		}
	}
	// the short D4 carries "ve" and E4 is skipped, then the rest is passed over
	assert.Equal(t, []string{"a", "ve", "", "", "ma", "ri", ""}, texts)

	for _, e := range melody {
		assert.Nil(t, e.Lyric, "input must not be modified")
	}
}

func TestApplyWithoutMelisma(t *testing.T) {
	melody := music.Voice{
		music.NewNote(music.FromMIDI(60), 0.5),
		music.NewNote(music.FromMIDI(62), 0.5),
	}
	out := Apply(melody, TextToLyrics("la la la"), 0)
	require.NotNil(t, out[0].Lyric)
	require.NotNil(t, out[1].Lyric)
	assert.Equal(t, music.SyllabicSingle, out[1].Lyric.Syllabic)
}
