package isorhythm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/magda-composer/internal/music"
)

func mustPitches(t *testing.T, names string) []music.Pitch {
	t.Helper()
	pitches, err := music.ParsePitchList(names)
	require.NoError(t, err)
	return pitches
}

func summarize(v music.Voice) []string {
	out := make([]string, len(v))
	for i, e := range v {
		out[i] = e.String()
	}
	return out
}

func TestGenerateFullCycle(t *testing.T) {
	color := mustPitches(t, "C4 D4 E4 F4 G4")
	talea := []music.Duration{1, 1, 2}

	voice, err := Generate(color, talea, Options{})
	require.NoError(t, err)

	expected := []string{
		"C4(1)", "D4(1)", "E4(2)", "F4(1)", "G4(1)",
		"C4(2)", "D4(1)", "E4(1)", "F4(2)", "G4(1)",
		"C4(1)", "D4(2)", "E4(1)", "F4(1)", "G4(2)",
	}
	assert.Equal(t, expected, summarize(voice))
}

func TestGenerateExplicitLength(t *testing.T) {
	color := mustPitches(t, "C4 D4 E4 F4 G4")
	talea := []music.Duration{1, 1, 2}

	voice, err := Generate(color, talea, Options{Length: WithLength(18)})
	require.NoError(t, err)
	require.Len(t, voice, 18)
	assert.Equal(t, []string{"C4(1)", "D4(1)", "E4(2)"}, summarize(voice[15:]))

	short, err := Generate(color, talea, Options{Length: WithLength(4)})
	require.NoError(t, err)
	assert.Equal(t, summarize(voice[:4]), summarize(short))

	empty, err := Generate(color, talea, Options{Length: WithLength(0)})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGenerateLengthProperty(t *testing.T) {
	all := mustPitches(t, "C4 D4 E4 F4 G4 A4 B4")
	durations := []music.Duration{1, 0.5, 2, 1.5, 0.25, 3}

	for m := 1; m <= len(all); m++ {
		for n := 1; n <= len(durations); n++ {
			voice, err := Generate(all[:m], durations[:n], Options{})
			require.NoError(t, err)
			assert.Len(t, voice, CycleLength(m, n), "m=%d n=%d", m, n)
		}
	}
}

func TestGeneratePeriodicity(t *testing.T) {
	color := mustPitches(t, "C4 E4 G4 B4")
	talea := []music.Duration{1, 2, 3}

	voice, err := Generate(color, talea, Options{ColorOffset: 2, TaleaOffset: 1, Length: WithLength(30)})
	require.NoError(t, err)

	m, n := len(color), len(talea)
	for i := 0; i+m < len(voice); i++ {
		assert.Equal(t, voice[i].Pitch, voice[i+m].Pitch, "pitch at %d", i)
	}
	for i := 0; i+n < len(voice); i++ {
		assert.Equal(t, voice[i].Duration, voice[i+n].Duration, "duration at %d", i)
	}
}

func TestGenerateOffsetRotation(t *testing.T) {
	color := mustPitches(t, "C4 D4 E4 F4 G4")
	talea := []music.Duration{1, 1, 2}

	for k := -7; k <= 7; k++ {
		rotated := make([]music.Pitch, len(color))
		for i := range color {
			rotated[i] = color[index(i+k, len(color))]
		}

		withOffset, err := Generate(color, talea, Options{ColorOffset: k})
		require.NoError(t, err)
		withRotation, err := Generate(rotated, talea, Options{})
		require.NoError(t, err)

		assert.Equal(t, withRotation, withOffset, "offset %d", k)
	}
}

func TestGenerateGap(t *testing.T) {
	color := mustPitches(t, "C4 D4")
	talea := []music.Duration{1, 2, 3}

	voice, err := Generate(color, talea, Options{Gap: 0.5})
	require.NoError(t, err)
	require.Len(t, voice, 12)

	for i, e := range voice {
		if i%2 == 1 {
			assert.True(t, e.Rest, "index %d should be a rest", i)
			assert.Equal(t, music.Duration(0.5), e.Duration)
		} else {
			assert.False(t, e.Rest, "index %d should be a note", i)
		}
	}
	assert.Equal(t, 12, EventCount(len(color), len(talea), Options{Gap: 0.5}))

	noGap, err := Generate(color, talea, Options{Gap: -1})
	require.NoError(t, err)
	assert.Len(t, noGap, 6)
}

func TestGenerateErrors(t *testing.T) {
	color := mustPitches(t, "C4")
	talea := []music.Duration{1}

	tests := []struct {
		name  string
		color []music.Pitch
		talea []music.Duration
		opts  Options
	}{
		{name: "empty color", color: nil, talea: talea},
		{name: "empty talea", color: color, talea: nil},
		{name: "negative length", color: color, talea: talea, opts: Options{Length: WithLength(-1)}},
		{name: "zero duration", color: color, talea: []music.Duration{1, 0}},
		{name: "length too large for gap", color: color, talea: talea, opts: Options{Length: WithLength(math.MaxInt/2 + 1), Gap: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.color, tt.talea, tt.opts)
			assert.ErrorIs(t, err, music.ErrInvalidInput)
		})
	}
}

func TestCycleLength(t *testing.T) {
	assert.Equal(t, 15, CycleLength(5, 3))
	assert.Equal(t, 12, CycleLength(4, 6))
	assert.Equal(t, 7, CycleLength(7, 7))
	assert.Equal(t, 0, CycleLength(0, 3))
	assert.Equal(t, math.MaxInt, CycleLength(math.MaxInt, math.MaxInt-1))
}

func TestEventCountSaturates(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		expected int
	}{
		{"just below the bound", Options{Length: WithLength(math.MaxInt / 2), Gap: 0.5}, math.MaxInt / 2 * 2},
		{"one past the bound", Options{Length: WithLength(math.MaxInt/2 + 1), Gap: 0.5}, math.MaxInt},
		{"max length", Options{Length: WithLength(math.MaxInt), Gap: 1}, math.MaxInt},
		{"max length without gap", Options{Length: WithLength(math.MaxInt)}, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := EventCount(1, 1, tt.opts)
			assert.Equal(t, tt.expected, n)
			assert.Positive(t, n)
		})
	}
}
