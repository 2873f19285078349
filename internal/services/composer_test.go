package services

import (
	"context"
	"math"
	"testing"

	"github.com/Conceptual-Machines/magda-composer/internal/config"
	"github.com/Conceptual-Machines/magda-composer/internal/dsl"
	"github.com/Conceptual-Machines/magda-composer/internal/metrics"
	"github.com/Conceptual-Machines/magda-composer/internal/models"
	"github.com/Conceptual-Machines/magda-composer/internal/music"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(maxEvents int) *ComposerService {
	return NewComposerService(&config.Config{MaxEvents: maxEvents}, nil, metrics.NewSentryMetrics())
}

func names(v music.Voice) []string {
	out := make([]string, 0, len(v))
	for _, e := range v {
		if e.Rest {
			out = append(out, "rest")
			continue
		}
		out = append(out, e.Pitch.Name())
	}
	return out
}

func TestComposerIsorhythm(t *testing.T) {
	svc := newTestService(100)

	voice, err := svc.Isorhythm(context.Background(), IsorhythmParams{
		Color: []any{"C4", "D4", "E4", "F4", "G4"},
		Talea: []float64{1, 1, 2},
	})
	require.NoError(t, err)
	assert.Len(t, voice, 15)
	assert.Equal(t, music.Duration(20), voice.Duration())
}

func TestComposerIsorhythmEventLimit(t *testing.T) {
	svc := newTestService(10)
	params := IsorhythmParams{
		Color: []any{"C4", "D4", "E4", "F4", "G4"},
		Talea: []float64{1, 1, 2},
	}

	_, err := svc.Isorhythm(context.Background(), params)
	assert.ErrorIs(t, err, music.ErrInvalidInput)
	assert.ErrorContains(t, err, "exceeds the limit of 10")

	// Admins get a larger budget
	ctx := WithRole(context.Background(), models.RoleAdmin)
	voice, err := svc.Isorhythm(ctx, params)
	require.NoError(t, err)
	assert.Len(t, voice, 15)
}

func TestComposerEventLimitOverflow(t *testing.T) {
	svc := newTestService(4096)
	ctx := context.Background()
	huge := math.MaxInt/2 + 1

	_, err := svc.Isorhythm(ctx, IsorhythmParams{
		Color:  []any{"C4"},
		Talea:  []float64{1},
		Length: &huge,
		Gap:    0.5,
	})
	assert.ErrorIs(t, err, music.ErrInvalidInput)
	assert.ErrorContains(t, err, "exceeds the limit of 4096")

	melody := music.Voice{music.NewNote(music.FromMIDI(60), 1), music.NewNote(music.FromMIDI(62), 1)}
	_, err = svc.Hocket(ctx, melody, math.MaxInt/2+1)
	assert.ErrorIs(t, err, music.ErrInvalidInput)
	assert.ErrorContains(t, err, "exceeds the limit of 4096")

	_, err = svc.Hocket(ctx, melody, 2049)
	assert.ErrorIs(t, err, music.ErrInvalidInput)

	voices, err := svc.Hocket(ctx, melody, 2048)
	require.NoError(t, err)
	assert.Len(t, voices, 2048)
}

func TestExecuteDSLEventLimitOverflow(t *testing.T) {
	svc := newTestService(4096)

	tests := []struct {
		name string
		code string
	}{
		{"isorhythm with gap", `isorhythm(color="C4", talea="1", length=4611686018427387904, gap=0.5)`},
		{"hocket voices", `isorhythm(color="C4 D4", talea="1"); hocket(voices=4611686018427387904)`},
		{"tintinnabuli position", `isorhythm(color="C4 D4", talea="1"); tintinnabuli(chord="C E G", position=1000000000)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ExecuteDSL(context.Background(), tt.code)
			assert.ErrorIs(t, err, music.ErrInvalidInput)
		})
	}
}

func TestComposerIsorhythmErrors(t *testing.T) {
	svc := newTestService(100)

	tests := []struct {
		name   string
		params IsorhythmParams
	}{
		{"empty color", IsorhythmParams{Talea: []float64{1}}},
		{"empty talea", IsorhythmParams{Color: []any{"C4"}}},
		{"zero talea duration", IsorhythmParams{Color: []any{"C4"}, Talea: []float64{0}}},
		{"bad pitch", IsorhythmParams{Color: []any{"X4"}, Talea: []float64{1}}},
		{"negative gap", IsorhythmParams{Color: []any{"C4"}, Talea: []float64{1}, Gap: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Isorhythm(context.Background(), tt.params)
			assert.ErrorIs(t, err, music.ErrInvalidInput)
		})
	}
}

func TestWithRole(t *testing.T) {
	svc := newTestService(10)
	assert.Equal(t, 10, svc.EventLimit(context.Background()))
	assert.Equal(t, 10, svc.EventLimit(WithRole(context.Background(), "someone")))
	assert.Equal(t, 80, svc.EventLimit(WithRole(context.Background(), models.RoleAdmin)))
}

func TestComposerHocketAndCanon(t *testing.T) {
	svc := newTestService(100)
	ctx := context.Background()

	melody, err := DecodeVoice([]models.EventInput{
		{Pitch: "C4", Duration: 1},
		{Pitch: "D4", Duration: 1},
		{Pitch: "E4", Duration: 1},
		{Pitch: "F4", Duration: 1},
	})
	require.NoError(t, err)

	voices, err := svc.Hocket(ctx, melody, 2)
	require.NoError(t, err)
	require.Len(t, voices, 2)
	assert.Equal(t, []string{"C4", "rest", "E4", "rest"}, names(voices[0]))
	assert.Equal(t, []string{"rest", "D4", "rest", "F4"}, names(voices[1]))

	canonic, err := svc.Canon(ctx, voices, 2, "silence")
	require.NoError(t, err)
	require.Len(t, canonic, 2)
	assert.Equal(t, voices[0], canonic[0])
	assert.True(t, canonic[1][0].Rest)
	assert.Equal(t, music.Duration(2), canonic[1][0].Duration)

	_, err = svc.Canon(ctx, voices, 1, "sideways")
	assert.ErrorIs(t, err, music.ErrInvalidInput)

	_, err = svc.Hocket(ctx, melody, 0)
	assert.ErrorIs(t, err, music.ErrInvalidInput)
}

func TestComposerTintinnabuli(t *testing.T) {
	svc := newTestService(100)
	melody, err := DecodeVoice([]models.EventInput{
		{Pitch: "E3", Duration: 1},
		{Pitch: "G3", Duration: 1},
		{Pitch: "C4", Duration: 2},
	})
	require.NoError(t, err)

	tvoice, err := svc.Tintinnabuli(context.Background(), melody, TintinnabuliParams{
		Chord: []any{"C", "E", "G"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"G3", "C4", "E4"}, names(tvoice))
	assert.Equal(t, music.Duration(2), tvoice[2].Duration)

	fromSymbol, err := svc.Tintinnabuli(context.Background(), melody, TintinnabuliParams{ChordSymbol: "C"})
	require.NoError(t, err)
	assert.Equal(t, names(tvoice), names(fromSymbol))

	_, err = svc.Tintinnabuli(context.Background(), melody, TintinnabuliParams{
		Chord:     []any{"C", "E", "G"},
		Direction: "sideways",
	})
	assert.ErrorIs(t, err, music.ErrInvalidInput)
}

func TestComposerLyrics(t *testing.T) {
	svc := newTestService(100)
	ctx := context.Background()

	syllables := svc.Syllabify(ctx, "Ky-ri-e")
	require.Len(t, syllables, 3)
	assert.Equal(t, "Ky", syllables[0].Text)

	melody, err := DecodeVoice([]models.EventInput{
		{Pitch: "C4", Duration: 1},
		{Pitch: "D4", Duration: 1},
		{Pitch: "E4", Duration: 1},
	})
	require.NoError(t, err)

	out, err := svc.ApplyLyrics(ctx, melody, "Ky-ri-e", 1)
	require.NoError(t, err)
	require.NotNil(t, out[2].Lyric)
	assert.Equal(t, "e", out[2].Lyric.Text)
	assert.Nil(t, melody[0].Lyric)

	_, err = svc.ApplyLyrics(ctx, melody, "Ky", -1)
	assert.ErrorIs(t, err, music.ErrInvalidInput)
}

func TestComposerPentatonic(t *testing.T) {
	svc := newTestService(100)
	ctx := context.Background()

	scale, err := svc.Pentatonic(ctx, "C4", "major")
	require.NoError(t, err)
	assert.Equal(t, []string{"C4", "D4", "E4", "G4", "A4", "C5"}, names(pitchesVoice(scale.Pitches())))

	melody, err := DecodeVoice([]models.EventInput{{Pitch: "A4", Duration: 1}})
	require.NoError(t, err)
	moved, err := svc.ScaleTranspose(ctx, "C4", "", melody, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"D5"}, names(moved))

	_, err = svc.Pentatonic(ctx, "C4", "lydian")
	assert.ErrorIs(t, err, music.ErrInvalidInput)
}

func pitchesVoice(pitches []music.Pitch) music.Voice {
	v := make(music.Voice, 0, len(pitches))
	for _, p := range pitches {
		v = append(v, music.NewNote(p, 1))
	}
	return v
}

func TestComposerSets(t *testing.T) {
	svc := newTestService(100)
	ctx := context.Background()

	analysis, err := svc.AnalyzeSet(ctx, []any{"C", "E", "G"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4, 7}, analysis.NormalOrder)
	assert.Equal(t, []int{0, 3, 7}, analysis.PrimeForm)
	assert.Equal(t, "3-11B", analysis.ForteClass)
	assert.Equal(t, [6]int{0, 0, 1, 1, 1, 0}, analysis.IntervalVector)

	n, err := svc.TOperator(ctx, []any{0.0, 4.0, 7.0}, []any{2.0, 6.0, 9.0})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	subsets, err := svc.Subsets(ctx, []any{0.0, 4.0, 7.0, 10.0})
	require.NoError(t, err)
	assert.Contains(t, subsets, "3-11")

	_, err = svc.AnalyzeSet(ctx, []any{})
	assert.ErrorIs(t, err, music.ErrInvalidInput)
}

func TestComposerForteSet(t *testing.T) {
	svc := newTestService(100)

	pcs, err := svc.ForteSet("3-11")
	require.NoError(t, err)
	assert.Equal(t, []any{0, 3, 7}, pcs)

	_, err = svc.ForteSet("nope")
	assert.ErrorIs(t, err, music.ErrInvalidInput)
}

func TestComposerCompareSets(t *testing.T) {
	svc := newTestService(100)
	ctx := context.Background()

	cmp, err := svc.CompareSets(ctx, []any{0.0, 1.0, 4.0, 6.0}, []any{0.0, 1.0, 3.0, 7.0})
	require.NoError(t, err)
	assert.True(t, cmp.ZRelated)
	assert.False(t, cmp.SameClass)
	assert.Nil(t, cmp.T)

	cmp, err = svc.CompareSets(ctx, []any{"C", "E", "G"}, []any{"D", "F#", "A"})
	require.NoError(t, err)
	assert.True(t, cmp.SameClass)
	assert.False(t, cmp.ZRelated)
	require.NotNil(t, cmp.T)
	assert.Equal(t, 2, *cmp.T)

	_, err = svc.CompareSets(ctx, []any{"C"}, []any{})
	assert.ErrorIs(t, err, music.ErrInvalidInput)
}

func TestExecuteDSL(t *testing.T) {
	svc := newTestService(4096)

	result, err := svc.ExecuteDSL(context.Background(),
		`isorhythm(color="C4 D4 E4 F4 G4", talea="1 1 2"); hocket(voices=3); canon(delay=2)`)
	require.NoError(t, err)
	require.Len(t, result.Actions, 3)
	require.Len(t, result.Voices, 3)

	assert.Len(t, result.Voices[0], 15)
	assert.Len(t, result.Voices[1], 16)
	assert.True(t, result.Voices[2][0].Rest)
	assert.Equal(t, music.Duration(4), result.Voices[2][0].Duration)
}

func TestExecuteDSLTransformsLastVoice(t *testing.T) {
	svc := newTestService(4096)

	result, err := svc.ExecuteDSL(context.Background(),
		`isorhythm(color="E3 G3 C4", talea="1"); transpose(semitones=12); tintinnabuli(chord="C E G")`)
	require.NoError(t, err)
	require.Len(t, result.Voices, 2)
	assert.Equal(t, []string{"E4", "G4", "C5"}, names(result.Voices[0]))
	assert.Equal(t, []string{"G4", "C5", "E5"}, names(result.Voices[1]))
}

func TestExecuteDSLTintinnabuliSymbol(t *testing.T) {
	svc := newTestService(4096)

	result, err := svc.ExecuteDSL(context.Background(),
		`isorhythm(color="E4 G4 C5", talea="1"); tintinnabuli(symbol="C", direction=down)`)
	require.NoError(t, err)
	require.Len(t, result.Voices, 2)
	assert.Equal(t, []string{"C4", "E4", "G4"}, names(result.Voices[1]))
}

func TestExecuteDSLErrors(t *testing.T) {
	svc := newTestService(20)

	tests := []struct {
		name string
		code string
	}{
		{"syntax", `isorhythm(`},
		{"no voice yet", `transpose(semitones=2)`},
		{"over the limit", `isorhythm(color="C4 D4 E4", talea="1", length=30)`},
		{"hocket grows past the limit", `isorhythm(color="C4", talea="1", length=10); hocket(voices=3)`},
		{"voice out of range", `isorhythm(color="C4", talea="1"); augment_rests(voice=3)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ExecuteDSL(context.Background(), tt.code)
			assert.ErrorIs(t, err, music.ErrInvalidInput)
		})
	}
}

func TestExecuteDecodedActions(t *testing.T) {
	svc := newTestService(100)

	// Shape of actions after a JSON round trip
	actions := []map[string]any{
		{"action": dsl.ActionIsorhythm, "color": []any{"C4", "D4"}, "talea": []any{1.0}, "length": 4.0},
		{"action": dsl.ActionAugmentRests},
	}
	voices, err := svc.Execute(context.Background(), actions)
	require.NoError(t, err)
	require.Len(t, voices, 1)
	assert.Equal(t, []string{"C4", "D4", "C4", "D4"}, names(voices[0]))

	_, err = svc.Execute(context.Background(), []map[string]any{{"action": "retrograde"}})
	assert.ErrorIs(t, err, music.ErrInvalidInput)
}

func TestBuildComposition(t *testing.T) {
	svc := newTestService(100)

	c, err := svc.BuildComposition(context.Background(), "study", `isorhythm(color="C4 D4", talea="1 2")`, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "study", c.Name)
	assert.Equal(t, "user-1", c.CreatedBy)
	assert.Equal(t, 2, c.EventCount)
	assert.Equal(t, 3.0, c.DurationBeats)
	require.Len(t, c.Voices, 1)
	assert.Len(t, c.Actions, 1)
}
