// Package tools holds small helpers for building and combining voices.
package tools

import (
	"github.com/Conceptual-Machines/magda-composer/internal/music"
)

// Pitch given to notes that only carry a rhythm
var placeholderPitch = music.FromMIDI(60)

// NotesToVoice builds a voice of quarter notes from raw pitch values
// (pitch classes, MIDI numbers or note names)
func NotesToVoice(values []any) (music.Voice, error) {
	pitches, err := music.ResolvePitches(values)
	if err != nil {
		return nil, err
	}
	v := make(music.Voice, len(pitches))
	for i, p := range pitches {
		v[i] = music.NewNote(p, 1)
	}
	return v, nil
}

// DurationsToVoice builds a voice of middle Cs with the given quarter lengths
func DurationsToVoice(values []float64) (music.Voice, error) {
	durations, err := music.Durations(values)
	if err != nil {
		return nil, err
	}
	v := make(music.Voice, len(durations))
	for i, d := range durations {
		v[i] = music.NewNote(placeholderPitch, d)
	}
	return v, nil
}

// Append returns base followed by every voice in turn
func Append(base music.Voice, voices ...music.Voice) music.Voice {
	n := len(base)
	for _, v := range voices {
		n += len(v)
	}
	out := make(music.Voice, 0, n)
	out = append(out, base...)
	for _, v := range voices {
		out = append(out, v...)
	}
	return out
}

// AugmentIntoRests removes every rest after the first note by lengthening
// the note before it. Leading rests are kept.
func AugmentIntoRests(v music.Voice) music.Voice {
	out := make(music.Voice, 0, len(v))
	foundNote := false
	for _, e := range v {
		switch {
		case e.IsNote():
			foundNote = true
			out = append(out, e)
		case foundNote:
			last := len(out) - 1
			out[last] = out[last].WithDuration(out[last].Duration + e.Duration)
		default:
			out = append(out, e)
		}
	}
	return out
}

// Transpose moves every note chromatically. Rests are kept.
func Transpose(v music.Voice, semitones int) music.Voice {
	out := make(music.Voice, len(v))
	for i, e := range v {
		if e.IsNote() {
			e = e.WithPitch(e.Pitch.TransposeSemitones(semitones))
		}
		out[i] = e
	}
	return out
}

// Score is a set of parts that all start at offset 0
type Score struct {
	Parts []music.Voice
}

// NewScore stacks voices into parts
func NewScore(voices ...music.Voice) Score {
	parts := make([]music.Voice, len(voices))
	for i, v := range voices {
		parts[i] = v.Clone()
	}
	return Score{Parts: parts}
}

// Duration returns the end time of the longest part
func (s Score) Duration() music.Duration {
	var longest music.Duration
	for _, p := range s.Parts {
		if d := p.Duration(); d > longest {
			longest = d
		}
	}
	return longest
}

// EventCount returns the total number of events over all parts
func (s Score) EventCount() int {
	n := 0
	for _, p := range s.Parts {
		n += len(p)
	}
	return n
}
