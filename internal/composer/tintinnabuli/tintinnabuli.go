// Package tintinnabuli derives a T-voice from a melody: each melody note is
// answered by a tone of a fixed chord found above or below it.
package tintinnabuli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Conceptual-Machines/magda-composer/internal/music"
)

// Direction says where the chord tone is searched
type Direction int

const (
	Up Direction = iota
	Down
	UpAlternate
	DownAlternate
)

var directionNames = map[string]Direction{
	"up":             Up,
	"down":           Down,
	"up_alternate":   UpAlternate,
	"down_alternate": DownAlternate,
}

func (d Direction) String() string {
	for name, dir := range directionNames {
		if dir == d {
			return name
		}
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection accepts up, down, up_alternate or down_alternate
func ParseDirection(s string) (Direction, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if key == "" {
		return Up, nil
	}
	d, ok := directionNames[key]
	if !ok {
		return 0, fmt.Errorf("%w: unknown direction %q", music.ErrInvalidInput, s)
	}
	return d, nil
}

// Mode decides how "above" and "below" are measured
type Mode int

const (
	// Diatonic compares letter steps, a chord tone on the melody's letter
	// is neither above nor below it
	Diatonic Mode = iota
	// Chromatic compares semitones
	Chromatic
)

func (m Mode) String() string {
	if m == Chromatic {
		return "chromatic"
	}
	return "diatonic"
}

// ParseMode accepts diatonic or chromatic
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "diatonic":
		return Diatonic, nil
	case "chromatic":
		return Chromatic, nil
	default:
		return 0, fmt.Errorf("%w: unknown tintinnabuli mode %q", music.ErrInvalidInput, s)
	}
}

// Positions are limited to the chord tones found within this many octaves
const maxOctaves = 10

// Options for TVoice
type Options struct {
	Position  int
	Direction Direction
	Mode      Mode
}

// DefaultOptions is the first chord tone above, compared diatonically
func DefaultOptions() Options {
	return Options{Position: 1, Direction: Up, Mode: Diatonic}
}

// TVoice answers every melody note with the Position-th chord tone in the
// requested direction. Durations follow the melody and rests pass through.
func TVoice(melody music.Voice, chord []music.Pitch, opts Options) (music.Voice, error) {
	if len(chord) == 0 {
		return nil, fmt.Errorf("%w: chord must not be empty", music.ErrInvalidInput)
	}
	if opts.Position < 1 {
		return nil, fmt.Errorf("%w: position must be at least 1, got %d", music.ErrInvalidInput, opts.Position)
	}
	if opts.Direction < Up || opts.Direction > DownAlternate {
		return nil, fmt.Errorf("%w: unknown direction %d", music.ErrInvalidInput, int(opts.Direction))
	}

	tones := uniqueSpellings(chord)
	if limit := len(tones) * maxOctaves; opts.Position > limit {
		return nil, fmt.Errorf("%w: position %d is beyond the %d chord tones within %d octaves",
			music.ErrInvalidInput, opts.Position, limit, maxOctaves)
	}

	out := make(music.Voice, len(melody))
	noteIndex := 0
	for i, e := range melody {
		if !e.IsNote() {
			out[i] = e
			continue
		}
		up := searchUp(opts.Direction, noteIndex)
		p, err := findTone(e.Pitch, tones, opts.Position, up, opts.Mode)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		out[i] = e.WithPitch(p)
		noteIndex++
	}
	return out, nil
}

func searchUp(d Direction, noteIndex int) bool {
	switch d {
	case Down:
		return false
	case UpAlternate:
		return noteIndex%2 == 0
	case DownAlternate:
		return noteIndex%2 == 1
	default:
		return true
	}
}

// findTone lays every chord tone out over the octaves around the melody
// note and picks the position-th one in the search direction
func findTone(melody music.Pitch, tones []music.Pitch, position int, up bool, mode Mode) (music.Pitch, error) {
	span := position/len(tones) + 2

	candidates := make([]music.Pitch, 0, 2*span*len(tones))
	for _, t := range tones {
		center := nearestOctave(t, melody, mode)
		for octave := center - span; octave <= center+span; octave++ {
			c := music.Pitch{Step: t.Step, Alter: t.Alter, Octave: octave}
			d := distance(c, melody, mode)
			if (up && d > 0) || (!up && d < 0) {
				candidates = append(candidates, c)
			}
		}
	}

	if len(candidates) < position {
		return music.Pitch{}, fmt.Errorf("%w: no chord tone at position %d from %s",
			music.ErrInvalidInput, position, melody.Name())
	}

	sort.Slice(candidates, func(i, j int) bool {
		d := order(candidates[i], candidates[j], mode)
		if up {
			return d < 0
		}
		return d > 0
	})

	return candidates[position-1], nil
}

// nearestOctave is the octave that puts tone t closest to the melody note.
// In chromatic mode the accidental can move a tone by whole octaves.
func nearestOctave(t, melody music.Pitch, mode Mode) int {
	if mode != Chromatic {
		return melody.Octave
	}
	placed := music.Pitch{Step: t.Step, Alter: t.Alter, Octave: melody.Octave}
	return melody.Octave + floorDiv(melody.MIDI()-placed.MIDI()+6, 12)
}

func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}

// distance measures a against b in letter steps (Diatonic) or semitones
// (Chromatic)
func distance(a, b music.Pitch, mode Mode) int {
	if mode == Chromatic {
		return a.MIDI() - b.MIDI()
	}
	return a.DiatonicNumber() - b.DiatonicNumber()
}

// order sorts by the mode's measure, then by the other one
func order(a, b music.Pitch, mode Mode) int {
	if d := distance(a, b, mode); d != 0 {
		return d
	}
	if mode == Chromatic {
		return a.DiatonicNumber() - b.DiatonicNumber()
	}
	return a.MIDI() - b.MIDI()
}

func uniqueSpellings(chord []music.Pitch) []music.Pitch {
	seen := make(map[[2]int]bool, len(chord))
	tones := make([]music.Pitch, 0, len(chord))
	for _, p := range chord {
		k := [2]int{p.Step, p.Alter}
		if !seen[k] {
			seen[k] = true
			tones = append(tones, p)
		}
	}
	return tones
}
