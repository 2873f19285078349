package music

import (
	"fmt"
	"math"
	"strings"
)

// PitchSpec is the input form of a pitch. It is resolved once, at the
// boundary, into a Pitch.
type PitchSpec interface {
	Resolve() (Pitch, error)
}

// PitchClass is a pitch class 0-11, placed in octave 4
type PitchClass int

// MIDINumber is an absolute MIDI note number (12-127)
type MIDINumber int

// NoteName is a spelled note name such as "C4", "F#3" or "Bb"
type NoteName string

// Resolve implements PitchSpec
func (pc PitchClass) Resolve() (Pitch, error) {
	if pc < 0 || pc >= semitonesPerOctave {
		return Pitch{}, fmt.Errorf("%w: pitch class %d out of range 0-11", ErrInvalidInput, int(pc))
	}
	return FromPitchClass(int(pc)), nil
}

// Resolve implements PitchSpec
func (m MIDINumber) Resolve() (Pitch, error) {
	if m < semitonesPerOctave || m > maxMIDI {
		return Pitch{}, fmt.Errorf("%w: MIDI number %d out of range 12-127", ErrInvalidInput, int(m))
	}
	return FromMIDI(int(m)), nil
}

// Resolve implements PitchSpec
func (n NoteName) Resolve() (Pitch, error) {
	return ParseNoteName(string(n))
}

// ParsePitchSpec maps a decoded JSON value to a PitchSpec. Integers below 12
// are pitch classes, larger integers are MIDI numbers, strings are note names.
func ParsePitchSpec(v any) (PitchSpec, error) {
	switch val := v.(type) {
	case PitchSpec:
		return val, nil
	case string:
		return NoteName(val), nil
	case int:
		return numberSpec(val), nil
	case int64:
		return numberSpec(int(val)), nil
	case float64:
		if val != math.Trunc(val) {
			return nil, fmt.Errorf("%w: pitch number %v is not an integer", ErrInvalidInput, val)
		}
		return numberSpec(int(val)), nil
	default:
		return nil, fmt.Errorf("%w: unsupported pitch value %v (%T)", ErrInvalidInput, v, v)
	}
}

func numberSpec(n int) PitchSpec {
	if n < semitonesPerOctave {
		return PitchClass(n)
	}
	return MIDINumber(n)
}

// ResolvePitches resolves a list of raw pitch values
func ResolvePitches(values []any) ([]Pitch, error) {
	pitches := make([]Pitch, 0, len(values))
	for i, v := range values {
		spec, err := ParsePitchSpec(v)
		if err != nil {
			return nil, fmt.Errorf("pitch %d: %w", i, err)
		}
		p, err := spec.Resolve()
		if err != nil {
			return nil, fmt.Errorf("pitch %d: %w", i, err)
		}
		pitches = append(pitches, p)
	}
	return pitches, nil
}

// ParsePitchList parses a whitespace separated list of note names
func ParsePitchList(list string) ([]Pitch, error) {
	fields := strings.Fields(list)
	values := make([]any, len(fields))
	for i, f := range fields {
		values[i] = f
	}
	return ResolvePitches(values)
}
