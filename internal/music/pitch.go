package music

import (
	"fmt"
	"strconv"
	"strings"
)

// Diatonic steps (letter names)
const (
	StepC = iota
	StepD
	StepE
	StepF
	StepG
	StepA
	StepB
)

const (
	semitonesPerOctave = 12
	stepsPerOctave     = 7
	defaultOctave      = 4
	maxMIDI            = 127
)

// Semitone offsets of each letter from C
var stepSemitones = [stepsPerOctave]int{0, 2, 4, 5, 7, 9, 11}

var stepLetters = [stepsPerOctave]string{"C", "D", "E", "F", "G", "A", "B"}

// Default spelling used when a pitch is built from a bare number
var defaultSpelling = [semitonesPerOctave]struct {
	step  int
	alter int
}{
	{StepC, 0}, {StepC, 1}, {StepD, 0}, {StepE, -1}, {StepE, 0}, {StepF, 0},
	{StepF, 1}, {StepG, 0}, {StepG, 1}, {StepA, 0}, {StepB, -1}, {StepB, 0},
}

// Pitch is an absolute, spelled pitch. C4 = MIDI 60.
type Pitch struct {
	Step   int // 0=C ... 6=B
	Alter  int // accidental in semitones (-1 flat, +1 sharp)
	Octave int
}

// NewPitch builds a pitch from its spelling
func NewPitch(step, alter, octave int) (Pitch, error) {
	if step < StepC || step > StepB {
		return Pitch{}, fmt.Errorf("%w: diatonic step %d out of range", ErrInvalidInput, step)
	}
	return Pitch{Step: step, Alter: alter, Octave: octave}, nil
}

// FromMIDI spells a MIDI note number with the default spelling
func FromMIDI(midi int) Pitch {
	pc := mod(midi, semitonesPerOctave)
	sp := defaultSpelling[pc]
	octave := floorDiv(midi, semitonesPerOctave) - 1
	return Pitch{Step: sp.step, Alter: sp.alter, Octave: octave}
}

// FromPitchClass places a pitch class (0-11) in octave 4
func FromPitchClass(pc int) Pitch {
	p := FromMIDI(mod(pc, semitonesPerOctave))
	p.Octave = defaultOctave
	return p
}

// ParseNoteName parses names like "C", "C4", "F#3", "Bb2", "E-" or "C#-1".
// A missing octave defaults to 4.
func ParseNoteName(name string) (Pitch, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return Pitch{}, fmt.Errorf("%w: empty note name", ErrInvalidInput)
	}

	step := strings.Index("CDEFGAB", strings.ToUpper(s[:1]))
	if step < 0 {
		return Pitch{}, fmt.Errorf("%w: invalid note letter in %q", ErrInvalidInput, name)
	}

	// Accidentals: '#' sharp, 'b' flat, '-' flat unless it starts a
	// negative octave ("C-1" is C in octave -1, "E-" is E flat)
	alter := 0
	idx := 1
	for idx < len(s) {
		c := s[idx]
		if c == '#' {
			alter++
		} else if c == 'b' || (c == '-' && !(idx+1 < len(s) && isDigit(s[idx+1]))) {
			alter--
		} else {
			break
		}
		idx++
	}

	octave := defaultOctave
	if idx < len(s) {
		o, err := strconv.Atoi(s[idx:])
		if err != nil {
			return Pitch{}, fmt.Errorf("%w: invalid octave in note name %q", ErrInvalidInput, name)
		}
		octave = o
	}

	return Pitch{Step: step, Alter: alter, Octave: octave}, nil
}

// MIDI returns the MIDI note number (may fall outside 0-127 for extreme octaves)
func (p Pitch) MIDI() int {
	return (p.Octave+1)*semitonesPerOctave + stepSemitones[p.Step] + p.Alter
}

// PitchClass returns the pitch reduced modulo 12
func (p Pitch) PitchClass() int {
	return mod(p.MIDI(), semitonesPerOctave)
}

// DiatonicNumber counts letter steps from C0, ignoring accidentals
func (p Pitch) DiatonicNumber() int {
	return p.Octave*stepsPerOctave + p.Step
}

// Name returns the spelled name with octave, e.g. "F#3" or "Bb2"
func (p Pitch) Name() string {
	return p.NameWithoutOctave() + strconv.Itoa(p.Octave)
}

// NameWithoutOctave returns the letter and accidentals only
func (p Pitch) NameWithoutOctave() string {
	acc := ""
	if p.Alter > 0 {
		acc = strings.Repeat("#", p.Alter)
	} else if p.Alter < 0 {
		acc = strings.Repeat("b", -p.Alter)
	}
	return stepLetters[p.Step] + acc
}

func (p Pitch) String() string {
	return p.Name()
}

// Transpose moves the pitch by an interval keeping a correct spelling
func (p Pitch) Transpose(iv Interval) Pitch {
	dn := p.DiatonicNumber() + iv.Steps
	step := mod(dn, stepsPerOctave)
	octave := floorDiv(dn, stepsPerOctave)

	target := p.MIDI() + iv.Semitones
	natural := (octave+1)*semitonesPerOctave + stepSemitones[step]
	return Pitch{Step: step, Alter: target - natural, Octave: octave}
}

// TransposeSemitones moves the pitch chromatically. Whole octaves keep the
// spelling, anything else is respelled from the resulting MIDI number.
func (p Pitch) TransposeSemitones(semitones int) Pitch {
	if semitones%semitonesPerOctave == 0 {
		p.Octave += semitones / semitonesPerOctave
		return p
	}
	return FromMIDI(p.MIDI() + semitones)
}

// SamePitchClass reports whether both pitches sound the same pitch class
func (p Pitch) SamePitchClass(other Pitch) bool {
	return p.PitchClass() == other.PitchClass()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

func floorDiv(a, n int) int {
	q := a / n
	if (a%n != 0) && ((a < 0) != (n < 0)) {
		q--
	}
	return q
}
