// Package scales provides an octave-duplicating pentatonic scale with five
// rotational modes.
package scales

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/magda-composer/internal/music"
)

// Mode selects a rotation of the pentatonic interval list (1-5)
type Mode int

const (
	ModeMajor Mode = 1
	ModeMinor Mode = 5
)

const degreesPerOctave = 5

// Interval list of mode 1: M2 M2 m3 M2 m3
var pentatonicIntervals = [degreesPerOctave]music.Interval{
	music.MajorSecond, music.MajorSecond, music.MinorThird, music.MajorSecond, music.MinorThird,
}

// ParseMode accepts "major", "minor" or a mode number "1" to "5"
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "major":
		return ModeMajor, nil
	case "minor":
		return ModeMinor, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > degreesPerOctave {
		return 0, fmt.Errorf("%w: cannot create a pentatonic scale of mode %q", music.ErrInvalidInput, s)
	}
	return Mode(n), nil
}

func (m Mode) String() string {
	switch m {
	case ModeMajor:
		return "major"
	case ModeMinor:
		return "minor"
	default:
		return strconv.Itoa(int(m))
	}
}

// Pentatonic is a concrete pentatonic scale on a tonic
type Pentatonic struct {
	tonic   music.Pitch
	mode    Mode
	degrees [degreesPerOctave]music.Pitch
}

// NewPentatonic builds the scale, spelling each degree by interval
// arithmetic from the tonic
func NewPentatonic(tonic music.Pitch, mode Mode) (*Pentatonic, error) {
	if mode < 1 || mode > degreesPerOctave {
		return nil, fmt.Errorf("%w: cannot create a pentatonic scale of mode %d", music.ErrInvalidInput, int(mode))
	}

	s := &Pentatonic{tonic: tonic, mode: mode}
	p := tonic
	for i := 0; i < degreesPerOctave; i++ {
		s.degrees[i] = p
		p = p.Transpose(s.interval(i))
	}
	return s, nil
}

func (s *Pentatonic) interval(i int) music.Interval {
	return pentatonicIntervals[(i+int(s.mode)-1)%degreesPerOctave]
}

// Tonic returns the first degree
func (s *Pentatonic) Tonic() music.Pitch {
	return s.tonic
}

// Mode returns the rotation the scale was built with
func (s *Pentatonic) Mode() Mode {
	return s.mode
}

// Intervals returns the step intervals of this mode
func (s *Pentatonic) Intervals() []music.Interval {
	out := make([]music.Interval, degreesPerOctave)
	for i := range out {
		out[i] = s.interval(i)
	}
	return out
}

// Pitches returns the tonic up to its octave, inclusive
func (s *Pentatonic) Pitches() []music.Pitch {
	out := make([]music.Pitch, 0, degreesPerOctave+1)
	out = append(out, s.degrees[:]...)
	return append(out, s.tonic.TransposeSemitones(12))
}

// PitchFromDegree returns the pitch of a 1-based degree. Degrees outside
// 1-5 continue into neighbouring octaves.
func (s *Pentatonic) PitchFromDegree(degree int) music.Pitch {
	idx := degree - 1
	octaves := floorDiv(idx, degreesPerOctave)
	return s.degrees[mod(idx, degreesPerOctave)].TransposeSemitones(12 * octaves)
}

// Degree returns the 1-based degree of a pitch, compared by pitch class
func (s *Pentatonic) Degree(p music.Pitch) (int, error) {
	for i, d := range s.degrees {
		if d.SamePitchClass(p) {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %s is not in the %s pentatonic scale on %s",
		music.ErrInvalidInput, p.Name(), s.mode, s.tonic.NameWithoutOctave())
}

// Transpose moves every note of the voice by scale steps. Rests are kept.
func (s *Pentatonic) Transpose(voice music.Voice, steps int) (music.Voice, error) {
	out := make(music.Voice, len(voice))
	for i, e := range voice {
		if !e.IsNote() {
			out[i] = e
			continue
		}
		degree, err := s.Degree(e.Pitch)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		base := s.degrees[degree-1]
		octaves := floorDiv(e.Pitch.MIDI()-base.MIDI(), 12)
		absolute := degree + octaves*degreesPerOctave + steps
		out[i] = e.WithPitch(s.PitchFromDegree(absolute))
	}
	return out, nil
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
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
