// Package isorhythm combines an independent pitch cycle (color) with an
// independent rhythm cycle (talea).
package isorhythm

import (
	"fmt"
	"math"

	"github.com/Conceptual-Machines/magda-composer/internal/music"
)

// Options controls a single generation
type Options struct {
	// Length is the number of sounding events. Nil means one full cycle,
	// lcm(len(color), len(talea)).
	Length *int

	// Rotation applied to each cycle before indexing. Negative offsets
	// rotate right.
	ColorOffset int
	TaleaOffset int

	// Gap, when positive, inserts a rest of this length after every event
	Gap music.Duration
}

// WithLength is a helper for building Options with an explicit length
func WithLength(n int) *int {
	return &n
}

// Generate pairs color[(i+ColorOffset) mod m] with talea[(i+TaleaOffset) mod n]
// for i in [0, length).
func Generate(color []music.Pitch, talea []music.Duration, opts Options) (music.Voice, error) {
	if len(color) == 0 {
		return nil, fmt.Errorf("%w: color must not be empty", music.ErrInvalidInput)
	}
	if len(talea) == 0 {
		return nil, fmt.Errorf("%w: talea must not be empty", music.ErrInvalidInput)
	}
	for i, d := range talea {
		if d <= 0 {
			return nil, fmt.Errorf("%w: talea duration %d must be positive", music.ErrInvalidInput, i)
		}
	}

	length := CycleLength(len(color), len(talea))
	if opts.Length != nil {
		if *opts.Length < 0 {
			return nil, fmt.Errorf("%w: length must not be negative, got %d", music.ErrInvalidInput, *opts.Length)
		}
		length = *opts.Length
	}

	capacity := length
	if opts.Gap > 0 {
		if length > math.MaxInt/2 {
			return nil, fmt.Errorf("%w: length %d is too large to interleave with rests", music.ErrInvalidInput, length)
		}
		capacity *= 2
	}
	voice := make(music.Voice, 0, capacity)

	for i := 0; i < length; i++ {
		p := color[index(i+opts.ColorOffset, len(color))]
		d := talea[index(i+opts.TaleaOffset, len(talea))]
		voice = append(voice, music.NewNote(p, d))
		if opts.Gap > 0 {
			voice = append(voice, music.NewRest(opts.Gap))
		}
	}

	return voice, nil
}

// EventCount returns how many events Generate will emit, rests included.
// The count saturates at math.MaxInt.
func EventCount(colorLen, taleaLen int, opts Options) int {
	n := CycleLength(colorLen, taleaLen)
	if opts.Length != nil {
		n = *opts.Length
	}
	if opts.Gap > 0 {
		if n > math.MaxInt/2 {
			return math.MaxInt
		}
		n *= 2
	}
	return n
}

// CycleLength is the number of steps before color and talea line up again
func CycleLength(m, n int) int {
	if m <= 0 || n <= 0 {
		return 0
	}
	q := m / gcd(m, n)
	if q > math.MaxInt/n {
		return math.MaxInt
	}
	return q * n
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func index(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}
