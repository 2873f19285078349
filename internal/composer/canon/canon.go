// Package canon staggers voices in time to build imitative textures.
package canon

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/magda-composer/internal/music"
)

// FramingType decides how the delay of a following voice is filled
type FramingType int

const (
	// FramingSilence prepends a rest
	FramingSilence FramingType = iota
	// FramingAugment lengthens the first note
	FramingAugment
)

func (f FramingType) String() string {
	switch f {
	case FramingSilence:
		return "silence"
	case FramingAugment:
		return "augment"
	default:
		return fmt.Sprintf("FramingType(%d)", int(f))
	}
}

// ParseFraming accepts "silence" or "augment" (case-insensitive)
func ParseFraming(s string) (FramingType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silence", "":
		return FramingSilence, nil
	case "augment":
		return FramingAugment, nil
	default:
		return 0, fmt.Errorf("%w: unknown framing %q (want silence or augment)", music.ErrInvalidInput, s)
	}
}

// Canonize delays voice k by delay*k. Voice 0 is returned as is. The input
// voices are never modified.
func Canonize(voices []music.Voice, delay music.Duration, framing FramingType) ([]music.Voice, error) {
	if delay < 0 {
		return nil, fmt.Errorf("%w: delay must not be negative, got %g", music.ErrInvalidInput, float64(delay))
	}
	if framing != FramingSilence && framing != FramingAugment {
		return nil, fmt.Errorf("%w: unknown framing %d", music.ErrInvalidInput, int(framing))
	}

	out := make([]music.Voice, len(voices))
	for k, v := range voices {
		shift := delay * music.Duration(k)
		if k == 0 || shift == 0 {
			out[k] = v.Clone()
			continue
		}
		switch framing {
		case FramingSilence:
			out[k] = prependRest(v, shift)
		case FramingAugment:
			out[k] = augmentFirstNote(v, shift)
		}
	}
	return out, nil
}

func prependRest(v music.Voice, d music.Duration) music.Voice {
	out := make(music.Voice, 0, len(v)+1)
	out = append(out, music.NewRest(d))
	return append(out, v...)
}

func augmentFirstNote(v music.Voice, d music.Duration) music.Voice {
	out := v.Clone()
	for i, e := range out {
		if e.IsNote() {
			out[i] = e.WithDuration(e.Duration + d)
			break
		}
	}
	return out
}
