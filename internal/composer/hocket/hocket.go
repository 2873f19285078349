// Package hocket splits one melodic line across several voices.
package hocket

import (
	"fmt"

	"github.com/Conceptual-Machines/magda-composer/internal/music"
)

// Distribute sends note i of the melody to voice i mod numVoices. Every other
// voice rests for the same duration, so all voices stay aligned with the
// melody. Rests in the melody are rests in every voice and do not advance
// the rotation.
func Distribute(numVoices int, melody music.Voice) ([]music.Voice, error) {
	if numVoices < 1 {
		return nil, fmt.Errorf("%w: number of voices must be at least 1, got %d", music.ErrInvalidInput, numVoices)
	}

	voices := make([]music.Voice, numVoices)
	for j := range voices {
		voices[j] = make(music.Voice, 0, len(melody))
	}

	noteIndex := 0
	for _, e := range melody {
		if e.Rest {
			for j := range voices {
				voices[j] = append(voices[j], music.NewRest(e.Duration))
			}
			continue
		}

		owner := noteIndex % numVoices
		for j := range voices {
			if j == owner {
				voices[j] = append(voices[j], e)
			} else {
				voices[j] = append(voices[j], music.NewRest(e.Duration))
			}
		}
		noteIndex++
	}

	return voices, nil
}
