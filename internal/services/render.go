package services

import (
	"fmt"

	"github.com/Conceptual-Machines/magda-composer/internal/composer/tools"
	"github.com/Conceptual-Machines/magda-composer/internal/models"
	"github.com/Conceptual-Machines/magda-composer/internal/music"
)

// Velocity given to every rendered note
const defaultVelocity = 100

// RenderVoices lays each voice out on a beat timeline
func RenderVoices(voices []music.Voice) []models.RenderedVoice {
	rendered := make([]models.RenderedVoice, 0, len(voices))
	for i, v := range voices {
		rendered = append(rendered, RenderVoice(i, v))
	}
	return rendered
}

// RenderVoice converts a single voice
func RenderVoice(index int, v music.Voice) models.RenderedVoice {
	timeline := v.Timeline()
	events := make([]models.NoteEvent, 0, len(timeline))
	for _, te := range timeline {
		ev := models.NoteEvent{
			StartBeats:    te.Offset.QuarterLength(),
			DurationBeats: te.Event.Duration.QuarterLength(),
		}
		if te.Event.Rest {
			ev.IsRest = true
		} else {
			ev.MidiNoteNumber = te.Event.Pitch.MIDI()
			ev.PitchName = te.Event.Pitch.Name()
			ev.Velocity = defaultVelocity
		}
		if te.Event.Lyric != nil {
			ev.Lyric = te.Event.Lyric.Text
			ev.Syllabic = te.Event.Lyric.Syllabic
		}
		events = append(events, ev)
	}

	return models.RenderedVoice{
		Index:         index,
		DurationBeats: v.Duration().QuarterLength(),
		Events:        events,
	}
}

// CountEvents returns the number of events across all voices
func CountEvents(voices []music.Voice) int {
	return tools.NewScore(voices...).EventCount()
}

// TotalDuration returns the length of the longest voice
func TotalDuration(voices []music.Voice) music.Duration {
	return tools.NewScore(voices...).Duration()
}

// DecodeVoice builds a voice from request events
func DecodeVoice(inputs []models.EventInput) (music.Voice, error) {
	voice := make(music.Voice, 0, len(inputs))
	for i, in := range inputs {
		d, err := music.NewDuration(in.Duration)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		if in.Rest {
			voice = append(voice, music.NewRest(d))
			continue
		}
		spec, err := music.ParsePitchSpec(in.Pitch)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		p, err := spec.Resolve()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		voice = append(voice, music.NewNote(p, d))
	}
	return voice, nil
}

// DecodeVoices decodes several voices
func DecodeVoices(inputs [][]models.EventInput) ([]music.Voice, error) {
	voices := make([]music.Voice, 0, len(inputs))
	for i, in := range inputs {
		v, err := DecodeVoice(in)
		if err != nil {
			return nil, fmt.Errorf("voice %d: %w", i, err)
		}
		voices = append(voices, v)
	}
	return voices, nil
}
