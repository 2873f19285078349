package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/magda-composer/internal/composer/tools"
	"github.com/Conceptual-Machines/magda-composer/internal/dsl"
	"github.com/Conceptual-Machines/magda-composer/internal/models"
	"github.com/Conceptual-Machines/magda-composer/internal/music"
)

// DSLResult holds the parsed actions and the voices they produced
type DSLResult struct {
	Actions []map[string]any
	Voices  []music.Voice
}

// ExecuteDSL parses a composer DSL script and runs it
func (s *ComposerService) ExecuteDSL(ctx context.Context, code string) (*DSLResult, error) {
	parser, err := dsl.NewComposerDSLParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create DSL parser: %w", err)
	}

	start := time.Now()
	actions, err := parser.ParseDSL(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", music.ErrInvalidInput, err)
	}
	if s.sentryMetrics != nil {
		s.sentryMetrics.RecordPerformanceMetric("composer.dsl_parse", time.Since(start), map[string]interface{}{
			"actions":     len(actions),
			"code_length": len(code),
		})
	}

	voices, err := s.Execute(ctx, actions)
	if err != nil {
		return nil, err
	}
	return &DSLResult{Actions: actions, Voices: voices}, nil
}

// Execute runs actions in order. isorhythm adds a voice, transpose, lyrics
// and tintinnabuli act on the last voice, hocket replaces the last voice,
// canon and augment_rests act on every voice.
func (s *ComposerService) Execute(ctx context.Context, actions []map[string]any) ([]music.Voice, error) {
	var voices []music.Voice

	for i, action := range actions {
		name, _ := action["action"].(string)
		var err error
		voices, err = s.apply(ctx, voices, name, action)
		if err != nil {
			return nil, fmt.Errorf("action %d (%s): %w", i, name, err)
		}
		if err := s.checkLimit(ctx, CountEvents(voices)); err != nil {
			return nil, fmt.Errorf("action %d (%s): %w", i, name, err)
		}
	}

	return voices, nil
}

func (s *ComposerService) apply(ctx context.Context, voices []music.Voice, name string, action map[string]any) ([]music.Voice, error) {
	switch name {
	case dsl.ActionIsorhythm:
		p := IsorhythmParams{
			Color:       anySlice(action["color"]),
			Talea:       floatSlice(action["talea"]),
			ColorOffset: intValue(action["color_offset"], 0),
			TaleaOffset: intValue(action["talea_offset"], 0),
			Gap:         floatValue(action["gap"], 0),
		}
		if _, ok := action["length"]; ok {
			n := intValue(action["length"], 0)
			p.Length = &n
		}
		v, err := s.Isorhythm(ctx, p)
		if err != nil {
			return nil, err
		}
		return append(voices, v), nil

	case dsl.ActionTranspose:
		last, err := lastVoice(voices)
		if err != nil {
			return nil, err
		}
		voices[last] = tools.Transpose(voices[last], intValue(action["semitones"], 0))
		return voices, nil

	case dsl.ActionLyrics:
		last, err := lastVoice(voices)
		if err != nil {
			return nil, err
		}
		v, err := s.ApplyLyrics(ctx, voices[last], stringValue(action["text"], ""), floatValue(action["min_interval"], 1))
		if err != nil {
			return nil, err
		}
		voices[last] = v
		return voices, nil

	case dsl.ActionTintinnabuli:
		last, err := lastVoice(voices)
		if err != nil {
			return nil, err
		}
		v, err := s.Tintinnabuli(ctx, voices[last], TintinnabuliParams{
			Chord:       anySlice(action["chord"]),
			ChordSymbol: stringValue(action["symbol"], ""),
			Position:    intValue(action["position"], 1),
			Direction:   stringValue(action["direction"], ""),
			Mode:        stringValue(action["mode"], ""),
		})
		if err != nil {
			return nil, err
		}
		return append(voices, v), nil

	case dsl.ActionHocket:
		last, err := lastVoice(voices)
		if err != nil {
			return nil, err
		}
		split, err := s.Hocket(ctx, voices[last], intValue(action["voices"], 0))
		if err != nil {
			return nil, err
		}
		return append(voices[:last], split...), nil

	case dsl.ActionCanon:
		if len(voices) == 0 {
			return nil, fmt.Errorf("%w: no voices to act on", music.ErrInvalidInput)
		}
		return s.Canon(ctx, voices, floatValue(action["delay"], 1), stringValue(action["framing"], ""))

	case dsl.ActionAugmentRests:
		if _, ok := action["voice"]; ok {
			idx := intValue(action["voice"], 0)
			if idx < 0 || idx >= len(voices) {
				return nil, fmt.Errorf("%w: voice %d out of range (have %d)", music.ErrInvalidInput, idx, len(voices))
			}
			voices[idx] = tools.AugmentIntoRests(voices[idx])
			return voices, nil
		}
		for i := range voices {
			voices[i] = tools.AugmentIntoRests(voices[i])
		}
		return voices, nil

	default:
		return nil, fmt.Errorf("%w: unknown action %q", music.ErrInvalidInput, name)
	}
}

// BuildComposition runs a script and packs the result for storage
func (s *ComposerService) BuildComposition(ctx context.Context, name, code, createdBy string) (*models.Composition, error) {
	result, err := s.ExecuteDSL(ctx, code)
	if err != nil {
		return nil, err
	}

	return &models.Composition{
		Name:          name,
		DSL:           code,
		Voices:        RenderVoices(result.Voices),
		Actions:       result.Actions,
		EventCount:    CountEvents(result.Voices),
		DurationBeats: TotalDuration(result.Voices).QuarterLength(),
		CreatedBy:     createdBy,
	}, nil
}

func lastVoice(voices []music.Voice) (int, error) {
	if len(voices) == 0 {
		return 0, fmt.Errorf("%w: no voice to act on, start with isorhythm", music.ErrInvalidInput)
	}
	return len(voices) - 1, nil
}

// Action values come from the parser as typed slices, or as []any and
// float64 when decoded from stored JSON.

func anySlice(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}

func floatSlice(v any) []float64 {
	switch val := v.(type) {
	case []float64:
		return val
	case []any:
		out := make([]float64, 0, len(val))
		for _, x := range val {
			out = append(out, floatValue(x, 0))
		}
		return out
	default:
		return nil
	}
}

func floatValue(v any, def float64) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	default:
		return def
	}
}

func intValue(v any, def int) int {
	switch val := v.(type) {
	case int:
		return val
	case float64:
		return int(val)
	default:
		return def
	}
}

func stringValue(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}
