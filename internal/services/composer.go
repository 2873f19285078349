package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/magda-composer/internal/composer/canon"
	"github.com/Conceptual-Machines/magda-composer/internal/composer/chords"
	"github.com/Conceptual-Machines/magda-composer/internal/composer/hocket"
	"github.com/Conceptual-Machines/magda-composer/internal/composer/isorhythm"
	"github.com/Conceptual-Machines/magda-composer/internal/composer/lyrics"
	"github.com/Conceptual-Machines/magda-composer/internal/composer/scales"
	"github.com/Conceptual-Machines/magda-composer/internal/composer/settheory"
	"github.com/Conceptual-Machines/magda-composer/internal/composer/tintinnabuli"
	"github.com/Conceptual-Machines/magda-composer/internal/config"
	"github.com/Conceptual-Machines/magda-composer/internal/logger"
	"github.com/Conceptual-Machines/magda-composer/internal/metrics"
	"github.com/Conceptual-Machines/magda-composer/internal/models"
	"github.com/Conceptual-Machines/magda-composer/internal/music"
	"github.com/getsentry/sentry-go"
)

// Octave used when spelling chord symbols
const chordOctave = 4

type roleKey struct{}

// WithRole stores the caller's role on the context. The role decides the
// event limit.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, models.NormalizeRole(role))
}

func roleFromContext(ctx context.Context) string {
	if role, ok := ctx.Value(roleKey{}).(string); ok {
		return role
	}
	return models.RoleUser
}

// ComposerService runs composition operations with logging and metrics
type ComposerService struct {
	cfg           *config.Config
	metrics       *metrics.Client
	sentryMetrics *metrics.SentryMetrics
	counters      *metrics.CompositionCounters
}

// NewComposerService creates a composer service. The metrics clients may be nil.
func NewComposerService(cfg *config.Config, cw *metrics.Client, sentryMetrics *metrics.SentryMetrics) *ComposerService {
	return &ComposerService{
		cfg:           cfg,
		metrics:       cw,
		sentryMetrics: sentryMetrics,
		counters:      metrics.NewCompositionCounters(),
	}
}

// Counters returns the per-operation totals of this service
func (s *ComposerService) Counters() *metrics.CompositionCounters {
	return s.counters
}

// observe wraps an operation in a span, a log line and a CloudWatch metric.
// fn returns the number of events it produced.
func (s *ComposerService) observe(ctx context.Context, operation string, fn func() (int, error)) error {
	start := time.Now()

	var span *sentry.Span
	if s.sentryMetrics != nil {
		span = s.sentryMetrics.StartComposition(ctx, operation)
	}

	events, err := fn()
	duration := time.Since(start)

	if s.sentryMetrics != nil {
		s.sentryMetrics.FinishComposition(span, events, duration, err)
	}
	s.metrics.RecordComposition(operation, events, duration, err == nil)
	s.counters.Record(operation, events, err == nil)

	if err != nil {
		logger.Warn("Composition failed", logger.Fields{
			"operation": operation,
			"error":     err.Error(),
		})
		return err
	}
	logger.LogComposition(ctx, operation, duration, events, nil)
	return nil
}

// EventLimit returns the event cap for the caller on ctx
func (s *ComposerService) EventLimit(ctx context.Context) int {
	return s.cfg.EventLimit(roleFromContext(ctx))
}

func (s *ComposerService) checkLimit(ctx context.Context, events int) error {
	if limit := s.EventLimit(ctx); events > limit {
		return fmt.Errorf("%w: %d events exceeds the limit of %d", music.ErrInvalidInput, events, limit)
	}
	return nil
}

// IsorhythmParams are the inputs of one isorhythm generation
type IsorhythmParams struct {
	Color       []any
	Talea       []float64
	Length      *int
	ColorOffset int
	TaleaOffset int
	Gap         float64
}

// Isorhythm generates an isorhythmic voice. The event count is checked
// against the limit before anything is generated.
func (s *ComposerService) Isorhythm(ctx context.Context, p IsorhythmParams) (music.Voice, error) {
	var voice music.Voice
	err := s.observe(ctx, "isorhythm", func() (int, error) {
		v, err := s.isorhythm(ctx, p)
		voice = v
		return len(v), err
	})
	return voice, err
}

func (s *ComposerService) isorhythm(ctx context.Context, p IsorhythmParams) (music.Voice, error) {
	color, err := music.ResolvePitches(p.Color)
	if err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}
	talea, err := music.Durations(p.Talea)
	if err != nil {
		return nil, fmt.Errorf("talea: %w", err)
	}
	if p.Gap < 0 {
		return nil, fmt.Errorf("%w: gap must not be negative", music.ErrInvalidInput)
	}

	opts := isorhythm.Options{
		Length:      p.Length,
		ColorOffset: p.ColorOffset,
		TaleaOffset: p.TaleaOffset,
		Gap:         music.Duration(p.Gap),
	}
	if err := s.checkLimit(ctx, isorhythm.EventCount(len(color), len(talea), opts)); err != nil {
		return nil, err
	}
	return isorhythm.Generate(color, talea, opts)
}

// Canon offsets each voice by index times delay
func (s *ComposerService) Canon(ctx context.Context, voices []music.Voice, delay float64, framing string) ([]music.Voice, error) {
	var out []music.Voice
	err := s.observe(ctx, "canon", func() (int, error) {
		f, err := canon.ParseFraming(framing)
		if err != nil {
			return 0, err
		}
		out, err = canon.Canonize(voices, music.Duration(delay), f)
		return CountEvents(out), err
	})
	return out, err
}

// Hocket spreads a melody over several voices
func (s *ComposerService) Hocket(ctx context.Context, melody music.Voice, numVoices int) ([]music.Voice, error) {
	var out []music.Voice
	err := s.observe(ctx, "hocket", func() (int, error) {
		// compared by division so a huge voice count cannot wrap
		if limit := s.EventLimit(ctx); len(melody) > 0 && numVoices > limit/len(melody) {
			return 0, fmt.Errorf("%w: %d voices of %d events exceeds the limit of %d",
				music.ErrInvalidInput, numVoices, len(melody), limit)
		}
		var err error
		out, err = hocket.Distribute(numVoices, melody)
		return CountEvents(out), err
	})
	return out, err
}

// TintinnabuliParams configure a T-voice. The chord is given either as
// pitches or as a symbol such as "Am".
type TintinnabuliParams struct {
	Chord       []any
	ChordSymbol string
	Position    int
	Direction   string
	Mode        string
}

// Tintinnabuli builds the T-voice answering a melody
func (s *ComposerService) Tintinnabuli(ctx context.Context, melody music.Voice, p TintinnabuliParams) (music.Voice, error) {
	var out music.Voice
	err := s.observe(ctx, "tintinnabuli", func() (int, error) {
		chord, err := tintinnabuliChord(p)
		if err != nil {
			return 0, fmt.Errorf("chord: %w", err)
		}
		opts, err := tintinnabuliOptions(p)
		if err != nil {
			return 0, err
		}
		out, err = tintinnabuli.TVoice(melody, chord, opts)
		return len(out), err
	})
	return out, err
}

func tintinnabuliChord(p TintinnabuliParams) ([]music.Pitch, error) {
	if len(p.Chord) == 0 && p.ChordSymbol != "" {
		return chords.Parse(p.ChordSymbol, chordOctave)
	}
	return music.ResolvePitches(p.Chord)
}

func tintinnabuliOptions(p TintinnabuliParams) (tintinnabuli.Options, error) {
	opts := tintinnabuli.DefaultOptions()
	if p.Position != 0 {
		opts.Position = p.Position
	}
	if p.Direction != "" {
		d, err := tintinnabuli.ParseDirection(p.Direction)
		if err != nil {
			return opts, err
		}
		opts.Direction = d
	}
	if p.Mode != "" {
		m, err := tintinnabuli.ParseMode(p.Mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}
	return opts, nil
}

// Syllabify splits hyphenated text into lyrics
func (s *ComposerService) Syllabify(ctx context.Context, text string) []music.Lyric {
	var out []music.Lyric
	_ = s.observe(ctx, "syllabify", func() (int, error) {
		out = lyrics.TextToLyrics(text)
		return len(out), nil
	})
	return out
}

// ApplyLyrics attaches text to a melody
func (s *ComposerService) ApplyLyrics(ctx context.Context, melody music.Voice, text string, minInterval float64) (music.Voice, error) {
	var out music.Voice
	err := s.observe(ctx, "lyrics", func() (int, error) {
		if minInterval < 0 {
			return 0, fmt.Errorf("%w: min_interval must not be negative", music.ErrInvalidInput)
		}
		out = lyrics.Apply(melody, lyrics.TextToLyrics(text), music.Duration(minInterval))
		return len(out), nil
	})
	return out, err
}

// Pentatonic builds a pentatonic scale on a tonic
func (s *ComposerService) Pentatonic(ctx context.Context, tonic any, mode string) (*scales.Pentatonic, error) {
	var scale *scales.Pentatonic
	err := s.observe(ctx, "pentatonic", func() (int, error) {
		var err error
		scale, err = pentatonic(tonic, mode)
		if err != nil {
			return 0, err
		}
		return len(scale.Pitches()), nil
	})
	return scale, err
}

// ScaleTranspose moves a melody by scale steps within a pentatonic scale
func (s *ComposerService) ScaleTranspose(ctx context.Context, tonic any, mode string, melody music.Voice, steps int) (music.Voice, error) {
	var out music.Voice
	err := s.observe(ctx, "scale_transpose", func() (int, error) {
		scale, err := pentatonic(tonic, mode)
		if err != nil {
			return 0, err
		}
		out, err = scale.Transpose(melody, steps)
		return len(out), err
	})
	return out, err
}

func pentatonic(tonic any, mode string) (*scales.Pentatonic, error) {
	spec, err := music.ParsePitchSpec(tonic)
	if err != nil {
		return nil, fmt.Errorf("tonic: %w", err)
	}
	p, err := spec.Resolve()
	if err != nil {
		return nil, fmt.Errorf("tonic: %w", err)
	}
	m, err := scales.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return scales.NewPentatonic(p, m)
}

// SetAnalysis collects the set-class properties of a pitch-class set
type SetAnalysis struct {
	PitchClasses          []int      `json:"pitch_classes"`
	NormalOrder           []int      `json:"normal_order"`
	NormalOrderTransposed []int      `json:"normal_order_transposed"`
	PrimeForm             []int      `json:"prime_form"`
	ForteClass            string     `json:"forte_class"`
	ForteClassTnI         string     `json:"forte_class_tni"`
	IntervalVector        [6]int     `json:"interval_vector"`
	FourierMagnitudes     [6]float64 `json:"fourier_magnitudes"`
	Inversion             []int      `json:"inversion"`
	Complement            []int      `json:"complement"`
}

// AnalyzeSet computes normal order, prime form, Forte name and related data
func (s *ComposerService) AnalyzeSet(ctx context.Context, pcs []any) (*SetAnalysis, error) {
	var analysis *SetAnalysis
	err := s.observe(ctx, "set_analyze", func() (int, error) {
		set, err := settheory.FromSpecs(pcs)
		if err != nil {
			return 0, err
		}
		analysis = &SetAnalysis{
			PitchClasses:          []int(set),
			NormalOrder:           settheory.NormalOrder(set, false),
			NormalOrderTransposed: settheory.NormalOrder(set, true),
			PrimeForm:             settheory.PrimeForm(set),
			ForteClass:            settheory.ForteClass(set),
			ForteClassTnI:         settheory.ForteClassTnI(set),
			IntervalVector:        settheory.IntervalVector(set),
			FourierMagnitudes:     settheory.FourierMagnitudes(set),
			Inversion:             settheory.Inverted(set, false),
			Complement:            settheory.Complement(set, false),
		}
		return len(set), nil
	})
	return analysis, err
}

// Subsets lists the distinct Forte classes of the proper subsets of a set
func (s *ComposerService) Subsets(ctx context.Context, pcs []any) ([]string, error) {
	var out []string
	err := s.observe(ctx, "set_subsets", func() (int, error) {
		set, err := settheory.FromSpecs(pcs)
		if err != nil {
			return 0, err
		}
		out = settheory.Subsets(set)
		return len(out), nil
	})
	return out, err
}

// ForteSet returns the prime form of a named Forte class as pitch-class values
func (s *ComposerService) ForteSet(name string) ([]any, error) {
	set, ok := settheory.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown Forte class %q", music.ErrInvalidInput, name)
	}
	pcs := make([]any, len(set))
	for i, pc := range set {
		pcs[i] = pc
	}
	return pcs, nil
}

// SetComparison relates two pitch-class sets
type SetComparison struct {
	ForteA    string `json:"forte_a"`
	ForteB    string `json:"forte_b"`
	SameClass bool   `json:"same_class"`
	ZRelated  bool   `json:"z_related"`
	// T is set when b is a transposition of a
	T *int `json:"t,omitempty"`
}

// CompareSets reports whether two sets share a set class, are Z-related, or
// are transpositions of each other
func (s *ComposerService) CompareSets(ctx context.Context, a, b []any) (*SetComparison, error) {
	var cmp *SetComparison
	err := s.observe(ctx, "set_compare", func() (int, error) {
		sa, err := settheory.FromSpecs(a)
		if err != nil {
			return 0, fmt.Errorf("a: %w", err)
		}
		sb, err := settheory.FromSpecs(b)
		if err != nil {
			return 0, fmt.Errorf("b: %w", err)
		}

		cmp = &SetComparison{
			ForteA:    settheory.ForteClass(sa),
			ForteB:    settheory.ForteClass(sb),
			SameClass: settheory.ForteClassTnI(sa) == settheory.ForteClassTnI(sb),
			ZRelated:  settheory.ZRelated(sa, sb),
		}
		if cmp.ForteA == cmp.ForteB {
			n, err := settheory.TOperator(sa, sb)
			if err != nil {
				return 0, err
			}
			cmp.T = &n
		}
		return 2, nil
	})
	return cmp, err
}

// TOperator returns n such that Tn(a) equals b in normal order
func (s *ComposerService) TOperator(ctx context.Context, a, b []any) (int, error) {
	var n int
	err := s.observe(ctx, "set_t_operator", func() (int, error) {
		sa, err := settheory.FromSpecs(a)
		if err != nil {
			return 0, fmt.Errorf("a: %w", err)
		}
		sb, err := settheory.FromSpecs(b)
		if err != nil {
			return 0, fmt.Errorf("b: %w", err)
		}
		n, err = settheory.TOperator(sa, sb)
		return 1, err
	})
	return n, err
}
