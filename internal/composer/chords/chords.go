// Package chords spells chord symbols such as "Am7", "Cmaj7" or "Em/G".
package chords

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/magda-composer/internal/music"
)

// Chord qualities
const (
	QualityMajor      = "major"
	QualityMinor      = "minor"
	QualityDiminished = "diminished"
	QualityAugmented  = "augmented"
	QualitySus2       = "sus2"
	QualitySus4       = "sus4"
)

var (
	diminishedFifth = music.Interval{Steps: 4, Semitones: 6}
	augmentedFifth  = music.Interval{Steps: 4, Semitones: 8}
	minorSeventh    = music.Interval{Steps: 6, Semitones: 10}
	majorSeventh    = music.Interval{Steps: 6, Semitones: 11}
	majorNinth      = music.Interval{Steps: 8, Semitones: 14}
	perfectEleventh = music.Interval{Steps: 10, Semitones: 17}
	majorThirteenth = music.Interval{Steps: 12, Semitones: 21}
)

var triads = map[string][]music.Interval{
	QualityMajor:      {music.Unison, music.MajorThird, music.PerfectFifth},
	QualityMinor:      {music.Unison, music.MinorThird, music.PerfectFifth},
	QualityDiminished: {music.Unison, music.MinorThird, diminishedFifth},
	QualityAugmented:  {music.Unison, music.MajorThird, augmentedFifth},
	QualitySus2:       {music.Unison, music.MajorSecond, music.PerfectFifth},
	QualitySus4:       {music.Unison, music.PerfectFourth, music.PerfectFifth},
}

var extensionIntervals = map[string]music.Interval{
	"7":     minorSeventh,
	"min7":  minorSeventh,
	"maj7":  majorSeventh,
	"9":     majorNinth,
	"add9":  majorNinth,
	"11":    perfectEleventh,
	"add11": perfectEleventh,
	"13":    majorThirteenth,
	"add13": majorThirteenth,
}

// Parse spells the tones of a chord symbol with the root in the given
// octave. A slash bass ("Em/G") is prepended one octave below.
func Parse(symbol string, octave int) ([]music.Pitch, error) {
	symbol = strings.TrimSpace(symbol)

	baseChord := symbol
	bassNote := ""
	if strings.Contains(symbol, "/") {
		parts := strings.Split(symbol, "/")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: invalid chord symbol %q", music.ErrInvalidInput, symbol)
		}
		baseChord = strings.TrimSpace(parts[0])
		bassNote = strings.TrimSpace(parts[1])
	}

	rootName, rest, err := splitRoot(baseChord)
	if err != nil {
		return nil, fmt.Errorf("invalid chord root: %w", err)
	}
	root, err := music.ParseNoteName(fmt.Sprintf("%s%d", rootName, octave))
	if err != nil {
		return nil, err
	}

	intervals := buildIntervals(parseQuality(rest), parseExtensions(rest))
	pitches := make([]music.Pitch, 0, len(intervals)+1)
	for _, iv := range intervals {
		pitches = append(pitches, root.Transpose(iv))
	}

	if bassNote != "" {
		bassName, _, err := splitRoot(bassNote)
		if err != nil {
			return nil, fmt.Errorf("invalid bass note: %w", err)
		}
		bass, err := music.ParseNoteName(fmt.Sprintf("%s%d", bassName, octave-1))
		if err != nil {
			return nil, err
		}
		pitches = append([]music.Pitch{bass}, pitches...)
	}

	return pitches, nil
}

// Quality returns the triad quality named by a symbol
func Quality(symbol string) (string, error) {
	_, rest, err := splitRoot(strings.TrimSpace(symbol))
	if err != nil {
		return "", err
	}
	return parseQuality(rest), nil
}

// splitRoot separates "C#m7" into "C#" and "m7"
func splitRoot(chordSymbol string) (string, string, error) {
	if chordSymbol == "" {
		return "", "", fmt.Errorf("%w: empty chord symbol", music.ErrInvalidInput)
	}
	if !strings.ContainsRune("ABCDEFG", rune(chordSymbol[0])) {
		return "", "", fmt.Errorf("%w: invalid root note in %q", music.ErrInvalidInput, chordSymbol)
	}

	n := 1
	if len(chordSymbol) > 1 && (chordSymbol[1] == '#' || chordSymbol[1] == 'b') {
		n = 2
	}
	return chordSymbol[:n], chordSymbol[n:], nil
}

func parseQuality(rest string) string {
	switch {
	case strings.HasPrefix(rest, "m") && !strings.HasPrefix(rest, "maj"):
		return QualityMinor
	case strings.HasPrefix(rest, "dim"):
		return QualityDiminished
	case strings.HasPrefix(rest, "aug"), strings.HasPrefix(rest, "+"):
		return QualityAugmented
	case strings.HasPrefix(rest, "sus2"):
		return QualitySus2
	case strings.HasPrefix(rest, "sus4"), strings.HasPrefix(rest, "sus"):
		return QualitySus4
	default:
		return QualityMajor
	}
}

func parseExtensions(rest string) []string {
	extensions := []string{}

	// maj7 and min7 first so "maj7" does not lose its "m" to the quality
	if strings.Contains(rest, "maj7") {
		extensions = append(extensions, "maj7")
		rest = strings.ReplaceAll(rest, "maj7", "")
	}
	if strings.Contains(rest, "min7") {
		extensions = append(extensions, "min7")
		rest = strings.ReplaceAll(rest, "min7", "")
	}

	for _, marker := range []string{"maj", "min", "m", "dim", "aug", "+", "sus2", "sus4", "sus"} {
		rest = strings.TrimPrefix(rest, marker)
	}

	for _, add := range []string{"add9", "add11", "add13"} {
		if strings.Contains(rest, add) {
			extensions = append(extensions, add)
			rest = strings.ReplaceAll(rest, add, "")
		}
	}
	for _, ext := range []string{"7", "9", "11", "13"} {
		if strings.Contains(rest, ext) {
			extensions = append(extensions, ext)
			rest = strings.ReplaceAll(rest, ext, "")
		}
	}

	return extensions
}

func buildIntervals(quality string, extensions []string) []music.Interval {
	triad, ok := triads[quality]
	if !ok {
		triad = triads[QualityMajor]
	}

	intervals := make([]music.Interval, len(triad), len(triad)+len(extensions))
	copy(intervals, triad)

	seen := map[int]bool{}
	for _, ext := range extensions {
		iv := extensionIntervals[ext]
		if seen[iv.Semitones] {
			continue
		}
		seen[iv.Semitones] = true
		intervals = append(intervals, iv)
	}

	return intervals
}
