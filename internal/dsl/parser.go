// Package dsl parses composer DSL scripts into ordered actions.
package dsl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/grammar-school-go/gs"
	"github.com/Conceptual-Machines/magda-composer/internal/logger"
)

// Action names produced by the parser
const (
	ActionIsorhythm    = "isorhythm"
	ActionTranspose    = "transpose"
	ActionHocket       = "hocket"
	ActionCanon        = "canon"
	ActionAugmentRests = "augment_rests"
	ActionLyrics       = "lyrics"
	ActionTintinnabuli = "tintinnabuli"
)

// ComposerDSLParser parses composer DSL code using Grammar School
type ComposerDSLParser struct {
	engine      *gs.Engine
	composerDSL *ComposerDSL
	actions     []map[string]any
}

// ComposerDSL implements the DSL side-effect methods
type ComposerDSL struct {
	parser *ComposerDSLParser
}

// NewComposerDSLParser creates a new composer DSL parser
func NewComposerDSLParser() (*ComposerDSLParser, error) {
	parser := &ComposerDSLParser{
		composerDSL: &ComposerDSL{},
		actions:     make([]map[string]any, 0),
	}

	parser.composerDSL.parser = parser

	grammar := GetComposerDSLGrammar()
	larkParser := gs.NewLarkParser()

	engine, err := gs.NewEngine(grammar, parser.composerDSL, larkParser)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	parser.engine = engine
	return parser, nil
}

// ParseDSL parses DSL code and returns actions in statement order. Scripts
// may span several lines; each non-empty line is one or more statements.
func (p *ComposerDSLParser) ParseDSL(dslCode string) ([]map[string]any, error) {
	code := normalize(dslCode)
	if code == "" {
		return nil, fmt.Errorf("empty DSL code")
	}

	p.actions = make([]map[string]any, 0)

	ctx := context.Background()
	if err := p.engine.Execute(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to execute DSL: %w", err)
	}

	if len(p.actions) == 0 {
		return nil, fmt.Errorf("no actions found in DSL code")
	}

	logger.Debug("Composer DSL parsed", logger.Fields{"actions": len(p.actions)})
	return p.actions, nil
}

// normalize joins lines with "; " and drops blank lines and trailing separators
func normalize(code string) string {
	var statements []string
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimRight(line, "; ")
		if line != "" {
			statements = append(statements, line)
		}
	}
	return strings.Join(statements, "; ")
}

// Isorhythm handles isorhythm() calls
func (d *ComposerDSL) Isorhythm(args gs.Args) error {
	color := stringArg(args, "color")
	if color == "" {
		return fmt.Errorf("isorhythm: missing color")
	}
	taleaText := stringArg(args, "talea")
	if taleaText == "" {
		return fmt.Errorf("isorhythm: missing talea")
	}
	talea, err := parseNumbers(taleaText)
	if err != nil {
		return fmt.Errorf("isorhythm: talea: %w", err)
	}

	action := map[string]any{
		"action":       ActionIsorhythm,
		"color":        strings.Fields(color),
		"talea":        talea,
		"color_offset": intArg(args, "color_offset", 0),
		"talea_offset": intArg(args, "talea_offset", 0),
		"gap":          numberArg(args, "gap", 0),
	}
	if _, ok := args["length"]; ok {
		action["length"] = intArg(args, "length", 0)
	}

	d.parser.actions = append(d.parser.actions, action)
	return nil
}

// Transpose handles transpose() calls
func (d *ComposerDSL) Transpose(args gs.Args) error {
	d.parser.actions = append(d.parser.actions, map[string]any{
		"action":    ActionTranspose,
		"semitones": intArg(args, "semitones", 0),
	})
	return nil
}

// Hocket handles hocket() calls
func (d *ComposerDSL) Hocket(args gs.Args) error {
	voices := intArg(args, "voices", 0)
	if voices < 1 {
		return fmt.Errorf("hocket: voices must be at least 1")
	}
	d.parser.actions = append(d.parser.actions, map[string]any{
		"action": ActionHocket,
		"voices": voices,
	})
	return nil
}

// Canon handles canon() calls
func (d *ComposerDSL) Canon(args gs.Args) error {
	d.parser.actions = append(d.parser.actions, map[string]any{
		"action":  ActionCanon,
		"delay":   numberArg(args, "delay", 1),
		"framing": stringArgDefault(args, "framing", "silence"),
	})
	return nil
}

// AugmentRests handles augment_rests() calls. Without a voice index every
// voice is affected.
func (d *ComposerDSL) AugmentRests(args gs.Args) error {
	action := map[string]any{"action": ActionAugmentRests}
	if _, ok := args["voice"]; ok {
		action["voice"] = intArg(args, "voice", 0)
	}
	d.parser.actions = append(d.parser.actions, action)
	return nil
}

// Lyrics handles lyrics() calls
func (d *ComposerDSL) Lyrics(args gs.Args) error {
	text := stringArg(args, "text")
	if text == "" {
		return fmt.Errorf("lyrics: missing text")
	}
	d.parser.actions = append(d.parser.actions, map[string]any{
		"action":       ActionLyrics,
		"text":         text,
		"min_interval": numberArg(args, "min_interval", 1),
	})
	return nil
}

// Tintinnabuli handles tintinnabuli() calls
func (d *ComposerDSL) Tintinnabuli(args gs.Args) error {
	chord := stringArg(args, "chord")
	symbol := stringArg(args, "symbol")
	if chord == "" && symbol == "" {
		return fmt.Errorf("tintinnabuli: missing chord or symbol")
	}

	action := map[string]any{
		"action":    ActionTintinnabuli,
		"position":  intArg(args, "position", 1),
		"direction": stringArgDefault(args, "direction", "up"),
		"mode":      stringArgDefault(args, "mode", "diatonic"),
	}
	if chord != "" {
		action["chord"] = strings.Fields(chord)
	} else {
		action["symbol"] = symbol
	}

	d.parser.actions = append(d.parser.actions, action)
	return nil
}

func stringArg(args gs.Args, name string) string {
	if v, ok := args[name]; ok && v.Kind == gs.ValueString {
		return strings.Trim(v.Str, "\"")
	}
	return ""
}

func stringArgDefault(args gs.Args, name, def string) string {
	if s := stringArg(args, name); s != "" {
		return s
	}
	return def
}

func numberArg(args gs.Args, name string, def float64) float64 {
	if v, ok := args[name]; ok && v.Kind == gs.ValueNumber {
		return v.Num
	}
	return def
}

func intArg(args gs.Args, name string, def int) int {
	return int(numberArg(args, name, float64(def)))
}

func parseNumbers(s string) ([]float64, error) {
	fields := strings.Fields(s)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}
