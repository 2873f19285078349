package dsl

// GetComposerDSLGrammar returns the Lark grammar definition for the composer DSL.
// Statements are separated by ";" and run in order against a list of voices.
func GetComposerDSLGrammar() string {
	return `
// Composer DSL Grammar - algorithmic composition steps
// SYNTAX:
//   isorhythm(color="C4 D4 E4 F4 G4", talea="1 1 2", length=18, gap=0.5)
//   transpose(semitones=12)
//   hocket(voices=4)
//   canon(delay=2, framing=silence)
//   augment_rests()
//   lyrics(text="Plan-ge qua-si vir-go", min_interval=1)
//   tintinnabuli(chord="A C E", position=1, direction=up_alternate, mode=diatonic)
//   tintinnabuli(symbol="Am", direction=down)

// ---------- Start rule ----------
start: statement (";" SP? statement)*

statement: isorhythm_call
         | transpose_call
         | hocket_call
         | canon_call
         | augment_rests_call
         | lyrics_call
         | tintinnabuli_call

// ---------- Isorhythm: adds a voice ----------
isorhythm_call: "isorhythm" "(" isorhythm_params ")"
isorhythm_params: isorhythm_param ("," SP? isorhythm_param)*
isorhythm_param: "color" "=" STRING         // space separated note names
               | "talea" "=" STRING         // space separated quarter lengths
               | "length" "=" NUMBER
               | "color_offset" "=" NUMBER
               | "talea_offset" "=" NUMBER
               | "gap" "=" NUMBER

// ---------- Transformations of the last voice ----------
transpose_call: "transpose" "(" "semitones" "=" NUMBER ")"

hocket_call: "hocket" "(" "voices" "=" NUMBER ")"

lyrics_call: "lyrics" "(" lyrics_params ")"
lyrics_params: lyrics_param ("," SP? lyrics_param)*
lyrics_param: "text" "=" STRING
            | "min_interval" "=" NUMBER

tintinnabuli_call: "tintinnabuli" "(" tintinnabuli_params ")"
tintinnabuli_params: tintinnabuli_param ("," SP? tintinnabuli_param)*
tintinnabuli_param: "chord" "=" STRING         // space separated note names
                  | "symbol" "=" STRING        // chord symbol, e.g. "Am"
                  | "position" "=" NUMBER
                  | "direction" "=" DIRECTION
                  | "mode" "=" T_MODE

// ---------- Transformations of all voices ----------
canon_call: "canon" "(" canon_params ")"
canon_params: canon_param ("," SP? canon_param)*
canon_param: "delay" "=" NUMBER
           | "framing" "=" FRAMING

augment_rests_call: "augment_rests" "(" augment_rests_params? ")"
augment_rests_params: "voice" "=" NUMBER

// ---------- Terminals ----------
FRAMING: "silence" | "augment"
DIRECTION: "up_alternate" | "down_alternate" | "up" | "down"
T_MODE: "diatonic" | "chromatic"
SP: " "+
STRING: /"[^"]*"/
NUMBER: /-?\d+(\.\d+)?/
`
}
