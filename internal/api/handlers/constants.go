package handlers

const (
	// Request limits
	maxDSLLength    = 64 * 1024 // Longest accepted DSL script in bytes
	maxHocketVoices = 64

	// Lyrics: notes shorter than this take a two-note melisma
	defaultMinInterval = 1.0
)
