package music

import "fmt"

// Syllabic positions of a lyric syllable within its word
const (
	SyllabicSingle = "single"
	SyllabicBegin  = "begin"
	SyllabicMiddle = "middle"
	SyllabicEnd    = "end"
)

// Lyric is one syllable attached to a note
type Lyric struct {
	Text     string `json:"text"`
	Syllabic string `json:"syllabic"`
}

// Event is either a sounding note (Pitch, Duration) or a rest carrying only
// a Duration. Events are plain values and safe to copy.
type Event struct {
	Pitch    Pitch
	Duration Duration
	Rest     bool
	Lyric    *Lyric
}

// NewNote creates a sounding event
func NewNote(p Pitch, d Duration) Event {
	return Event{Pitch: p, Duration: d}
}

// NewRest creates a silent event
func NewRest(d Duration) Event {
	return Event{Duration: d, Rest: true}
}

// IsNote reports whether the event sounds
func (e Event) IsNote() bool {
	return !e.Rest
}

// WithDuration returns a copy with a different duration
func (e Event) WithDuration(d Duration) Event {
	e.Duration = d
	return e
}

// WithPitch returns a copy with a different pitch
func (e Event) WithPitch(p Pitch) Event {
	e.Pitch = p
	return e
}

// WithLyric returns a copy carrying the given syllable
func (e Event) WithLyric(l Lyric) Event {
	e.Lyric = &l
	return e
}

func (e Event) String() string {
	if e.Rest {
		return fmt.Sprintf("rest(%g)", float64(e.Duration))
	}
	return fmt.Sprintf("%s(%g)", e.Pitch.Name(), float64(e.Duration))
}
