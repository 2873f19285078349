package music

// Interval is a spelled interval: diatonic steps plus chromatic size
type Interval struct {
	Steps     int
	Semitones int
}

// Common intervals
var (
	Unison        = Interval{Steps: 0, Semitones: 0}
	MinorSecond   = Interval{Steps: 1, Semitones: 1}
	MajorSecond   = Interval{Steps: 1, Semitones: 2}
	MinorThird    = Interval{Steps: 2, Semitones: 3}
	MajorThird    = Interval{Steps: 2, Semitones: 4}
	PerfectFourth = Interval{Steps: 3, Semitones: 5}
	PerfectFifth  = Interval{Steps: 4, Semitones: 7}
	PerfectOctave = Interval{Steps: 7, Semitones: 12}
)

// Add combines two intervals
func (iv Interval) Add(other Interval) Interval {
	return Interval{Steps: iv.Steps + other.Steps, Semitones: iv.Semitones + other.Semitones}
}

// Negate returns the same interval pointing downwards
func (iv Interval) Negate() Interval {
	return Interval{Steps: -iv.Steps, Semitones: -iv.Semitones}
}
