// Package settheory analyzes unordered pitch-class collections: normal order,
// prime form, Forte names, inversion, complement and subset classes.
package settheory

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/Conceptual-Machines/magda-composer/internal/music"
)

const numPitchClasses = 12

// Set is the pitch-class content of a chord, duplicates removed and input
// order kept
type Set []int

// NewSet reduces values modulo 12 and removes duplicates
func NewSet(pcs []int) (Set, error) {
	if len(pcs) == 0 {
		return nil, fmt.Errorf("%w: pitch-class set must not be empty", music.ErrInvalidInput)
	}
	seen := make(map[int]bool, len(pcs))
	set := make(Set, 0, len(pcs))
	for _, pc := range pcs {
		pc = mod12(pc)
		if seen[pc] {
			continue
		}
		seen[pc] = true
		set = append(set, pc)
	}
	return set, nil
}

// FromPitches builds a set from resolved pitches
func FromPitches(pitches []music.Pitch) (Set, error) {
	pcs := make([]int, len(pitches))
	for i, p := range pitches {
		pcs[i] = p.PitchClass()
	}
	return NewSet(pcs)
}

// FromSpecs resolves raw pitch values (pitch classes, MIDI numbers or note
// names) into a set
func FromSpecs(values []any) (Set, error) {
	pitches, err := music.ResolvePitches(values)
	if err != nil {
		return nil, err
	}
	return FromPitches(pitches)
}

// NormalOrder returns the most compact rotation of the set. Ties are broken
// the Rahn way, packing to the left: the smallest interval from the first
// pitch class to the second, then to the third, and so on. Forte compares
// from the first pitch class to the second-to-last instead, which differs
// for a handful of classes. With transposed the result starts at 0.
func NormalOrder(s Set, transposed bool) []int {
	if len(s) == 0 {
		return nil
	}
	sorted := sortedUnique(s)
	n := len(sorted)

	var best []int
	for i := 0; i < n; i++ {
		rotation := make([]int, n)
		for j := 0; j < n; j++ {
			rotation[j] = sorted[(i+j)%n]
		}
		if best == nil || lessPacked(rotation, best) {
			best = rotation
		}
	}

	if transposed {
		return transposeTo(best, 0)
	}
	return best
}

// PrimeForm returns the more packed of the normal orders of the set and its
// inversion, transposed to 0 (Rahn's prime form)
func PrimeForm(s Set) []int {
	if len(s) == 0 {
		return nil
	}
	original := NormalOrder(s, true)
	inverse := NormalOrder(invert(s, 0), true)
	if lessPacked(inverse, original) {
		return inverse
	}
	return original
}

// ForteClass returns the Forte name with an A or B suffix telling the two
// inversions apart, e.g. "3-11B" for a major triad. Inversionally symmetric
// classes have no suffix.
func ForteClass(s Set) string {
	name := ForteClassTnI(s)
	if name == "" {
		return ""
	}
	tn := NormalOrder(s, true)
	if equal(tn, NormalOrder(invert(s, 0), true)) {
		return name
	}
	if equal(tn, PrimeForm(s)) {
		return name + "A"
	}
	return name + "B"
}

// ForteClassTnI returns the Forte name without inversion suffix
func ForteClassTnI(s Set) string {
	if len(s) == 0 {
		return ""
	}
	return catalog.byPrime[key(PrimeForm(s))]
}

// Inverted inverts the set around the first pitch class of its normal order
// and returns the result in normal order
func Inverted(s Set, transposed bool) []int {
	if len(s) == 0 {
		return nil
	}
	normal := NormalOrder(s, false)
	return NormalOrder(invert(normal, normal[0]), transposed)
}

// Complement returns the missing pitch classes in normal order
func Complement(s Set, transposed bool) []int {
	present := make([]bool, numPitchClasses)
	for _, pc := range s {
		present[mod12(pc)] = true
	}
	var missing Set
	for pc := 0; pc < numPitchClasses; pc++ {
		if !present[pc] {
			missing = append(missing, pc)
		}
	}
	if len(missing) == 0 {
		return []int{}
	}
	return NormalOrder(missing, transposed)
}

// Subsets lists every distinct set class (TnI) contained in the set, from
// cardinality n-1 down to trichords, in enumeration order
func Subsets(s Set) []string {
	n := len(s)
	found := make(map[string]bool)
	subsets := []string{}

	for k := n - 1; k >= 3; k-- {
		for _, combination := range combin.Combinations(n, k) {
			sub := make(Set, k)
			for i, idx := range combination {
				sub[i] = s[idx]
			}
			prime := key(PrimeForm(sub))
			if found[prime] {
				continue
			}
			found[prime] = true
			subsets = append(subsets, ForteClassTnI(sub))
		}
	}

	return subsets
}

// TOperator returns the transposition level (0-11) taking the normal order
// of a onto the normal order of b
func TOperator(a, b Set) (int, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("%w: pitch-class set must not be empty", music.ErrInvalidInput)
	}
	return mod12(NormalOrder(b, false)[0] - NormalOrder(a, false)[0]), nil
}

// IntervalVector counts the interval classes 1-6 between every pair
func IntervalVector(s Set) [6]int {
	var icv [6]int
	pcs := sortedUnique(s)
	for i := 0; i < len(pcs); i++ {
		for j := i + 1; j < len(pcs); j++ {
			ic := mod12(pcs[j] - pcs[i])
			if ic > 6 {
				ic = numPitchClasses - ic
			}
			icv[ic-1]++
		}
	}
	return icv
}

// ZRelated reports whether two sets share an interval vector without being
// the same set class
func ZRelated(a, b Set) bool {
	return IntervalVector(a) == IntervalVector(b) && !equal(PrimeForm(a), PrimeForm(b))
}

// lessPacked compares two rotations of the same size: smaller span first,
// then smaller intervals from the first element, left to right
func lessPacked(a, b []int) bool {
	n := len(a)
	spanA, spanB := mod12(a[n-1]-a[0]), mod12(b[n-1]-b[0])
	if spanA != spanB {
		return spanA < spanB
	}
	for i := 1; i < n-1; i++ {
		da, db := mod12(a[i]-a[0]), mod12(b[i]-b[0])
		if da != db {
			return da < db
		}
	}
	return false
}

func invert(pcs []int, axis int) Set {
	out := make(Set, len(pcs))
	for i, pc := range pcs {
		out[i] = mod12(axis - pc)
	}
	return out
}

func transposeTo(pcs []int, start int) []int {
	out := make([]int, len(pcs))
	shift := start - pcs[0]
	for i, pc := range pcs {
		out[i] = mod12(pc + shift)
	}
	return out
}

func sortedUnique(s Set) []int {
	seen := make(map[int]bool, len(s))
	out := make([]int, 0, len(s))
	for _, pc := range s {
		pc = mod12(pc)
		if !seen[pc] {
			seen[pc] = true
			out = append(out, pc)
		}
	}
	sort.Ints(out)
	return out
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mod12(pc int) int {
	r := pc % numPitchClasses
	if r < 0 {
		r += numPitchClasses
	}
	return r
}
