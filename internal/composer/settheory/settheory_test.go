package settheory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/magda-composer/internal/music"
)

func mustSet(t *testing.T, pcs ...int) Set {
	t.Helper()
	s, err := NewSet(pcs)
	require.NoError(t, err)
	return s
}

func TestNewSet(t *testing.T) {
	s := mustSet(t, 7, 0, 4, 12, 19, -1)
	assert.Equal(t, Set{7, 0, 4, 11}, s)

	_, err := NewSet(nil)
	assert.ErrorIs(t, err, music.ErrInvalidInput)
}

func TestFromSpecs(t *testing.T) {
	s, err := FromSpecs([]any{"C4", "E4", float64(67), float64(11)})
	require.NoError(t, err)
	assert.Equal(t, Set{0, 4, 7, 11}, s)

	_, err = FromSpecs([]any{"Q"})
	assert.ErrorIs(t, err, music.ErrInvalidInput)
}

func TestAnalysis(t *testing.T) {
	tests := []struct {
		name       string
		pcs        []int
		normal     []int
		normalT    []int
		prime      []int
		forte      string
		forteTnI   string
		inverted   []int
		complement []int
		icv        [6]int
	}{
		{
			name:       "major triad",
			pcs:        []int{7, 0, 4},
			normal:     []int{0, 4, 7},
			normalT:    []int{0, 4, 7},
			prime:      []int{0, 3, 7},
			forte:      "3-11B",
			forteTnI:   "3-11",
			inverted:   []int{5, 8, 0},
			complement: []int{8, 9, 10, 11, 1, 2, 3, 5, 6},
			icv:        [6]int{0, 0, 1, 1, 1, 0},
		},
		{
			name:       "minor triad",
			pcs:        []int{0, 3, 7},
			normal:     []int{0, 3, 7},
			normalT:    []int{0, 3, 7},
			prime:      []int{0, 3, 7},
			forte:      "3-11A",
			forteTnI:   "3-11",
			inverted:   []int{5, 9, 0},
			complement: []int{8, 9, 10, 11, 1, 2, 4, 5, 6},
			icv:        [6]int{0, 0, 1, 1, 1, 0},
		},
		{
			name:       "minor seventh chord",
			pcs:        []int{2, 5, 9, 0},
			normal:     []int{9, 0, 2, 5},
			normalT:    []int{0, 3, 5, 8},
			prime:      []int{0, 3, 5, 8},
			forte:      "4-26",
			forteTnI:   "4-26",
			inverted:   []int{4, 7, 9, 0},
			complement: []int{6, 7, 8, 10, 11, 1, 3, 4},
			icv:        [6]int{0, 1, 2, 1, 2, 0},
		},
		{
			name:       "all-interval tetrachord",
			pcs:        []int{0, 1, 4, 6},
			normal:     []int{0, 1, 4, 6},
			normalT:    []int{0, 1, 4, 6},
			prime:      []int{0, 1, 4, 6},
			forte:      "4-Z15A",
			forteTnI:   "4-Z15",
			inverted:   []int{6, 8, 11, 0},
			complement: []int{2, 3, 5, 7, 8, 9, 10, 11},
			icv:        [6]int{1, 1, 1, 1, 1, 1},
		},
		{
			name:       "diminished seventh",
			pcs:        []int{11, 2, 5, 8},
			normal:     []int{2, 5, 8, 11},
			normalT:    []int{0, 3, 6, 9},
			prime:      []int{0, 3, 6, 9},
			forte:      "4-28",
			forteTnI:   "4-28",
			inverted:   []int{0, 3, 6, 9},
			complement: []int{0, 1, 3, 4, 6, 7, 9, 10},
			icv:        [6]int{0, 0, 4, 0, 0, 2},
		},
		{
			name:       "dominant seventh",
			pcs:        []int{1, 5, 8, 11},
			normal:     []int{5, 8, 11, 1},
			normalT:    []int{0, 3, 6, 8},
			prime:      []int{0, 2, 5, 8},
			forte:      "4-27B",
			forteTnI:   "4-27",
			inverted:   []int{4, 6, 9, 0},
			complement: []int{2, 3, 4, 6, 7, 9, 10, 0},
			icv:        [6]int{0, 1, 2, 1, 1, 1},
		},
		{
			name:       "diatonic scale",
			pcs:        []int{0, 2, 4, 5, 7, 9, 11},
			normal:     []int{11, 0, 2, 4, 5, 7, 9},
			normalT:    []int{0, 1, 3, 5, 6, 8, 10},
			prime:      []int{0, 1, 3, 5, 6, 8, 10},
			forte:      "7-35",
			forteTnI:   "7-35",
			inverted:   []int{6, 7, 9, 11, 0, 2, 4},
			complement: []int{6, 8, 10, 1, 3},
			icv:        [6]int{2, 5, 4, 3, 6, 1},
		},
		{
			name:       "augmented triad",
			pcs:        []int{8, 4, 0},
			normal:     []int{0, 4, 8},
			normalT:    []int{0, 4, 8},
			prime:      []int{0, 4, 8},
			forte:      "3-12",
			forteTnI:   "3-12",
			inverted:   []int{0, 4, 8},
			complement: []int{1, 2, 3, 5, 6, 7, 9, 10, 11},
			icv:        [6]int{0, 0, 0, 3, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSet(t, tt.pcs...)
			assert.Equal(t, tt.normal, NormalOrder(s, false), "normal order")
			assert.Equal(t, tt.normalT, NormalOrder(s, true), "transposed normal order")
			assert.Equal(t, tt.prime, PrimeForm(s), "prime form")
			assert.Equal(t, tt.forte, ForteClass(s), "forte class")
			assert.Equal(t, tt.forteTnI, ForteClassTnI(s), "forte class TnI")
			assert.Equal(t, tt.inverted, Inverted(s, false), "inverted")
			assert.Equal(t, tt.complement, Complement(s, false), "complement")
			assert.Equal(t, tt.icv, IntervalVector(s), "interval vector")
		})
	}
}

func TestInvertedAndComplementTransposed(t *testing.T) {
	s := mustSet(t, 0, 4, 7)
	assert.Equal(t, []int{0, 3, 7}, Inverted(s, true))
	assert.Equal(t, []int{0, 1, 2, 3, 5, 6, 7, 9, 10}, Complement(s, true))

	full := mustSet(t, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11)
	assert.Empty(t, Complement(full, false))
	assert.Equal(t, "12-1", ForteClass(full))
}

func TestSubsets(t *testing.T) {
	tests := []struct {
		name     string
		pcs      []int
		expected []string
	}{
		{name: "major seventh", pcs: []int{0, 4, 7, 11}, expected: []string{"3-11", "3-4"}},
		{name: "dominant seventh", pcs: []int{7, 11, 2, 5}, expected: []string{"3-11", "3-8", "3-7", "3-10"}},
		{
			name: "pentachord",
			pcs:  []int{0, 2, 4, 5, 7},
			expected: []string{
				"4-11", "4-22", "4-23", "4-14", "4-10",
				"3-6", "3-7", "3-9", "3-4", "3-11", "3-2",
			},
		},
		{name: "trichord has none", pcs: []int{0, 4, 7}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Subsets(mustSet(t, tt.pcs...)))
		})
	}
}

func TestTOperator(t *testing.T) {
	level, err := TOperator(mustSet(t, 0, 4, 7), mustSet(t, 2, 6, 9))
	require.NoError(t, err)
	assert.Equal(t, 2, level)

	level, err = TOperator(mustSet(t, 9, 1, 4), mustSet(t, 0, 4, 7))
	require.NoError(t, err)
	assert.Equal(t, 3, level)

	_, err = TOperator(nil, mustSet(t, 0))
	assert.ErrorIs(t, err, music.ErrInvalidInput)
}

func TestZRelated(t *testing.T) {
	assert.True(t, ZRelated(mustSet(t, 0, 1, 4, 6), mustSet(t, 0, 1, 3, 7)))
	assert.False(t, ZRelated(mustSet(t, 0, 4, 7), mustSet(t, 0, 3, 7)))
	assert.False(t, ZRelated(mustSet(t, 0, 1, 2), mustSet(t, 0, 4, 8)))
}

func TestFourierMagnitudes(t *testing.T) {
	assert.InDeltaSlice(t,
		[]float64{0.5176, 1.0, 2.2361, 1.7321, 1.9319, 1.0},
		toSlice(FourierMagnitudes(mustSet(t, 0, 4, 7))), 1e-4)

	assert.InDeltaSlice(t,
		[]float64{0, 0, 0, 0, 0, 6},
		toSlice(FourierMagnitudes(mustSet(t, 0, 2, 4, 6, 8, 10))), 1e-4)

	// Z-related sets share magnitudes
	assert.InDeltaSlice(t,
		toSlice(FourierMagnitudes(mustSet(t, 0, 1, 4, 6))),
		toSlice(FourierMagnitudes(mustSet(t, 0, 1, 3, 7))), 1e-4)
}

func toSlice(a [6]float64) []float64 {
	return a[:]
}

func TestCatalog(t *testing.T) {
	counts := map[int]int{}
	for prime := range catalog.byPrime {
		counts[len(prime)]++
	}
	expected := map[int]int{1: 1, 2: 6, 3: 12, 4: 29, 5: 38, 6: 50, 7: 38, 8: 29, 9: 12, 10: 6, 11: 1, 12: 1}
	assert.Equal(t, expected, counts)

	for _, entry := range forteTable {
		assert.Equal(t, entry.prime, key(PrimeForm(parsePrime(entry.prime))), "%s is not a prime form", entry.name)
	}
}

func TestByNameLeftPackedPrimes(t *testing.T) {
	tests := []struct {
		name     string
		expected Set
		forte    string
	}{
		{"5-20", Set{0, 1, 3, 7, 8}, "01568"},
		{"6-Z29", Set{0, 1, 3, 6, 8, 9}, "023679"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := ByName(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.expected, s)
			assert.Equal(t, []int(tt.expected), PrimeForm(s))

			// Forte's printed representative lands in the same class
			assert.Equal(t, tt.name, ForteClassTnI(Set(parsePrime(tt.forte))))
		})
	}
}

func TestByName(t *testing.T) {
	s, ok := ByName("4-z15")
	require.True(t, ok)
	assert.Equal(t, Set{0, 1, 4, 6}, s)

	s, ok = ByName("3-11B")
	require.True(t, ok)
	assert.Equal(t, Set{0, 3, 7}, s)

	s, ok = ByName("7-35")
	require.True(t, ok)
	assert.Equal(t, Set{0, 1, 3, 5, 6, 8, 10}, s)

	s, ok = ByName("4-15")
	require.True(t, ok)
	assert.Len(t, s, 4)

	_, ok = ByName("13-1")
	assert.False(t, ok)
}
