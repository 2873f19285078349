package settheory

import (
	"fmt"
	"strings"
)

// Forte's names for the set classes of cardinalities 3 to 6, each with one
// member of the class written with T for 10. The strings are Forte's primes;
// add keys every class by PrimeForm, which packs from the left (Rahn), so
// 5-20, 6-Z29 and a few others are stored under a different representative
// than the one printed here. Cardinalities 7 to 9 are the complements of 5
// to 3 and keep the same ordinal.
var forteTable = []struct {
	name  string
	prime string
}{
	{"3-1", "012"}, {"3-2", "013"}, {"3-3", "014"}, {"3-4", "015"},
	{"3-5", "016"}, {"3-6", "024"}, {"3-7", "025"}, {"3-8", "026"},
	{"3-9", "027"}, {"3-10", "036"}, {"3-11", "037"}, {"3-12", "048"},

	{"4-1", "0123"}, {"4-2", "0124"}, {"4-3", "0134"}, {"4-4", "0125"},
	{"4-5", "0126"}, {"4-6", "0127"}, {"4-7", "0145"}, {"4-8", "0156"},
	{"4-9", "0167"}, {"4-10", "0235"}, {"4-11", "0135"}, {"4-12", "0236"},
	{"4-13", "0136"}, {"4-14", "0237"}, {"4-Z15", "0146"}, {"4-16", "0157"},
	{"4-17", "0347"}, {"4-18", "0147"}, {"4-19", "0148"}, {"4-20", "0158"},
	{"4-21", "0246"}, {"4-22", "0247"}, {"4-23", "0257"}, {"4-24", "0248"},
	{"4-25", "0268"}, {"4-26", "0358"}, {"4-27", "0258"}, {"4-28", "0369"},
	{"4-Z29", "0137"},

	{"5-1", "01234"}, {"5-2", "01235"}, {"5-3", "01245"}, {"5-4", "01236"},
	{"5-5", "01237"}, {"5-6", "01256"}, {"5-7", "01267"}, {"5-8", "02346"},
	{"5-9", "01246"}, {"5-10", "01346"}, {"5-11", "02347"}, {"5-Z12", "01356"},
	{"5-13", "01248"}, {"5-14", "01257"}, {"5-15", "01268"}, {"5-16", "01347"},
	{"5-Z17", "01348"}, {"5-Z18", "01457"}, {"5-19", "01367"}, {"5-20", "01568"},
	{"5-21", "01458"}, {"5-22", "01478"}, {"5-23", "02357"}, {"5-24", "01357"},
	{"5-25", "02358"}, {"5-26", "02458"}, {"5-27", "01358"}, {"5-28", "02368"},
	{"5-29", "01368"}, {"5-30", "01468"}, {"5-31", "01369"}, {"5-32", "01469"},
	{"5-33", "02468"}, {"5-34", "02469"}, {"5-35", "02479"}, {"5-Z36", "01247"},
	{"5-Z37", "03458"}, {"5-Z38", "01258"},

	{"6-1", "012345"}, {"6-2", "012346"}, {"6-Z3", "012356"}, {"6-Z4", "012456"},
	{"6-5", "012367"}, {"6-Z6", "012567"}, {"6-7", "012678"}, {"6-8", "023457"},
	{"6-9", "012357"}, {"6-Z10", "013457"}, {"6-Z11", "012457"},
	{"6-Z12", "012467"}, {"6-Z13", "013467"}, {"6-14", "013458"},
	{"6-15", "012458"}, {"6-16", "014568"}, {"6-Z17", "012478"},
	{"6-18", "012578"}, {"6-Z19", "013478"}, {"6-20", "014589"},
	{"6-21", "023468"}, {"6-22", "012468"}, {"6-Z23", "023568"},
	{"6-Z24", "013468"}, {"6-Z25", "013568"}, {"6-Z26", "013578"},
	{"6-27", "013469"}, {"6-Z28", "013569"}, {"6-Z29", "023679"},
	{"6-30", "013679"}, {"6-31", "014579"}, {"6-32", "024579"},
	{"6-33", "023579"}, {"6-34", "013579"}, {"6-35", "02468T"},
	{"6-Z36", "012347"}, {"6-Z37", "012348"}, {"6-Z38", "012378"},
	{"6-Z39", "023458"}, {"6-Z40", "012358"}, {"6-Z41", "012368"},
	{"6-Z42", "012369"}, {"6-Z43", "012568"}, {"6-Z44", "012569"},
	{"6-Z45", "023469"}, {"6-Z46", "012469"}, {"6-Z47", "012479"},
	{"6-Z48", "012579"}, {"6-Z49", "013479"}, {"6-Z50", "014679"},
}

type forteCatalog struct {
	byPrime map[string]string
	byName  map[string][]int
}

var catalog = buildCatalog()

func buildCatalog() forteCatalog {
	c := forteCatalog{
		byPrime: make(map[string]string),
		byName:  make(map[string][]int),
	}

	c.add("1-1", []int{0})
	for ic := 1; ic <= 6; ic++ {
		dyad := []int{0, ic}
		c.add(dyadName(2, ic), dyad)
		c.add(dyadName(10, ic), Complement(dyad, true))
	}
	c.add("11-1", Complement([]int{0}, true))
	c.add("12-1", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})

	for _, entry := range forteTable {
		pcs := parsePrime(entry.prime)
		c.add(entry.name, pcs)

		card, ordinal, _ := strings.Cut(entry.name, "-")
		if card == "6" {
			continue
		}
		c.add(complementCardinality(card)+"-"+ordinal, Complement(pcs, true))
	}

	return c
}

func (c forteCatalog) add(name string, pcs []int) {
	prime := PrimeForm(pcs)
	c.byPrime[key(prime)] = name
	c.byName[strings.ToUpper(name)] = prime
}

// ByName returns the prime form of a Forte class such as "4-Z15" or "3-11",
// as PrimeForm computes it: 5-20 gives [0 1 3 7 8], not Forte's 01568.
func ByName(name string) (Set, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.TrimRight(n, "AB")
	prime, ok := catalog.byName[n]
	if !ok {
		// accept names written without the Z
		prime, ok = catalog.byName[strings.Replace(n, "-", "-Z", 1)]
	}
	if !ok {
		return nil, false
	}
	return append(Set(nil), prime...), true
}

func dyadName(card, ic int) string {
	return fmt.Sprintf("%d-%d", card, ic)
}

func complementCardinality(card string) string {
	switch card {
	case "3":
		return "9"
	case "4":
		return "8"
	default:
		return "7"
	}
}

func parsePrime(s string) []int {
	pcs := make([]int, len(s))
	for i, c := range s {
		pcs[i] = strings.IndexRune(pcDigits, c)
	}
	return pcs
}

const pcDigits = "0123456789TE"

func key(pcs []int) string {
	var b strings.Builder
	for _, pc := range pcs {
		b.WriteByte(pcDigits[pc])
	}
	return b.String()
}
