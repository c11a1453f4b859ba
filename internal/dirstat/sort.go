package dirstat

import (
	"cmp"
	"slices"
	"strings"
)

// SortOrder selects how extension entries are ranked.
type SortOrder int

const (
	// SortCountDesc orders by count, highest first. It is the default.
	SortCountDesc SortOrder = iota
	// SortCountAsc orders by count, lowest first.
	SortCountAsc
	// SortAlphaAsc orders keys lexicographically.
	SortAlphaAsc
	// SortAlphaDesc orders keys in reverse natural order.
	SortAlphaDesc
	// SortNumericAsc orders by count, lowest first.
	SortNumericAsc
	// SortNumericDesc is the reverse of SortNumericAsc.
	SortNumericDesc
	// SortNaturalAsc orders keys in natural order.
	SortNaturalAsc
	// SortNaturalDesc orders keys in reverse natural order.
	SortNaturalDesc
)

var sortOrderNames = map[SortOrder]string{
	SortCountDesc:   "count-desc",
	SortCountAsc:    "count-asc",
	SortAlphaAsc:    "alpha-asc",
	SortAlphaDesc:   "alpha-desc",
	SortNumericAsc:  "numeric-asc",
	SortNumericDesc: "numeric-desc",
	SortNaturalAsc:  "natural-asc",
	SortNaturalDesc: "natural-desc",
}

func (o SortOrder) String() string {
	if name, ok := sortOrderNames[o]; ok {
		return name
	}

	return "unknown"
}

// SortSpec configures Rank.
type SortSpec struct {
	// Order is the ordering to apply.
	Order SortOrder
	// CaseSensitive disables case folding in key comparisons.
	// It has no effect on SortCountDesc, whose ties are always byte-wise.
	CaseSensitive bool
}

// Rank returns the entries sorted according to spec.
// The input slice is not modified. Ties are always resolved by a byte-wise
// key comparison, so the order is total for unique keys.
func Rank(entries []ExtensionEntry, spec SortSpec) []ExtensionEntry {
	out := slices.Clone(entries)

	cmpFn := comparator(spec)

	slices.SortStableFunc(out, func(a, b ExtensionEntry) int {
		if c := cmpFn(a, b); c != 0 {
			return c
		}

		return strings.Compare(a.Key, b.Key)
	})

	return out
}

func comparator(spec SortSpec) func(a, b ExtensionEntry) int {
	keys := func(a, b string) int {
		return compareKeys(a, b, spec.CaseSensitive)
	}
	natural := func(a, b ExtensionEntry) int {
		return NaturalCompare(a.Key, b.Key, spec.CaseSensitive)
	}

	countAsc := func(a, b ExtensionEntry) int {
		if c := cmp.Compare(a.Count, b.Count); c != 0 {
			return c
		}

		return keys(a.Key, b.Key)
	}

	switch spec.Order {
	case SortCountAsc, SortNumericAsc:
		return countAsc
	case SortNumericDesc:
		return reverse(countAsc)
	case SortAlphaAsc:
		return func(a, b ExtensionEntry) int { return keys(a.Key, b.Key) }
	// Descending alphabetical shares the natural comparator.
	case SortAlphaDesc, SortNaturalDesc:
		return reverse(natural)
	case SortNaturalAsc:
		return natural
	default:
		return func(a, b ExtensionEntry) int {
			if c := cmp.Compare(b.Count, a.Count); c != 0 {
				return c
			}

			return strings.Compare(a.Key, b.Key)
		}
	}
}

func reverse(fn func(a, b ExtensionEntry) int) func(a, b ExtensionEntry) int {
	return func(a, b ExtensionEntry) int {
		if c := fn(a, b); c != 0 {
			return -c
		}

		return strings.Compare(b.Key, a.Key)
	}
}

func compareKeys(a, b string, caseSensitive bool) int {
	if caseSensitive {
		return strings.Compare(a, b)
	}

	for i := 0; i < len(a) && i < len(b); i++ {
		if ca, cb := lower(a[i]), lower(b[i]); ca != cb {
			return cmp.Compare(ca, cb)
		}
	}

	return cmp.Compare(len(a), len(b))
}

// NaturalCompare compares a and b treating runs of ASCII digits as numbers.
// Digit runs compare by numeric value regardless of leading zeros. Other
// characters compare one at a time, case-folded unless caseSensitive is set.
// When one string runs out first it sorts first.
func NaturalCompare(a, b string, caseSensitive bool) int {
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			si, sj := i, j

			for i < len(a) && isDigit(a[i]) {
				i++
			}

			for j < len(b) && isDigit(b[j]) {
				j++
			}

			if c := compareDigits(a[si:i], b[sj:j]); c != 0 {
				return c
			}

			continue
		}

		ca, cb := a[i], b[j]
		if !caseSensitive {
			ca, cb = lower(ca), lower(cb)
		}

		if ca != cb {
			return cmp.Compare(ca, cb)
		}

		i++
		j++
	}

	return cmp.Compare(len(a)-i, len(b)-j)
}

// compareDigits compares two digit runs by value without converting them,
// so arbitrarily long runs cannot overflow.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")

	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}

	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}

	return c
}
