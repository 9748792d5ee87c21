package model

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// MaxPeriod is the last teaching period of a school day.
const MaxPeriod = 11

// Period identifies a teaching period. It is either a single period ("3") or a
// split block joining two periods ("5/6") that must be covered by one person.
type Period string

// Parts returns the component periods. A single period returns itself.
func (p Period) Parts() []Period {
	s := strings.TrimSpace(string(p))
	if !strings.Contains(s, "/") {
		return []Period{Period(s)}
	}
	raw := strings.Split(s, "/")
	parts := make([]Period, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r != "" {
			parts = append(parts, Period(r))
		}
	}
	return parts
}

// IsSplit reports whether p joins more than one period.
func (p Period) IsSplit() bool { return len(p.Parts()) > 1 }

// Number returns the numeric value of a single period.
func (p Period) Number() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(p)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// SortKey returns the numeric value of the first component. Non-numeric
// periods get math.MaxInt so they sort last.
func (p Period) SortKey() int {
	parts := p.Parts()
	if len(parts) == 0 {
		return math.MaxInt
	}
	n, ok := parts[0].Number()
	if !ok {
		return math.MaxInt
	}
	return n
}

// Label renders the period with ordinal suffixes, e.g. "2nd" or "5th/6th".
func (p Period) Label() string {
	parts := p.Parts()
	labels := make([]string, len(parts))
	for i, part := range parts {
		labels[i] = OrdinalLabel(string(part))
	}
	return strings.Join(labels, "/")
}

func (p Period) String() string { return string(p) }

// Ordinal returns n with its English ordinal suffix.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// OrdinalLabel is Ordinal for textual input. Values that are not integers are
// returned unchanged.
func OrdinalLabel(s string) string {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return Ordinal(n)
}

// SortPeriods returns a copy of ps ordered by SortKey. The sort is stable so
// equal keys keep their input order.
func SortPeriods(ps []Period) []Period {
	out := make([]Period, len(ps))
	copy(out, ps)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortKey() < out[j].SortKey() })
	return out
}

// UniqueAndOrdered removes duplicates while keeping the first occurrence of
// every element in place.
func UniqueAndOrdered[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ContainsPeriod reports whether ps holds p.
func ContainsPeriod(ps []Period, p Period) bool {
	return indexOf(ps, p) >= 0
}

// RemovePeriod deletes the first occurrence of p and reports whether it was present.
func RemovePeriod(ps *[]Period, p Period) bool {
	i := indexOf(*ps, p)
	if i < 0 {
		return false
	}
	*ps = append((*ps)[:i], (*ps)[i+1:]...)
	return true
}

// WithoutPeriods returns the elements of ps not present in drop, keeping order.
func WithoutPeriods(ps, drop []Period) []Period {
	out := make([]Period, 0, len(ps))
	for _, p := range ps {
		if !ContainsPeriod(drop, p) {
			out = append(out, p)
		}
	}
	return out
}

func indexOf(ps []Period, p Period) int {
	for i, v := range ps {
		if v == p {
			return i
		}
	}
	return -1
}
