package coteach

import (
	"strings"

	"github.com/kilianp07/coverage/core/roster"
)

// IsCTEntry reports whether a schedule cell marks a co-taught class.
func IsCTEntry(cell string) bool { return roster.IsCTEntry(cell) }

// FindCoTeacher returns the first candidate named in cell. Candidates are
// tried by full name, then by the part before the comma, then by the part
// after it; every strategy is run over all candidates before the next one.
func FindCoTeacher(cell string, candidates []string) (string, bool) {
	text := roster.Clean(cell)
	for _, key := range []func(string) string{fullName, beforeComma, afterComma} {
		for _, c := range candidates {
			k := key(c)
			if k == "" {
				continue
			}
			if roster.ContainsWord(text, k) {
				return c, true
			}
		}
	}
	return "", false
}

func fullName(name string) string { return roster.Clean(name) }

func beforeComma(name string) string {
	before, _, found := strings.Cut(name, ",")
	if !found {
		return ""
	}
	return roster.Clean(before)
}

func afterComma(name string) string {
	_, after, found := strings.Cut(name, ",")
	if !found {
		return ""
	}
	return roster.Clean(after)
}
