package roster

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kilianp07/coverage/core/model"
)

var (
	trailingParen = regexp.MustCompile(`\s*\([^()]*\)\s*$`)
	ordinalToken  = regexp.MustCompile(`^\d+(st|nd|rd|th)$`)
)

// headerTokens are cell values that label a row or column rather than name a person.
var headerTokens = map[string]struct{}{
	"name":          {},
	"nan":           {},
	"none":          {},
	"plan":          {},
	"lunch":         {},
	"need coverage": {},
}

// ParseName normalizes a Name cell. It reports false for blank, header-like
// or too-short values, which callers skip.
func ParseName(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	name = strings.TrimSpace(trailingParen.ReplaceAllString(name, ""))
	if len([]rune(name)) < 2 {
		return "", false
	}
	lower := strings.ToLower(name)
	if _, ok := headerTokens[lower]; ok {
		return "", false
	}
	if strings.HasPrefix(lower, "duty ") || ordinalToken.MatchString(lower) {
		return "", false
	}
	return name, true
}

// NamePreference derives a time preference from a " - AM" or " - PM" suffix.
func NamePreference(name string) model.TimePreference {
	upper := strings.ToUpper(strings.TrimSpace(name))
	switch {
	case strings.HasSuffix(upper, "- AM"):
		return model.PreferMorning
	case strings.HasSuffix(upper, "- PM"):
		return model.PreferAfternoon
	default:
		return model.PreferNone
	}
}

// periodColumn finds the schedule column for period p, trying the bare ordinal
// label first and the "Duty " prefixed label second.
func periodColumn(t *Table, p model.Period) int {
	label := model.OrdinalLabel(string(p))
	if col := t.Column(label); col >= 0 {
		return col
	}
	return t.Column(DutyColumnPrefix + label)
}

// PeriodColumn is periodColumn for callers outside the package.
func PeriodColumn(t *Table, p model.Period) int { return periodColumn(t, p) }

func periodOf(n int) model.Period { return model.Period(strconv.Itoa(n)) }
