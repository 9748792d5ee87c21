package roster

import (
	"regexp"
	"strings"

	"github.com/kilianp07/coverage/core/model"
)

// ctMarker separates regular from co-taught periods in a Need Coverage cell.
const ctMarker = " CT-"

var (
	spaceAfterComma  = regexp.MustCompile(`,\s+`)
	spaceAroundSlash = regexp.MustCompile(`\s*/\s*`)
	looseCTDash      = regexp.MustCompile(`(?i)\bct\s*-\s*`)
)

// ParseCoverage splits a Need Coverage cell into regular and co-taught periods.
// Tokens before " CT-" are regular, tokens after it are CT. Duplicates are
// dropped keeping first-seen order, and a period marked CT is never regular.
func ParseCoverage(raw string) (regular, ct []model.Period) {
	regular, ct, _ = parseCoverage(raw)
	return regular, ct
}

func parseCoverage(raw string) (regular, ct []model.Period, marked bool) {
	s := strings.TrimSpace(raw)
	if blank(s) {
		return nil, nil, false
	}
	s = spaceAfterComma.ReplaceAllString(s, ",")
	s = spaceAroundSlash.ReplaceAllString(s, "/")
	s = looseCTDash.ReplaceAllString(s, "CT-")

	before, after, found := strings.Cut(s, ctMarker)
	if !found {
		return tokens(s), nil, false
	}
	ct = tokens(after)
	return model.WithoutPeriods(tokens(before), ct), ct, true
}

func tokens(s string) []model.Period {
	var out []model.Period
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		out = append(out, model.Period(tok))
	}
	return model.UniqueAndOrdered(out)
}

// MergeNeeds unions extra need lists into s, keeping order and sorting the
// result. A period that ends up in NeedCT is removed from Need.
func MergeNeeds(s *model.Staff, regular, ct []model.Period) {
	s.NeedCT = model.SortPeriods(model.UniqueAndOrdered(append(s.NeedCT, ct...)))
	need := model.UniqueAndOrdered(append(s.Need, regular...))
	s.Need = model.SortPeriods(model.WithoutPeriods(need, s.NeedCT))
}
