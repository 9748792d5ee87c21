package roster

import (
	"strings"

	"github.com/kilianp07/coverage/core/model"
)

// Keyword literals used to classify duty cells and detect co-teaching.
const (
	keywordISS      = "iss"
	keywordEvenDays = "even days"
	keywordOddDays  = "odd days"
	keywordOther    = "-"

	ctWord        = "ct"
	ctParenthesis = "(ct)"
	ctDash        = "ct-"
)

// DutyColumnPrefix prefixes the ordinal label of duty availability columns.
const DutyColumnPrefix = "Duty "

// ClassifyDuty maps a duty cell to its availability category.
func ClassifyDuty(raw string) model.DutyCategory {
	s := Clean(raw)
	switch {
	case ContainsWord(s, keywordISS):
		return model.DutyISS
	case strings.Contains(s, keywordEvenDays):
		return model.DutyEvenDay
	case strings.Contains(s, keywordOddDays):
		return model.DutyOddDay
	case strings.Contains(s, keywordOther):
		return model.DutyOther
	default:
		return model.DutyStandard
	}
}

// IsCTEntry reports whether a schedule cell marks a co-taught class.
func IsCTEntry(raw string) bool {
	s := Clean(raw)
	if s == ctWord || strings.Contains(s, ctParenthesis) {
		return true
	}
	if strings.HasPrefix(s, ctWord+" ") || strings.HasSuffix(s, " "+ctWord) || strings.Contains(s, " "+ctWord+" ") {
		return true
	}
	for off := 0; ; {
		i := strings.Index(s[off:], ctDash)
		if i < 0 {
			return false
		}
		if boundaryBefore(s, off+i) {
			return true
		}
		off += i + len(ctDash)
	}
}
