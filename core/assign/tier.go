package assign

import "github.com/kilianp07/coverage/core/model"

// Tier is a priority level searched for a covering staff member.
type Tier int

const (
	TierStandard Tier = iota
	TierISS
	TierOther
)

// Tiers lists the tiers in search order.
var Tiers = []Tier{TierStandard, TierISS, TierOther}

func (t Tier) String() string {
	switch t {
	case TierISS:
		return "iss"
	case TierOther:
		return "other"
	default:
		return "standard"
	}
}

// Tag is the report annotation of an assignment made in tier t.
func (t Tier) Tag() string {
	switch t {
	case TierISS:
		return "(Close ISS)"
	case TierOther:
		return "(OTHER DUTY)"
	default:
		return ""
	}
}

// categories returns the availability lists searched in tier t. The standard
// tier also searches the day-type list matching the run.
func (t Tier) categories(evenDay bool) []model.DutyCategory {
	switch t {
	case TierISS:
		return []model.DutyCategory{model.DutyISS}
	case TierOther:
		return []model.DutyCategory{model.DutyOther}
	default:
		if evenDay {
			return []model.DutyCategory{model.DutyStandard, model.DutyEvenDay}
		}
		return []model.DutyCategory{model.DutyStandard, model.DutyOddDay}
	}
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText decodes a tier name. Unknown names are the standard tier.
func (t *Tier) UnmarshalText(b []byte) error {
	switch string(b) {
	case "iss":
		*t = TierISS
	case "other":
		*t = TierOther
	default:
		*t = TierStandard
	}
	return nil
}
