package model

import (
	"strings"
)

// DutyCategory classifies a duty slot a staff member can be pulled from.
type DutyCategory int

const (
	DutyStandard DutyCategory = iota
	DutyISS
	DutyEvenDay
	DutyOddDay
	DutyOther
)

func (c DutyCategory) String() string {
	switch c {
	case DutyStandard:
		return "standard"
	case DutyISS:
		return "iss"
	case DutyEvenDay:
		return "even"
	case DutyOddDay:
		return "odd"
	case DutyOther:
		return "other"
	default:
		return "unknown"
	}
}

// TimePreference restricts which periods of an absent staff member are covered.
type TimePreference int

const (
	PreferNone TimePreference = iota
	PreferMorning
	PreferAfternoon
)

// Morning periods run from 1 to LastMorningPeriod; afternoon is the rest.
const LastMorningPeriod = 4

func (t TimePreference) String() string {
	switch t {
	case PreferMorning:
		return "morning"
	case PreferAfternoon:
		return "afternoon"
	default:
		return "none"
	}
}

// ParsePreference accepts "am"/"morning" and "pm"/"afternoon". Anything else
// means no preference.
func ParsePreference(s string) TimePreference {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "am", "morning":
		return PreferMorning
	case "pm", "afternoon":
		return PreferAfternoon
	default:
		return PreferNone
	}
}

// Allows reports whether period p falls inside the preference window. A split
// period is allowed when any of its parts is.
func (t TimePreference) Allows(p Period) bool {
	if t == PreferNone {
		return true
	}
	for _, part := range p.Parts() {
		n, ok := part.Number()
		if !ok {
			continue
		}
		if t == PreferMorning && n >= 1 && n <= LastMorningPeriod {
			return true
		}
		if t == PreferAfternoon && n > LastMorningPeriod && n <= MaxPeriod {
			return true
		}
	}
	return false
}

// Availability holds the free periods of a staff member per duty category.
type Availability struct {
	Standard []Period `json:"standard"`
	ISS      []Period `json:"iss"`
	EvenDay  []Period `json:"even_day"`
	OddDay   []Period `json:"odd_day"`
	Other    []Period `json:"other"`
}

// List returns a pointer to the slice backing category c so callers can
// consume periods in place.
func (a *Availability) List(c DutyCategory) *[]Period {
	switch c {
	case DutyISS:
		return &a.ISS
	case DutyEvenDay:
		return &a.EvenDay
	case DutyOddDay:
		return &a.OddDay
	case DutyOther:
		return &a.Other
	default:
		return &a.Standard
	}
}

// Staff is one row of the roster.
type Staff struct {
	Name       string         `json:"name"`
	Out        bool           `json:"out"`
	Preference TimePreference `json:"preference"`
	// Need lists regular periods that require a substitute.
	Need []Period `json:"need"`
	// NeedCT lists co-taught periods; they only need a substitute when the
	// co-teacher is out too.
	NeedCT       []Period     `json:"need_ct"`
	Availability Availability `json:"availability"`
	// ConvertedCT records CT periods moved into Need because both
	// co-teachers are out.
	ConvertedCT []Period `json:"converted_ct"`
}

// NewStaff returns a Staff with sorted, de-duplicated need lists. A period
// listed in both is kept as co-taught only.
func NewStaff(name string, need, needCT []Period) *Staff {
	needCT = SortPeriods(UniqueAndOrdered(needCT))
	return &Staff{
		Name:        name,
		Need:        SortPeriods(UniqueAndOrdered(WithoutPeriods(need, needCT))),
		NeedCT:      needCT,
		ConvertedCT: []Period{},
	}
}

// IsConverted reports whether p was a CT period moved to regular coverage.
func (s *Staff) IsConverted(p Period) bool { return ContainsPeriod(s.ConvertedCT, p) }

// Roster is an insertion-ordered set of staff keyed by name.
type Roster struct {
	order []string
	staff map[string]*Staff
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{staff: make(map[string]*Staff)}
}

// Add inserts s, replacing any entry with the same name while keeping its position.
func (r *Roster) Add(s *Staff) {
	if _, ok := r.staff[s.Name]; !ok {
		r.order = append(r.order, s.Name)
	}
	r.staff[s.Name] = s
}

// Get returns the staff member called name.
func (r *Roster) Get(name string) (*Staff, bool) {
	s, ok := r.staff[name]
	return s, ok
}

// Names returns staff names in insertion order.
func (r *Roster) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of staff members.
func (r *Roster) Len() int { return len(r.order) }

// Staff returns all staff members in insertion order.
func (r *Roster) Staff() []*Staff {
	out := make([]*Staff, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.staff[n])
	}
	return out
}

// Out returns the staff members marked out, in insertion order.
func (r *Roster) Out() []*Staff {
	var out []*Staff
	for _, n := range r.order {
		if s := r.staff[n]; s.Out {
			out = append(out, s)
		}
	}
	return out
}

// MarkOut flags the named staff members as out and reports names that are
// not on the roster.
func (r *Roster) MarkOut(names ...string) []string {
	var unknown []string
	for _, n := range names {
		s, ok := r.staff[n]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		s.Out = true
	}
	return unknown
}
