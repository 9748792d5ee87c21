// Package assign matches the needs of absent staff with available staff.
//
// Every needed period is resolved on its own: candidates are ranked by their
// current ledger count, then the standard, ISS and other-duty tiers are
// searched in order and the first candidate free for the whole period wins.
// An assignment consumes the candidate's availability and is recorded in the
// ledger at once, so it weighs on the ranking of the next period.
package assign

import (
	"sort"

	"github.com/kilianp07/coverage/core/ledger"
	"github.com/kilianp07/coverage/core/logger"
	"github.com/kilianp07/coverage/core/model"
)

// Day identifies the run.
type Day struct {
	Date string
	Even bool
}

// Result is the outcome of one needed period.
type Result struct {
	Absent   string       `json:"absent" yaml:"absent"`
	Period   model.Period `json:"period" yaml:"period"`
	CT       bool         `json:"ct" yaml:"ct"`
	Covering string       `json:"covering,omitempty" yaml:"covering,omitempty"`
	Tier     Tier         `json:"tier" yaml:"tier"`
	Assigned bool         `json:"assigned" yaml:"assigned"`
}

// Outcome groups the results of a run by absent staff member.
type Outcome struct {
	Date    string   `json:"date" yaml:"date"`
	EvenDay bool     `json:"even_day" yaml:"even_day"`
	Absent  []string `json:"absent" yaml:"absent"`
	Results []Result `json:"results" yaml:"results"`
}

// For returns the results for one absent staff member in period order.
func (o *Outcome) For(name string) []Result {
	var out []Result
	for _, r := range o.Results {
		if r.Absent == name {
			out = append(out, r)
		}
	}
	return out
}

// Unassigned counts periods nobody could cover.
func (o *Outcome) Unassigned() int {
	n := 0
	for _, r := range o.Results {
		if !r.Assigned {
			n++
		}
	}
	return n
}

// Engine runs the greedy assignment. It owns the roster and ledger it is
// given for the duration of a run and is not safe for concurrent use.
type Engine struct {
	ledger *ledger.Ledger
	log    logger.Logger
}

// NewEngine returns an Engine recording into l.
func NewEngine(l *ledger.Ledger, log logger.Logger) *Engine {
	return &Engine{ledger: l, log: logger.OrNop(log)}
}

// Run resolves every needed period of every absent staff member in roster
// order, periods ascending.
func (e *Engine) Run(r *model.Roster, day Day) *Outcome {
	e.ledger.EnsureRoster(r)
	out := &Outcome{Date: day.Date, EvenDay: day.Even, Absent: []string{}, Results: []Result{}}
	for _, s := range r.Out() {
		out.Absent = append(out.Absent, s.Name)
		for _, p := range needs(s) {
			out.Results = append(out.Results, e.Assign(r, day, s, p))
		}
	}
	e.log.Infof("%s: %d absent, %d periods, %d unassigned", day.Date, len(out.Absent), len(out.Results), out.Unassigned())
	return out
}

// Assign resolves a single period needed by absent.
func (e *Engine) Assign(r *model.Roster, day Day, absent *model.Staff, p model.Period) Result {
	res := Result{
		Absent: absent.Name,
		Period: p,
		CT:     model.ContainsPeriod(absent.NeedCT, p) || absent.IsConverted(p),
	}
	ranked := e.rank(r)
	for _, tier := range Tiers {
		cats := tier.categories(day.Even)
		for _, c := range ranked {
			if !take(c, p, cats) {
				continue
			}
			res.Covering = c.Name
			res.Tier = tier
			res.Assigned = true
			e.ledger.Record(c.Name, ledger.LogEntry{Date: day.Date, CoveredFor: absent.Name, Period: p})
			e.log.Debugf("%s period %s -> %s (%s)", absent.Name, p.Label(), c.Name, tier)
			return res
		}
	}
	e.log.Warnf("no available teacher for %s period %s", absent.Name, p.Label())
	return res
}

// rank orders present roster staff by ledger count. Ties keep ledger order;
// staff missing from the ledger follow in roster order.
func (e *Engine) rank(r *model.Roster) []*model.Staff {
	var out []*model.Staff
	seen := make(map[string]bool)
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		if s, ok := r.Get(name); ok && !s.Out {
			out = append(out, s)
		}
	}
	for _, n := range e.ledger.Names() {
		add(n)
	}
	for _, n := range r.Names() {
		add(n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return e.ledger.Count(out[i].Name) < e.ledger.Count(out[j].Name)
	})
	return out
}

// needs merges regular and CT needs in period order and drops periods outside
// the staff member's time preference.
func needs(s *model.Staff) []model.Period {
	all := model.SortPeriods(model.UniqueAndOrdered(append(append([]model.Period{}, s.Need...), s.NeedCT...)))
	out := make([]model.Period, 0, len(all))
	for _, p := range all {
		if s.Preference.Allows(p) {
			out = append(out, p)
		}
	}
	return out
}

// take consumes p from the given availability lists of s. A split period is
// taken only when every part is available; the period token itself listed
// as available also matches.
func take(s *model.Staff, p model.Period, cats []model.DutyCategory) bool {
	for _, c := range cats {
		if model.RemovePeriod(s.Availability.List(c), p) {
			return true
		}
	}
	parts := p.Parts()
	if len(parts) < 2 {
		return false
	}
	owners := make([]model.DutyCategory, len(parts))
	for i, part := range parts {
		found := false
		for _, c := range cats {
			if model.ContainsPeriod(*s.Availability.List(c), part) {
				owners[i], found = c, true
				break
			}
		}
		if !found {
			return false
		}
	}
	for i, part := range parts {
		model.RemovePeriod(s.Availability.List(owners[i]), part)
	}
	return true
}
