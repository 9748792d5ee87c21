// Package coteach decides which co-taught periods of absent staff still need a
// substitute.
package coteach

import (
	"github.com/kilianp07/coverage/core/logger"
	"github.com/kilianp07/coverage/core/model"
	"github.com/kilianp07/coverage/core/roster"
)

// Outcome of resolving one CT period.
type Outcome int

const (
	// Unresolved means no co-teacher was identified; the CT need stays.
	Unresolved Outcome = iota
	// Covered means the co-teacher is present and takes the class.
	Covered
	// Converted means both teachers are out; the period became regular need.
	Converted
)

func (o Outcome) String() string {
	switch o {
	case Covered:
		return "covered"
	case Converted:
		return "converted"
	default:
		return "unresolved"
	}
}

// Resolution records what happened to one CT period.
type Resolution struct {
	Staff     string
	Period    model.Period
	CoTeacher string
	Outcome   Outcome
}

// Resolver applies the co-teaching policy to a roster.
type Resolver struct {
	log logger.Logger
}

// NewResolver returns a Resolver. A nil logger discards warnings.
func NewResolver(log logger.Logger) *Resolver {
	return &Resolver{log: logger.OrNop(log)}
}

// ResolveFile reloads the schedule at path and resolves CT needs against it.
// A load failure is logged and leaves the roster untouched.
func (r *Resolver) ResolveFile(ros *model.Roster, path, sheet string) []Resolution {
	t, err := roster.ReadTable(path, sheet)
	if err != nil {
		r.log.Warnf("co-teach check skipped: %v", err)
		return nil
	}
	return r.Resolve(ros, t)
}

// Resolve walks the CT needs of every absent staff member and removes or
// converts them depending on whether the co-teacher is present.
func (r *Resolver) Resolve(ros *model.Roster, t *roster.Table) []Resolution {
	var out []Resolution
	rows := rowIndex(t)
	for _, s := range ros.Out() {
		if len(s.NeedCT) == 0 {
			continue
		}
		candidates := others(ros, s.Name)
		own, ok := rows[s.Name]
		if !ok {
			own = -1
		}
		for _, p := range append([]model.Period(nil), s.NeedCT...) {
			res := Resolution{Staff: s.Name, Period: p}
			name, ok := findForPeriod(t, own, p, candidates)
			if !ok {
				r.log.Warnf("no co-teacher found for %s period %s", s.Name, p.Label())
				out = append(out, res)
				continue
			}
			res.CoTeacher = name
			co, _ := ros.Get(name)
			if co.Out {
				model.RemovePeriod(&s.NeedCT, p)
				model.RemovePeriod(&co.NeedCT, p)
				s.Need = model.SortPeriods(model.UniqueAndOrdered(append(s.Need, p)))
				s.ConvertedCT = append(s.ConvertedCT, p)
				res.Outcome = Converted
				r.log.Infof("%s and co-teacher %s both out, period %s needs coverage", s.Name, name, p.Label())
			} else {
				model.RemovePeriod(&s.NeedCT, p)
				res.Outcome = Covered
				r.log.Debugf("%s period %s covered by co-teacher %s", s.Name, p.Label(), name)
			}
			out = append(out, res)
		}
	}
	return out
}

// findForPeriod scans the period's column for a CT cell naming a candidate.
// The needer's own row is checked first, then the table in row order. Split
// periods are looked up one half at a time.
func findForPeriod(t *roster.Table, ownRow int, p model.Period, candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	for _, part := range p.Parts() {
		col := roster.PeriodColumn(t, part)
		if col < 0 {
			continue
		}
		for _, row := range scanOrder(t.Len(), ownRow) {
			cell := t.Cell(row, col)
			if !IsCTEntry(cell) {
				continue
			}
			if name, ok := FindCoTeacher(cell, candidates); ok {
				return name, true
			}
		}
	}
	return "", false
}

func scanOrder(n, first int) []int {
	order := make([]int, 0, n)
	if first >= 0 && first < n {
		order = append(order, first)
	}
	for i := 0; i < n; i++ {
		if i != first {
			order = append(order, i)
		}
	}
	return order
}

// rowIndex maps normalized staff names to their first row in t.
func rowIndex(t *roster.Table) map[string]int {
	idx := make(map[string]int)
	col := t.Column(roster.ColumnName)
	if col < 0 {
		return idx
	}
	for row := 0; row < t.Len(); row++ {
		name, ok := roster.ParseName(t.Cell(row, col))
		if !ok {
			continue
		}
		if _, seen := idx[name]; !seen {
			idx[name] = row
		}
	}
	return idx
}

func others(ros *model.Roster, name string) []string {
	var out []string
	for _, n := range ros.Names() {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
