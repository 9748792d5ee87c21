package roster

import (
	"strings"

	"github.com/kilianp07/coverage/core/logger"
	"github.com/kilianp07/coverage/core/model"
)

// Column headers of the schedule sheet.
const (
	ColumnName         = "Name"
	ColumnNeedCoverage = "Need Coverage"
)

// Parser turns a schedule table into a roster.
type Parser struct {
	log logger.Logger
}

// NewParser returns a Parser. A nil logger discards warnings.
func NewParser(log logger.Logger) *Parser {
	return &Parser{log: logger.OrNop(log)}
}

// ParseFile reads and parses the schedule at path. On a read failure it
// returns an empty roster together with the error.
func (p *Parser) ParseFile(path, sheet string) (*model.Roster, error) {
	t, err := ReadTable(path, sheet)
	if err != nil {
		return model.NewRoster(), err
	}
	return p.Parse(t), nil
}

// Parse builds the roster from t. Malformed rows are skipped; missing optional
// columns only reduce the data available.
func (p *Parser) Parse(t *Table) *model.Roster {
	r := model.NewRoster()
	nameCol := t.Column(ColumnName)
	if nameCol < 0 {
		if len(t.Header) > 0 {
			p.log.Warnf("schedule has no %q column", ColumnName)
		}
		return r
	}
	needCol := t.Column(ColumnNeedCoverage)
	if needCol < 0 {
		p.log.Warnf("schedule has no %q column, no coverage needs loaded", ColumnNeedCoverage)
	}

	for row := 0; row < t.Len(); row++ {
		name, ok := ParseName(t.Cell(row, nameCol))
		if !ok {
			continue
		}
		regular, ct, marked := parseCoverage(t.Cell(row, needCol))
		if !marked {
			regular, ct = p.detectCT(t, row, regular, ct)
		}
		if s, exists := r.Get(name); exists {
			p.log.Debugf("merging duplicate row for %s", name)
			MergeNeeds(s, regular, ct)
			continue
		}
		s := model.NewStaff(name, regular, ct)
		s.Preference = NamePreference(name)
		r.Add(s)
	}

	p.loadAvailability(t, r)
	return r
}

// detectCT moves regular periods whose own schedule cell is marked co-taught
// into the CT list.
func (p *Parser) detectCT(t *Table, row int, regular, ct []model.Period) ([]model.Period, []model.Period) {
	var keep []model.Period
	for _, period := range regular {
		if p.cellMarkedCT(t, row, period) {
			ct = append(ct, period)
			continue
		}
		keep = append(keep, period)
	}
	return keep, ct
}

func (p *Parser) cellMarkedCT(t *Table, row int, period model.Period) bool {
	for _, part := range period.Parts() {
		col := periodColumn(t, part)
		if col < 0 {
			continue
		}
		if IsCTEntry(t.Cell(row, col)) {
			return true
		}
	}
	return false
}

// loadAvailability scans the "Duty <ordinal>" columns and files every period a
// staff member is listed under into exactly one availability category.
func (p *Parser) loadAvailability(t *Table, r *model.Roster) {
	var missing []string
	names := r.Names()
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = Clean(n)
	}

	for n := 1; n <= model.MaxPeriod; n++ {
		header := DutyColumnPrefix + model.Ordinal(n)
		col := t.Column(header)
		if col < 0 {
			missing = append(missing, header)
			continue
		}
		period := periodOf(n)
		for row := 0; row < t.Len(); row++ {
			raw := t.Cell(row, col)
			if blank(raw) {
				continue
			}
			cell := Clean(raw)
			for i, lname := range lowered {
				if !ContainsWord(cell, lname) {
					continue
				}
				s, _ := r.Get(names[i])
				if hasAvailability(s, period) {
					p.log.Debugf("%s already available in %s, ignoring %q", s.Name, header, raw)
					continue
				}
				cat := ClassifyDuty(RemoveWord(cell, lname))
				list := s.Availability.List(cat)
				*list = append(*list, period)
			}
		}
	}
	if len(missing) == model.MaxPeriod {
		p.log.Warnf("schedule has no duty columns, availability is empty")
	} else if len(missing) > 0 {
		p.log.Warnf("schedule is missing duty columns: %s", strings.Join(missing, ", "))
	}

	for _, s := range r.Staff() {
		for _, cat := range []model.DutyCategory{model.DutyStandard, model.DutyISS, model.DutyEvenDay, model.DutyOddDay, model.DutyOther} {
			list := s.Availability.List(cat)
			*list = model.SortPeriods(*list)
		}
	}
}

func hasAvailability(s *model.Staff, period model.Period) bool {
	a := s.Availability
	for _, list := range [][]model.Period{a.Standard, a.ISS, a.EvenDay, a.OddDay, a.Other} {
		if model.ContainsPeriod(list, period) {
			return true
		}
	}
	return false
}
