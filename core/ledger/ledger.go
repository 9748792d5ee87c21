// Package ledger keeps the per-staff count of covering assignments used to
// rank candidates, and persists it between runs.
package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/coverage/core/model"
)

// LogEntry is one covering assignment.
type LogEntry struct {
	Date       string       `json:"date"`
	CoveredFor string       `json:"covered_for"`
	Period     model.Period `json:"period"`
}

// Entry is the usage record of one staff member.
type Entry struct {
	TimesCovered int        `json:"times_covered"`
	CoverageLog  []LogEntry `json:"coverage_log"`
}

// Ledger is an insertion-ordered map of staff name to Entry. The order is the
// tie-break when ranking staff with equal counts.
type Ledger struct {
	order   []string
	entries map[string]*Entry
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{entries: make(map[string]*Entry)}
}

// Ensure returns the entry for name, creating a zero entry at the end of the
// ledger when it does not exist.
func (l *Ledger) Ensure(name string) *Entry {
	if e, ok := l.entries[name]; ok {
		return e
	}
	e := &Entry{CoverageLog: []LogEntry{}}
	l.entries[name] = e
	l.order = append(l.order, name)
	return e
}

// EnsureRoster creates zero entries for every roster member missing from the
// ledger and returns how many were added.
func (l *Ledger) EnsureRoster(r *model.Roster) int {
	added := 0
	for _, n := range r.Names() {
		if _, ok := l.entries[n]; !ok {
			l.Ensure(n)
			added++
		}
	}
	return added
}

// Count returns how many times name has covered. Unknown names count zero.
func (l *Ledger) Count(name string) int {
	if e, ok := l.entries[name]; ok {
		return e.TimesCovered
	}
	return 0
}

// Record increments the count of coverer by one and appends e to its log.
func (l *Ledger) Record(coverer string, e LogEntry) {
	entry := l.Ensure(coverer)
	entry.TimesCovered++
	entry.CoverageLog = append(entry.CoverageLog, e)
}

// Names returns the ledger keys in insertion order.
func (l *Ledger) Names() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.order) }

// Entry returns a copy of the entry for name.
func (l *Ledger) Entry(name string) (Entry, bool) {
	e, ok := l.entries[name]
	if !ok {
		return Entry{}, false
	}
	cp := Entry{TimesCovered: e.TimesCovered, CoverageLog: make([]LogEntry, len(e.CoverageLog))}
	copy(cp.CoverageLog, e.CoverageLog)
	return cp, true
}

// Fairness scores how evenly coverage is spread over names, from 0 to 100.
// 100 means every listed staff member covered equally often. An empty set or
// a set where nobody has covered yet scores 100.
func (l *Ledger) Fairness(names []string) float64 {
	if len(names) == 0 {
		return 100
	}
	counts := make([]float64, len(names))
	sum := 0.0
	for i, n := range names {
		counts[i] = float64(l.Count(n))
		sum += counts[i]
	}
	if sum == 0 {
		return 100
	}
	mean, std := stat.PopMeanStdDev(counts, nil)
	score := (1 - std/mean) * 100
	if score < 0 {
		return 0
	}
	return score
}

// MarshalJSON writes the ledger as an object keyed by name in ledger order.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range l.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(l.entries[n])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keyed by name, keeping the document order.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("ledger: expected object, got %v", tok)
	}
	fresh := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("ledger: expected name, got %v", tok)
		}
		var e Entry
		if err := dec.Decode(&e); err != nil {
			return fmt.Errorf("ledger: entry %q: %w", name, err)
		}
		if e.CoverageLog == nil {
			e.CoverageLog = []LogEntry{}
		}
		if _, dup := fresh.entries[name]; !dup {
			fresh.order = append(fresh.order, name)
		}
		fresh.entries[name] = &e
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = *fresh
	return nil
}
