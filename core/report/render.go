// Package report renders assignment outcomes for people and for other tools.
package report

import (
	"fmt"
	"strings"

	"github.com/kilianp07/coverage/core/assign"
)

// NoCoverage is printed for periods nobody could take.
const NoCoverage = "No available teacher"

// Render returns the human-readable report: a date header followed by one
// block per absent staff member. With nobody absent only the header is
// written.
func Render(o *assign.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\n", o.Date)
	for _, name := range o.Absent {
		fmt.Fprintf(&b, "\n%s:\n", name)
		results := o.For(name)
		if len(results) == 0 {
			b.WriteString("  No coverage needed\n")
			continue
		}
		for _, r := range results {
			fmt.Fprintf(&b, "  %s period: %s\n", r.Period.Label(), line(r))
		}
	}
	return b.String()
}

func line(r assign.Result) string {
	parts := []string{NoCoverage}
	if r.Assigned {
		parts[0] = r.Covering
	}
	if r.CT {
		parts = append(parts, "(CT)")
	}
	if r.Assigned {
		if tag := r.Tier.Tag(); tag != "" {
			parts = append(parts, tag)
		}
	}
	return strings.Join(parts, " ")
}
