package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/coverage/core/assign"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

// WriteJSON writes the outcome to w in JSON format.
func WriteJSON(w io.Writer, o *assign.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(o)
}

// WriteCSV writes one row per needed period.
func WriteCSV(w io.Writer, o *assign.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "absent", "period", "covering", "tier", "ct", "assigned"}); err != nil {
		return err
	}
	for _, r := range o.Results {
		tier := ""
		if r.Assigned {
			tier = r.Tier.String()
		}
		rec := []string{
			o.Date,
			r.Absent,
			string(r.Period),
			r.Covering,
			tier,
			strconv.FormatBool(r.CT),
			strconv.FormatBool(r.Assigned),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteYAML writes the outcome to w in YAML format.
func WriteYAML(w io.Writer, o *assign.Outcome) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return err
	}
	return enc.Close()
}

// Write encodes o in the named format.
func Write(w io.Writer, format string, o *assign.Outcome) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, o)
	case FormatCSV:
		return WriteCSV(w, o)
	case FormatYAML:
		return WriteYAML(w, o)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
