package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a raw schedule sheet: a header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// FromRecords builds a Table whose first record is the header.
func FromRecords(records [][]string) *Table {
	t := &Table{}
	if len(records) == 0 {
		return t
	}
	t.Header = make([]string, len(records[0]))
	for i, h := range records[0] {
		t.Header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	t.Rows = records[1:]
	return t
}

// Column returns the index of the named column, matched case-insensitively,
// or -1 when absent.
func (t *Table) Column(name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range t.Header {
		if strings.ToLower(h) == want {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed value at row/col, or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// ReadTable loads a schedule from a CSV, TSV or XLSX file. sheet selects the
// XLSX worksheet; empty means the first one.
func ReadTable(path, sheet string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readDelimited(path, ',')
	case ".tsv":
		return readDelimited(path, '\t')
	case ".txt":
		return readDelimited(path, 0)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return readWorkbook(path, sheet)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrUnreadable, filepath.Ext(path))
	}
}

// readDelimited reads a delimited text file. A zero comma sniffs tab versus
// comma from the header line.
func readDelimited(path string, comma rune) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	if comma == 0 {
		comma = ','
		first, _, _ := strings.Cut(string(data), "\n")
		if strings.Contains(first, "\t") {
			comma = '\t'
		}
	}
	r := csv.NewReader(strings.NewReader(string(data)))
	r.Comma = comma
	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
		}
		records = append(records, rec)
	}
	return FromRecords(records), nil
}

func readWorkbook(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer func() { _ = f.Close() }()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return &Table{}, nil
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: sheet %q: %v", ErrUnreadable, path, sheet, err)
	}
	return FromRecords(rows), nil
}
