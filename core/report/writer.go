package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilianp07/coverage/core/assign"
)

// Writer stores per-date report artifacts in a directory.
type Writer struct {
	Dir string
}

// NewWriter returns a Writer for dir. An empty dir means the working directory.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{Dir: dir}
}

// Path returns the artifact path for date with the given extension.
func (w *Writer) Path(date, ext string) string {
	safe := strings.NewReplacer("/", "-", "\\", "-", " ", "_").Replace(date)
	return filepath.Join(w.Dir, "coverage_"+safe+"."+ext)
}

// Write renders o and stores it as coverage_<date>.txt, replacing any earlier
// report for the same date.
func (w *Writer) Write(o *assign.Outcome) (string, error) {
	path := w.Path(o.Date, "txt")
	return path, writeAtomic(path, []byte(Render(o)))
}

// Export stores o in the given format next to the text report.
func (w *Writer) Export(o *assign.Outcome, format string) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, format, o); err != nil {
		return "", err
	}
	ext := format
	if ext == FormatYAML {
		ext = "yml"
	}
	path := w.Path(o.Date, ext)
	return path, writeAtomic(path, buf.Bytes())
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
