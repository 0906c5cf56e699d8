// Package output writes the driver's per-iteration metric columns to
// CSV, one column per iteration, one row per metric — spec.md §4.9's
// "dictionary of parallel sequences" on disk.
package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
)

// Writer accumulates named metric rows across iterations and flushes
// them as CSV on Close, one row per metric name in first-seen order.
type Writer struct {
	file    *os.File
	buf     *bufio.Writer
	order   []string
	rows    map[string][]string
	tsBase  map[string]float64
	nIters  int
}

// Create opens path for writing, truncating any existing content.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("output: creating %s: %w", path, err)
	}
	return &Writer{
		file:   f,
		buf:    bufio.NewWriter(f),
		rows:   make(map[string][]string),
		tsBase: make(map[string]float64),
	}, nil
}

// Put records value for metric at the current iteration. Iterations
// are appended in call order per metric; callers must call Put for
// every tracked metric every iteration to keep rows aligned.
func (w *Writer) Put(metric string, value string) {
	if _, ok := w.rows[metric]; !ok {
		w.order = append(w.order, metric)
	}
	w.rows[metric] = append(w.rows[metric], value)
}

// PutInt is a convenience wrapper around Put for integer-valued
// metrics.
func (w *Writer) PutInt(metric string, value int) {
	w.Put(metric, fmt.Sprintf("%d", value))
}

// PutUint64 is a convenience wrapper around Put for packet-count
// metrics.
func (w *Writer) PutUint64(metric string, value uint64) {
	w.Put(metric, fmt.Sprintf("%d", value))
}

// PutFloat records a float-valued metric as is, with six decimal
// places. Use PutTimestampRebased for timestamp-like metrics (e.g.
// iteration_end_ts) that should read as elapsed time.
func (w *Writer) PutFloat(metric string, value float64) {
	w.Put(metric, fmt.Sprintf("%.6f", value))
}

// PutTimestampRebased behaves like PutFloat but subtracts the first
// value recorded for metric, so the column reads as elapsed seconds
// since the run started rather than absolute wall-clock time.
func (w *Writer) PutTimestampRebased(metric string, value float64) {
	base, seen := w.tsBase[metric]
	if !seen {
		w.tsBase[metric] = value
		base = value
	}
	w.Put(metric, fmt.Sprintf("%.6f", value-base))
}

// Close flushes every tracked metric as one CSV row (header "metric",
// followed by one column per iteration) and closes the underlying
// file.
func (w *Writer) Close() error {
	cw := csv.NewWriter(w.buf)
	for _, metric := range w.order {
		record := append([]string{metric}, w.rows[metric]...)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("output: writing row %q: %w", metric, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if err := w.buf.Flush(); err != nil {
		return err
	}
	return w.file.Close()
}
