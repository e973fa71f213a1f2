// Package output renders command results as aligned text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Formatter handles output formatting (table or JSON).
type Formatter struct {
	Writer   io.Writer
	JSONMode bool
}

// New creates a Formatter writing to w, emitting JSON when jsonMode is set.
func New(w io.Writer, jsonMode bool) *Formatter {
	return &Formatter{
		Writer:   w,
		JSONMode: jsonMode,
	}
}

// Table outputs rows as an aligned table, or as a JSON array of objects
// keyed by header in JSON mode.
func (f *Formatter) Table(headers []string, rows [][]string) error {
	if f.JSONMode {
		result := make([]map[string]string, 0, len(rows))
		for _, row := range rows {
			obj := make(map[string]string, len(headers))
			for i, header := range headers {
				if i < len(row) {
					obj[header] = row[i]
				} else {
					obj[header] = ""
				}
			}
			result = append(result, obj)
		}
		return f.Print(result)
	}

	tw := tabwriter.NewWriter(f.Writer, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return err
	}

	separators := make([]string, len(headers))
	for i, h := range headers {
		separators[i] = strings.Repeat("-", len(h))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(separators, "\t")); err != nil {
		return err
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// KeyValue outputs label/value pairs as aligned lines. In JSON mode the
// data argument is printed instead, so the structured form keeps its
// original field names.
func (f *Formatter) KeyValue(pairs [][2]string, data any) error {
	if f.JSONMode {
		return f.Print(data)
	}

	tw := tabwriter.NewWriter(f.Writer, 0, 0, 2, ' ', 0)
	for _, pair := range pairs {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", pair[0], pair[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Print outputs data as pretty-printed JSON in JSON mode, or a plain
// representation otherwise.
func (f *Formatter) Print(data any) error {
	if f.JSONMode {
		encoder := json.NewEncoder(f.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}

	_, err := fmt.Fprintf(f.Writer, "%v\n", data)
	return err
}
