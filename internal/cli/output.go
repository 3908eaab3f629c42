package cli

import (
	"io"
	"time"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"

	"github.com/theplant/datefilter"
	"github.com/theplant/datefilter/mbql"
)

// Row describes one filter as the CLI prints it.
type Row struct {
	Name        string              `json:"name,omitempty"`
	DisplayName string              `json:"displayName"`
	Filter      datefilter.Relative `json:"filter"`
	Clause      *mbql.Clause        `json:"clause,omitempty"`
	Range       *datefilter.Range   `json:"range,omitempty"`
	Error       string              `json:"error,omitempty"`
}

func newRow(name string, f datefilter.Relative, s *settings) Row {
	row := Row{Name: name, DisplayName: f.DisplayName(s.column), Filter: f}

	c, err := f.ToClause(s.column)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Clause = c

	rng, err := f.Resolve(s.now, s.resolveOpts...)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Range = &rng
	return row
}

type OutputWriter interface {
	Write(rows []Row) error
}

type TextWriter struct {
	w   io.Writer
	now time.Time
}

type JSONWriter struct {
	w io.Writer
}

func NewOutputWriter(w io.Writer, format string, now time.Time) OutputWriter {
	if format == "json" {
		return JSONWriter{w}
	}
	return TextWriter{w, now}
}

func (w TextWriter) Write(rows []Row) error {
	table := tablewriter.NewWriter(w.w)
	table.Header("Name", "Filter", "Clause", "Start", "End")
	for _, row := range rows {
		clause := row.Error
		if row.Clause != nil {
			data, err := row.Clause.MarshalJSON()
			if err != nil {
				return err
			}
			clause = string(data)
		}
		var start, end string
		if row.Range != nil {
			start, end = w.bound(row.Range.Start), w.bound(row.Range.End)
		}
		if err := table.Append([]string{row.Name, row.DisplayName, clause, start, end}); err != nil {
			return err
		}
	}
	return table.Render()
}

func (w TextWriter) bound(t time.Time) string {
	return t.Format(time.DateTime) + " (" + humanize.RelTime(t, w.now, "ago", "from now") + ")"
}

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

func (w JSONWriter) Write(rows []Row) error {
	enc := jsonAPI.NewEncoder(w.w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
