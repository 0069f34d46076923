// Package console renders ledger state for terminal and runs the interactive shell
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/umputun/iqcmaker/app/enums"
	"github.com/umputun/iqcmaker/app/history"
)

// Printer writes records and stats to Out in the selected format. Safe for concurrent use.
type Printer struct {
	Out    io.Writer
	Format enums.OutputFormat
	mu     sync.Mutex
}

// Summary is a stats view of the ledger
type Summary struct {
	Total     int64  `json:"total" yaml:"total"`
	Records   int    `json:"records" yaml:"records"`
	Pending   int    `json:"pending" yaml:"pending"`
	Succeeded int    `json:"succeeded" yaml:"succeeded"`
	Failed    int    `json:"failed" yaml:"failed"`
	InFlight  bool   `json:"in_flight" yaml:"in_flight"`
	Result    string `json:"result,omitempty" yaml:"result,omitempty"`
}

// MakeSummary counts records by status
func MakeSummary(total int64, recs []history.Record) Summary {
	res := Summary{Total: total, Records: len(recs)}
	for _, r := range recs {
		switch r.Status {
		case enums.JobStatusPending:
			res.Pending++
		case enums.JobStatusSucceeded:
			res.Succeeded++
		case enums.JobStatusFailed:
			res.Failed++
		}
	}
	return res
}

// Record prints a single record
func (p *Printer) Record(rec history.Record) error {
	return p.render(rec, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, recordLine(rec))
		return err
	})
}

// History prints all records in submission order
func (p *Printer) History(recs []history.Record) error {
	if recs == nil {
		recs = []history.Record{}
	}
	return p.render(recs, func(w io.Writer) error {
		if len(recs) == 0 {
			_, err := fmt.Fprintln(w, "history is empty")
			return err
		}
		for _, rec := range recs {
			if _, err := fmt.Fprintln(w, recordLine(rec)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Stats prints ledger summary
func (p *Printer) Stats(s Summary) error {
	return p.render(s, func(w io.Writer) error {
		lines := []string{
			fmt.Sprintf("total created: %d", s.Total),
			fmt.Sprintf("records:       %d (pending %d, succeeded %d, failed %d)", s.Records, s.Pending, s.Succeeded, s.Failed),
		}
		if s.InFlight {
			lines = append(lines, "in flight:     yes")
		}
		if s.Result != "" {
			lines = append(lines, "last result:   "+s.Result)
		}
		_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
		return err
	})
}

// Message prints free text line, the same for all formats
func (p *Printer) Message(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.Out, format+"\n", args...)
}

func (p *Printer) render(v any, text func(w io.Writer) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.Format {
	case enums.OutputFormatJson:
		enc := json.NewEncoder(p.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("can't encode json: %w", err)
		}
		return nil
	case enums.OutputFormatYaml:
		enc := yaml.NewEncoder(p.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("can't encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return text(p.Out)
	}
}

func recordLine(rec history.Record) string {
	res := fmt.Sprintf("%s  %-9s  %q", rec.Timestamp, rec.Status, rec.Text)
	if rec.Result != "" {
		res += "  " + rec.Result
	}
	return res
}
