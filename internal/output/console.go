package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"govsync/internal/rules"
)

var severityColors = map[rules.Severity]*color.Color{
	rules.SeverityCritical: color.New(color.FgRed, color.Bold),
	rules.SeverityHigh:     color.New(color.FgRed),
	rules.SeverityMedium:   color.New(color.FgYellow),
	rules.SeverityLow:      color.New(color.FgCyan),
}

type ConsoleSink struct {
	writer  io.Writer
	format  string // "text", "json", "ndjson"
	mu      sync.Mutex
	records []Record // For JSON array output

	// filter drops records less severe than minRank.
	filter  bool
	minRank int
}

func NewConsoleSink(w io.Writer, format string, minSeverity rules.Severity) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer: w,
		format: format,
	}
	if minSeverity != "" {
		s.filter = true
		s.minRank = minSeverity.Rank()
	}
	return s
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	if r, ok := v.(Record); ok && s.filter {
		// Rank runs critical=0 .. low=3, so "less severe" is a larger rank.
		if r.Severity.Rank() > s.minRank {
			return nil
		}
	}

	switch s.format {
	case "json":
		r, ok := v.(Record)
		if !ok {
			// Ignore lifecycle events in JSON aggregate mode.
			return nil
		}
		s.records = append(s.records, r)
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case Record:
			if err := encoder.Encode(eventFromRecord(t)); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		switch t := v.(type) {
		case Record:
			c, ok := severityColors[t.Severity]
			if !ok {
				c = color.New()
			}
			tag := c.Sprintf("[%s]", t.Severity)
			if _, err := fmt.Fprintf(s.writer, "%s %s: %s", tag, t.Project, t.Message); err != nil {
				return err
			}
			if t.File != "" {
				if _, err := fmt.Fprintf(s.writer, " (%s)", t.File); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(s.writer); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case Event:
			if t.Type != "project.finished" {
				return nil
			}
			if _, err := fmt.Fprintf(s.writer, "%s: score %d (%s)\n", t.Project, t.Score, t.Grade); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.records); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}
