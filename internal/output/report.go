package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"govsync/internal/rules"
)

// ReportSink accumulates a whole run and renders a Markdown compliance
// report on Close.
type ReportSink struct {
	path         string
	file         *os.File
	mu           sync.Mutex
	records      []Record
	scores       map[string]projectScore
	projects     map[string]struct{}
	exitCode     int
	haveExitCode bool
	now          func() time.Time
}

type projectScore struct {
	score int
	grade string
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &ReportSink{
		path:     path,
		file:     f,
		scores:   make(map[string]projectScore),
		projects: make(map[string]struct{}),
		now:      time.Now,
	}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case Record:
		s.records = append(s.records, t)
		if t.Project != "" {
			s.projects[t.Project] = struct{}{}
		}
	case Event:
		if t.Project != "" {
			s.projects[t.Project] = struct{}{}
		}
		switch t.Type {
		case "project.finished":
			s.scores[t.Project] = projectScore{score: t.Score, grade: t.Grade}
		case "run.finished":
			s.exitCode = t.ExitCode
			s.haveExitCode = true
		}
	}
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString("# Compliance Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.now().UTC().Format(time.RFC3339))

	projects := make([]string, 0, len(s.projects))
	for p := range s.projects {
		projects = append(projects, p)
	}
	sort.Strings(projects)

	byProject := make(map[string][]Record)
	for _, r := range s.records {
		byProject[r.Project] = append(byProject[r.Project], r)
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Project | Score | Grade | Critical | High | Medium | Low | Fixable |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, p := range projects {
		counts := make(map[rules.Severity]int)
		fixable := 0
		for _, r := range byProject[p] {
			counts[r.Severity]++
			if r.AutoFixable {
				fixable++
			}
		}
		sc, ok := s.scores[p]
		scoreCell, gradeCell := "-", "-"
		if ok {
			scoreCell = fmt.Sprintf("%d", sc.score)
			gradeCell = sc.grade
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %d | %d | %d | %d |\n",
			p, scoreCell, gradeCell,
			counts[rules.SeverityCritical], counts[rules.SeverityHigh],
			counts[rules.SeverityMedium], counts[rules.SeverityLow], fixable)
	}
	b.WriteString("\n")

	for _, p := range projects {
		group := byProject[p]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", p)
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Severity.Rank() < group[j].Severity.Rank()
		})
		for _, r := range group {
			fmt.Fprintf(&b, "- **%s** [%s] %s", r.Severity, r.Category, r.Message)
			if r.File != "" {
				fmt.Fprintf(&b, " (`%s`)", r.File)
			}
			if r.Remediation != "" {
				fmt.Fprintf(&b, " -- %s", r.Remediation)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if s.haveExitCode {
		fmt.Fprintf(&b, "Exit code: %d\n", s.exitCode)
	}

	_, writeErr := s.file.WriteString(b.String())
	if closeErr := s.file.Close(); closeErr != nil && writeErr == nil {
		writeErr = closeErr
	}
	return writeErr
}
