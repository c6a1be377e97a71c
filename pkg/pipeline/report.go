package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/matzehuels/gdiff/pkg/buildinfo"
)

// Report is the JSON summary of a run written with --report.
type Report struct {
	RunID       string          `json:"run_id"`
	Version     string          `json:"version"`
	GeneratedAt time.Time       `json:"generated_at"`
	Mode        string          `json:"mode"`
	Inputs      []string        `json:"inputs"`
	Outputs     []Output        `json:"outputs"`
	Warnings    []ReportWarning `json:"warnings"`
}

// ReportWarning is an ambiguous label path resolved to its first match.
type ReportWarning struct {
	Path    string `json:"path"`
	Matches int    `json:"matches"`
}

// NewReport summarizes res.
func NewReport(res *Result) Report {
	r := Report{
		RunID:       res.RunID,
		Version:     buildinfo.Version,
		GeneratedAt: time.Now().UTC(),
		Mode:        string(res.Mode),
		Inputs:      res.Inputs,
		Outputs:     res.Outputs,
		Warnings:    make([]ReportWarning, len(res.Warnings)),
	}
	for i, w := range res.Warnings {
		r.Warnings[i] = ReportWarning{Path: w.Path.String(), Matches: w.Matches}
	}
	return r
}

// WriteReport writes the report of res to path as indented JSON.
func WriteReport(path string, res *Result) error {
	data, err := json.MarshalIndent(NewReport(res), "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
