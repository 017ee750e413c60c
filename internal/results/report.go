// Package results writes run artifacts: the YAML match report and the
// merged review collection.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shutterline/schemapipe/internal/matching"
	"github.com/shutterline/schemapipe/internal/review"
)

// ReportConfig echoes the thresholds a run was executed with, so a report
// is interpretable on its own.
type ReportConfig struct {
	EventWindowDays  int     `yaml:"eventwindowdays"`
	EventDecayDays   float64 `yaml:"eventdecaydays"`
	EventAcceptScore float64 `yaml:"eventacceptscore"`
	KeywordAccept    float64 `yaml:"keywordaccept"`
	FuzzyAccept      float64 `yaml:"fuzzyaccept"`
	ClusterGapDays   int     `yaml:"clustergapdays"`
	ClusterMinSize   int     `yaml:"clusterminsize"`
	MinRating        int     `yaml:"minrating"`
	Timestamp        string  `yaml:"timestamp"`
}

// SourceResult summarizes one review source in the report.
type SourceResult struct {
	Source     string `yaml:"source"`
	Total      int    `yaml:"total"`
	Matched    int    `yaml:"matched"`
	Propagated int    `yaml:"propagated"`
	SecondPass int    `yaml:"secondpass"`
	Unmatched  int    `yaml:"unmatched"`
	Clusters   int    `yaml:"clusters"`
	Eligible   int    `yaml:"eligible"`
}

// UnmatchedSample is a review left for manual triage, trimmed for the
// report.
type UnmatchedSample struct {
	Source   string `yaml:"source"`
	Reviewer string `yaml:"reviewer"`
	Date     string `yaml:"date,omitempty"`
	Body     string `yaml:"body"`
}

// Report is the complete YAML match report for one run.
type Report struct {
	Config    ReportConfig      `yaml:"config"`
	Sources   []SourceResult    `yaml:"sources"`
	Unmatched []UnmatchedSample `yaml:"unmatched,omitempty"`
}

// maxSampleBody keeps triage samples readable in the report.
const maxSampleBody = 200

// NewReport assembles a report from the run configuration and per-source
// statistics.
func NewReport(cfg matching.Config, minRating int) *Report {
	return &Report{
		Config: ReportConfig{
			EventWindowDays:  cfg.EventWindowDays,
			EventDecayDays:   cfg.EventDecayDays,
			EventAcceptScore: cfg.EventAcceptScore,
			KeywordAccept:    cfg.KeywordAccept,
			FuzzyAccept:      cfg.FuzzyAccept,
			ClusterGapDays:   cfg.ClusterGapDays,
			ClusterMinSize:   cfg.ClusterMinSize,
			MinRating:        minRating,
			Timestamp:        time.Now().Format("2006-01-02_15-04-05"),
		},
	}
}

// AddSource records the outcome of one source's matching run.
func (r *Report) AddSource(source string, stats matching.Stats, eligible int) {
	r.Sources = append(r.Sources, SourceResult{
		Source:     source,
		Total:      stats.Total,
		Matched:    stats.Matched,
		Propagated: stats.Propagated,
		SecondPass: stats.SecondPass,
		Unmatched:  stats.Unmatched,
		Clusters:   stats.Clusters,
		Eligible:   eligible,
	})
}

// AddUnmatched records unmatched reviews as triage samples.
func (r *Report) AddUnmatched(reviews []review.Review) {
	for _, rev := range reviews {
		if rev.Matched() {
			continue
		}
		body := rev.Body
		if len(body) > maxSampleBody {
			body = body[:maxSampleBody]
		}
		r.Unmatched = append(r.Unmatched, UnmatchedSample{
			Source:   string(rev.Source),
			Reviewer: rev.Reviewer,
			Date:     rev.RawDate,
			Body:     body,
		})
	}
}

// Save writes the report to a timestamped YAML file under dir and returns
// the path written.
func (r *Report) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("match-report-%s.yaml", r.Config.Timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return path, nil
}

// WriteCollection writes the merged review collection as pretty-printed
// JSON, the input the downstream site build consumes.
func WriteCollection(path string, reviews []review.Review) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(reviews, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write collection: %w", err)
	}

	return nil
}
