package pipelinecmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shutterline/schemapipe/internal/review"
)

func writeTestFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestExecuteRun(t *testing.T) {
	dir := t.TempDir()

	products := writeTestFile(t, dir, "products.csv", `name,url,category,price_range
Batsford Arboretum Photography Workshops,https://example.com/p/batsford-arboretum-photography-workshops,Workshops,£99
Anglesey Photography Workshops,https://example.com/p/anglesey-photography-workshops,Workshops,£120
Landscape Photography Workshop Glencoe,https://example.com/p/landscape-photography-workshop-glencoe,Workshops,£250
`)

	events := writeTestFile(t, dir, "events.csv", `title,url,start,state,location
Glencoe Landscape Workshop,https://example.com/e/landscape-photography-workshop-glencoe,2024-03-08,confirmed,Glencoe
`)

	// Jo's review appears twice, as platform exports sometimes do.
	google := writeTestFile(t, dir, "google.jsonl", `{"reviewer":"Jo","body":"Amazing time at Batsford Arboretum","rating":"5","date":"2024-06-01"}
{"reviewer":"Jo","body":"Amazing time at Batsford Arboretum","rating":"5","date":"2024-06-01"}
{"reviewer":"Sam","body":"Lovely day out","rating":"5","date":"2024-06-02"}
{"reviewer":"Ash","body":"Wonderful experience, highly recommend!","rating":"4","date":"2024-03-10"}
{"reviewer":"Kim","body":"Completely unrelated text about something else entirely","rating":"3","date":"2024-09-01"}
`)

	trustpilot := writeTestFile(t, dir, "trustpilot.jsonl", `{"reviewer":"Jo","body":"Amazing time at Batsford Arboretum","rating":"5","date":"2024-06-01"}
{"reviewer":"Pat","body":"The Anglesey weekend was superb","rating":"five","date":"2024-07-01"}
`)

	outputDir := filepath.Join(dir, "out")
	err := executeRun(runOptions{
		productsPath:   products,
		eventsPath:     events,
		googlePath:     google,
		trustpilotPath: trustpilot,
		outputDir:      outputDir,
		minRating:      4,
		concurrency:    2,
	})
	if err != nil {
		t.Fatalf("executeRun failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "reviews.json"))
	if err != nil {
		t.Fatalf("Collection not written: %v", err)
	}

	var merged []review.Review
	if err := json.Unmarshal(data, &merged); err != nil {
		t.Fatalf("Collection is not valid JSON: %v", err)
	}

	// 7 reviews in, Jo's duplicate removed. Jo's Trustpilot review has the
	// same text but a different source, so it stays.
	if len(merged) != 6 {
		t.Fatalf("Expected 6 merged reviews, got %d", len(merged))
	}

	bySlug := make(map[string]int)
	unmatched := 0
	for _, r := range merged {
		if r.ProductSlug == "" {
			unmatched++
			continue
		}
		bySlug[r.ProductSlug]++
	}

	if unmatched != 1 {
		t.Errorf("Expected 1 unmatched review, got %d", unmatched)
	}
	// Batsford: alias matches on both sources plus cluster propagation.
	if bySlug["batsford-arboretum-photography-workshops"] != 3 {
		t.Errorf("Expected 3 batsford reviews, got %d", bySlug["batsford-arboretum-photography-workshops"])
	}
	// Glencoe: event-calendar temporal decay.
	if bySlug["landscape-photography-workshop-glencoe"] != 1 {
		t.Errorf("Expected 1 glencoe review, got %d", bySlug["landscape-photography-workshop-glencoe"])
	}
	// Anglesey: alias match on the Trustpilot source.
	if bySlug["anglesey-photography-workshops"] != 1 {
		t.Errorf("Expected 1 anglesey review, got %d", bySlug["anglesey-photography-workshops"])
	}

	// Structured data written for matched products only.
	if _, err := os.Stat(filepath.Join(outputDir, "schema", "batsford-arboretum-photography-workshops.json")); err != nil {
		t.Errorf("Expected batsford schema document: %v", err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("Failed to read output dir: %v", err)
	}
	foundReport := false
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".yaml" {
			foundReport = true
		}
	}
	if !foundReport {
		t.Error("Expected a YAML match report in the output directory")
	}
}

func TestExecuteRunEmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	products := writeTestFile(t, dir, "products.csv", "name,url,category,price_range\n")
	google := writeTestFile(t, dir, "google.jsonl", `{"reviewer":"Jo","body":"text","rating":"5","date":"2024-06-01"}`+"\n")

	err := executeRun(runOptions{
		productsPath: products,
		googlePath:   google,
		outputDir:    filepath.Join(dir, "out"),
		minRating:    4,
		concurrency:  1,
	})
	if err == nil {
		t.Error("Expected error for empty catalog, got nil")
	}
}

func TestSourceConfig(t *testing.T) {
	if _, cfg, err := sourceConfig("google"); err != nil || !cfg.EnableDateStrategies {
		t.Errorf("google source should enable date strategies (err=%v)", err)
	}
	if _, cfg, err := sourceConfig("trustpilot"); err != nil || cfg.EnableDateStrategies {
		t.Errorf("trustpilot source should disable date strategies (err=%v)", err)
	}
	if _, _, err := sourceConfig("yelp"); err == nil {
		t.Error("Expected error for unsupported source")
	}
}
