package matching

import "testing"

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name     string
		s1       string
		s2       string
		expected int
	}{
		{name: "identical", s1: "workshop", s2: "workshop", expected: 0},
		{name: "single substitution", s1: "cat", s2: "bat", expected: 1},
		{name: "insertion", s1: "glen", s2: "glenc", expected: 1},
		{name: "empty left", s1: "", s2: "abc", expected: 3},
		{name: "empty right", s1: "abc", s2: "", expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := levenshteinDistance(tt.s1, tt.s2); got != tt.expected {
				t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.expected)
			}
		})
	}
}

func TestSimilarityRatio(t *testing.T) {
	if got := similarityRatio("abcd", "abcd"); got != 1.0 {
		t.Errorf("Expected 1.0 for identical strings, got %f", got)
	}
	if got := similarityRatio("", "abcd"); got != 0.0 {
		t.Errorf("Expected 0.0 when one side is empty, got %f", got)
	}

	got := similarityRatio("landscape workshop", "landscape workshops")
	if got < 0.9 {
		t.Errorf("Expected near-identical strings to score high, got %f", got)
	}
}

func TestNormalizeText(t *testing.T) {
	got := normalizeText("  Amazing time, at  Batsford!  ")
	want := "amazing time at batsford"
	if got != want {
		t.Errorf("normalizeText = %q, want %q", got, want)
	}
}

func TestKeywordExtractor(t *testing.T) {
	cfg := DefaultConfig()
	e := newKeywordExtractor(cfg)

	// "photography" and "workshop" are stop words, "gower" is on the
	// always-include list despite being at the length cutoff.
	got := e.Extract("a stunning photography workshop on gower coastline")

	want := map[string]bool{"stunning": true, "gower": true, "coastline": true}
	if len(got) != len(want) {
		t.Fatalf("Extract returned %v, want keys %v", got, want)
	}
	for _, w := range got {
		if !want[w] {
			t.Errorf("Unexpected keyword %q", w)
		}
	}
}

func TestKeywordExtractorDeduplicates(t *testing.T) {
	e := newKeywordExtractor(DefaultConfig())
	got := e.Extract("sunrise sunrise sunrise")
	if len(got) != 1 || got[0] != "sunrise" {
		t.Errorf("Expected single deduplicated keyword, got %v", got)
	}
}
