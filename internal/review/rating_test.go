package review

import "testing"

func TestNormalizeRating(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
		ok       bool
	}{
		{name: "numeric string", raw: "5", expected: 5, ok: true},
		{name: "word form upper", raw: "FIVE", expected: 5, ok: true},
		{name: "word form mixed case", raw: "Three", expected: 3, ok: true},
		{name: "float string", raw: "4.0", expected: 4, ok: true},
		{name: "whitespace", raw: " 2 ", expected: 2, ok: true},
		{name: "out of range high", raw: "6", expected: 0, ok: false},
		{name: "out of range low", raw: "0", expected: 0, ok: false},
		{name: "empty", raw: "", expected: 0, ok: false},
		{name: "garbage", raw: "excellent", expected: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeRating(tt.raw)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("NormalizeRating(%q) = (%d, %v), want (%d, %v)",
					tt.raw, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestNormalizeRatingIdempotent(t *testing.T) {
	// "FIVE", "5" and an already-normalized 5 must all produce 5.
	for _, raw := range []string{"FIVE", "5"} {
		n, ok := NormalizeRating(raw)
		if !ok || n != 5 {
			t.Fatalf("NormalizeRating(%q) = (%d, %v), want (5, true)", raw, n, ok)
		}

		again, ok := NormalizeRating("5")
		if !ok || again != n {
			t.Errorf("Re-normalizing produced %d, want %d", again, n)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{name: "ISO date", raw: "2024-03-10", valid: true},
		{name: "RFC3339", raw: "2024-03-10T14:30:00Z", valid: true},
		{name: "UK slashes", raw: "10/03/2024", valid: true},
		{name: "long form", raw: "10 March 2024", valid: true},
		{name: "empty", raw: "", valid: false},
		{name: "garbage", raw: "last tuesday", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.raw)
			if got.IsZero() == tt.valid {
				t.Errorf("ParseDate(%q).IsZero() = %v, want valid=%v", tt.raw, got.IsZero(), tt.valid)
			}
		})
	}
}

func TestReviewText(t *testing.T) {
	r := Review{Title: "Great Day", Body: "Loved the Batsford workshop"}
	expected := "great day loved the batsford workshop"
	if r.Text() != expected {
		t.Errorf("Expected %q, got %q", expected, r.Text())
	}

	noTitle := Review{Body: "Just The Body"}
	if noTitle.Text() != "just the body" {
		t.Errorf("Expected body-only text, got %q", noTitle.Text())
	}
}
