package merge

import (
	"testing"

	"github.com/shutterline/schemapipe/internal/review"
)

func datedReview(source review.Source, reviewer, body, rawDate string, rating int) review.Review {
	return review.Review{
		Source:   source,
		Reviewer: reviewer,
		Body:     body,
		RawDate:  rawDate,
		Date:     review.ParseDate(rawDate),
		Rating:   rating,
	}
}

func TestMergeDeduplicates(t *testing.T) {
	google := []review.Review{
		datedReview(review.SourceGoogle, "Jo Smith", "Loved the workshop", "2024-06-01", 5),
		datedReview(review.SourceGoogle, "Jo Smith", "Loved the workshop", "2024-06-01", 5),
	}
	trustpilot := []review.Review{
		datedReview(review.SourceTrustpilot, "Jo Smith", "Loved the workshop", "2024-06-01", 5),
	}

	merged := Merge(google, trustpilot)

	// Same reviewer/body/date on a different source is a different review.
	if len(merged) != 2 {
		t.Fatalf("Expected 2 reviews after merge, got %d", len(merged))
	}
}

func TestMergeIdempotent(t *testing.T) {
	reviews := []review.Review{
		datedReview(review.SourceGoogle, "A", "First review body", "2024-01-02", 4),
		datedReview(review.SourceGoogle, "B", "Second review body", "2024-03-04", 5),
	}

	once := Merge(reviews)
	twice := Merge(once, once)

	if len(twice) != len(once) {
		t.Fatalf("Merging a collection with itself grew it: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if Key(&once[i]) != Key(&twice[i]) {
			t.Errorf("Order changed at %d after re-merge", i)
		}
	}
}

func TestMergeSortsByRecency(t *testing.T) {
	reviews := []review.Review{
		datedReview(review.SourceGoogle, "Old", "oldest", "2023-01-01", 5),
		datedReview(review.SourceGoogle, "Undated", "no date here", "", 5),
		datedReview(review.SourceGoogle, "New", "newest", "2024-06-01", 5),
	}

	merged := Merge(reviews)

	if merged[0].Reviewer != "New" {
		t.Errorf("Expected newest first, got %q", merged[0].Reviewer)
	}
	if merged[len(merged)-1].Reviewer != "Undated" {
		t.Errorf("Expected unparseable date last, got %q", merged[len(merged)-1].Reviewer)
	}
}

func TestMergeFirstOccurrenceWins(t *testing.T) {
	first := []review.Review{
		{Source: review.SourceGoogle, Reviewer: "Jo", Body: "Same body", RawDate: "2024-06-01", Rating: 5, ProductSlug: "first-slug"},
	}
	second := []review.Review{
		{Source: review.SourceGoogle, Reviewer: "Jo", Body: "Same body", RawDate: "2024-06-01", Rating: 5, ProductSlug: "second-slug"},
	}

	merged := Merge(first, second)
	if len(merged) != 1 {
		t.Fatalf("Expected 1 review, got %d", len(merged))
	}
	if merged[0].ProductSlug != "first-slug" {
		t.Errorf("Expected first occurrence to win, got %q", merged[0].ProductSlug)
	}
}

func TestKeyTruncatesBody(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}

	a := review.Review{Source: review.SourceGoogle, Reviewer: "Jo", Body: string(long) + "X"}
	b := review.Review{Source: review.SourceGoogle, Reviewer: "Jo", Body: string(long) + "Y"}

	// Identical first 100 characters means identical keys.
	if Key(&a) != Key(&b) {
		t.Error("Expected keys to match on first 100 body characters")
	}
}

func TestEligible(t *testing.T) {
	reviews := []review.Review{
		{Reviewer: "Five", Rating: 5},
		{Reviewer: "Four", Rating: 4},
		{Reviewer: "Three", Rating: 3},
		{Reviewer: "Unrated", Rating: 0},
	}

	eligible := Eligible(reviews, 4)

	if len(eligible) != 2 {
		t.Fatalf("Expected 2 eligible reviews, got %d", len(eligible))
	}
	for _, r := range eligible {
		if r.Rating < 4 {
			t.Errorf("Review %q with rating %d should not be eligible", r.Reviewer, r.Rating)
		}
	}
}
