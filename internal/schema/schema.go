// Package schema serializes matched review collections as schema.org
// JSON-LD, one Product document per catalog product with reviews.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/shutterline/schemapipe/internal/catalog"
	"github.com/shutterline/schemapipe/internal/review"
)

// Product is a schema.org Product document with its rating summary and
// reviews.
type Product struct {
	Context         string           `json:"@context"`
	Type            string           `json:"@type"`
	Name            string           `json:"name"`
	URL             string           `json:"url,omitempty"`
	Category        string           `json:"category,omitempty"`
	AggregateRating *AggregateRating `json:"aggregateRating,omitempty"`
	Reviews         []Review         `json:"review,omitempty"`
}

// AggregateRating is a schema.org AggregateRating object.
type AggregateRating struct {
	Type        string  `json:"@type"`
	RatingValue float64 `json:"ratingValue"`
	ReviewCount int     `json:"reviewCount"`
	BestRating  int     `json:"bestRating"`
	WorstRating int     `json:"worstRating"`
}

// Review is a schema.org Review object.
type Review struct {
	Type          string `json:"@type"`
	Author        Person `json:"author"`
	DatePublished string `json:"datePublished,omitempty"`
	ReviewBody    string `json:"reviewBody"`
	ReviewRating  Rating `json:"reviewRating"`
}

// Person is a schema.org Person object.
type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// Rating is a schema.org Rating object.
type Rating struct {
	Type        string `json:"@type"`
	RatingValue int    `json:"ratingValue"`
	BestRating  int    `json:"bestRating"`
	WorstRating int    `json:"worstRating"`
}

// Build groups matched reviews by product and assembles one JSON-LD
// document per product that has at least one review. Unmatched reviews
// never appear in structured data.
func Build(products *catalog.Index, reviews []review.Review) []Product {
	bySlug := make(map[string][]review.Review)
	for _, r := range reviews {
		if !r.Matched() {
			continue
		}
		bySlug[r.ProductSlug] = append(bySlug[r.ProductSlug], r)
	}

	var docs []Product
	for _, p := range products.Products() {
		matched := bySlug[p.Slug]
		if len(matched) == 0 {
			continue
		}

		doc := Product{
			Context:         "https://schema.org",
			Type:            "Product",
			Name:            p.Name,
			URL:             p.URL,
			Category:        p.Category,
			AggregateRating: aggregate(matched),
		}
		for _, r := range matched {
			doc.Reviews = append(doc.Reviews, Review{
				Type:          "Review",
				Author:        Person{Type: "Person", Name: r.Reviewer},
				DatePublished: datePublished(r),
				ReviewBody:    r.Body,
				ReviewRating: Rating{
					Type:        "Rating",
					RatingValue: r.Rating,
					BestRating:  5,
					WorstRating: 1,
				},
			})
		}
		docs = append(docs, doc)
	}

	return docs
}

func aggregate(reviews []review.Review) *AggregateRating {
	sum := 0
	counted := 0
	for _, r := range reviews {
		if r.Rating == 0 {
			continue
		}
		sum += r.Rating
		counted++
	}
	if counted == 0 {
		return nil
	}

	avg := float64(sum) / float64(counted)
	return &AggregateRating{
		Type:        "AggregateRating",
		RatingValue: math.Round(avg*10) / 10,
		ReviewCount: counted,
		BestRating:  5,
		WorstRating: 1,
	}
}

func datePublished(r review.Review) string {
	if !r.HasDate() {
		return ""
	}
	return r.Date.Format("2006-01-02")
}

// WriteAll writes one <slug>.json document per product into dir.
func WriteAll(dir string, products *catalog.Index, reviews []review.Review) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create schema directory: %w", err)
	}

	docs := Build(products, reviews)
	for _, doc := range docs {
		slug := catalog.SlugFromURL(doc.URL)
		if slug == "" {
			slug = doc.Name
		}

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return 0, fmt.Errorf("failed to marshal schema for %s: %w", doc.Name, err)
		}

		path := filepath.Join(dir, slug+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return 0, fmt.Errorf("failed to write schema file: %w", err)
		}
	}

	return len(docs), nil
}
