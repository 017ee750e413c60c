// Package pipelinecmd implements the CLI subcommands of the pipeline.
package pipelinecmd

import (
	"fmt"

	"github.com/shutterline/schemapipe/internal/calendar"
	"github.com/shutterline/schemapipe/internal/catalog"
	"github.com/shutterline/schemapipe/internal/dataset"
	"github.com/shutterline/schemapipe/internal/matching"
	"github.com/shutterline/schemapipe/internal/review"
)

// loadCatalog loads the product export and builds the catalog index. An
// empty catalog is fatal: nothing downstream can run without products.
func loadCatalog(path string) (*catalog.Index, error) {
	records, err := dataset.LoadProducts(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	products := make([]catalog.Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.ToProduct())
	}

	index := catalog.NewIndex(products)
	if index.Len() == 0 {
		return nil, fmt.Errorf("product catalog is empty: %s", path)
	}
	return index, nil
}

// loadCalendar loads the event export and builds the calendar index.
func loadCalendar(path string, products *catalog.Index) (*calendar.Index, error) {
	records, err := dataset.LoadEvents(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	events := make([]calendar.Event, 0, len(records))
	for _, r := range records {
		events = append(events, r.ToEvent())
	}
	return calendar.NewIndex(events, products), nil
}

// loadSource loads one platform's review export as domain reviews.
func loadSource(path string, source review.Source) ([]review.Review, error) {
	records, err := dataset.LoadReviews(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s reviews: %w", source, err)
	}

	reviews := make([]review.Review, 0, len(records))
	for _, r := range records {
		reviews = append(reviews, r.ToReview(source))
	}
	return reviews, nil
}

// loadAliases loads the alias table, falling back to the built-in table
// when no file is given.
func loadAliases(path string) (matching.AliasTable, error) {
	if path == "" {
		return matching.DefaultAliases(), nil
	}
	return matching.LoadAliasTable(path)
}

// asPointers adapts a review slice to the pointer slice the matcher
// mutates in place.
func asPointers(reviews []review.Review) []*review.Review {
	out := make([]*review.Review, len(reviews))
	for i := range reviews {
		out[i] = &reviews[i]
	}
	return out
}
