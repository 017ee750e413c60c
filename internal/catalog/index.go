// Package catalog builds the matchable product universe for a pipeline run.
package catalog

import (
	"log/slog"
	"strings"
)

// Product represents a single product from the cleaned product export.
type Product struct {
	Name       string `json:"name" parquet:"name"`
	URL        string `json:"url" parquet:"url"`
	Category   string `json:"category" parquet:"category"`
	PriceRange string `json:"price_range" parquet:"price_range"`

	// Slug is derived from URL at index build time.
	Slug string `json:"slug" parquet:"-"`
}

// Index is a read-only lookup from product slug to product, built once per
// pipeline run. Products without a name or a derivable slug are excluded
// from the matchable universe; that is policy, not an error.
type Index struct {
	bySlug map[string]Product
	slugs  []string
}

// SlugFromURL returns the trailing path segment of a canonical URL, trimmed
// of surrounding whitespace. No case normalization is applied here; slugs
// are preserved as produced upstream.
func SlugFromURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	trimmed = strings.TrimRight(trimmed, "/")
	if trimmed == "" {
		return ""
	}
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return strings.TrimSpace(trimmed)
	}
	return strings.TrimSpace(trimmed[idx+1:])
}

// NewIndex builds the slug lookup from the cleaned product collection.
func NewIndex(products []Product) *Index {
	idx := &Index{
		bySlug: make(map[string]Product, len(products)),
	}

	for _, p := range products {
		if strings.TrimSpace(p.Name) == "" {
			slog.Debug("Skipping product without a name", "url", p.URL)
			continue
		}

		slug := SlugFromURL(p.URL)
		if slug == "" {
			slog.Debug("Skipping product without a derivable slug", "name", p.Name)
			continue
		}

		p.Slug = slug
		if _, exists := idx.bySlug[slug]; exists {
			slog.Warn("Duplicate product slug, keeping first occurrence", "slug", slug)
			continue
		}

		idx.bySlug[slug] = p
		idx.slugs = append(idx.slugs, slug)
	}

	return idx
}

// Lookup returns the product for a slug.
func (i *Index) Lookup(slug string) (Product, bool) {
	p, ok := i.bySlug[slug]
	return p, ok
}

// Contains reports whether a slug is part of the matchable universe.
func (i *Index) Contains(slug string) bool {
	_, ok := i.bySlug[slug]
	return ok
}

// Slugs returns all valid slugs in insertion order.
func (i *Index) Slugs() []string {
	return i.slugs
}

// Products returns all indexed products in insertion order.
func (i *Index) Products() []Product {
	out := make([]Product, 0, len(i.slugs))
	for _, slug := range i.slugs {
		out = append(out, i.bySlug[slug])
	}
	return out
}

// Len returns the number of matchable products.
func (i *Index) Len() int {
	return len(i.slugs)
}
