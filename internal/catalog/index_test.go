package catalog

import (
	"testing"
)

func TestSlugFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "plain product URL",
			url:      "https://example.com/photography-services/batsford-arboretum-photography-workshops",
			expected: "batsford-arboretum-photography-workshops",
		},
		{
			name:     "trailing slash",
			url:      "https://example.com/courses/beginners-photography-course/",
			expected: "beginners-photography-course",
		},
		{
			name:     "surrounding whitespace",
			url:      "  https://example.com/courses/lightroom-course  ",
			expected: "lightroom-course",
		},
		{
			name:     "case preserved",
			url:      "https://example.com/courses/Lightroom-Course",
			expected: "Lightroom-Course",
		},
		{
			name:     "empty",
			url:      "",
			expected: "",
		},
		{
			name:     "no path",
			url:      "slug-only",
			expected: "slug-only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SlugFromURL(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNewIndex(t *testing.T) {
	products := []Product{
		{Name: "Batsford Arboretum Photography Workshops", URL: "https://example.com/p/batsford-arboretum-photography-workshops"},
		{Name: "", URL: "https://example.com/p/nameless-product"},
		{Name: "No URL Product", URL: ""},
		{Name: "Landscape Workshop Glencoe", URL: "https://example.com/p/landscape-photography-workshop-glencoe"},
	}

	idx := NewIndex(products)

	if idx.Len() != 2 {
		t.Fatalf("Expected 2 matchable products, got %d", idx.Len())
	}

	if !idx.Contains("batsford-arboretum-photography-workshops") {
		t.Error("Expected batsford slug in index")
	}

	if idx.Contains("nameless-product") {
		t.Error("Product without a name must be excluded")
	}

	p, ok := idx.Lookup("landscape-photography-workshop-glencoe")
	if !ok {
		t.Fatal("Expected glencoe slug in index")
	}
	if p.Name != "Landscape Workshop Glencoe" {
		t.Errorf("Expected product name preserved, got %q", p.Name)
	}
	if p.Slug != "landscape-photography-workshop-glencoe" {
		t.Errorf("Expected slug set on product, got %q", p.Slug)
	}
}

func TestNewIndexDuplicateSlugKeepsFirst(t *testing.T) {
	products := []Product{
		{Name: "First", URL: "https://example.com/p/same-slug"},
		{Name: "Second", URL: "https://example.com/p/same-slug"},
	}

	idx := NewIndex(products)

	if idx.Len() != 1 {
		t.Fatalf("Expected 1 product, got %d", idx.Len())
	}

	p, _ := idx.Lookup("same-slug")
	if p.Name != "First" {
		t.Errorf("Expected first occurrence to win, got %q", p.Name)
	}
}
