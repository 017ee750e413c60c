package matching

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AliasRule maps a curated keyword phrase to a product slug. A nil Slug is
// a deliberate negative signal: the phrase is recognized but the review
// must stay unmatched (no fallback to later strategies).
type AliasRule struct {
	Phrase string  `yaml:"phrase"`
	Slug   *string `yaml:"slug"`
}

// AliasTable is an ordered list of alias rules. Table order encodes
// override priority: the first rule whose phrase is contained in the review
// text wins, so more specific phrases must precede generic ones that would
// otherwise shadow them.
type AliasTable []AliasRule

// Match performs a case-insensitive substring lookup of each alias phrase
// within the combined review text. It returns the target slug and whether
// any rule fired; a fired rule with a nil target returns ("", true).
func (t AliasTable) Match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, rule := range t {
		phrase := strings.ToLower(strings.TrimSpace(rule.Phrase))
		if phrase == "" {
			continue
		}
		if strings.Contains(lower, phrase) {
			if rule.Slug == nil {
				return "", true
			}
			return *rule.Slug, true
		}
	}
	return "", false
}

// LoadAliasTable reads an ordered alias table from a YAML file.
func LoadAliasTable(path string) (AliasTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias file: %w", err)
	}

	var table AliasTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse alias file: %w", err)
	}

	for i, rule := range table {
		if strings.TrimSpace(rule.Phrase) == "" {
			return nil, fmt.Errorf("alias rule %d has an empty phrase", i)
		}
	}

	return table, nil
}

func slugPtr(s string) *string { return &s }

// DefaultAliases returns the curated alias table shipped with the
// pipeline. Order matters; see AliasTable.
func DefaultAliases() AliasTable {
	return AliasTable{
		{Phrase: "batsford", Slug: slugPtr("batsford-arboretum-photography-workshops")},
		{Phrase: "anglesey", Slug: slugPtr("anglesey-photography-workshops")},
		{Phrase: "glencoe", Slug: slugPtr("landscape-photography-workshop-glencoe")},
		{Phrase: "gower", Slug: slugPtr("gower-photography-workshops")},
		{Phrase: "peak district", Slug: slugPtr("peak-district-photography-workshops")},
		{Phrase: "lightroom", Slug: slugPtr("adobe-lightroom-training-courses")},
		{Phrase: "one 2 one", Slug: slugPtr("private-photography-lessons")},
		{Phrase: "1-2-1", Slug: slugPtr("private-photography-lessons")},
		{Phrase: "beginners course", Slug: slugPtr("beginners-photography-course")},
		// Recognized but too generic to attribute; stops the cascade.
		{Phrase: "gift voucher", Slug: nil},
	}
}
