// Package catalog holds the fixed industry taxonomy that drives generation
// coverage. A Catalog is a frozen value: it is built once and only ever
// hands out copies of its lists.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var embeddedTaxonomy []byte

// ErrUnknownTaxonomyKey is returned for a category or subcategory that the
// catalog does not contain.
var ErrUnknownTaxonomyKey = errors.New("unknown taxonomy key")

type taxonomyFile struct {
	Categories []struct {
		Name          string   `yaml:"name"`
		Subcategories []string `yaml:"subcategories"`
	} `yaml:"categories"`
}

// Catalog maps categories to their ordered subcategories.
type Catalog struct {
	categories []string
	subs       map[string][]string
	index      map[string]map[string]int
	pairs      int
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(embeddedTaxonomy)
	if err != nil {
		// the embedded file is covered by tests
		panic(fmt.Sprintf("catalog: embedded taxonomy is invalid: %v", err))
	}
	return c
}

// Parse decodes a taxonomy document. Empty names, categories without
// subcategories and duplicates are rejected.
func Parse(data []byte) (*Catalog, error) {
	var f taxonomyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode taxonomy: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, errors.New("taxonomy has no categories")
	}

	c := &Catalog{
		subs:  make(map[string][]string, len(f.Categories)),
		index: make(map[string]map[string]int, len(f.Categories)),
	}
	for _, cat := range f.Categories {
		if cat.Name == "" {
			return nil, errors.New("taxonomy category with empty name")
		}
		if _, dup := c.subs[cat.Name]; dup {
			return nil, fmt.Errorf("duplicate category %q", cat.Name)
		}
		if len(cat.Subcategories) == 0 {
			return nil, fmt.Errorf("category %q has no subcategories", cat.Name)
		}

		idx := make(map[string]int, len(cat.Subcategories))
		for i, sub := range cat.Subcategories {
			if sub == "" {
				return nil, fmt.Errorf("category %q has an empty subcategory", cat.Name)
			}
			if _, dup := idx[sub]; dup {
				return nil, fmt.Errorf("duplicate subcategory %q in %q", sub, cat.Name)
			}
			idx[sub] = i
		}

		c.categories = append(c.categories, cat.Name)
		c.subs[cat.Name] = append([]string(nil), cat.Subcategories...)
		c.index[cat.Name] = idx
		c.pairs += len(cat.Subcategories)
	}
	return c, nil
}

// AllCategories returns the categories in catalog order.
func (c *Catalog) AllCategories() []string {
	return append([]string(nil), c.categories...)
}

// SubcategoriesOf returns the ordered subcategories of category.
func (c *Catalog) SubcategoriesOf(category string) ([]string, error) {
	subs, ok := c.subs[category]
	if !ok {
		return nil, fmt.Errorf("%w: category %q", ErrUnknownTaxonomyKey, category)
	}
	return append([]string(nil), subs...), nil
}

// Contains reports whether subcategory belongs to category.
func (c *Catalog) Contains(category, subcategory string) bool {
	_, ok := c.index[category][subcategory]
	return ok
}

// Validate fails with ErrUnknownTaxonomyKey unless the pair exists.
func (c *Catalog) Validate(category, subcategory string) error {
	idx, ok := c.index[category]
	if !ok {
		return fmt.Errorf("%w: category %q", ErrUnknownTaxonomyKey, category)
	}
	if _, ok := idx[subcategory]; !ok {
		return fmt.Errorf("%w: subcategory %q not in category %q", ErrUnknownTaxonomyKey, subcategory, category)
	}
	return nil
}

// CategoryCount returns the number of categories.
func (c *Catalog) CategoryCount() int { return len(c.categories) }

// PairCount returns the total number of (category, subcategory) pairs.
func (c *Catalog) PairCount() int { return c.pairs }

// Restrict returns the first k categories, or all of them when k is out of range.
func (c *Catalog) Restrict(k int) []string {
	if k <= 0 || k >= len(c.categories) {
		return c.AllCategories()
	}
	return append([]string(nil), c.categories[:k]...)
}

// Pair is one (category, subcategory) unit of generation work.
type Pair struct {
	Category    string
	Subcategory string
}

// Pairs returns every pair of the given categories in catalog order.
// Unknown categories fail with ErrUnknownTaxonomyKey.
func (c *Catalog) Pairs(categories ...string) ([]Pair, error) {
	if len(categories) == 0 {
		categories = c.categories
	}
	var out []Pair
	for _, cat := range categories {
		subs, ok := c.subs[cat]
		if !ok {
			return nil, fmt.Errorf("%w: category %q", ErrUnknownTaxonomyKey, cat)
		}
		for _, sub := range subs {
			out = append(out, Pair{Category: cat, Subcategory: sub})
		}
	}
	return out, nil
}
