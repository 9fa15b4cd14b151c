package model

import "strings"

// Category tags an Item with one of a fixed set of aisles.
type Category string

const (
	Produce      Category = "produce"
	Dairy        Category = "dairy"
	Bakery       Category = "bakery"
	Meat         Category = "meat"
	Pantry       Category = "pantry"
	Beverages    Category = "beverages"
	Snacks       Category = "snacks"
	Household    Category = "household"
	PersonalCare Category = "personal-care"
)

var categories = []Category{
	Produce, Dairy, Bakery, Meat, Pantry, Beverages, Snacks, Household, PersonalCare,
}

var labels = map[Category]string{
	Produce:      "Produce",
	Dairy:        "Dairy",
	Bakery:       "Bakery",
	Meat:         "Meat",
	Pantry:       "Pantry",
	Beverages:    "Beverages",
	Snacks:       "Snacks",
	Household:    "Household",
	PersonalCare: "Personal Care",
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c belongs to the fixed set.
func (c Category) Valid() bool {
	_, ok := labels[c]
	return ok
}

// Label is the human-readable name, or the raw value for unknown categories.
func (c Category) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory accepts either a value ("personal-care") or a label
// ("Personal Care"), case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return "", false
	}
	for _, c := range categories {
		if string(c) == s || strings.ToLower(labels[c]) == s {
			return c, true
		}
	}
	return "", false
}

// Next cycles through the set; an unknown category starts at the first entry.
func (c Category) Next() Category {
	return c.step(1)
}

// Prev is Next in reverse.
func (c Category) Prev() Category {
	return c.step(-1)
}

func (c Category) step(d int) Category {
	n := len(categories)
	for i, cc := range categories {
		if cc == c {
			return categories[((i+d)%n+n)%n]
		}
	}
	return categories[0]
}
