package domain

import "fmt"

// Category identifies the kind of carbon-emitting activity.
type Category string

// The closed set of activity categories. New categories require a schema
// change; the analytics layer zero-fills all of them.
const (
	CategoryTransportation Category = "transportation"
	CategoryEnergy         Category = "energy"
	CategoryFood           Category = "food"
	CategoryShopping       Category = "shopping"
)

// Categories returns all valid categories in their canonical order.
func Categories() []Category {
	return []Category{CategoryTransportation, CategoryEnergy, CategoryFood, CategoryShopping}
}

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryTransportation, CategoryEnergy, CategoryFood, CategoryShopping:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}
