package enums

import "fmt"

// ItemCategory represents the canonical catalog categories.
type ItemCategory string

const (
	ItemCategoryFood        ItemCategory = "Food"
	ItemCategoryClothes     ItemCategory = "Clothes"
	ItemCategoryAccessories ItemCategory = "Accessories"
	ItemCategoryElectronics ItemCategory = "Electronics"
)

var validItemCategories = []ItemCategory{
	ItemCategoryFood,
	ItemCategoryClothes,
	ItemCategoryAccessories,
	ItemCategoryElectronics,
}

// String implements fmt.Stringer.
func (c ItemCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ItemCategory.
func (c ItemCategory) IsValid() bool {
	for _, candidate := range validItemCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseItemCategory converts raw input into an ItemCategory.
func ParseItemCategory(value string) (ItemCategory, error) {
	for _, candidate := range validItemCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item category %q", value)
}
