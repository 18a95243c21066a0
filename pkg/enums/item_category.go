package enums

import "fmt"

// ItemCategory represents the canonical inventory categories supported by the catalog.
type ItemCategory string

const (
	ItemCategoryHousekeeping ItemCategory = "Housekeeping"
	ItemCategoryPantry       ItemCategory = "Pantry"
	ItemCategoryMinibar      ItemCategory = "Minibar"
	ItemCategoryKitchen      ItemCategory = "Kitchen"
	ItemCategoryLaundry      ItemCategory = "Laundry"
	ItemCategoryMaintenance  ItemCategory = "Maintenance"
)

var validItemCategories = []ItemCategory{
	ItemCategoryHousekeeping,
	ItemCategoryPantry,
	ItemCategoryMinibar,
	ItemCategoryKitchen,
	ItemCategoryLaundry,
	ItemCategoryMaintenance,
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

// ItemCategories returns the full closed set in display order.
func ItemCategories() []ItemCategory {
	out := make([]ItemCategory, len(validItemCategories))
	copy(out, validItemCategories)
	return out
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
