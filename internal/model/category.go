package model

// Category is the shopping aisle an ingredient belongs to.
type Category string

const (
	CategoryProduce Category = "produce"
	CategoryMeat    Category = "meat"
	CategoryDairy   Category = "dairy"
	CategoryPantry  Category = "pantry"
	CategoryHerbs   Category = "herbs"
	CategoryCanned  Category = "canned"
	CategoryFrozen  Category = "frozen"

	// CategoryOther is only used when grouping items for display.
	CategoryOther Category = "other"
)

// Categories lists the assignable categories in display order.
var Categories = []Category{
	CategoryProduce,
	CategoryMeat,
	CategoryDairy,
	CategoryPantry,
	CategoryHerbs,
	CategoryCanned,
	CategoryFrozen,
}

// IsValid reports whether c is an assignable category or the display-only other bucket.
func (c Category) IsValid() bool {
	if c == CategoryOther {
		return true
	}
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
