package models

import "time"

// ClothingItem represents a single photographed garment in a user's closet.
type ClothingItem struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	Name      *string   `db:"name" json:"name,omitempty"`
	Brand     *string   `db:"brand" json:"brand,omitempty"`
	Category  string    `db:"category" json:"category"`
	Color     string    `db:"color" json:"color"`
	Occasion  string    `db:"occasion" json:"occasion"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClothingItemFilter narrows down closet listings.
type ClothingItemFilter struct {
	Category string
	Color    string
	Occasion string
	Search   string
	Page     int
	PageSize int
}

// Suggested vocabularies for item tags. Tags are open strings: any value
// outside these lists is a custom ("Other…") entry and is stored verbatim.
var (
	KnownCategories = []string{
		"Headwear", "Jacket", "Shirt", "T-Shirt", "Sweater", "Dress",
		"Skirt", "Pants", "Shorts", "Jeans", "Shoes", "Accessories",
	}
	KnownOccasions = []string{
		"Casual", "Business Casual", "Formal", "Business Formal",
		"Sportswear", "Beachwear", "Party",
	}
	KnownColors = []string{
		"Black", "White", "Gray", "Navy", "Blue", "Red", "Green",
		"Yellow", "Purple", "Pink", "Brown", "Beige", "Orange",
	}
)

// categoryRank maps a category to its display priority within an outfit.
var categoryRank = func() map[string]int {
	m := make(map[string]int, len(KnownCategories))
	for i, c := range KnownCategories {
		m[c] = i
	}
	return m
}()

// CategoryRank returns the display priority for a category. Categories
// outside the known list sort after all known categories.
func CategoryRank(category string) int {
	if rank, ok := categoryRank[category]; ok {
		return rank
	}
	return len(KnownCategories)
}

// IsKnownTag reports whether value appears in the vocabulary list.
func IsKnownTag(vocabulary []string, value string) bool {
	for _, v := range vocabulary {
		if v == value {
			return true
		}
	}
	return false
}
