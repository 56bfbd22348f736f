package planner

import (
	"sort"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
)

// SortItems orders outfit items for display by category priority. Items in
// unknown categories sort after every known category and keep their relative
// input order. The sort is stable, so re-sorting a sorted list is a no-op.
func SortItems(items []models.ClothingItem) []models.ClothingItem {
	sorted := make([]models.ClothingItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return models.CategoryRank(sorted[i].Category) < models.CategoryRank(sorted[j].Category)
	})
	return sorted
}

// HydrateOutfit resolves an outfit's raw item-id list against the catalog,
// dropping ids with no matching item. A malformed item list yields an outfit
// with no items rather than an error.
func HydrateOutfit(outfit models.Outfit, catalog map[string]models.ClothingItem) models.HydratedOutfit {
	hydrated := models.HydratedOutfit{
		ID:        outfit.ID,
		Name:      outfit.Name,
		Occasion:  outfit.Occasion,
		Items:     []models.ClothingItem{},
		CreatedAt: outfit.CreatedAt,
	}
	ids, err := outfit.ItemIDs()
	if err != nil {
		return hydrated
	}
	for _, id := range ids {
		if item, ok := catalog[id]; ok {
			hydrated.Items = append(hydrated.Items, item)
		}
	}
	hydrated.Items = SortItems(hydrated.Items)
	return hydrated
}

// HydrateSchedules joins schedules with their outfits and each outfit's items.
// Schedules whose outfit no longer exists are skipped; the second return value
// counts them so the caller can log the drop.
func HydrateSchedules(schedules []models.OutfitSchedule, outfits []models.Outfit, items []models.ClothingItem) ([]models.HydratedSchedule, int) {
	catalog := make(map[string]models.ClothingItem, len(items))
	for _, item := range items {
		catalog[item.ID] = item
	}
	byID := make(map[string]models.Outfit, len(outfits))
	for _, o := range outfits {
		byID[o.ID] = o
	}

	hydrated := make([]models.HydratedSchedule, 0, len(schedules))
	skipped := 0
	for _, s := range schedules {
		outfit, ok := byID[s.OutfitID]
		if !ok {
			skipped++
			continue
		}
		hydrated = append(hydrated, models.HydratedSchedule{
			ID:        s.ID,
			Date:      s.Date,
			Outfit:    HydrateOutfit(outfit, catalog),
			CreatedAt: s.CreatedAt,
		})
	}
	return hydrated, skipped
}
