package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
)

func item(id, category string) models.ClothingItem {
	return models.ClothingItem{ID: id, Category: category}
}

func mustEncode(t *testing.T, ids []string) []byte {
	t.Helper()
	raw, err := models.EncodeItemIDs(ids)
	require.NoError(t, err)
	return raw
}

func TestSortItemsByCategoryPriority(t *testing.T) {
	items := []models.ClothingItem{
		item("a", "Shoes"),
		item("b", "Headwear"),
		item("c", "Pants"),
		item("d", "Shirt"),
	}
	sorted := SortItems(items)
	got := make([]string, 0, len(sorted))
	for _, it := range sorted {
		got = append(got, it.ID)
	}
	assert.Equal(t, []string{"b", "d", "c", "a"}, got)
}

func TestSortItemsStableAndIdempotent(t *testing.T) {
	items := []models.ClothingItem{
		item("scarf", "Winter Gear"),
		item("shoes", "Shoes"),
		item("gloves", "Winter Gear"),
		item("belt", "Other"),
	}
	sorted := SortItems(items)
	// Unknown categories land after known ones, input order preserved.
	assert.Equal(t, "shoes", sorted[0].ID)
	assert.Equal(t, "scarf", sorted[1].ID)
	assert.Equal(t, "gloves", sorted[2].ID)
	assert.Equal(t, "belt", sorted[3].ID)

	again := SortItems(sorted)
	assert.Equal(t, sorted, again)
}

func TestHydrateOutfitDropsDanglingReferences(t *testing.T) {
	catalog := map[string]models.ClothingItem{
		"A": item("A", "Shirt"),
		"C": item("C", "Pants"),
	}
	outfit := models.Outfit{
		ID:       "o1",
		Name:     "Monday",
		RawItems: mustEncode(t, []string{"A", "B", "C"}),
	}
	hydrated := HydrateOutfit(outfit, catalog)
	require.Len(t, hydrated.Items, 2)
	assert.Equal(t, "A", hydrated.Items[0].ID)
	assert.Equal(t, "C", hydrated.Items[1].ID)
}

func TestHydrateOutfitMalformedItemList(t *testing.T) {
	outfit := models.Outfit{ID: "o1", Name: "Broken", RawItems: []byte("{not json")}
	hydrated := HydrateOutfit(outfit, nil)
	assert.Empty(t, hydrated.Items)
	assert.Equal(t, "o1", hydrated.ID)
}

func TestHydrateOutfitLegacyDoubleEncodedList(t *testing.T) {
	catalog := map[string]models.ClothingItem{"A": item("A", "Shirt")}
	outfit := models.Outfit{ID: "o1", RawItems: []byte(`"[\"A\"]"`)}
	hydrated := HydrateOutfit(outfit, catalog)
	require.Len(t, hydrated.Items, 1)
	assert.Equal(t, "A", hydrated.Items[0].ID)
}

func TestHydrateSchedulesSkipsMissingOutfits(t *testing.T) {
	outfits := []models.Outfit{
		{ID: "o1", Name: "Monday", RawItems: mustEncode(t, []string{"A"})},
	}
	items := []models.ClothingItem{item("A", "Shirt")}
	schedules := []models.OutfitSchedule{
		{ID: "s1", OutfitID: "o1", Date: "2024-06-10", CreatedAt: time.Unix(1, 0)},
		{ID: "s2", OutfitID: "gone", Date: "2024-06-11", CreatedAt: time.Unix(2, 0)},
	}

	hydrated, skipped := HydrateSchedules(schedules, outfits, items)
	require.Len(t, hydrated, 1)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "s1", hydrated[0].ID)
	assert.Equal(t, "2024-06-10", hydrated[0].Date)
	assert.Equal(t, "Monday", hydrated[0].Outfit.Name)
	require.Len(t, hydrated[0].Outfit.Items, 1)
}
