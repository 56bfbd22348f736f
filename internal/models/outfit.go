package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Outfit is a named, saved selection of clothing items. Items are stored as
// an ordered list of item ids; referenced items may be deleted later, so
// dangling ids are tolerated at read time.
type Outfit struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Occasion  *string   `db:"occasion" json:"occasion,omitempty"`
	RawItems  []byte    `db:"items" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ItemIDs decodes the stored item reference list. The column is jsonb, but
// legacy rows may hold a doubly-encoded JSON string; both shapes decode.
func (o *Outfit) ItemIDs() ([]string, error) {
	raw := o.RawItems
	if len(raw) == 0 {
		return nil, nil
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err == nil {
		return ids, nil
	}

	var nested string
	if err := json.Unmarshal(raw, &nested); err == nil {
		if err := json.Unmarshal([]byte(nested), &ids); err == nil {
			return ids, nil
		}
	}

	return nil, fmt.Errorf("outfit %s: malformed item list %q", o.ID, strings.TrimSpace(string(raw)))
}

// EncodeItemIDs serialises an item id list for storage.
func EncodeItemIDs(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}

// HydratedOutfit is an outfit with its item references resolved against the
// catalog, ordered for display.
type HydratedOutfit struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Occasion  *string        `json:"occasion,omitempty"`
	Items     []ClothingItem `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
}
