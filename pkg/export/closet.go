package export

import "time"

// ClosetRow is one clothing item flattened for tabular export. Optional
// fields arrive already dereferenced to empty strings.
type ClosetRow struct {
	Name     string
	Brand    string
	Category string
	Color    string
	Occasion string
	ImageURL string
	AddedAt  time.Time
}

var closetColumns = []string{"Name", "Brand", "Category", "Color", "Occasion", "Image URL", "Added"}

// closetColumnWeights drive relative PDF column widths; the image URL gets
// the widest cell so links stay legible.
var closetColumnWeights = []float64{1.2, 1, 1, 0.8, 1, 2, 1}

func (r ClosetRow) record() []string {
	return []string{
		r.Name,
		r.Brand,
		r.Category,
		r.Color,
		r.Occasion,
		r.ImageURL,
		r.AddedAt.UTC().Format("2006-01-02"),
	}
}
