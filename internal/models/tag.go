package models

// Tag colors form a fixed hex palette; names and slugs are globally unique.
const (
	TagColorChocolate = "#D2691E"
	TagColorGreen     = "#008000"
	TagColorAqua      = "#00FFFF"
)

// TagColors is the allowed palette for Tag.Color.
var TagColors = []string{TagColorChocolate, TagColorGreen, TagColorAqua}

// Tag labels recipes (breakfast, lunch, dinner and the like). Tags are seeded
// by admins and referenced by recipes through a many-to-many join.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:200;unique;not null" json:"name"`
	Color string `gorm:"size:7;unique;not null" json:"color"`
	Slug  string `gorm:"size:200;unique;not null" json:"slug"`
}

// ValidTagColor reports whether color belongs to the palette.
func ValidTagColor(color string) bool {
	for _, c := range TagColors {
		if c == color {
			return true
		}
	}
	return false
}
