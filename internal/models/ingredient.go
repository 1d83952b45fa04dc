package models

// Ingredient is admin-managed reference data. The same ingredient name may
// appear with different measurement units (e.g. "salt" in grams and pinches).
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:200;index;not null" json:"name"`
	MeasurementUnit string `gorm:"size:200;not null" json:"measurement_unit"`
}
