package models

import "fmt"

// DisasterType classifies the triggering hazard.
type DisasterType struct {
	NameEn string `json:"nameEn"`
	NameHi string `json:"nameHi"`
	ID     int    `json:"id"`
}

// DisasterSubtype refines a DisasterType.
type DisasterSubtype struct {
	NameEn string `json:"nameEn"`
	NameHi string `json:"nameHi"`
	ID     int    `json:"id"`
	TypeID int    `json:"typeId"`
}

// DamageType classifies the resulting loss. UnitEn/UnitHi name the
// quantity unit recorded against it.
type DamageType struct {
	NameEn string `json:"nameEn"`
	NameHi string `json:"nameHi"`
	UnitEn string `json:"unitEn"`
	UnitHi string `json:"unitHi"`
	ID     int    `json:"id"`
}

// DamageSubtype refines a DamageType.
type DamageSubtype struct {
	NameEn string `json:"nameEn"`
	NameHi string `json:"nameHi"`
	UnitEn string `json:"unitEn"`
	UnitHi string `json:"unitHi"`
	ID     int    `json:"id"`
	TypeID int    `json:"typeId"`
}

// CategoryKind selects one of the two editable taxonomies.
type CategoryKind string

const (
	CategoryDisaster CategoryKind = "disaster"
	CategoryDamage   CategoryKind = "damage"
)

// ParseCategoryKind validates a kind coming from a request path.
func ParseCategoryKind(s string) (CategoryKind, error) {
	switch CategoryKind(s) {
	case CategoryDisaster, CategoryDamage:
		return CategoryKind(s), nil
	default:
		return "", fmt.Errorf("unknown category kind %q", s)
	}
}

// CategoryItem is the persisted shape of an editable top-level category.
type CategoryItem struct {
	NameHi string `json:"nameHi"`
	NameEn string `json:"nameEn"`
	ID     int64  `json:"id"`
	Count  int    `json:"count"`
}

// SubtypeItem is the persisted shape of an editable subtype.
type SubtypeItem struct {
	NameHi string `json:"nameHi"`
	NameEn string `json:"nameEn"`
	ID     int64  `json:"id"`
	TypeID int64  `json:"typeId"`
}
