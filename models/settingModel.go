package models

import "gorm.io/gorm"

// SectionSetting holds the per-section price-visibility flag. One row per
// section, seeded at boot.
type SectionSetting struct {
	gorm.Model
	Section   string `json:"section" gorm:"uniqueIndex;size:32"`
	ShowPrice bool   `json:"showPrice"`
}
