package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SectionMarrakech = "marrakech"
	SectionAgadir    = "agadir"
	SectionTaghazout = "taghazout"
	SectionCircuits  = "circuits"
)

// Sections lists every catalog section in display order.
var Sections = []string{SectionMarrakech, SectionAgadir, SectionTaghazout, SectionCircuits}

// Excursion is the catalog document. List-shaped fields are stored as JSON
// columns so the admin CMS can edit the whole document in one write.
type Excursion struct {
	gorm.Model
	Slug          string         `json:"slug" gorm:"uniqueIndex;size:191"`
	Name          string         `json:"name"`
	Section       string         `json:"section"`
	Images        datatypes.JSON `json:"images"`
	Price         float64        `json:"price"`
	Location      string         `json:"location"`
	Duration      string         `json:"duration"`
	GroupSize     string         `json:"groupSize"`
	Rating        float64        `json:"rating"`
	Description   string         `json:"description"`
	Highlights    datatypes.JSON `json:"highlights"`
	Included      datatypes.JSON `json:"included"`
	NotIncluded   datatypes.JSON `json:"notIncluded"`
	BookableItems datatypes.JSON `json:"bookableItems"`
}

// BookableItem is an optional extra the customer can tick on the booking form.
type BookableItem struct {
	ID             string  `json:"id"`
	Label          string  `json:"label"`
	Price          float64 `json:"price"`
	DefaultChecked bool    `json:"defaultChecked"`
}

func IsValidSection(s string) bool {
	for _, section := range Sections {
		if s == section {
			return true
		}
	}
	return false
}
