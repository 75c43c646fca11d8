package models

import "gorm.io/gorm"

type Service struct {
	gorm.Model
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
	Active      bool    `json:"active"`
}
