package controllers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/models"
	"github.com/stretchr/testify/assert"
)

func sampleExcursion() models.Excursion {
	return excursionFromInput(ExcursionInput{
		Name:        "Agafay Desert Sunset",
		Section:     models.SectionMarrakech,
		Images:      []string{"https://cdn.example.com/agafay-1.jpg"},
		Price:       500,
		Location:    "Agafay",
		Duration:    "Half day",
		GroupSize:   "Up to 12",
		Rating:      4.8,
		Description: "Sunset camel ride and dinner in the Agafay desert.",
		Highlights:  []string{"Camel ride", "Berber dinner"},
		Included:    []string{"Transport"},
		NotIncluded: []string{"Drinks"},
		BookableItems: []models.BookableItem{
			{ID: "quad", Label: "Quad biking", Price: 250},
			{ID: "lunch", Label: "Lunch", Price: 100, DefaultChecked: true},
		},
	})
}

func TestExcursionFromInputDerivesSlug(t *testing.T) {
	excursion := sampleExcursion()
	assert.Equal(t, "agafay-desert-sunset", excursion.Slug)
}

func TestExcursionInputValidation(t *testing.T) {
	base := ExcursionInput{
		Name:    "Test",
		Section: models.SectionAgadir,
		Images:  []string{"img.jpg"},
		Rating:  4,
	}
	assert.NoError(t, base.validate())

	badSection := base
	badSection.Section = "fes"
	assert.Error(t, badSection.validate())

	noImages := base
	noImages.Images = nil
	assert.Error(t, noImages.validate())

	badRating := base
	badRating.Rating = 5.5
	assert.Error(t, badRating.validate())
}

func TestPublicExcursionViewShowsPrice(t *testing.T) {
	view := publicExcursionView(sampleExcursion(), true)

	assert.Equal(t, 500.0, view["price"])
	assert.NotContains(t, view, "priceHidden")

	items, ok := view["bookableItems"].([]models.BookableItem)
	assert.True(t, ok)
	assert.Equal(t, 250.0, items[0].Price)
}

func TestPublicExcursionViewMasksPrice(t *testing.T) {
	view := publicExcursionView(sampleExcursion(), false)

	assert.NotContains(t, view, "price")
	assert.Equal(t, true, view["priceHidden"])

	// Extras keep their labels but carry no price when masked.
	masked, ok := view["bookableItems"].([]gin.H)
	assert.True(t, ok)
	assert.Len(t, masked, 2)
	assert.Equal(t, "Quad biking", masked[0]["label"])
	assert.NotContains(t, masked[0], "price")
}
