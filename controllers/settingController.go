package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/initializers"
	"github.com/medinatrips/medina-api/models"
	"gorm.io/gorm"
)

func GetSectionSettings(ctx *gin.Context) {
	var settings []models.SectionSetting
	if err := initializers.DB.Order("section").Find(&settings).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch section settings", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSectionSetting flips the show-price flag for one catalog section.
func UpdateSectionSetting(ctx *gin.Context) {
	section := ctx.Param("section")
	if !models.IsValidSection(section) {
		respondWithError(ctx, http.StatusBadRequest, "Unknown section", nil)
		return
	}

	var input struct {
		ShowPrice *bool `json:"showPrice" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var setting models.SectionSetting
	if err := initializers.DB.Where("section = ?", section).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Section setting not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch section setting", err)
		}
		return
	}

	if err := initializers.DB.Model(&setting).Update("show_price", *input.ShowPrice).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update section setting", err)
		return
	}

	invalidateCatalogCache()
	ctx.JSON(http.StatusOK, setting)
}
