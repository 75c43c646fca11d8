package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/initializers"
	"github.com/medinatrips/medina-api/models"
	"gorm.io/gorm"
)

// GetServices lists active services for the public site.
func GetServices(ctx *gin.Context) {
	var services []models.Service
	if err := initializers.DB.Where("active = ?", true).Order("name").Find(&services).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch services", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"services": services})
}

// GetServicesAdmin lists every service, active or not.
func GetServicesAdmin(ctx *gin.Context) {
	var services []models.Service
	if err := initializers.DB.Order("name").Find(&services).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch services", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"services": services})
}

func CreateService(ctx *gin.Context) {
	var service models.Service
	if err := ctx.ShouldBindJSON(&service); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&service).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create service", err)
		return
	}

	ctx.JSON(http.StatusCreated, service)
}

func UpdateService(ctx *gin.Context) {
	serviceID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid service id", err)
		return
	}

	var service models.Service
	if err := initializers.DB.First(&service, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Service not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch service", err)
		}
		return
	}

	var input models.Service
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updates := map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"image_url":   input.ImageURL,
		"price":       input.Price,
		"active":      input.Active,
	}
	if err := initializers.DB.Model(&service).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update service", err)
		return
	}

	ctx.JSON(http.StatusOK, service)
}

func DeleteService(ctx *gin.Context) {
	serviceID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid service id", err)
		return
	}

	if result := initializers.DB.Delete(&models.Service{}, serviceID); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete service", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully."})
}
