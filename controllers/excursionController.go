package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/medinatrips/medina-api/initializers"
	"github.com/medinatrips/medina-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const catalogCacheTTL = 10 * time.Minute

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

type ExcursionInput struct {
	Slug          string                `json:"slug"`
	Name          string                `json:"name" binding:"required"`
	Section       string                `json:"section" binding:"required"`
	Images        []string              `json:"images"`
	Price         float64               `json:"price"`
	Location      string                `json:"location"`
	Duration      string                `json:"duration"`
	GroupSize     string                `json:"groupSize"`
	Rating        float64               `json:"rating"`
	Description   string                `json:"description"`
	Highlights    []string              `json:"highlights"`
	Included      []string              `json:"included"`
	NotIncluded   []string              `json:"notIncluded"`
	BookableItems []models.BookableItem `json:"bookableItems"`
}

func (input ExcursionInput) validate() error {
	if !models.IsValidSection(input.Section) {
		return errors.New("section must be one of marrakech, agadir, taghazout, circuits")
	}
	if len(input.Images) == 0 {
		return errors.New("at least one image is required")
	}
	if input.Rating < 0 || input.Rating > 5 {
		return errors.New("rating must be between 0 and 5")
	}
	return nil
}

func mustJSON(v any) datatypes.JSON {
	raw, _ := json.Marshal(v)
	return datatypes.JSON(raw)
}

func excursionFromInput(input ExcursionInput) models.Excursion {
	excursionSlug := input.Slug
	if excursionSlug == "" {
		excursionSlug = slug.Make(input.Name)
	}
	return models.Excursion{
		Slug:          excursionSlug,
		Name:          input.Name,
		Section:       input.Section,
		Images:        mustJSON(input.Images),
		Price:         input.Price,
		Location:      input.Location,
		Duration:      input.Duration,
		GroupSize:     input.GroupSize,
		Rating:        input.Rating,
		Description:   input.Description,
		Highlights:    mustJSON(input.Highlights),
		Included:      mustJSON(input.Included),
		NotIncluded:   mustJSON(input.NotIncluded),
		BookableItems: mustJSON(input.BookableItems),
	}
}

// publicExcursionView renders the catalog document for the public site. When
// the section's show-price flag is off, the price and the per-extra prices
// are withheld entirely.
func publicExcursionView(e models.Excursion, showPrice bool) gin.H {
	view := gin.H{
		"id":          e.Slug,
		"name":        e.Name,
		"section":     e.Section,
		"images":      e.Images,
		"location":    e.Location,
		"duration":    e.Duration,
		"groupSize":   e.GroupSize,
		"rating":      e.Rating,
		"description": e.Description,
		"highlights":  e.Highlights,
		"included":    e.Included,
		"notIncluded": e.NotIncluded,
	}

	var items []models.BookableItem
	if len(e.BookableItems) > 0 {
		if err := json.Unmarshal(e.BookableItems, &items); err != nil {
			log.Println("Failed to parse bookable items for", e.Slug, ":", err)
		}
	}

	if showPrice {
		view["price"] = e.Price
		view["bookableItems"] = items
		return view
	}

	view["priceHidden"] = true
	masked := make([]gin.H, 0, len(items))
	for _, item := range items {
		masked = append(masked, gin.H{
			"id":             item.ID,
			"label":          item.Label,
			"defaultChecked": item.DefaultChecked,
		})
	}
	view["bookableItems"] = masked
	return view
}

func sectionShowPrice(section string) bool {
	var setting models.SectionSetting
	if err := initializers.DB.Where("section = ?", section).First(&setting).Error; err != nil {
		// Fail open on a missing row: hiding prices is a deliberate act.
		return true
	}
	return setting.ShowPrice
}

func catalogCacheKey(section string) string {
	if section == "" {
		return "excursions:public:all"
	}
	return "excursions:public:" + section
}

func invalidateCatalogCache() {
	rdb := initializers.GetRedisClient()
	if rdb == nil {
		return
	}
	keys := []string{catalogCacheKey("")}
	for _, section := range models.Sections {
		keys = append(keys, catalogCacheKey(section))
	}
	if err := rdb.Del(context.Background(), keys...).Err(); err != nil {
		log.Println("Failed to invalidate catalog cache:", err)
	}
}

// GetExcursions serves the public catalog, cached in redis when available.
func GetExcursions(ctx *gin.Context) {
	section := ctx.Query("section")
	if section != "" && !models.IsValidSection(section) {
		respondWithError(ctx, http.StatusBadRequest, "Unknown section", nil)
		return
	}

	rdb := initializers.GetRedisClient()
	cacheKey := catalogCacheKey(section)
	if rdb != nil {
		if cached, err := rdb.Get(ctx.Request.Context(), cacheKey).Result(); err == nil {
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
	}

	query := initializers.DB.Model(&models.Excursion{})
	if section != "" {
		query = query.Where("section = ?", section)
	}

	var excursions []models.Excursion
	if err := query.Order("section, name").Find(&excursions).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch excursions", err)
		return
	}

	showPrice := map[string]bool{}
	for _, s := range models.Sections {
		showPrice[s] = sectionShowPrice(s)
	}

	views := make([]gin.H, 0, len(excursions))
	for _, e := range excursions {
		views = append(views, publicExcursionView(e, showPrice[e.Section]))
	}

	payload, err := json.Marshal(gin.H{"excursions": views})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to encode excursions", err)
		return
	}

	if rdb != nil {
		if err := rdb.Set(ctx.Request.Context(), cacheKey, payload, catalogCacheTTL).Err(); err != nil {
			log.Println("Failed to cache catalog:", err)
		}
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// GetExcursion serves one public catalog document by slug.
func GetExcursion(ctx *gin.Context) {
	var excursion models.Excursion
	if err := initializers.DB.Where("slug = ?", ctx.Param("slug")).First(&excursion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Excursion not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch excursion", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"excursion": publicExcursionView(excursion, sectionShowPrice(excursion.Section)),
	})
}

// GetExcursionsAdmin returns unmasked documents for the CMS.
func GetExcursionsAdmin(ctx *gin.Context) {
	var excursions []models.Excursion
	if err := initializers.DB.Order("section, name").Find(&excursions).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch excursions", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"excursions": excursions})
}

func CreateExcursion(ctx *gin.Context) {
	var input ExcursionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := input.validate(); err != nil {
		respondWithError(ctx, http.StatusBadRequest, err.Error(), nil)
		return
	}

	excursion := excursionFromInput(input)
	if err := initializers.DB.Create(&excursion).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondWithError(ctx, http.StatusConflict, "An excursion with this slug already exists", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to create excursion", err)
		}
		return
	}

	invalidateCatalogCache()
	ctx.JSON(http.StatusCreated, excursion)
}

func UpdateExcursion(ctx *gin.Context) {
	var excursion models.Excursion
	if err := initializers.DB.Where("slug = ?", ctx.Param("slug")).First(&excursion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Excursion not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch excursion", err)
		}
		return
	}

	var input ExcursionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := input.validate(); err != nil {
		respondWithError(ctx, http.StatusBadRequest, err.Error(), nil)
		return
	}

	updated := excursionFromInput(input)
	// The slug is the identity and is not editable.
	updates := map[string]any{
		"name":           updated.Name,
		"section":        updated.Section,
		"images":         updated.Images,
		"price":          updated.Price,
		"location":       updated.Location,
		"duration":       updated.Duration,
		"group_size":     updated.GroupSize,
		"rating":         updated.Rating,
		"description":    updated.Description,
		"highlights":     updated.Highlights,
		"included":       updated.Included,
		"not_included":   updated.NotIncluded,
		"bookable_items": updated.BookableItems,
	}
	if err := initializers.DB.Model(&excursion).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update excursion", err)
		return
	}

	invalidateCatalogCache()
	ctx.JSON(http.StatusOK, excursion)
}

func DeleteExcursion(ctx *gin.Context) {
	result := initializers.DB.Where("slug = ?", ctx.Param("slug")).Delete(&models.Excursion{})
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete excursion", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Excursion not found", nil)
		return
	}

	invalidateCatalogCache()
	ctx.JSON(http.StatusOK, gin.H{"message": "Excursion deleted successfully."})
}
