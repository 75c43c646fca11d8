package initializers

import (
	"log"

	"github.com/medinatrips/medina-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(&models.User{}, &models.Order{}, &models.Excursion{}, &models.Service{}, &models.SectionSetting{})
	seedSectionSettings()
	log.Println("Database synced successfully.")
}

// seedSectionSettings guarantees one show-price row per catalog section so
// the admin toggle always has something to flip.
func seedSectionSettings() {
	for _, section := range models.Sections {
		setting := models.SectionSetting{Section: section, ShowPrice: true}
		if err := DB.Where("section = ?", section).FirstOrCreate(&setting).Error; err != nil {
			log.Println("Failed to seed section setting:", err)
		}
	}
}
