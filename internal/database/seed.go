package database

import (
	"gorm.io/gorm"

	"honestspace/server/internal/models"
)

// propertyTypeSeed mirrors the supported listing types. Residential unless
// listed in commercialTypes.
var propertyTypeSeed = []struct {
	Name        string
	DisplayName string
}{
	{"studio", "Studio"},
	{"1bedroom", "1 Bedroom"},
	{"2bedroom", "2 Bedroom"},
	{"3bedroom", "3 Bedroom"},
	{"4bedroom", "4+ Bedroom"},
	{"bungalow", "Bungalow"},
	{"maisonette", "Maisonette"},
	{"apartment", "Apartment"},
	{"commercial", "Commercial"},
	{"office", "Office Space"},
	{"shop", "Shop/Retail"},
	{"warehouse", "Warehouse"},
	{"land", "Land"},
}

var commercialTypes = map[string]bool{
	"commercial": true,
	"office":     true,
	"shop":       true,
	"warehouse":  true,
	"land":       true,
}

var propertyStatusSeed = []struct {
	Name        string
	DisplayName string
	IsPublic    bool
}{
	{models.StatusDraft, "Draft", false},
	{models.StatusPending, "Pending Verification", false},
	{models.StatusActive, "Active", true},
	{models.StatusInactive, "Inactive", false},
	{models.StatusVerified, "Verified", true},
	{models.StatusRejected, "Rejected", false},
	{models.StatusSuspended, "Suspended", false},
	{models.StatusRented, "Rented", true},
	{models.StatusExpired, "Expired", false},
}

var mediaTypeSeed = []models.MediaType{
	{Name: "image", MaxFileSizeMB: 10, AllowedFormats: "jpg,jpeg,png,webp"},
	{Name: "video", MaxFileSizeMB: 200, AllowedFormats: "mp4,mov", ProcessingRequired: true},
	{Name: "document", MaxFileSizeMB: 20, AllowedFormats: "pdf"},
}

var ratingCategorySeed = []models.RatingCategory{
	{Name: "cleanliness", DisplayName: "Cleanliness"},
	{Name: "security", DisplayName: "Security"},
	{Name: "water_supply", DisplayName: "Water Supply"},
	{Name: "landlord_responsiveness", DisplayName: "Landlord Responsiveness"},
	{Name: "value_for_money", DisplayName: "Value for Money"},
}

// SeedCatalogs inserts the catalog rows the application depends on.
// Rows are matched by name so reseeding is idempotent and row ids never
// matter to code.
func (d *Database) SeedCatalogs() error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		for i, pt := range propertyTypeSeed {
			category := "residential"
			if commercialTypes[pt.Name] {
				category = "commercial"
			}
			row := models.PropertyType{
				Name:        pt.Name,
				DisplayName: pt.DisplayName,
				Category:    category,
				SortOrder:   uint(i + 1),
			}
			if err := tx.Where(models.PropertyType{Name: pt.Name}).FirstOrCreate(&row).Error; err != nil {
				return translateError(err)
			}
		}

		for _, st := range propertyStatusSeed {
			row := models.PropertyStatus{
				Name:        st.Name,
				DisplayName: st.DisplayName,
				IsPublic:    st.IsPublic,
			}
			if err := tx.Where(models.PropertyStatus{Name: st.Name}).FirstOrCreate(&row).Error; err != nil {
				return translateError(err)
			}
		}

		for _, mt := range mediaTypeSeed {
			row := mt
			if err := tx.Where(models.MediaType{Name: mt.Name}).FirstOrCreate(&row).Error; err != nil {
				return translateError(err)
			}
		}

		for i, rc := range ratingCategorySeed {
			row := rc
			row.SortOrder = uint(i + 1)
			if err := tx.Where(models.RatingCategory{Name: rc.Name}).FirstOrCreate(&row).Error; err != nil {
				return translateError(err)
			}
		}

		return nil
	})
}
