package database

import (
	"honestspace/server/internal/apperrors"
	"honestspace/server/internal/models"
)

// GetStatusByName resolves a property status row by its stable name.
func (d *Database) GetStatusByName(name string) (*models.PropertyStatus, error) {
	var status models.PropertyStatus
	if err := d.db.Where("name = ?", name).First(&status).Error; err != nil {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "unknown property status %q", name)
	}
	return &status, nil
}

func (d *Database) ListCountries() ([]models.Country, error) {
	var countries []models.Country
	err := d.db.Where("is_active = ?", true).Order("name").Find(&countries).Error
	return countries, translateError(err)
}

func (d *Database) ListCounties(countryID uint) ([]models.County, error) {
	q := d.db.Preload("Country").Order("name")
	if countryID != 0 {
		q = q.Where("country_id = ?", countryID)
	}
	var counties []models.County
	err := q.Find(&counties).Error
	return counties, translateError(err)
}

func (d *Database) ListCities(countyID uint) ([]models.City, error) {
	q := d.db.Preload("County").Order("name")
	if countyID != 0 {
		q = q.Where("county_id = ?", countyID)
	}
	var cities []models.City
	err := q.Find(&cities).Error
	return cities, translateError(err)
}

// ListNeighborhoods returns neighborhoods with their city and county chain
// preloaded, optionally restricted to one city.
func (d *Database) ListNeighborhoods(cityID uint) ([]models.Neighborhood, error) {
	q := d.db.Preload("City").Preload("City.County").Order("name")
	if cityID != 0 {
		q = q.Where("city_id = ?", cityID)
	}
	var neighborhoods []models.Neighborhood
	err := q.Find(&neighborhoods).Error
	return neighborhoods, translateError(err)
}

func (d *Database) GetNeighborhood(id uint) (*models.Neighborhood, error) {
	var n models.Neighborhood
	err := d.db.Preload("City").Preload("City.County").First(&n, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &n, nil
}

// ListAmenities returns active amenities grouped by category sort order.
func (d *Database) ListAmenities() ([]models.Amenity, error) {
	var amenities []models.Amenity
	err := d.db.Preload("Category").
		Where("is_active = ?", true).
		Order("sort_order, name").
		Find(&amenities).Error
	return amenities, translateError(err)
}

func (d *Database) ListAmenityCategories() ([]models.AmenityCategory, error) {
	var categories []models.AmenityCategory
	err := d.db.Order("sort_order, name").Find(&categories).Error
	return categories, translateError(err)
}

func (d *Database) ListPropertyTypes() ([]models.PropertyType, error) {
	var types []models.PropertyType
	err := d.db.Where("is_active = ?", true).Order("sort_order").Find(&types).Error
	return types, translateError(err)
}

func (d *Database) ListTrustBadges() ([]models.TrustBadge, error) {
	var badges []models.TrustBadge
	err := d.db.Preload("Category").
		Where("is_active = ?", true).
		Order("sort_order, name").
		Find(&badges).Error
	return badges, translateError(err)
}

func (d *Database) ListRatingCategories() ([]models.RatingCategory, error) {
	var categories []models.RatingCategory
	err := d.db.Where("is_active = ?", true).Order("sort_order").Find(&categories).Error
	return categories, translateError(err)
}

func (d *Database) ListLandmarkTypes() ([]models.LandmarkType, error) {
	var types []models.LandmarkType
	err := d.db.Order("name").Find(&types).Error
	return types, translateError(err)
}

// ListLandmarks returns active landmarks, optionally scoped to one
// neighborhood.
func (d *Database) ListLandmarks(neighborhoodID uint) ([]models.Landmark, error) {
	q := d.db.Preload("LandmarkType").Where("is_active = ?", true).Order("name")
	if neighborhoodID != 0 {
		q = q.Where("neighborhood_id = ?", neighborhoodID)
	}
	var landmarks []models.Landmark
	err := q.Find(&landmarks).Error
	return landmarks, translateError(err)
}

func (d *Database) GetLandmark(id uint) (*models.Landmark, error) {
	var lm models.Landmark
	err := d.db.Preload("LandmarkType").First(&lm, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &lm, nil
}

// CreateNeighborhood inserts a neighborhood under an existing city.
func (d *Database) CreateNeighborhood(n *models.Neighborhood) error {
	return translateError(d.db.Create(n).Error)
}

// DeleteCountry removes a country. Cascades take out the whole geo subtree,
// but properties referencing a neighborhood under it block the delete.
func (d *Database) DeleteCountry(id uint) error {
	res := d.db.Delete(&models.Country{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, "country not found")
	}
	return nil
}

// DeleteAmenity removes an amenity unless a listing still references it.
func (d *Database) DeleteAmenity(id uint) error {
	var count int64
	if err := d.db.Model(&models.PropertyAmenity{}).Where("amenity_id = ?", id).Count(&count).Error; err != nil {
		return translateError(err)
	}
	if count > 0 {
		return apperrors.New(apperrors.CodeReferentialIntegrity, "amenity is referenced by listings")
	}
	res := d.db.Delete(&models.Amenity{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, "amenity not found")
	}
	return nil
}
