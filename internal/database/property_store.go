package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"honestspace/server/internal/apperrors"
	"honestspace/server/internal/geocoding"
	"honestspace/server/internal/geometry"
	"honestspace/server/internal/models"
)

// SearchPageSize is the fixed page length of listing search results.
const SearchPageSize = 20

// PropertyFilters is the full set of search predicates. Zero values mean
// "not filtered". All present predicates are combined with AND.
type PropertyFilters struct {
	MinPrice *float64
	MaxPrice *float64

	Neighborhood string
	City         string
	County       string

	PropertyTypeIDs []uint

	IsFurnished       *bool
	IsPetFriendly     *bool
	UtilitiesIncluded *bool
	HasGarden         *bool
	HasPool           *bool
	HasGym            *bool
	IsVerified        *bool

	MinBedrooms  *uint
	MinBathrooms *uint
	MinSizeSqft  *uint
	MaxSizeSqft  *uint

	// AmenityIDs filters with AND semantics: a listing matches only when it
	// has every requested amenity.
	AmenityIDs []uint

	AvailableFrom  *time.Time
	AvailableUntil *time.Time

	// Ordering accepts price, created, popular, verified, with a leading
	// "-" for descending.
	Ordering string

	Page int
}

// SearchResult is one page of listings plus pagination metadata.
type SearchResult struct {
	Properties []models.Property `json:"results"`
	Total      int64             `json:"count"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}

var orderingColumns = map[string]string{
	"price":    "properties.rent_amount",
	"created":  "properties.created_at",
	"popular":  "properties.view_count",
	"verified": "properties.is_verified",
}

// SearchProperties runs the public listing search. Only listings in a
// publicly visible status appear.
func (d *Database) SearchProperties(filters PropertyFilters) (*SearchResult, error) {
	q := d.db.Model(&models.Property{}).
		Joins("JOIN property_status ON property_status.id = properties.status_id").
		Where("property_status.is_public = ?", true)

	if filters.MinPrice != nil {
		q = q.Where("properties.rent_amount >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		q = q.Where("properties.rent_amount <= ?", *filters.MaxPrice)
	}

	// Location predicates walk the to-one chain so no row duplication can
	// occur.
	if filters.Neighborhood != "" || filters.City != "" || filters.County != "" {
		q = q.Joins("JOIN property_locations ON property_locations.property_id = properties.id").
			Joins("JOIN neighborhoods ON neighborhoods.id = property_locations.neighborhood_id")
		if filters.Neighborhood != "" {
			q = q.Where("LOWER(neighborhoods.name) LIKE ?", containsPattern(filters.Neighborhood))
		}
		if filters.City != "" || filters.County != "" {
			q = q.Joins("JOIN cities ON cities.id = neighborhoods.city_id")
			if filters.City != "" {
				q = q.Where("LOWER(cities.name) LIKE ?", containsPattern(filters.City))
			}
			if filters.County != "" {
				q = q.Joins("JOIN counties ON counties.id = cities.county_id").
					Where("LOWER(counties.name) LIKE ?", containsPattern(filters.County))
			}
		}
	}

	// Unknown type ids simply match nothing.
	if len(filters.PropertyTypeIDs) > 0 {
		q = q.Where("properties.property_type_id IN ?", filters.PropertyTypeIDs)
	}

	q = applyBool(q, "properties.is_furnished", filters.IsFurnished)
	q = applyBool(q, "properties.is_pet_friendly", filters.IsPetFriendly)
	q = applyBool(q, "properties.utilities_included", filters.UtilitiesIncluded)
	q = applyBool(q, "properties.has_garden", filters.HasGarden)
	q = applyBool(q, "properties.has_pool", filters.HasPool)
	q = applyBool(q, "properties.has_gym", filters.HasGym)
	q = applyBool(q, "properties.is_verified", filters.IsVerified)

	if filters.MinBedrooms != nil {
		q = q.Where("properties.bedrooms >= ?", *filters.MinBedrooms)
	}
	if filters.MinBathrooms != nil {
		q = q.Where("properties.bathrooms >= ?", *filters.MinBathrooms)
	}
	if filters.MinSizeSqft != nil {
		q = q.Where("properties.property_size_sqft >= ?", *filters.MinSizeSqft)
	}
	if filters.MaxSizeSqft != nil {
		q = q.Where("properties.property_size_sqft <= ?", *filters.MaxSizeSqft)
	}

	// Amenity AND semantics via an aggregate subquery: listings that have
	// all n requested amenities. This keeps Count() correct for pagination,
	// which a join with GROUP BY would not.
	if len(filters.AmenityIDs) > 0 {
		sub := d.db.Table("property_amenities").
			Select("property_id").
			Where("amenity_id IN ?", filters.AmenityIDs).
			Group("property_id").
			Having("COUNT(DISTINCT amenity_id) = ?", len(filters.AmenityIDs))
		q = q.Where("properties.id IN (?)", sub)
	}

	if filters.AvailableFrom != nil {
		q = q.Where("properties.availability_date >= ?", *filters.AvailableFrom)
	}
	if filters.AvailableUntil != nil {
		q = q.Where("properties.availability_date <= ?", *filters.AvailableUntil)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, translateError(err)
	}

	orderBy, err := resolveOrdering(filters.Ordering)
	if err != nil {
		return nil, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}

	var properties []models.Property
	err = q.Preload("PropertyType").
		Preload("Status").
		Preload("Location").
		Preload("Location.Neighborhood").
		Preload("Location.Neighborhood.City").
		Preload("Media", "is_active = ?", true).
		Preload("Amenities.Amenity").
		Order(orderBy).
		Limit(SearchPageSize).
		Offset((page - 1) * SearchPageSize).
		Find(&properties).Error
	if err != nil {
		return nil, translateError(err)
	}

	totalPages := int((total + SearchPageSize - 1) / SearchPageSize)
	return &SearchResult{
		Properties: properties,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

func applyBool(q *gorm.DB, column string, value *bool) *gorm.DB {
	if value == nil {
		return q
	}
	return q.Where(column+" = ?", *value)
}

func resolveOrdering(ordering string) (string, error) {
	if ordering == "" {
		return "properties.created_at DESC, properties.id", nil
	}
	direction := "ASC"
	key := ordering
	if strings.HasPrefix(ordering, "-") {
		direction = "DESC"
		key = ordering[1:]
	}
	column, ok := orderingColumns[key]
	if !ok {
		return "", apperrors.NewField("ordering", fmt.Sprintf("unsupported ordering %q", ordering))
	}
	// The id tie-break keeps pagination stable when the sort key repeats.
	return fmt.Sprintf("%s %s, properties.id", column, direction), nil
}

// ListingInput is the payload for creating a listing.
type ListingInput struct {
	Title          string
	Description    string
	PropertyTypeID uint

	RentAmount    float64
	DepositAmount float64
	Currency      string

	PropertySizeSqft *uint
	Bedrooms         uint
	Bathrooms        uint
	Floors           uint
	ParkingSpaces    uint

	UtilitiesIncluded bool
	IsFurnished       bool
	IsPetFriendly     bool
	HasGarden         bool
	HasPool           bool
	HasGym            bool

	AvailabilityDate   time.Time
	MinimumLeaseMonths uint
	MaximumLeaseMonths *uint

	AddressLine1   string
	NeighborhoodID *uint
	GoogleMapsLink string

	AmenityIDs []uint
}

// ListingResult reports the created listing plus any requested amenity ids
// that did not resolve to an amenity row and were skipped.
type ListingResult struct {
	Property          *models.Property `json:"property"`
	SkippedAmenityIDs []uint           `json:"skipped_amenities,omitempty"`
}

// CreateListing creates a listing atomically: property row, location row
// and amenity links succeed or fail together. New listings always enter in
// pending status regardless of anything the client sends; unknown amenity
// ids are skipped and reported rather than failing the create.
func (d *Database) CreateListing(landlordID uint, in ListingInput) (*ListingResult, error) {
	if in.Title == "" {
		return nil, apperrors.NewField("title", "title is required")
	}
	if in.RentAmount <= 0 {
		return nil, apperrors.NewField("rent_amount", "rent amount must be positive")
	}
	if in.DepositAmount < 0 {
		return nil, apperrors.NewField("deposit_amount", "deposit amount cannot be negative")
	}

	// Coordinates are extracted before the transaction so a malformed link
	// fails fast as a validation error.
	var lat, lng *float64
	if in.GoogleMapsLink != "" {
		la, ln, ok := geocoding.ExtractCoordinates(in.GoogleMapsLink)
		if !ok {
			return nil, apperrors.NewField("google_maps_link", "no coordinates found in maps link")
		}
		lat, lng = &la, &ln
	}

	pending, err := d.GetStatusByName(models.StatusPending)
	if err != nil {
		return nil, err
	}

	currency := in.Currency
	if currency == "" {
		currency = d.defaultCurrency
	}
	minimumLease := in.MinimumLeaseMonths
	if minimumLease == 0 {
		minimumLease = 6
	}
	floors := in.Floors
	if floors == 0 {
		floors = 1
	}

	property := &models.Property{
		Title:              in.Title,
		Description:        in.Description,
		LandlordID:         landlordID,
		PropertyTypeID:     in.PropertyTypeID,
		StatusID:           pending.ID,
		RentAmount:         in.RentAmount,
		DepositAmount:      in.DepositAmount,
		Currency:           currency,
		PropertySizeSqft:   in.PropertySizeSqft,
		Bedrooms:           in.Bedrooms,
		Bathrooms:          in.Bathrooms,
		Floors:             floors,
		ParkingSpaces:      in.ParkingSpaces,
		UtilitiesIncluded:  in.UtilitiesIncluded,
		IsFurnished:        in.IsFurnished,
		IsPetFriendly:      in.IsPetFriendly,
		HasGarden:          in.HasGarden,
		HasPool:            in.HasPool,
		HasGym:             in.HasGym,
		AvailabilityDate:   in.AvailabilityDate,
		MinimumLeaseMonths: minimumLease,
		MaximumLeaseMonths: in.MaximumLeaseMonths,
	}

	var skipped []uint
	err = d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(property).Error; err != nil {
			return err
		}

		location := &models.PropertyLocation{
			PropertyID:     property.ID,
			AddressLine1:   in.AddressLine1,
			NeighborhoodID: in.NeighborhoodID,
			Latitude:       lat,
			Longitude:      lng,
		}
		if in.GoogleMapsLink != "" {
			link := in.GoogleMapsLink
			location.GoogleMapsLink = &link
		}
		if err := tx.Create(location).Error; err != nil {
			return err
		}
		property.Location = location

		for _, amenityID := range in.AmenityIDs {
			var amenity models.Amenity
			if err := tx.First(&amenity, amenityID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					skipped = append(skipped, amenityID)
					continue
				}
				return err
			}
			link := models.PropertyAmenity{PropertyID: property.ID, AmenityID: amenityID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}

	property.Status = pending
	return &ListingResult{Property: property, SkippedAmenityIDs: skipped}, nil
}

// GetProperty loads one listing with its full relation graph and records
// the view: the listing view counter and the daily analytics row are both
// incremented.
func (d *Database) GetProperty(id string) (*models.Property, error) {
	var property models.Property
	err := d.db.Preload("Landlord").
		Preload("PropertyType").
		Preload("Status").
		Preload("Location").
		Preload("Location.Neighborhood").
		Preload("Location.Neighborhood.City").
		Preload("Location.Neighborhood.City.County").
		Preload("Media", "is_active = ?", true).
		Preload("Amenities.Amenity").
		Preload("Amenities.Amenity.Category").
		Preload("TrustBadges", "is_active = ?", true).
		Preload("TrustBadges.Badge").
		Preload("Landmarks.Landmark").
		Where("id = ?", id).
		First(&property).Error
	if err != nil {
		return nil, translateError(err)
	}

	if err := d.recordView(id); err != nil {
		d.logger.WithError(err).WithField("property_id", id).
			Warn("Failed to record property view")
	} else {
		property.ViewCount++
	}
	return &property, nil
}

// GetPropertyBySlug resolves a listing by its slug without counting a view.
func (d *Database) GetPropertyBySlug(slug string) (*models.Property, error) {
	var property models.Property
	err := d.db.Preload("Status").Where("slug = ?", slug).First(&property).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &property, nil
}

func (d *Database) recordView(propertyID string) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Property{}).
			Where("id = ?", propertyID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
		if err != nil {
			return err
		}
		return bumpAnalytics(tx, propertyID, "views")
	})
}

// bumpAnalytics increments one counter on today's analytics row, creating
// it when missing. The upsert is portable across sqlite and postgres.
func bumpAnalytics(tx *gorm.DB, propertyID, counter string) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	row := models.PropertyAnalytics{PropertyID: propertyID, Date: today}
	switch counter {
	case "views":
		row.Views = 1
	case "inquiries":
		row.Inquiries = 1
	case "loves":
		row.Loves = 1
	case "shares":
		row.Shares = 1
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "property_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			counter: gorm.Expr(counter + " + 1"),
		}),
	}).Create(&row).Error
}

// ListAnalytics returns the daily rows for a listing, newest first. Only
// the listing's landlord may read them; the handler enforces that.
func (d *Database) ListAnalytics(propertyID string, since time.Time) ([]models.PropertyAnalytics, error) {
	var rows []models.PropertyAnalytics
	q := d.db.Where("property_id = ?", propertyID).Order("date DESC")
	if !since.IsZero() {
		q = q.Where("date >= ?", since)
	}
	err := q.Find(&rows).Error
	return rows, translateError(err)
}

// UpdateListing saves editable listing fields for the owning landlord.
// Status, landlord, counters and verification fields are never writable
// through this path.
func (d *Database) UpdateListing(property *models.Property) error {
	err := d.db.Model(property).Select(
		"title", "description", "property_type_id",
		"rent_amount", "deposit_amount", "currency",
		"property_size_sqft", "bedrooms", "bathrooms", "floors", "parking_spaces",
		"utilities_included", "is_furnished", "is_pet_friendly",
		"has_garden", "has_pool", "has_gym",
		"availability_date", "minimum_lease_months", "maximum_lease_months",
		"meta_description",
	).Updates(property).Error
	return translateError(err)
}

func (d *Database) DeleteListing(id string) error {
	res := d.db.Delete(&models.Property{}, "id = ?", id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, "listing not found")
	}
	return nil
}

// TransitionStatus moves a listing along the status state machine. The
// transition is validated against the allowed edge set, and side effects
// fire on specific arrivals: verified stamps the verification fields,
// active stamps published_at on first publish.
func (d *Database) TransitionStatus(propertyID, toStatus string, actorID uint) error {
	target, err := d.GetStatusByName(toStatus)
	if err != nil {
		return err
	}

	return d.db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Preload("Status").Where("id = ?", propertyID).First(&property).Error; err != nil {
			return translateError(err)
		}
		from := property.Status.Name
		if !models.CanTransitionStatus(from, toStatus) {
			return apperrors.Newf(apperrors.CodeValidation,
				"cannot transition listing from %s to %s", from, toStatus)
		}

		updates := map[string]interface{}{"status_id": target.ID}
		now := time.Now()
		switch toStatus {
		case models.StatusVerified:
			updates["is_verified"] = true
			updates["verification_date"] = now
			updates["verified_by_id"] = actorID
		case models.StatusActive:
			if property.PublishedAt == nil {
				updates["published_at"] = now
			}
		case models.StatusRejected:
			updates["is_verified"] = false
		}

		err := tx.Model(&models.Property{}).Where("id = ?", propertyID).Updates(updates).Error
		return translateError(err)
	})
}

// AttachLandmark links a landmark to a listing, computing the distance and
// walking time from stored coordinates. Both the location and the landmark
// must carry coordinates.
func (d *Database) AttachLandmark(propertyID string, landmarkID uint, highlighted bool) (*models.PropertyLandmark, error) {
	var location models.PropertyLocation
	if err := d.db.Where("property_id = ?", propertyID).First(&location).Error; err != nil {
		return nil, translateError(err)
	}
	if location.Latitude == nil || location.Longitude == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "listing has no coordinates")
	}

	landmark, err := d.GetLandmark(landmarkID)
	if err != nil {
		return nil, err
	}

	distance := geometry.DistanceMeters(
		geometry.PointFromLatLng(*location.Latitude, *location.Longitude),
		geometry.PointFromLatLng(landmark.Latitude, landmark.Longitude),
	)
	walking := geometry.WalkingTimeMinutes(distance)

	link := &models.PropertyLandmark{
		PropertyID:         propertyID,
		LandmarkID:         landmarkID,
		DistanceMeters:     distance,
		WalkingTimeMinutes: &walking,
		IsHighlighted:      highlighted,
	}
	if err := d.db.Create(link).Error; err != nil {
		return nil, translateError(err)
	}
	link.Landmark = landmark
	return link, nil
}

// ListLandlordProperties returns all listings owned by one landlord in any
// status, newest first.
func (d *Database) ListLandlordProperties(landlordID uint) ([]models.Property, error) {
	var properties []models.Property
	err := d.db.Preload("Status").
		Preload("PropertyType").
		Preload("Location").
		Where("landlord_id = ?", landlordID).
		Order("created_at DESC").
		Find(&properties).Error
	return properties, translateError(err)
}
