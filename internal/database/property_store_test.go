package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honestspace/server/internal/apperrors"
	"honestspace/server/internal/models"
)

func createTestListing(t *testing.T, db *Database, landlordID uint, rent float64, amenityIDs ...uint) *models.Property {
	t.Helper()
	result, err := db.CreateListing(landlordID, ListingInput{
		Title:            "Test Listing",
		Description:      "A listing used in tests",
		PropertyTypeID:   firstPropertyTypeID(t, db),
		RentAmount:       rent,
		AvailabilityDate: time.Now().Add(-24 * time.Hour),
		AmenityIDs:       amenityIDs,
	})
	require.NoError(t, err)
	return result.Property
}

// activateListing walks a listing through pending, verified, active.
func activateListing(t *testing.T, db *Database, propertyID string, actorID uint) {
	t.Helper()
	require.NoError(t, db.TransitionStatus(propertyID, models.StatusVerified, actorID))
	require.NoError(t, db.TransitionStatus(propertyID, models.StatusActive, actorID))
}

func TestCreateListingStartsPending(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)

	property := createTestListing(t, db, landlord.ID, 25000)
	assert.NotEmpty(t, property.ID)
	assert.Equal(t, models.StatusPending, property.Status.Name)
	assert.Contains(t, property.Slug, "test-listing-")
	assert.Equal(t, landlord.ID, property.LandlordID)
	assert.Equal(t, "KES", property.Currency)
}

func TestCreateListingValidation(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	typeID := firstPropertyTypeID(t, db)

	_, err := db.CreateListing(landlord.ID, ListingInput{
		Title: "No rent", Description: "d", PropertyTypeID: typeID,
		RentAmount: 0, AvailabilityDate: time.Now(),
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	_, err = db.CreateListing(landlord.ID, ListingInput{
		Title: "Bad deposit", Description: "d", PropertyTypeID: typeID,
		RentAmount: 10000, DepositAmount: -5, AvailabilityDate: time.Now(),
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	_, err = db.CreateListing(landlord.ID, ListingInput{
		Title: "Bad link", Description: "d", PropertyTypeID: typeID,
		RentAmount: 10000, AvailabilityDate: time.Now(),
		GoogleMapsLink: "https://maps.google.com/place/nowhere",
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestCreateListingExtractsCoordinates(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)

	result, err := db.CreateListing(landlord.ID, ListingInput{
		Title: "Geo", Description: "d", PropertyTypeID: firstPropertyTypeID(t, db),
		RentAmount: 10000, AvailabilityDate: time.Now(),
		GoogleMapsLink: "https://maps.google.com/@-1.286389,36.817223,15z",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Property.Location)
	require.NotNil(t, result.Property.Location.Latitude)
	assert.InDelta(t, -1.286389, *result.Property.Location.Latitude, 1e-9)
	assert.InDelta(t, 36.817223, *result.Property.Location.Longitude, 1e-9)
}

func TestCreateListingSkipsUnknownAmenities(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	amenity := createTestAmenity(t, db, "backup-generator")

	result, err := db.CreateListing(landlord.ID, ListingInput{
		Title: "Amenities", Description: "d", PropertyTypeID: firstPropertyTypeID(t, db),
		RentAmount: 10000, AvailabilityDate: time.Now(),
		AmenityIDs: []uint{amenity.ID, 99999},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{99999}, result.SkippedAmenityIDs)

	var count int64
	require.NoError(t, db.db.Model(&models.PropertyAmenity{}).
		Where("property_id = ?", result.Property.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSearchPropertiesPriceRange(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	scout := createTestUser(t, db, models.RoleScout)

	for _, rent := range []float64{10000, 20000, 30000} {
		property := createTestListing(t, db, landlord.ID, rent)
		activateListing(t, db, property.ID, scout.ID)
	}

	min, max := 15000.0, 25000.0
	result, err := db.SearchProperties(PropertyFilters{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Properties, 1)
	assert.Equal(t, 20000.0, result.Properties[0].RentAmount)
}

func TestSearchPropertiesLocationFilters(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	scout := createTestUser(t, db, models.RoleScout)
	neighborhood := createTestGeo(t, db)

	result, err := db.CreateListing(landlord.ID, ListingInput{
		Title: "Kilimani flat", Description: "d", PropertyTypeID: firstPropertyTypeID(t, db),
		RentAmount: 30000, AvailabilityDate: time.Now(),
		NeighborhoodID: &neighborhood.ID,
	})
	require.NoError(t, err)
	activateListing(t, db, result.Property.ID, scout.ID)

	// A second active listing with no neighborhood set
	elsewhere := createTestListing(t, db, landlord.ID, 20000)
	activateListing(t, db, elsewhere.ID, scout.ID)

	// Case-insensitive substring over the neighborhood name
	found, err := db.SearchProperties(PropertyFilters{Neighborhood: "KILI"})
	require.NoError(t, err)
	require.Equal(t, int64(1), found.Total)
	assert.Equal(t, result.Property.ID, found.Properties[0].ID)

	found, err = db.SearchProperties(PropertyFilters{City: "nairo", County: "Nairobi"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.Total)

	found, err = db.SearchProperties(PropertyFilters{City: "Mombasa"})
	require.NoError(t, err)
	assert.Zero(t, found.Total)

	// Without location filters both listings appear
	found, err = db.SearchProperties(PropertyFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.Total)
}

func TestGetPropertyBySlug(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	property := createTestListing(t, db, landlord.ID, 10000)

	bySlug, err := db.GetPropertyBySlug(property.Slug)
	require.NoError(t, err)
	assert.Equal(t, property.ID, bySlug.ID)

	// Slug resolution never counts a view
	loaded, err := db.GetProperty(property.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), loaded.ViewCount)

	_, err = db.GetPropertyBySlug("no-such-listing")
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestSearchPropertiesExcludesNonPublic(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	scout := createTestUser(t, db, models.RoleScout)

	createTestListing(t, db, landlord.ID, 10000) // stays pending
	active := createTestListing(t, db, landlord.ID, 20000)
	activateListing(t, db, active.ID, scout.ID)

	result, err := db.SearchProperties(PropertyFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Properties, 1)
	assert.Equal(t, active.ID, result.Properties[0].ID)
}

func TestSearchPropertiesAmenityANDSemantics(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	scout := createTestUser(t, db, models.RoleScout)

	a := createTestAmenity(t, db, "wifi")
	b := createTestAmenity(t, db, "parking")
	d := createTestAmenity(t, db, "pool-table")

	both := createTestListing(t, db, landlord.ID, 10000, a.ID, b.ID, d.ID)
	activateListing(t, db, both.ID, scout.ID)

	onlyA := createTestListing(t, db, landlord.ID, 12000, a.ID)
	activateListing(t, db, onlyA.ID, scout.ID)

	// {A,B} matches the listing holding {A,B,D} but not the one with only A
	result, err := db.SearchProperties(PropertyFilters{AmenityIDs: []uint{a.ID, b.ID}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Properties, 1)
	assert.Equal(t, both.ID, result.Properties[0].ID)

	// {A,D} does not match the listing with only A
	result, err = db.SearchProperties(PropertyFilters{AmenityIDs: []uint{a.ID, d.ID}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, both.ID, result.Properties[0].ID)
}

func TestSearchPropertiesOrdering(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	scout := createTestUser(t, db, models.RoleScout)

	for _, rent := range []float64{30000, 10000, 20000} {
		property := createTestListing(t, db, landlord.ID, rent)
		activateListing(t, db, property.ID, scout.ID)
	}

	result, err := db.SearchProperties(PropertyFilters{Ordering: "price"})
	require.NoError(t, err)
	require.Len(t, result.Properties, 3)
	assert.Equal(t, 10000.0, result.Properties[0].RentAmount)
	assert.Equal(t, 30000.0, result.Properties[2].RentAmount)

	result, err = db.SearchProperties(PropertyFilters{Ordering: "-price"})
	require.NoError(t, err)
	assert.Equal(t, 30000.0, result.Properties[0].RentAmount)

	_, err = db.SearchProperties(PropertyFilters{Ordering: "bogus"})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestSearchPropertiesPagination(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	scout := createTestUser(t, db, models.RoleScout)

	for i := 0; i < SearchPageSize+5; i++ {
		property := createTestListing(t, db, landlord.ID, float64(10000+i))
		activateListing(t, db, property.ID, scout.ID)
	}

	page1, err := db.SearchProperties(PropertyFilters{Ordering: "price", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(SearchPageSize+5), page1.Total)
	assert.Len(t, page1.Properties, SearchPageSize)
	assert.Equal(t, 2, page1.TotalPages)

	page2, err := db.SearchProperties(PropertyFilters{Ordering: "price", Page: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Properties, 5)

	// Same query, same page, same rows
	again, err := db.SearchProperties(PropertyFilters{Ordering: "price", Page: 2})
	require.NoError(t, err)
	require.Len(t, again.Properties, 5)
	for i := range again.Properties {
		assert.Equal(t, page2.Properties[i].ID, again.Properties[i].ID)
	}
}

func TestGetPropertyCountsView(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	property := createTestListing(t, db, landlord.ID, 10000)

	loaded, err := db.GetProperty(property.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), loaded.ViewCount)

	loaded, err = db.GetProperty(property.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), loaded.ViewCount)

	// The daily analytics row mirrors the views
	rows, err := db.ListAnalytics(property.ID, time.Time{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(2), rows[0].Views)

	_, err = db.GetProperty("no-such-id")
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestTransitionStatusGuards(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	scout := createTestUser(t, db, models.RoleScout)
	property := createTestListing(t, db, landlord.ID, 10000)

	// pending cannot jump straight to active
	err := db.TransitionStatus(property.ID, models.StatusActive, scout.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	require.NoError(t, db.TransitionStatus(property.ID, models.StatusVerified, scout.ID))
	loaded, err := db.GetProperty(property.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsVerified)
	require.NotNil(t, loaded.VerificationDate)
	require.NotNil(t, loaded.VerifiedByID)
	assert.Equal(t, scout.ID, *loaded.VerifiedByID)

	require.NoError(t, db.TransitionStatus(property.ID, models.StatusActive, landlord.ID))
	loaded, err = db.GetProperty(property.ID)
	require.NoError(t, err)
	assert.NotNil(t, loaded.PublishedAt)
	assert.Equal(t, models.StatusActive, loaded.Status.Name)

	err = db.TransitionStatus(property.ID, "bogus", landlord.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestUpdateListingDoesNotTouchStatus(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	property := createTestListing(t, db, landlord.ID, 10000)

	property.Title = "Renamed"
	property.RentAmount = 15000
	property.StatusID = 999 // must be ignored
	require.NoError(t, db.UpdateListing(property))

	loaded, err := db.GetProperty(property.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", loaded.Title)
	assert.Equal(t, 15000.0, loaded.RentAmount)
	assert.Equal(t, models.StatusPending, loaded.Status.Name)
}

func TestDeleteListing(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	property := createTestListing(t, db, landlord.ID, 10000)

	require.NoError(t, db.DeleteListing(property.ID))

	_, err := db.GetProperty(property.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	err = db.DeleteListing(property.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestAttachLandmark(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	neighborhood := createTestGeo(t, db)

	lmType := models.LandmarkType{Name: "school"}
	require.NoError(t, db.db.Where(models.LandmarkType{Name: "school"}).FirstOrCreate(&lmType).Error)
	landmark := models.Landmark{
		Name:           "Green Primary",
		LandmarkTypeID: lmType.ID,
		NeighborhoodID: neighborhood.ID,
		Latitude:       -1.267788,
		Longitude:      36.811029,
		IsActive:       true,
	}
	require.NoError(t, db.db.Create(&landmark).Error)

	result, err := db.CreateListing(landlord.ID, ListingInput{
		Title: "Near school", Description: "d", PropertyTypeID: firstPropertyTypeID(t, db),
		RentAmount: 10000, AvailabilityDate: time.Now(),
		NeighborhoodID: &neighborhood.ID,
		GoogleMapsLink: "https://maps.google.com/@-1.286389,36.817223,15z",
	})
	require.NoError(t, err)

	link, err := db.AttachLandmark(result.Property.ID, landmark.ID, true)
	require.NoError(t, err)
	assert.Greater(t, link.DistanceMeters, uint(0))
	require.NotNil(t, link.WalkingTimeMinutes)
	assert.Greater(t, *link.WalkingTimeMinutes, uint(0))

	// A listing without coordinates cannot be linked
	bare := createTestListing(t, db, landlord.ID, 12000)
	_, err = db.AttachLandmark(bare.ID, landmark.ID, false)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestListLandlordProperties(t *testing.T) {
	db := setupTestDB(t)
	landlordA := createTestUser(t, db, models.RoleLandlord)
	landlordB := createTestUser(t, db, models.RoleLandlord)

	createTestListing(t, db, landlordA.ID, 10000)
	createTestListing(t, db, landlordA.ID, 12000)
	createTestListing(t, db, landlordB.ID, 14000)

	properties, err := db.ListLandlordProperties(landlordA.ID)
	require.NoError(t, err)
	assert.Len(t, properties, 2)
}
