package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"honestspace/server/internal/apperrors"
	"honestspace/server/internal/database"
	"honestspace/server/internal/models"
)

// SearchProperties is the public listing search. All filters are optional
// query parameters combined with AND.
func (h *Handler) SearchProperties(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.db.SearchProperties(*filters)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseFilters(c *gin.Context) (*database.PropertyFilters, error) {
	filters := &database.PropertyFilters{
		Neighborhood: c.Query("neighborhood"),
		City:         c.Query("city"),
		County:       c.Query("county"),
		Ordering:     c.Query("ordering"),
	}

	var err error
	if filters.MinPrice, err = queryFloat(c, "min_price"); err != nil {
		return nil, err
	}
	if filters.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
		return nil, err
	}
	if filters.MinBedrooms, err = queryUintPtr(c, "min_bedrooms"); err != nil {
		return nil, err
	}
	if filters.MinBathrooms, err = queryUintPtr(c, "min_bathrooms"); err != nil {
		return nil, err
	}
	if filters.MinSizeSqft, err = queryUintPtr(c, "min_size"); err != nil {
		return nil, err
	}
	if filters.MaxSizeSqft, err = queryUintPtr(c, "max_size"); err != nil {
		return nil, err
	}

	if filters.IsFurnished, err = queryBool(c, "is_furnished"); err != nil {
		return nil, err
	}
	if filters.IsPetFriendly, err = queryBool(c, "is_pet_friendly"); err != nil {
		return nil, err
	}
	if filters.UtilitiesIncluded, err = queryBool(c, "utilities_included"); err != nil {
		return nil, err
	}
	if filters.HasGarden, err = queryBool(c, "has_garden"); err != nil {
		return nil, err
	}
	if filters.HasPool, err = queryBool(c, "has_pool"); err != nil {
		return nil, err
	}
	if filters.HasGym, err = queryBool(c, "has_gym"); err != nil {
		return nil, err
	}
	if filters.IsVerified, err = queryBool(c, "is_verified"); err != nil {
		return nil, err
	}

	// property_type repeats, property_types takes a comma list. Both carry
	// catalog ids.
	typeParams := c.QueryArray("property_type")
	if list := c.Query("property_types"); list != "" {
		typeParams = append(typeParams, strings.Split(list, ",")...)
	}
	for _, part := range typeParams {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, apperrors.NewField("property_type", "property type ids must be integers")
		}
		filters.PropertyTypeIDs = append(filters.PropertyTypeIDs, uint(id))
	}

	if raw := c.Query("amenities"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, apperrors.NewField("amenities", "amenity ids must be integers")
			}
			filters.AmenityIDs = append(filters.AmenityIDs, uint(id))
		}
	}

	if filters.AvailableFrom, err = queryDate(c, "available_from"); err != nil {
		return nil, err
	}
	if filters.AvailableUntil, err = queryDate(c, "available_until"); err != nil {
		return nil, err
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, apperrors.NewField("page", "page must be a positive integer")
		}
		filters.Page = page
	}
	return filters, nil
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.NewField(name, "must be a number")
	}
	return &value, nil
}

func queryUintPtr(c *gin.Context, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apperrors.NewField(name, "must be a non-negative integer")
	}
	v := uint(value)
	return &v, nil
}

func queryBool(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.NewField(name, "must be true or false")
	}
	return &value, nil
}

func queryDate(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperrors.NewField(name, "must be a YYYY-MM-DD date")
	}
	return &value, nil
}

type ListingRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description" binding:"required"`
	PropertyTypeID uint   `json:"property_type_id" binding:"required"`

	RentAmount    float64 `json:"rent_amount" binding:"required"`
	DepositAmount float64 `json:"deposit_amount"`
	Currency      string  `json:"currency"`

	PropertySizeSqft *uint `json:"property_size_sqft"`
	Bedrooms         uint  `json:"bedrooms"`
	Bathrooms        uint  `json:"bathrooms"`
	Floors           uint  `json:"floors"`
	ParkingSpaces    uint  `json:"parking_spaces"`

	UtilitiesIncluded bool `json:"utilities_included"`
	IsFurnished       bool `json:"is_furnished"`
	IsPetFriendly     bool `json:"is_pet_friendly"`
	HasGarden         bool `json:"has_garden"`
	HasPool           bool `json:"has_pool"`
	HasGym            bool `json:"has_gym"`

	AvailabilityDate   time.Time `json:"availability_date" binding:"required"`
	MinimumLeaseMonths uint      `json:"minimum_lease_months"`
	MaximumLeaseMonths *uint     `json:"maximum_lease_months"`

	AddressLine1   string `json:"address_line_1"`
	NeighborhoodID *uint  `json:"neighborhood_id"`
	GoogleMapsLink string `json:"google_maps_link"`

	AmenityIDs []uint `json:"amenity_ids"`
}

// CreateListing creates a listing owned by the authenticated landlord. The
// listing always enters in pending status; the response names any amenity
// ids that were skipped because no such amenity exists.
func (h *Handler) CreateListing(c *gin.Context) {
	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "detail": err.Error()})
		return
	}

	user := currentUser(c)
	result, err := h.db.CreateListing(user.ID, database.ListingInput{
		Title:              req.Title,
		Description:        req.Description,
		PropertyTypeID:     req.PropertyTypeID,
		RentAmount:         req.RentAmount,
		DepositAmount:      req.DepositAmount,
		Currency:           req.Currency,
		PropertySizeSqft:   req.PropertySizeSqft,
		Bedrooms:           req.Bedrooms,
		Bathrooms:          req.Bathrooms,
		Floors:             req.Floors,
		ParkingSpaces:      req.ParkingSpaces,
		UtilitiesIncluded:  req.UtilitiesIncluded,
		IsFurnished:        req.IsFurnished,
		IsPetFriendly:      req.IsPetFriendly,
		HasGarden:          req.HasGarden,
		HasPool:            req.HasPool,
		HasGym:             req.HasGym,
		AvailabilityDate:   req.AvailabilityDate,
		MinimumLeaseMonths: req.MinimumLeaseMonths,
		MaximumLeaseMonths: req.MaximumLeaseMonths,
		AddressLine1:       req.AddressLine1,
		NeighborhoodID:     req.NeighborhoodID,
		GoogleMapsLink:     req.GoogleMapsLink,
		AmenityIDs:         req.AmenityIDs,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"property_id": result.Property.ID,
		"landlord_id": user.ID,
	}).Info("Listing created")
	c.JSON(http.StatusCreated, result)
}

// GetProperty returns one listing with its full relation graph and counts
// the view. The path segment accepts the listing id or its slug.
func (h *Handler) GetProperty(c *gin.Context) {
	property, err := h.db.GetProperty(c.Param("id"))
	if err != nil && apperrors.Is(err, apperrors.CodeNotFound) {
		if bySlug, slugErr := h.db.GetPropertyBySlug(c.Param("id")); slugErr == nil {
			property, err = h.db.GetProperty(bySlug.ID)
		}
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	body := gin.H{
		"property":     property,
		"is_available": property.IsAvailable(time.Now()),
	}
	if user := currentUser(c); user != nil {
		loved, err := h.db.IsLoved(user.ID, property.ID)
		if err == nil {
			body["is_loved"] = loved
		}
	}
	c.JSON(http.StatusOK, body)
}

// requireOwnership loads a listing and checks the caller owns it. Admins
// pass the ownership check.
func (h *Handler) requireOwnership(c *gin.Context, propertyID string) (*models.Property, bool) {
	var property models.Property
	err := h.db.GetDB().Preload("Status").Where("id = ?", propertyID).First(&property).Error
	if err != nil {
		h.respondError(c, apperrors.New(apperrors.CodeNotFound, "listing not found"))
		return nil, false
	}
	user := currentUser(c)
	if property.LandlordID != user.ID && !user.IsAdmin() {
		h.respondError(c, apperrors.New(apperrors.CodeAuthorization, "not the owner of this listing"))
		return nil, false
	}
	return &property, true
}

// UpdateListing applies partial edits to a listing the caller owns.
func (h *Handler) UpdateListing(c *gin.Context) {
	property, ok := h.requireOwnership(c, c.Param("id"))
	if !ok {
		return
	}

	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "detail": err.Error()})
		return
	}
	if req.RentAmount <= 0 {
		h.respondError(c, apperrors.NewField("rent_amount", "rent amount must be positive"))
		return
	}

	property.Title = req.Title
	property.Description = req.Description
	property.PropertyTypeID = req.PropertyTypeID
	property.RentAmount = req.RentAmount
	property.DepositAmount = req.DepositAmount
	if req.Currency != "" {
		property.Currency = req.Currency
	}
	property.PropertySizeSqft = req.PropertySizeSqft
	property.Bedrooms = req.Bedrooms
	property.Bathrooms = req.Bathrooms
	if req.Floors != 0 {
		property.Floors = req.Floors
	}
	property.ParkingSpaces = req.ParkingSpaces
	property.UtilitiesIncluded = req.UtilitiesIncluded
	property.IsFurnished = req.IsFurnished
	property.IsPetFriendly = req.IsPetFriendly
	property.HasGarden = req.HasGarden
	property.HasPool = req.HasPool
	property.HasGym = req.HasGym
	property.AvailabilityDate = req.AvailabilityDate
	if req.MinimumLeaseMonths != 0 {
		property.MinimumLeaseMonths = req.MinimumLeaseMonths
	}
	property.MaximumLeaseMonths = req.MaximumLeaseMonths

	if err := h.db.UpdateListing(property); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// DeleteListing removes a listing the caller owns. Cascades take out the
// location, media, amenity links and engagement rows.
func (h *Handler) DeleteListing(c *gin.Context) {
	property, ok := h.requireOwnership(c, c.Param("id"))
	if !ok {
		return
	}
	if err := h.db.DeleteListing(property.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Listing deleted"})
}

type StatusTransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// verificationStatuses may only be set by scouts and admins.
var verificationStatuses = map[string]bool{
	models.StatusVerified:  true,
	models.StatusRejected:  true,
	models.StatusSuspended: true,
}

// TransitionStatus moves a listing along the status state machine.
// Verification arrivals are restricted to scouts and admins; everything
// else requires ownership.
func (h *Handler) TransitionStatus(c *gin.Context) {
	var req StatusTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user := currentUser(c)
	propertyID := c.Param("id")
	if verificationStatuses[req.Status] {
		if !user.IsScout() && !user.IsAdmin() {
			h.respondError(c, apperrors.New(apperrors.CodeAuthorization, "verification requires a scout or admin account"))
			return
		}
	} else {
		if _, ok := h.requireOwnership(c, propertyID); !ok {
			return
		}
	}

	if err := h.db.TransitionStatus(propertyID, req.Status, user.ID); err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"property_id": propertyID,
		"status":      req.Status,
		"actor_id":    user.ID,
	}).Info("Listing status changed")
	c.JSON(http.StatusOK, gin.H{"detail": "Status updated", "status": req.Status})
}

type AttachLandmarkRequest struct {
	LandmarkID    uint `json:"landmark_id" binding:"required"`
	IsHighlighted bool `json:"is_highlighted"`
}

// AttachLandmark links a nearby landmark to a listing the caller owns,
// computing distance and walking time from stored coordinates.
func (h *Handler) AttachLandmark(c *gin.Context) {
	property, ok := h.requireOwnership(c, c.Param("id"))
	if !ok {
		return
	}

	var req AttachLandmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	link, err := h.db.AttachLandmark(property.ID, req.LandmarkID, req.IsHighlighted)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// ListMyProperties returns all listings owned by the authenticated
// landlord in any status.
func (h *Handler) ListMyProperties(c *gin.Context) {
	properties, err := h.db.ListLandlordProperties(currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetAnalytics returns the daily analytics rows of a listing to its owner.
func (h *Handler) GetAnalytics(c *gin.Context) {
	property, ok := h.requireOwnership(c, c.Param("id"))
	if !ok {
		return
	}

	var since time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.respondError(c, apperrors.NewField("since", "must be a YYYY-MM-DD date"))
			return
		}
		since = parsed
	}

	rows, err := h.db.ListAnalytics(property.ID, since)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
