package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"honestspace/server/internal/models"
)

func queryUint(c *gin.Context, name string) uint {
	value, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

func (h *Handler) ListCountries(c *gin.Context) {
	countries, err := h.db.ListCountries()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, countries)
}

func (h *Handler) ListCounties(c *gin.Context) {
	counties, err := h.db.ListCounties(queryUint(c, "country"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counties)
}

func (h *Handler) ListCities(c *gin.Context) {
	cities, err := h.db.ListCities(queryUint(c, "county"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

func (h *Handler) ListNeighborhoods(c *gin.Context) {
	neighborhoods, err := h.db.ListNeighborhoods(queryUint(c, "city"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, neighborhoods)
}

// GetNeighborhood returns one neighborhood with its city and county chain.
func (h *Handler) GetNeighborhood(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	neighborhood, err := h.db.GetNeighborhood(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, neighborhood)
}

type NeighborhoodRequest struct {
	Name             string   `json:"name" binding:"required"`
	CityID           uint     `json:"city_id" binding:"required"`
	AverageRentRange string   `json:"average_rent_range"`
	SafetyRating     *float64 `json:"safety_rating"`
	Description      string   `json:"description"`
}

// CreateNeighborhood adds a neighborhood under an existing city. Admin only.
func (h *Handler) CreateNeighborhood(c *gin.Context) {
	var req NeighborhoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "detail": err.Error()})
		return
	}

	neighborhood := models.Neighborhood{
		Name:             req.Name,
		CityID:           req.CityID,
		AverageRentRange: models.RentBand(req.AverageRentRange),
		SafetyRating:     req.SafetyRating,
		Description:      req.Description,
	}
	if err := h.db.CreateNeighborhood(&neighborhood); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, neighborhood)
}

// DeleteCountry removes a country and its geo subtree. Admin only; listings
// under the subtree block the delete.
func (h *Handler) DeleteCountry(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.db.DeleteCountry(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Country deleted"})
}

func (h *Handler) ListAmenities(c *gin.Context) {
	amenities, err := h.db.ListAmenities()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, amenities)
}

func (h *Handler) ListAmenityCategories(c *gin.Context) {
	categories, err := h.db.ListAmenityCategories()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) ListPropertyTypes(c *gin.Context) {
	types, err := h.db.ListPropertyTypes()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *Handler) ListTrustBadges(c *gin.Context) {
	badges, err := h.db.ListTrustBadges()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, badges)
}

func (h *Handler) ListRatingCategories(c *gin.Context) {
	categories, err := h.db.ListRatingCategories()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) ListLandmarkTypes(c *gin.Context) {
	types, err := h.db.ListLandmarkTypes()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *Handler) ListLandmarks(c *gin.Context) {
	landmarks, err := h.db.ListLandmarks(queryUint(c, "neighborhood"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, landmarks)
}
