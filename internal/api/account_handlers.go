package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ProfileUpdateRequest struct {
	FirstName    *string    `json:"first_name"`
	LastName     *string    `json:"last_name"`
	Phone        *string    `json:"phone"`
	ProfileImage *string    `json:"profile_image"`
	Bio          *string    `json:"bio"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	Address      *string    `json:"address"`
	City         *string    `json:"city"`
	Country      *string    `json:"country"`
}

// GetProfile returns the authenticated account with its profile.
func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// UpdateProfile applies partial edits to the authenticated account. Email,
// username and role are immutable through this endpoint.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user := currentUser(c)
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = req.DateOfBirth
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.Country != nil {
		user.Country = *req.Country
	}

	if err := h.db.UpdateUser(user); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
