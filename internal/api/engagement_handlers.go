package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"honestspace/server/internal/apperrors"
	"honestspace/server/internal/database"
	"honestspace/server/internal/models"
)

type LoveRequest struct {
	Notes string `json:"notes"`
}

// LoveProperty saves a listing to the caller's favorites.
func (h *Handler) LoveProperty(c *gin.Context) {
	var req LoveRequest
	// Body is optional.
	_ = c.ShouldBindJSON(&req)

	love, err := h.db.LoveProperty(currentUser(c).ID, c.Param("id"), req.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, love)
}

// UnloveProperty removes a listing from the caller's favorites.
func (h *Handler) UnloveProperty(c *gin.Context) {
	if err := h.db.UnloveProperty(currentUser(c).ID, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Removed from favorites"})
}

// ListLovedProperties returns the caller's favorites, newest first.
func (h *Handler) ListLovedProperties(c *gin.Context) {
	loves, err := h.db.ListLovedProperties(currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loves)
}

type ReviewRequest struct {
	OverallRating      uint            `json:"overall_rating" binding:"required"`
	Title              string          `json:"title" binding:"required"`
	ReviewText         string          `json:"review_text" binding:"required"`
	Pros               string          `json:"pros"`
	Cons               string          `json:"cons"`
	StayDurationMonths *uint           `json:"stay_duration_months"`
	DetailedRatings    map[string]uint `json:"detailed_ratings"`
}

// CreateReview submits a review for a listing. Detailed ratings are keyed
// by rating category id.
func (h *Handler) CreateReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "detail": err.Error()})
		return
	}

	categoryRatings := make(map[uint]uint, len(req.DetailedRatings))
	for key, value := range req.DetailedRatings {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			h.respondError(c, apperrors.NewField("detailed_ratings", "keys must be rating category ids"))
			return
		}
		categoryRatings[uint(id)] = value
	}

	review, err := h.db.CreateReview(currentUser(c).ID, c.Param("id"), database.ReviewInput{
		OverallRating:      req.OverallRating,
		Title:              req.Title,
		ReviewText:         req.ReviewText,
		Pros:               req.Pros,
		Cons:               req.Cons,
		StayDurationMonths: req.StayDurationMonths,
		CategoryRatings:    categoryRatings,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ListReviews returns the approved reviews of a listing.
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.db.ListReviews(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

type InquiryRequest struct {
	Subject                string     `json:"subject" binding:"required"`
	Message                string     `json:"message" binding:"required"`
	PreferredContactMethod string     `json:"preferred_contact_method"`
	DesiredMoveInDate      *time.Time `json:"desired_move_in_date"`
	LeaseDurationMonths    *uint      `json:"lease_duration_months"`
	BudgetMax              *float64   `json:"budget_max"`
}

// CreateInquiry opens an inquiry on a listing.
func (h *Handler) CreateInquiry(c *gin.Context) {
	var req InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "detail": err.Error()})
		return
	}

	inquiry, err := h.db.CreateInquiry(currentUser(c).ID, c.Param("id"), database.InquiryInput{
		Subject:                req.Subject,
		Message:                req.Message,
		PreferredContactMethod: req.PreferredContactMethod,
		DesiredMoveInDate:      req.DesiredMoveInDate,
		LeaseDurationMonths:    req.LeaseDurationMonths,
		BudgetMax:              req.BudgetMax,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}

// ListInquiries returns the caller's inquiries: the ones they opened as a
// tenant, or the ones against their listings as a landlord.
func (h *Handler) ListInquiries(c *gin.Context) {
	user := currentUser(c)

	var (
		inquiries []models.PropertyInquiry
		err       error
	)
	if user.IsLandlord() {
		inquiries, err = h.db.ListLandlordInquiries(user.ID)
	} else {
		inquiries, err = h.db.ListTenantInquiries(user.ID)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

// ListPropertyInquiries returns all inquiries against one listing to its
// owner.
func (h *Handler) ListPropertyInquiries(c *gin.Context) {
	property, ok := h.requireOwnership(c, c.Param("id"))
	if !ok {
		return
	}
	inquiries, err := h.db.ListPropertyInquiries(property.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

// inquiryParticipant loads an inquiry and checks the caller is its tenant,
// the listing's landlord, or an admin.
func (h *Handler) inquiryParticipant(c *gin.Context, inquiryID uint) (*models.PropertyInquiry, bool) {
	inquiry, err := h.db.GetInquiry(inquiryID)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	user := currentUser(c)
	isLandlord := inquiry.Property != nil && inquiry.Property.LandlordID == user.ID
	if inquiry.TenantID != user.ID && !isLandlord && !user.IsAdmin() {
		h.respondError(c, apperrors.New(apperrors.CodeAuthorization, "not a participant of this inquiry"))
		return nil, false
	}
	return inquiry, true
}

func pathUint(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewField(name, "must be a positive integer")
	}
	return uint(value), nil
}

type InquiryTransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// TransitionInquiry moves an inquiry along its state machine.
func (h *Handler) TransitionInquiry(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	if _, ok := h.inquiryParticipant(c, id); !ok {
		return
	}

	var req InquiryTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	inquiry, err := h.db.TransitionInquiry(id, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

type ViewingRequest struct {
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes uint      `json:"duration_minutes"`
}

// ScheduleViewing books a viewing against one of the caller's inquiries.
func (h *Handler) ScheduleViewing(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	if _, ok := h.inquiryParticipant(c, id); !ok {
		return
	}

	var req ViewingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "detail": err.Error()})
		return
	}

	viewing, err := h.db.ScheduleViewing(id, req.ScheduledAt, req.DurationMinutes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewing)
}

// viewingParticipant loads a viewing and checks the caller is involved,
// reporting whether they act as the landlord side.
func (h *Handler) viewingParticipant(c *gin.Context, viewingID uint) (*models.PropertyViewing, bool, bool) {
	viewing, err := h.db.GetViewing(viewingID)
	if err != nil {
		h.respondError(c, err)
		return nil, false, false
	}
	user := currentUser(c)
	isTenant := viewing.Inquiry != nil && viewing.Inquiry.TenantID == user.ID
	isLandlord := viewing.Inquiry != nil && viewing.Inquiry.Property != nil &&
		viewing.Inquiry.Property.LandlordID == user.ID
	if !isTenant && !isLandlord && !user.IsAdmin() {
		h.respondError(c, apperrors.New(apperrors.CodeAuthorization, "not a participant of this viewing"))
		return nil, false, false
	}
	return viewing, isLandlord || user.IsAdmin(), true
}

// ConfirmViewing records the caller's confirmation of a scheduled viewing.
func (h *Handler) ConfirmViewing(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	_, asLandlord, ok := h.viewingParticipant(c, id)
	if !ok {
		return
	}

	viewing, err := h.db.ConfirmViewing(id, asLandlord)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewing)
}

type ViewingTransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// TransitionViewing moves a viewing along its state machine.
func (h *Handler) TransitionViewing(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	if _, _, ok := h.viewingParticipant(c, id); !ok {
		return
	}

	var req ViewingTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	viewing, err := h.db.TransitionViewing(id, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewing)
}
