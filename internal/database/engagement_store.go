package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"honestspace/server/internal/apperrors"
	"honestspace/server/internal/models"
)

// LoveProperty saves a listing to a user's favorites and bumps the love
// counters. A duplicate love surfaces as a uniqueness violation.
func (d *Database) LoveProperty(userID uint, propertyID, notes string) (*models.LovedProperty, error) {
	love := &models.LovedProperty{
		UserID:     userID,
		PropertyID: propertyID,
		Notes:      notes,
	}
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(love).Error; err != nil {
			return err
		}
		err := tx.Model(&models.Property{}).
			Where("id = ?", propertyID).
			UpdateColumn("love_count", gorm.Expr("love_count + 1")).Error
		if err != nil {
			return err
		}
		return bumpAnalytics(tx, propertyID, "loves")
	})
	if err != nil {
		return nil, translateError(err)
	}
	return love, nil
}

// UnloveProperty removes a favorite and decrements the listing counter.
func (d *Database) UnloveProperty(userID uint, propertyID string) error {
	err := d.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND property_id = ?", userID, propertyID).
			Delete(&models.LovedProperty{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.New(apperrors.CodeNotFound, "listing is not in favorites")
		}
		return tx.Model(&models.Property{}).
			Where("id = ? AND love_count > 0", propertyID).
			UpdateColumn("love_count", gorm.Expr("love_count - 1")).Error
	})
	return translateError(err)
}

// ListLovedProperties returns a user's favorites, most recently loved
// first, and stamps last_viewed on the returned rows.
func (d *Database) ListLovedProperties(userID uint) ([]models.LovedProperty, error) {
	var loves []models.LovedProperty
	err := d.db.Preload("Property").
		Preload("Property.Status").
		Preload("Property.PropertyType").
		Preload("Property.Location").
		Preload("Property.Media", "is_active = ? AND is_primary = ?", true, true).
		Where("user_id = ?", userID).
		Order("loved_at DESC").
		Find(&loves).Error
	if err != nil {
		return nil, translateError(err)
	}

	err = d.db.Model(&models.LovedProperty{}).
		Where("user_id = ?", userID).
		UpdateColumn("last_viewed", time.Now()).Error
	if err != nil {
		d.logger.WithError(err).Warn("Failed to stamp favorites last_viewed")
	}
	return loves, nil
}

// IsLoved reports whether a user has saved the listing.
func (d *Database) IsLoved(userID uint, propertyID string) (bool, error) {
	var count int64
	err := d.db.Model(&models.LovedProperty{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	return count > 0, translateError(err)
}

// ReviewInput is the payload for submitting a review with per-category
// ratings.
type ReviewInput struct {
	OverallRating      uint
	Title              string
	ReviewText         string
	Pros               string
	Cons               string
	StayDurationMonths *uint

	// CategoryRatings maps rating category id to a 1..5 value.
	CategoryRatings map[uint]uint
}

// CreateReview inserts a review and its category ratings in one
// transaction. Ratings outside 1..5 reject the whole submission; a second
// review by the same tenant for the same listing is a uniqueness violation.
func (d *Database) CreateReview(tenantID uint, propertyID string, in ReviewInput) (*models.Review, error) {
	if in.OverallRating < 1 || in.OverallRating > 5 {
		return nil, apperrors.NewField("overall_rating", "rating must be between 1 and 5")
	}
	if in.Title == "" {
		return nil, apperrors.NewField("title", "title is required")
	}
	if in.ReviewText == "" {
		return nil, apperrors.NewField("review_text", "review text is required")
	}
	for _, value := range in.CategoryRatings {
		if value < 1 || value > 5 {
			return nil, apperrors.NewField("detailed_ratings", "rating must be between 1 and 5")
		}
	}

	review := &models.Review{
		PropertyID:         propertyID,
		TenantID:           tenantID,
		OverallRating:      in.OverallRating,
		Title:              in.Title,
		ReviewText:         in.ReviewText,
		Pros:               in.Pros,
		Cons:               in.Cons,
		StayDurationMonths: in.StayDurationMonths,
	}
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		for categoryID, value := range in.CategoryRatings {
			var category models.RatingCategory
			if err := tx.First(&category, categoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewField("detailed_ratings", "unknown rating category")
				}
				return err
			}
			rating := models.ReviewRating{
				ReviewID:    review.ID,
				CategoryID:  categoryID,
				RatingValue: value,
			}
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}
	return review, nil
}

// ListReviews returns the approved reviews of a listing, newest first.
func (d *Database) ListReviews(propertyID string) ([]models.Review, error) {
	var reviews []models.Review
	err := d.db.Preload("Tenant").
		Preload("DetailedRatings.Category").
		Preload("Media", "is_approved = ?", true).
		Where("property_id = ? AND is_approved = ?", propertyID, true).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, translateError(err)
}

// InquiryInput is the payload for contacting a landlord about a listing.
type InquiryInput struct {
	Subject                string
	Message                string
	PreferredContactMethod string
	DesiredMoveInDate      *time.Time
	LeaseDurationMonths    *uint
	BudgetMax              *float64
}

// CreateInquiry opens an inquiry on a listing and bumps the inquiry
// counters in the same transaction.
func (d *Database) CreateInquiry(tenantID uint, propertyID string, in InquiryInput) (*models.PropertyInquiry, error) {
	if in.Subject == "" {
		return nil, apperrors.NewField("subject", "subject is required")
	}
	if in.Message == "" {
		return nil, apperrors.NewField("message", "message is required")
	}

	contact := in.PreferredContactMethod
	if contact == "" {
		contact = "email"
	}
	inquiry := &models.PropertyInquiry{
		PropertyID:             propertyID,
		TenantID:               tenantID,
		Subject:                in.Subject,
		Message:                in.Message,
		PreferredContactMethod: contact,
		DesiredMoveInDate:      in.DesiredMoveInDate,
		LeaseDurationMonths:    in.LeaseDurationMonths,
		BudgetMax:              in.BudgetMax,
		Status:                 models.InquiryStatusNew,
	}
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inquiry).Error; err != nil {
			return err
		}
		err := tx.Model(&models.Property{}).
			Where("id = ?", propertyID).
			UpdateColumn("inquiry_count", gorm.Expr("inquiry_count + 1")).Error
		if err != nil {
			return err
		}
		return bumpAnalytics(tx, propertyID, "inquiries")
	})
	if err != nil {
		return nil, translateError(err)
	}
	return inquiry, nil
}

// ListTenantInquiries returns the inquiries a tenant has opened.
func (d *Database) ListTenantInquiries(tenantID uint) ([]models.PropertyInquiry, error) {
	var inquiries []models.PropertyInquiry
	err := d.db.Preload("Property").
		Preload("Property.Status").
		Preload("Viewings").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&inquiries).Error
	return inquiries, translateError(err)
}

// ListLandlordInquiries returns inquiries across all of a landlord's
// listings.
func (d *Database) ListLandlordInquiries(landlordID uint) ([]models.PropertyInquiry, error) {
	var inquiries []models.PropertyInquiry
	err := d.db.Preload("Property").
		Preload("Tenant").
		Preload("Viewings").
		Joins("JOIN properties ON properties.id = property_inquiries.property_id").
		Where("properties.landlord_id = ?", landlordID).
		Order("property_inquiries.created_at DESC").
		Find(&inquiries).Error
	return inquiries, translateError(err)
}

func (d *Database) ListPropertyInquiries(propertyID string) ([]models.PropertyInquiry, error) {
	var inquiries []models.PropertyInquiry
	err := d.db.Preload("Tenant").
		Preload("Viewings").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&inquiries).Error
	return inquiries, translateError(err)
}

func (d *Database) GetInquiry(id uint) (*models.PropertyInquiry, error) {
	var inquiry models.PropertyInquiry
	err := d.db.Preload("Property").Preload("Tenant").Preload("Viewings").
		First(&inquiry, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &inquiry, nil
}

// TransitionInquiry moves an inquiry along its state machine. Arriving at
// responded stamps the landlord response fields.
func (d *Database) TransitionInquiry(inquiryID uint, toStatus string) (*models.PropertyInquiry, error) {
	var inquiry models.PropertyInquiry
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&inquiry, inquiryID).Error; err != nil {
			return err
		}
		if !models.CanTransitionInquiry(inquiry.Status, toStatus) {
			return apperrors.Newf(apperrors.CodeValidation,
				"cannot transition inquiry from %s to %s", inquiry.Status, toStatus)
		}

		updates := map[string]interface{}{"status": toStatus}
		if toStatus == models.InquiryStatusResponded && !inquiry.LandlordResponded {
			now := time.Now()
			hours := uint(now.Sub(inquiry.CreatedAt).Hours())
			updates["landlord_responded"] = true
			updates["responded_at"] = now
			updates["response_time_hours"] = hours
		}
		if err := tx.Model(&inquiry).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&inquiry, inquiryID).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &inquiry, nil
}

// ScheduleViewing books a viewing against an inquiry and advances the
// inquiry to scheduled when its state machine allows it.
func (d *Database) ScheduleViewing(inquiryID uint, scheduledAt time.Time, durationMinutes uint) (*models.PropertyViewing, error) {
	if scheduledAt.Before(time.Now()) {
		return nil, apperrors.NewField("scheduled_at", "viewing time must be in the future")
	}
	if durationMinutes == 0 {
		durationMinutes = 30
	}

	viewing := &models.PropertyViewing{
		InquiryID:       inquiryID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: durationMinutes,
		Status:          models.ViewingStatusScheduled,
	}
	err := d.db.Transaction(func(tx *gorm.DB) error {
		var inquiry models.PropertyInquiry
		if err := tx.First(&inquiry, inquiryID).Error; err != nil {
			return err
		}
		if err := tx.Create(viewing).Error; err != nil {
			return err
		}
		if models.CanTransitionInquiry(inquiry.Status, models.InquiryStatusScheduled) {
			return tx.Model(&inquiry).Update("status", models.InquiryStatusScheduled).Error
		}
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}
	return viewing, nil
}

func (d *Database) GetViewing(id uint) (*models.PropertyViewing, error) {
	var viewing models.PropertyViewing
	err := d.db.Preload("Inquiry").Preload("Inquiry.Property").First(&viewing, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &viewing, nil
}

// ConfirmViewing records one party's confirmation. When both parties have
// confirmed, the viewing advances to confirmed.
func (d *Database) ConfirmViewing(viewingID uint, byLandlord bool) (*models.PropertyViewing, error) {
	var viewing models.PropertyViewing
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&viewing, viewingID).Error; err != nil {
			return err
		}
		if viewing.Status != models.ViewingStatusScheduled {
			return apperrors.Newf(apperrors.CodeValidation,
				"cannot confirm a viewing in %s status", viewing.Status)
		}

		updates := map[string]interface{}{}
		if byLandlord {
			updates["landlord_confirmed"] = true
			viewing.LandlordConfirmed = true
		} else {
			updates["tenant_confirmed"] = true
			viewing.TenantConfirmed = true
		}
		if viewing.TenantConfirmed && viewing.LandlordConfirmed {
			updates["status"] = models.ViewingStatusConfirmed
		}
		if err := tx.Model(&viewing).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&viewing, viewingID).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &viewing, nil
}

// TransitionViewing moves a viewing along its state machine. Completing a
// viewing stamps completed_at and advances the parent inquiry to viewed
// when allowed.
func (d *Database) TransitionViewing(viewingID uint, toStatus string) (*models.PropertyViewing, error) {
	var viewing models.PropertyViewing
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&viewing, viewingID).Error; err != nil {
			return err
		}
		if !models.CanTransitionViewing(viewing.Status, toStatus) {
			return apperrors.Newf(apperrors.CodeValidation,
				"cannot transition viewing from %s to %s", viewing.Status, toStatus)
		}

		updates := map[string]interface{}{"status": toStatus}
		if toStatus == models.ViewingStatusCompleted {
			updates["completed_at"] = time.Now()
		}
		if err := tx.Model(&viewing).Updates(updates).Error; err != nil {
			return err
		}

		if toStatus == models.ViewingStatusCompleted {
			var inquiry models.PropertyInquiry
			if err := tx.First(&inquiry, viewing.InquiryID).Error; err != nil {
				return err
			}
			if models.CanTransitionInquiry(inquiry.Status, models.InquiryStatusViewed) {
				if err := tx.Model(&inquiry).Update("status", models.InquiryStatusViewed).Error; err != nil {
					return err
				}
			}
		}
		return tx.First(&viewing, viewingID).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &viewing, nil
}
