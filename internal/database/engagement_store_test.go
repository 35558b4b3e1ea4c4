package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honestspace/server/internal/apperrors"
	"honestspace/server/internal/models"
)

func TestLovePropertyAndCounters(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	tenant := createTestUser(t, db, models.RoleTenant)
	property := createTestListing(t, db, landlord.ID, 10000)

	love, err := db.LoveProperty(tenant.ID, property.ID, "close to work")
	require.NoError(t, err)
	assert.Equal(t, "close to work", love.Notes)

	loaded, err := db.GetProperty(property.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), loaded.LoveCount)

	// Loving the same listing twice is a uniqueness violation
	_, err = db.LoveProperty(tenant.ID, property.ID, "")
	assert.True(t, apperrors.Is(err, apperrors.CodeUniqueness))

	// The failed love must not bump the counter
	loaded, err = db.GetProperty(property.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), loaded.LoveCount)
}

func TestUnloveProperty(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	tenant := createTestUser(t, db, models.RoleTenant)
	property := createTestListing(t, db, landlord.ID, 10000)

	_, err := db.LoveProperty(tenant.ID, property.ID, "")
	require.NoError(t, err)
	require.NoError(t, db.UnloveProperty(tenant.ID, property.ID))

	loaded, err := db.GetProperty(property.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(0), loaded.LoveCount)

	err = db.UnloveProperty(tenant.ID, property.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestListLovedProperties(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	tenant := createTestUser(t, db, models.RoleTenant)

	first := createTestListing(t, db, landlord.ID, 10000)
	second := createTestListing(t, db, landlord.ID, 12000)
	_, err := db.LoveProperty(tenant.ID, first.ID, "")
	require.NoError(t, err)
	_, err = db.LoveProperty(tenant.ID, second.ID, "")
	require.NoError(t, err)

	loves, err := db.ListLovedProperties(tenant.ID)
	require.NoError(t, err)
	require.Len(t, loves, 2)
	assert.NotNil(t, loves[0].Property)

	loved, err := db.IsLoved(tenant.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, loved)
}

func TestCreateReview(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	tenant := createTestUser(t, db, models.RoleTenant)
	property := createTestListing(t, db, landlord.ID, 10000)

	categories, err := db.ListRatingCategories()
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	review, err := db.CreateReview(tenant.ID, property.ID, ReviewInput{
		OverallRating: 4,
		Title:         "Decent place",
		ReviewText:    "Water supply was reliable.",
		CategoryRatings: map[uint]uint{
			categories[0].ID: 5,
			categories[1].ID: 3,
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, review.ID)

	reviews, err := db.ListReviews(property.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Len(t, reviews[0].DetailedRatings, 2)

	// One review per tenant per listing
	_, err = db.CreateReview(tenant.ID, property.ID, ReviewInput{
		OverallRating: 2, Title: "Changed my mind", ReviewText: "No.",
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeUniqueness))
}

func TestCreateReviewValidation(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	tenant := createTestUser(t, db, models.RoleTenant)
	property := createTestListing(t, db, landlord.ID, 10000)

	_, err := db.CreateReview(tenant.ID, property.ID, ReviewInput{
		OverallRating: 6, Title: "t", ReviewText: "r",
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	categories, err := db.ListRatingCategories()
	require.NoError(t, err)
	_, err = db.CreateReview(tenant.ID, property.ID, ReviewInput{
		OverallRating: 3, Title: "t", ReviewText: "r",
		CategoryRatings: map[uint]uint{categories[0].ID: 0},
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	// A failed submission leaves no partial review behind
	reviews, err := db.ListReviews(property.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestCreateInquiryBumpsCounters(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	tenant := createTestUser(t, db, models.RoleTenant)
	property := createTestListing(t, db, landlord.ID, 10000)

	inquiry, err := db.CreateInquiry(tenant.ID, property.ID, InquiryInput{
		Subject: "Is it available?",
		Message: "I would like to move in next month.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusNew, inquiry.Status)
	assert.Equal(t, "email", inquiry.PreferredContactMethod)

	loaded, err := db.GetProperty(property.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), loaded.InquiryCount)

	rows, err := db.ListAnalytics(property.ID, time.Time{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(1), rows[0].Inquiries)
}

func TestInquiryLists(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	tenant := createTestUser(t, db, models.RoleTenant)
	other := createTestUser(t, db, models.RoleTenant)
	property := createTestListing(t, db, landlord.ID, 10000)

	_, err := db.CreateInquiry(tenant.ID, property.ID, InquiryInput{Subject: "s", Message: "m"})
	require.NoError(t, err)
	_, err = db.CreateInquiry(other.ID, property.ID, InquiryInput{Subject: "s2", Message: "m2"})
	require.NoError(t, err)

	mine, err := db.ListTenantInquiries(tenant.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := db.ListLandlordInquiries(landlord.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 2)

	forListing, err := db.ListPropertyInquiries(property.ID)
	require.NoError(t, err)
	assert.Len(t, forListing, 2)
}

func TestTransitionInquiry(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	tenant := createTestUser(t, db, models.RoleTenant)
	property := createTestListing(t, db, landlord.ID, 10000)

	inquiry, err := db.CreateInquiry(tenant.ID, property.ID, InquiryInput{Subject: "s", Message: "m"})
	require.NoError(t, err)

	// new cannot jump to approved
	_, err = db.TransitionInquiry(inquiry.ID, models.InquiryStatusApproved)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	updated, err := db.TransitionInquiry(inquiry.ID, models.InquiryStatusResponded)
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusResponded, updated.Status)
	assert.True(t, updated.LandlordResponded)
	assert.NotNil(t, updated.RespondedAt)
	require.NotNil(t, updated.ResponseTimeHours)
}

func TestScheduleAndConfirmViewing(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	tenant := createTestUser(t, db, models.RoleTenant)
	property := createTestListing(t, db, landlord.ID, 10000)

	inquiry, err := db.CreateInquiry(tenant.ID, property.ID, InquiryInput{Subject: "s", Message: "m"})
	require.NoError(t, err)
	_, err = db.TransitionInquiry(inquiry.ID, models.InquiryStatusResponded)
	require.NoError(t, err)

	_, err = db.ScheduleViewing(inquiry.ID, time.Now().Add(-time.Hour), 30)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	viewing, err := db.ScheduleViewing(inquiry.ID, time.Now().Add(48*time.Hour), 0)
	require.NoError(t, err)
	assert.Equal(t, models.ViewingStatusScheduled, viewing.Status)
	assert.Equal(t, uint(30), viewing.DurationMinutes)

	// The parent inquiry advanced to scheduled
	loaded, err := db.GetInquiry(inquiry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusScheduled, loaded.Status)

	// One-sided confirmation does not advance the viewing
	viewing, err = db.ConfirmViewing(viewing.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.ViewingStatusScheduled, viewing.Status)
	assert.True(t, viewing.TenantConfirmed)

	viewing, err = db.ConfirmViewing(viewing.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.ViewingStatusConfirmed, viewing.Status)
}

func TestTransitionViewingCompletesInquiry(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestUser(t, db, models.RoleLandlord)
	tenant := createTestUser(t, db, models.RoleTenant)
	property := createTestListing(t, db, landlord.ID, 10000)

	inquiry, err := db.CreateInquiry(tenant.ID, property.ID, InquiryInput{Subject: "s", Message: "m"})
	require.NoError(t, err)
	_, err = db.TransitionInquiry(inquiry.ID, models.InquiryStatusResponded)
	require.NoError(t, err)

	viewing, err := db.ScheduleViewing(inquiry.ID, time.Now().Add(time.Hour), 45)
	require.NoError(t, err)

	// scheduled cannot jump to completed
	_, err = db.TransitionViewing(viewing.ID, models.ViewingStatusCompleted)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	_, err = db.ConfirmViewing(viewing.ID, false)
	require.NoError(t, err)
	_, err = db.ConfirmViewing(viewing.ID, true)
	require.NoError(t, err)

	done, err := db.TransitionViewing(viewing.ID, models.ViewingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.ViewingStatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)

	loaded, err := db.GetInquiry(inquiry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusViewed, loaded.Status)
}
