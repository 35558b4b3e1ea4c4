package models

import "time"

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID string    `gorm:"size:36;not null;uniqueIndex:idx_review_property_tenant;index:idx_review_property_approved" json:"property_id"`
	Property   *Property `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	TenantID   uint      `gorm:"not null;uniqueIndex:idx_review_property_tenant" json:"tenant_id"`
	Tenant     *User     `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"tenant,omitempty"`

	OverallRating uint `gorm:"not null;index" json:"overall_rating"`

	Title      string `gorm:"size:200;not null" json:"title"`
	ReviewText string `gorm:"not null" json:"review_text"`
	Pros       string `json:"pros,omitempty"`
	Cons       string `json:"cons,omitempty"`

	IsVerified         bool   `gorm:"not null;default:false;index" json:"is_verified"`
	VerificationMethod string `gorm:"size:50" json:"verification_method,omitempty"`

	HelpfulCount   uint `gorm:"not null;default:0" json:"helpful_count"`
	UnhelpfulCount uint `gorm:"not null;default:0" json:"unhelpful_count"`
	ReportedCount  uint `gorm:"not null;default:0" json:"reported_count"`

	IsApproved bool `gorm:"not null;default:true;index:idx_review_property_approved" json:"is_approved"`
	IsFeatured bool `gorm:"not null;default:false" json:"is_featured"`

	StayDurationMonths *uint `json:"stay_duration_months,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	DetailedRatings []ReviewRating `gorm:"constraint:OnDelete:CASCADE" json:"detailed_ratings,omitempty"`
	Media           []ReviewMedia  `gorm:"constraint:OnDelete:CASCADE" json:"media,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

type ReviewRating struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ReviewID    uint            `gorm:"not null;uniqueIndex:idx_review_rating_category" json:"review_id"`
	CategoryID  uint            `gorm:"not null;uniqueIndex:idx_review_rating_category" json:"category_id"`
	Category    *RatingCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	RatingValue uint            `gorm:"not null" json:"rating_value"`
	Notes       string          `json:"notes,omitempty"`
}

func (ReviewRating) TableName() string {
	return "review_ratings"
}

type ReviewMedia struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ReviewID uint   `gorm:"not null;index" json:"review_id"`
	FilePath string `gorm:"size:255;not null" json:"file_path"`

	// "image" or "video"
	MediaKind string `gorm:"size:10;not null" json:"media_kind"`

	Caption   string `gorm:"size:255" json:"caption,omitempty"`
	SortOrder uint   `gorm:"not null;default:0" json:"sort_order"`

	IsApproved bool      `gorm:"not null;default:true" json:"is_approved"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (ReviewMedia) TableName() string {
	return "review_media"
}

type LovedProperty struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_loved_user_property;index:idx_loved_user_time" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PropertyID string    `gorm:"size:36;not null;uniqueIndex:idx_loved_user_property;index" json:"property_id"`
	Property   *Property `gorm:"constraint:OnDelete:CASCADE" json:"property,omitempty"`

	Notes string `json:"notes,omitempty"`

	LovedAt    time.Time `gorm:"autoCreateTime;index:idx_loved_user_time" json:"loved_at"`
	LastViewed time.Time `gorm:"autoUpdateTime" json:"last_viewed"`
}

func (LovedProperty) TableName() string {
	return "loved_properties"
}

// Inquiry status names.
const (
	InquiryStatusNew          = "new"
	InquiryStatusResponded    = "responded"
	InquiryStatusScheduled    = "scheduled"
	InquiryStatusViewed       = "viewed"
	InquiryStatusApplication  = "application_submitted"
	InquiryStatusApproved     = "approved"
	InquiryStatusRejected     = "rejected"
	InquiryStatusClosed       = "closed"
)

var inquiryTransitions = map[string][]string{
	InquiryStatusNew:         {InquiryStatusResponded, InquiryStatusClosed},
	InquiryStatusResponded:   {InquiryStatusScheduled, InquiryStatusClosed},
	InquiryStatusScheduled:   {InquiryStatusViewed, InquiryStatusClosed},
	InquiryStatusViewed:      {InquiryStatusApplication, InquiryStatusClosed},
	InquiryStatusApplication: {InquiryStatusApproved, InquiryStatusRejected},
	InquiryStatusApproved:    {InquiryStatusClosed},
	InquiryStatusRejected:    {InquiryStatusClosed},
}

// CanTransitionInquiry reports whether an inquiry may move between the two
// named statuses.
func CanTransitionInquiry(from, to string) bool {
	for _, next := range inquiryTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type PropertyInquiry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID string    `gorm:"size:36;not null;index:idx_inquiry_property_status" json:"property_id"`
	Property   *Property `gorm:"constraint:OnDelete:CASCADE" json:"property,omitempty"`
	TenantID   uint      `gorm:"not null;index" json:"tenant_id"`
	Tenant     *User     `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"tenant,omitempty"`

	Subject string `gorm:"size:200;not null" json:"subject"`
	Message string `gorm:"not null" json:"message"`

	PreferredContactMethod string `gorm:"size:20;default:email" json:"preferred_contact_method"`

	DesiredMoveInDate   *time.Time `json:"desired_move_in_date,omitempty"`
	LeaseDurationMonths *uint      `json:"lease_duration_months,omitempty"`
	BudgetMax           *float64   `json:"budget_max,omitempty"`

	Status string `gorm:"size:25;not null;default:new;index:idx_inquiry_property_status" json:"status"`

	LandlordResponded bool  `gorm:"not null;default:false" json:"landlord_responded"`
	ResponseTimeHours *uint `json:"response_time_hours,omitempty"`

	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`

	Viewings []PropertyViewing `gorm:"foreignKey:InquiryID;constraint:OnDelete:CASCADE" json:"viewings,omitempty"`
}

func (PropertyInquiry) TableName() string {
	return "property_inquiries"
}

// Viewing status names.
const (
	ViewingStatusScheduled = "scheduled"
	ViewingStatusConfirmed = "confirmed"
	ViewingStatusCompleted = "completed"
	ViewingStatusCancelled = "cancelled"
	ViewingStatusNoShow    = "no_show"
)

var viewingTransitions = map[string][]string{
	ViewingStatusScheduled: {ViewingStatusConfirmed, ViewingStatusCancelled, ViewingStatusNoShow},
	ViewingStatusConfirmed: {ViewingStatusCompleted, ViewingStatusCancelled, ViewingStatusNoShow},
}

// CanTransitionViewing reports whether a viewing may move between the two
// named statuses.
func CanTransitionViewing(from, to string) bool {
	for _, next := range viewingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type PropertyViewing struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	InquiryID uint             `gorm:"not null;index" json:"inquiry_id"`
	Inquiry   *PropertyInquiry `gorm:"foreignKey:InquiryID" json:"-"`

	ScheduledAt     time.Time `gorm:"not null;index" json:"scheduled_at"`
	DurationMinutes uint      `gorm:"not null;default:30" json:"duration_minutes"`

	TenantConfirmed   bool `gorm:"not null;default:false" json:"tenant_confirmed"`
	LandlordConfirmed bool `gorm:"not null;default:false" json:"landlord_confirmed"`

	Status string `gorm:"size:25;not null;default:scheduled;index" json:"status"`

	LandlordNotes string `json:"landlord_notes,omitempty"`
	TenantNotes   string `json:"tenant_notes,omitempty"`

	TenantRating   *uint `json:"tenant_rating,omitempty"`
	LandlordRating *uint `json:"landlord_rating,omitempty"`

	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (PropertyViewing) TableName() string {
	return "property_viewings"
}
