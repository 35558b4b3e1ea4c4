package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"gorm.io/gorm"
)

type PropertyType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	DisplayName string `gorm:"size:100;not null" json:"display_name"`
	Category    string `gorm:"size:20;not null" json:"category"`
	Description string `json:"description,omitempty"`
	Icon        string `gorm:"size:50" json:"icon,omitempty"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
	SortOrder   uint   `gorm:"not null;default:0" json:"sort_order"`
}

func (PropertyType) TableName() string {
	return "property_types"
}

// Property status names. Statuses live in a catalog table so they carry
// display metadata, but code always resolves them by name, never by row id.
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusVerified  = "verified"
	StatusRejected  = "rejected"
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
	StatusRented    = "rented"
	StatusExpired   = "expired"
)

type PropertyStatus struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:20;not null;uniqueIndex" json:"name"`
	DisplayName string `gorm:"size:50;not null" json:"display_name"`
	Description string `json:"description,omitempty"`
	Color       string `gorm:"size:7;default:#000000" json:"color"`
	IsPublic    bool   `gorm:"not null" json:"is_public"`
}

func (PropertyStatus) TableName() string {
	return "property_status"
}

// statusTransitions is the allowed edge set of the listing state machine.
// pending cannot jump straight to active; the verification step is required.
var statusTransitions = map[string][]string{
	StatusDraft:     {StatusPending},
	StatusPending:   {StatusVerified, StatusRejected},
	StatusVerified:  {StatusActive, StatusRejected},
	StatusRejected:  {StatusPending},
	StatusActive:    {StatusRented, StatusExpired, StatusSuspended, StatusInactive},
	StatusSuspended: {StatusActive, StatusInactive},
	StatusRented:    {StatusActive, StatusInactive},
	StatusExpired:   {StatusPending, StatusInactive},
	StatusInactive:  {StatusPending},
}

// CanTransitionStatus reports whether a listing may move between the two
// named statuses.
func CanTransitionStatus(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Property struct {
	ID          string `gorm:"size:36;primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"not null" json:"description"`

	LandlordID uint  `gorm:"not null;index" json:"landlord_id"`
	Landlord   *User `gorm:"constraint:OnDelete:CASCADE" json:"landlord,omitempty"`

	PropertyTypeID uint            `gorm:"not null;index" json:"property_type_id"`
	PropertyType   *PropertyType   `json:"property_type,omitempty"`
	StatusID       uint            `gorm:"not null;index" json:"status_id"`
	Status         *PropertyStatus `gorm:"foreignKey:StatusID" json:"status,omitempty"`

	RentAmount    float64 `gorm:"not null;index" json:"rent_amount"`
	DepositAmount float64 `gorm:"not null;default:0" json:"deposit_amount"`
	Currency      string  `gorm:"size:3;not null;default:KES" json:"currency"`

	PropertySizeSqft *uint `json:"property_size_sqft,omitempty"`
	Bedrooms         uint  `gorm:"not null;default:0" json:"bedrooms"`
	Bathrooms        uint  `gorm:"not null;default:0" json:"bathrooms"`
	Floors           uint  `gorm:"not null;default:1" json:"floors"`
	ParkingSpaces    uint  `gorm:"not null;default:0" json:"parking_spaces"`

	UtilitiesIncluded bool `gorm:"not null;default:false" json:"utilities_included"`
	IsFurnished       bool `gorm:"not null;default:false" json:"is_furnished"`
	IsPetFriendly     bool `gorm:"not null;default:false" json:"is_pet_friendly"`
	HasGarden         bool `gorm:"not null;default:false" json:"has_garden"`
	HasPool           bool `gorm:"not null;default:false" json:"has_pool"`
	HasGym            bool `gorm:"not null;default:false" json:"has_gym"`

	AvailabilityDate   time.Time `gorm:"not null;index" json:"availability_date"`
	MinimumLeaseMonths uint      `gorm:"not null;default:6" json:"minimum_lease_months"`
	MaximumLeaseMonths *uint     `json:"maximum_lease_months,omitempty"`

	IsVerified        bool       `gorm:"not null;default:false;index" json:"is_verified"`
	VerificationDate  *time.Time `json:"verification_date,omitempty"`
	VerifiedByID      *uint      `json:"verified_by_id,omitempty"`
	VerificationScore *float64   `json:"verification_score,omitempty"`

	ViewCount    uint `gorm:"not null;default:0" json:"view_count"`
	InquiryCount uint `gorm:"not null;default:0" json:"inquiry_count"`
	LoveCount    uint `gorm:"not null;default:0" json:"love_count"`

	Slug            string `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	MetaDescription string `gorm:"size:160" json:"meta_description,omitempty"`

	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`

	Location    *PropertyLocation    `gorm:"constraint:OnDelete:CASCADE" json:"location,omitempty"`
	Media       []PropertyMedia      `gorm:"constraint:OnDelete:CASCADE" json:"media,omitempty"`
	Amenities   []PropertyAmenity    `gorm:"constraint:OnDelete:CASCADE" json:"amenities,omitempty"`
	TrustBadges []PropertyTrustBadge `gorm:"constraint:OnDelete:CASCADE" json:"trust_badges,omitempty"`
	Landmarks   []PropertyLandmark   `gorm:"constraint:OnDelete:CASCADE" json:"landmarks,omitempty"`
}

func (Property) TableName() string {
	return "properties"
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses runs of non-alphanumerics into single
// hyphens.
func Slugify(s string) string {
	s = slugStrip.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// BeforeCreate assigns the uuid primary key and the derived unique slug.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title) + "-" + p.ID[:8]
	}
	return nil
}

// IsAvailable is derived on read, never stored: the listing is active, its
// availability date has passed, and it has not expired.
func (p *Property) IsAvailable(now time.Time) bool {
	if p.Status == nil || p.Status.Name != StatusActive {
		return false
	}
	if p.AvailabilityDate.After(now) {
		return false
	}
	if p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
		return false
	}
	return true
}

type PropertyLocation struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PropertyID string `gorm:"size:36;not null;uniqueIndex" json:"property_id"`

	AddressLine1 string  `gorm:"size:255" json:"address_line_1,omitempty"`
	AddressLine2 *string `gorm:"size:255" json:"address_line_2,omitempty"`
	PostalCode   *string `gorm:"size:20" json:"postal_code,omitempty"`

	NeighborhoodID *uint         `gorm:"index" json:"neighborhood_id,omitempty"`
	Neighborhood   *Neighborhood `json:"neighborhood,omitempty"`

	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	GoogleMapsLink *string  `gorm:"size:500" json:"google_maps_link,omitempty"`

	// Coordinates mirrors latitude/longitude as an orb point for geometry
	// helpers. BeforeSave keeps the two representations consistent.
	Coordinates *orb.Point `gorm:"-" json:"-"`

	AddressVerified     bool `gorm:"not null;default:false" json:"address_verified"`
	CoordinatesVerified bool `gorm:"not null;default:false" json:"coordinates_verified"`

	PublicTransportDistanceM *uint `json:"public_transport_distance_m,omitempty"`
	MainRoadDistanceM        *uint `json:"main_road_distance_m,omitempty"`
}

func (PropertyLocation) TableName() string {
	return "property_locations"
}

// BeforeSave syncs the point with the denormalized latitude/longitude
// columns: the columns win when both are set, otherwise the point fills
// them in.
func (l *PropertyLocation) BeforeSave(tx *gorm.DB) error {
	if l.Latitude != nil && l.Longitude != nil {
		l.Coordinates = &orb.Point{*l.Longitude, *l.Latitude}
	} else if l.Coordinates != nil {
		lat := l.Coordinates.Y()
		lng := l.Coordinates.X()
		l.Latitude = &lat
		l.Longitude = &lng
	}
	return nil
}

// AfterFind rebuilds the in-memory point from the stored columns.
func (l *PropertyLocation) AfterFind(tx *gorm.DB) error {
	if l.Latitude != nil && l.Longitude != nil {
		l.Coordinates = &orb.Point{*l.Longitude, *l.Latitude}
	}
	return nil
}

type PropertyMedia struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PropertyID  string     `gorm:"size:36;not null;index:idx_media_property_active" json:"property_id"`
	MediaTypeID uint       `gorm:"not null;index" json:"media_type_id"`
	MediaType   *MediaType `json:"media_type,omitempty"`

	FilePath         string `gorm:"size:255;not null" json:"file_path"`
	ThumbnailPath    string `gorm:"size:255" json:"thumbnail_path,omitempty"`
	OriginalFilename string `gorm:"size:255;not null" json:"original_filename"`
	FileSizeBytes    uint   `gorm:"not null" json:"file_size_bytes"`

	Title       string `gorm:"size:200" json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	AltText     string `gorm:"size:255" json:"alt_text,omitempty"`
	SortOrder   uint   `gorm:"not null;default:0" json:"sort_order"`

	IsActive  bool `gorm:"not null;default:true;index:idx_media_property_active" json:"is_active"`
	IsPrimary bool `gorm:"not null;default:false" json:"is_primary"`

	ProcessingStatus string `gorm:"size:20;default:completed" json:"processing_status"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PropertyMedia) TableName() string {
	return "property_media"
}

type PropertyAmenity struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	PropertyID string   `gorm:"size:36;not null;uniqueIndex:idx_property_amenity" json:"property_id"`
	AmenityID  uint     `gorm:"not null;uniqueIndex:idx_property_amenity" json:"amenity_id"`
	Amenity    *Amenity `json:"amenity,omitempty"`

	IsVerified        bool       `gorm:"not null;default:false" json:"is_verified"`
	VerifiedByID      *uint      `json:"verified_by_id,omitempty"`
	VerificationDate  *time.Time `json:"verification_date,omitempty"`
	VerificationNotes string     `json:"verification_notes,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PropertyAmenity) TableName() string {
	return "property_amenities"
}

type PropertyTrustBadge struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	PropertyID string      `gorm:"size:36;not null;uniqueIndex:idx_property_badge" json:"property_id"`
	BadgeID    uint        `gorm:"not null;uniqueIndex:idx_property_badge" json:"badge_id"`
	Badge      *TrustBadge `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`

	VerifiedByID      *uint     `json:"verified_by_id,omitempty"`
	VerificationDate  time.Time `gorm:"autoCreateTime" json:"verification_date"`
	VerificationNotes string    `json:"verification_notes,omitempty"`

	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	ScoreAchieved *float64 `json:"score_achieved,omitempty"`
}

func (PropertyTrustBadge) TableName() string {
	return "property_trust_badges"
}

type PropertyLandmark struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID string    `gorm:"size:36;not null;uniqueIndex:idx_property_landmark" json:"property_id"`
	LandmarkID uint      `gorm:"not null;uniqueIndex:idx_property_landmark" json:"landmark_id"`
	Landmark   *Landmark `json:"landmark,omitempty"`

	DistanceMeters     uint  `gorm:"not null;index" json:"distance_meters"`
	WalkingTimeMinutes *uint `json:"walking_time_minutes,omitempty"`
	DrivingTimeMinutes *uint `json:"driving_time_minutes,omitempty"`

	Notes         string `json:"notes,omitempty"`
	IsHighlighted bool   `gorm:"not null;default:false;index" json:"is_highlighted"`

	DistanceVerified bool  `gorm:"not null;default:false" json:"distance_verified"`
	VerifiedByID     *uint `json:"verified_by_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PropertyLandmark) TableName() string {
	return "property_landmarks"
}
