package models

import "time"

type AmenityCategory struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	DisplayName string `gorm:"size:100;not null" json:"display_name"`
	Description string `json:"description,omitempty"`
	Icon        string `gorm:"size:50" json:"icon,omitempty"`
	SortOrder   uint   `gorm:"not null;default:0" json:"sort_order"`

	Amenities []Amenity `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AmenityCategory) TableName() string {
	return "amenity_categories"
}

type Amenity struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"size:100;not null;uniqueIndex:idx_amenity_name_category" json:"name"`
	CategoryID  uint             `gorm:"not null;uniqueIndex:idx_amenity_name_category" json:"category_id"`
	Category    *AmenityCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Icon        string           `gorm:"size:50" json:"icon,omitempty"`
	Description string           `json:"description,omitempty"`

	IsVerifiable         bool   `gorm:"not null;default:true" json:"is_verifiable"`
	VerificationCriteria string `json:"verification_criteria,omitempty"`

	IsActive  bool `gorm:"not null;default:true" json:"is_active"`
	SortOrder uint `gorm:"not null;default:0" json:"sort_order"`
}

func (Amenity) TableName() string {
	return "amenities"
}

type BadgeCategory struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	DisplayName string `gorm:"size:100;not null" json:"display_name"`
	Description string `json:"description,omitempty"`
	ColorScheme string `gorm:"size:20;default:blue" json:"color_scheme"`
	SortOrder   uint   `gorm:"not null;default:0" json:"sort_order"`

	Badges []TrustBadge `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BadgeCategory) TableName() string {
	return "badge_categories"
}

type TrustBadge struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	Name                string         `gorm:"size:100;not null" json:"name"`
	CategoryID          uint           `gorm:"not null;index" json:"category_id"`
	Category            *BadgeCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CriteriaDescription string         `json:"criteria_description,omitempty"`
	Icon                string         `gorm:"size:50" json:"icon,omitempty"`

	VerificationRequired bool `gorm:"not null;default:true" json:"verification_required"`
	AutoAssignable       bool `gorm:"not null;default:false" json:"auto_assignable"`
	PointThreshold       uint `gorm:"not null;default:0" json:"point_threshold"`

	IsActive  bool `gorm:"not null;default:true" json:"is_active"`
	SortOrder uint `gorm:"not null;default:0" json:"sort_order"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TrustBadge) TableName() string {
	return "trust_badges"
}

type MediaType struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	Name               string `gorm:"size:20;not null;uniqueIndex" json:"name"`
	MaxFileSizeMB      uint   `gorm:"not null" json:"max_file_size_mb"`
	AllowedFormats     string `gorm:"size:255" json:"allowed_formats"`
	ProcessingRequired bool   `gorm:"not null;default:false" json:"processing_required"`
}

func (MediaType) TableName() string {
	return "media_types"
}

type RatingCategory struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:100;not null;uniqueIndex" json:"name"`
	DisplayName  string  `gorm:"size:100;not null" json:"display_name"`
	Description  string  `json:"description,omitempty"`
	WeightFactor float64 `gorm:"not null;default:1.0" json:"weight_factor"`
	IsActive     bool    `gorm:"not null;default:true" json:"is_active"`
	SortOrder    uint    `gorm:"not null;default:0" json:"sort_order"`
}

func (RatingCategory) TableName() string {
	return "rating_categories"
}
