package models

import "time"

// PropertyAnalytics holds one row of daily counters per property. Rows are
// created or incremented, never deleted.
type PropertyAnalytics struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID string    `gorm:"size:36;not null;uniqueIndex:idx_analytics_property_date" json:"property_id"`
	Property   *Property `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Date time.Time `gorm:"type:date;not null;uniqueIndex:idx_analytics_property_date;index" json:"date"`

	Views       uint `gorm:"not null;default:0" json:"views"`
	UniqueViews uint `gorm:"not null;default:0" json:"unique_views"`
	Inquiries   uint `gorm:"not null;default:0" json:"inquiries"`
	Loves       uint `gorm:"not null;default:0" json:"loves"`
	Shares      uint `gorm:"not null;default:0" json:"shares"`

	ViewToInquiryRate    float64 `gorm:"not null;default:0" json:"view_to_inquiry_rate"`
	InquiryToViewingRate float64 `gorm:"not null;default:0" json:"inquiry_to_viewing_rate"`

	SearchAppearances uint    `gorm:"not null;default:0" json:"search_appearances"`
	SearchClicks      uint    `gorm:"not null;default:0" json:"search_clicks"`
	SearchCTR         float64 `gorm:"not null;default:0" json:"search_ctr"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PropertyAnalytics) TableName() string {
	return "property_analytics"
}
