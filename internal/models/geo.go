package models

import "time"

type Country struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Code         string `gorm:"size:3;not null;uniqueIndex" json:"code"`
	CurrencyCode string `gorm:"size:3;not null" json:"currency_code"`
	PhonePrefix  string `gorm:"size:10" json:"phone_prefix"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`

	Counties []County `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Country) TableName() string {
	return "countries"
}

type County struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	Name      string   `gorm:"size:100;not null;uniqueIndex:idx_county_name_country" json:"name"`
	Code      string   `gorm:"size:10" json:"code"`
	CountryID uint     `gorm:"not null;uniqueIndex:idx_county_name_country" json:"country_id"`
	Country   *Country `json:"country,omitempty"`

	Cities []City `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (County) TableName() string {
	return "counties"
}

type City struct {
	ID               uint     `gorm:"primaryKey" json:"id"`
	Name             string   `gorm:"size:100;not null;uniqueIndex:idx_city_name_county" json:"name"`
	CountyID         uint     `gorm:"not null;uniqueIndex:idx_city_name_county" json:"county_id"`
	County           *County  `json:"county,omitempty"`
	PostalCodePrefix string   `gorm:"size:10" json:"postal_code_prefix,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`

	Neighborhoods []Neighborhood `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (City) TableName() string {
	return "cities"
}

// RentBand buckets a neighborhood's typical monthly rent.
type RentBand string

const (
	RentBandLow     RentBand = "low"
	RentBandMedium  RentBand = "medium"
	RentBandHigh    RentBand = "high"
	RentBandPremium RentBand = "premium"
)

type Neighborhood struct {
	ID               uint     `gorm:"primaryKey" json:"id"`
	Name             string   `gorm:"size:100;not null;uniqueIndex:idx_neighborhood_name_city" json:"name"`
	CityID           uint     `gorm:"not null;uniqueIndex:idx_neighborhood_name_city" json:"city_id"`
	City             *City    `json:"city,omitempty"`
	AverageRentRange RentBand `gorm:"size:20" json:"average_rent_range,omitempty"`
	SafetyRating     *float64 `json:"safety_rating,omitempty"`
	Description      string   `json:"description,omitempty"`

	Landmarks []Landmark `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Neighborhood) TableName() string {
	return "neighborhoods"
}

type LandmarkType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Icon        string `gorm:"size:50" json:"icon,omitempty"`
	Color       string `gorm:"size:7;default:#000000" json:"color"`
	Description string `json:"description,omitempty"`
}

func (LandmarkType) TableName() string {
	return "landmark_types"
}

type Landmark struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Name           string        `gorm:"size:200;not null" json:"name"`
	LandmarkTypeID uint          `gorm:"not null;index" json:"landmark_type_id"`
	LandmarkType   *LandmarkType `json:"landmark_type,omitempty"`
	NeighborhoodID uint          `gorm:"not null;index" json:"neighborhood_id"`
	Neighborhood   *Neighborhood `gorm:"constraint:OnDelete:CASCADE" json:"neighborhood,omitempty"`

	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
	Address   string  `json:"address,omitempty"`

	Description string   `json:"description,omitempty"`
	Phone       string   `gorm:"size:20" json:"phone,omitempty"`
	Website     string   `gorm:"size:200" json:"website,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`

	IsActive   bool `gorm:"not null;default:true;index" json:"is_active"`
	IsVerified bool `gorm:"not null;default:false" json:"is_verified"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Landmark) TableName() string {
	return "landmarks"
}
