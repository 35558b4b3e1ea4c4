package models

import "time"

// Role is the closed set of account roles. It is stored as a plain string
// column rather than a lookup-table foreign key so authorization checks
// never depend on mutable catalog contents.
type Role string

const (
	RoleTenant   Role = "tenant"
	RoleLandlord Role = "landlord"
	RoleScout    Role = "scout"
	RoleAdmin    Role = "admin"
)

// ValidRole reports whether name is one of the known roles.
func ValidRole(name string) bool {
	switch Role(name) {
	case RoleTenant, RoleLandlord, RoleScout, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Email     string  `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Username  string  `gorm:"size:150;not null;uniqueIndex" json:"username"`
	FirstName string  `gorm:"size:30;not null" json:"first_name"`
	LastName  string  `gorm:"size:30;not null" json:"last_name"`
	Phone     *string `gorm:"size:20;uniqueIndex" json:"phone,omitempty"`
	GoogleID  *string `gorm:"size:100;uniqueIndex" json:"-"`

	PasswordHash string `gorm:"size:128;not null" json:"-"`

	Role          Role `gorm:"size:20;not null;index" json:"role"`
	IsVerified    bool `gorm:"not null;default:false" json:"is_verified"`
	EmailVerified bool `gorm:"not null;default:false" json:"email_verified"`
	PhoneVerified bool `gorm:"not null;default:false" json:"phone_verified"`

	ProfileImage string     `gorm:"size:255" json:"profile_image,omitempty"`
	Bio          string     `gorm:"size:500" json:"bio,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`

	Address string `gorm:"size:255" json:"address,omitempty"`
	City    string `gorm:"size:100" json:"city,omitempty"`
	Country string `gorm:"size:100;default:Kenya" json:"country,omitempty"`

	IsActive         bool   `gorm:"not null;default:true" json:"is_active"`
	IsSuspended      bool   `gorm:"not null;default:false" json:"is_suspended"`
	SuspensionReason string `json:"-"`

	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login,omitempty"`

	Profile *UserProfile `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsLandlord() bool { return u.Role == RoleLandlord }
func (u *User) IsTenant() bool   { return u.Role == RoleTenant }
func (u *User) IsScout() bool    { return u.Role == RoleScout }
func (u *User) IsAdmin() bool    { return u.Role == RoleAdmin }

// CanAuthenticate reports whether the account may obtain or use tokens.
func (u *User) CanAuthenticate() bool {
	return u.IsActive && !u.IsSuspended
}

type UserProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`

	AlternateEmail        string  `gorm:"size:254" json:"alternate_email,omitempty"`
	AlternatePhone        *string `gorm:"size:20" json:"alternate_phone,omitempty"`
	EmergencyContactName  string  `gorm:"size:100" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string `gorm:"size:20" json:"emergency_contact_phone,omitempty"`

	IDNumber   string `gorm:"size:20" json:"id_number,omitempty"`
	IDDocument string `gorm:"size:255" json:"-"`

	PreferredLanguage  string `gorm:"size:10;default:en" json:"preferred_language"`
	CurrencyPreference string `gorm:"size:3;default:KES" json:"currency_preference"`
	Timezone           string `gorm:"size:50;default:Africa/Nairobi" json:"timezone"`

	ProfileVisibility string `gorm:"size:10;default:limited" json:"profile_visibility"`
	ShowPhone         bool   `gorm:"not null;default:false" json:"show_phone"`
	ShowEmail         bool   `gorm:"not null;default:true" json:"show_email"`

	EmailNotifications bool `gorm:"not null;default:true" json:"email_notifications"`
	SMSNotifications   bool `gorm:"not null;default:false" json:"sms_notifications"`
	PushNotifications  bool `gorm:"not null;default:true" json:"push_notifications"`
	MarketingEmails    bool `gorm:"not null;default:false" json:"marketing_emails"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

type EmailVerificationToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
	Token     string    `gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null"`
	IsUsed    bool      `gorm:"not null;default:false"`
}

func (EmailVerificationToken) TableName() string {
	return "email_verification_tokens"
}

type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
	Token     string    `gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null"`
	IsUsed    bool      `gorm:"not null;default:false"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// UserActivity is an append-only activity log used for analytics.
type UserActivity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_activity_user_type" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ActivityType string    `gorm:"size:50;not null;index:idx_activity_user_type" json:"activity_type"`
	Description  string    `json:"description"`
	IPAddress    string    `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent    string    `json:"user_agent,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (UserActivity) TableName() string {
	return "user_activities"
}
