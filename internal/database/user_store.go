package database

import (
	"time"

	"gorm.io/gorm"

	"honestspace/server/internal/apperrors"
	"honestspace/server/internal/models"
)

// CreateUser inserts a user and their empty profile in one transaction.
func (d *Database) CreateUser(user *models.User) error {
	if !models.ValidRole(string(user.Role)) {
		return apperrors.NewField("user_type_name", "unknown role")
	}
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserProfile{UserID: user.ID}).Error
	})
	return translateError(err)
}

func (d *Database) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := d.db.Preload("Profile").First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (d *Database) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := d.db.Preload("Profile").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// UpdateUser saves editable account fields. Identity and role columns are
// left alone; callers must not use this to change email or role.
func (d *Database) UpdateUser(user *models.User) error {
	err := d.db.Model(user).Select(
		"first_name", "last_name", "phone", "profile_image", "bio",
		"date_of_birth", "address", "city", "country",
	).Updates(user).Error
	return translateError(err)
}

func (d *Database) UpdateUserProfile(profile *models.UserProfile) error {
	return translateError(d.db.Save(profile).Error)
}

// TouchLastLogin stamps the login time without touching updated_at.
func (d *Database) TouchLastLogin(userID uint, at time.Time) error {
	err := d.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_login_at", at).Error
	return translateError(err)
}

// InsertActivities appends a batch to the user activity log. The activity
// queue calls this off the request path.
func (d *Database) InsertActivities(entries []*models.UserActivity) error {
	if len(entries) == 0 {
		return nil
	}
	return translateError(d.db.Create(entries).Error)
}
