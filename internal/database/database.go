package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"honestspace/server/config"
	"honestspace/server/internal/models"
)

// Database wraps the gorm connection and exposes per-aggregate stores.
type Database struct {
	db              *gorm.DB
	logger          *logrus.Logger
	defaultCurrency string
}

// NewDatabase opens a connection using the configured driver.
func NewDatabase(cfg *config.Config, log *logrus.Logger) (*Database, error) {
	if log == nil {
		log = logrus.New()
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
			cfg.Database.Password, cfg.Database.Name, cfg.Database.SSLMode)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.Path + "?_foreign_keys=on")
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	currency := cfg.Listings.DefaultCurrency
	if currency == "" {
		currency = "KES"
	}
	return &Database{db: db, logger: log, defaultCurrency: currency}, nil
}

// NewTestDB opens an in-memory sqlite database for tests.
func NewTestDB() (*Database, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	// One connection keeps the whole test on a single in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return &Database{db: db, logger: logrus.New(), defaultCurrency: "KES"}, nil
}

// GetDB returns the underlying gorm handle.
func (d *Database) GetDB() *gorm.DB {
	return d.db
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// MigrateSchema creates or updates all tables. Order matters: parents
// before the junction rows that reference them.
func (d *Database) MigrateSchema() error {
	return d.db.AutoMigrate(
		// identity
		&models.User{},
		&models.UserProfile{},
		&models.EmailVerificationToken{},
		&models.PasswordResetToken{},
		&models.UserActivity{},
		// reference data
		&models.Country{},
		&models.County{},
		&models.City{},
		&models.Neighborhood{},
		&models.LandmarkType{},
		&models.Landmark{},
		&models.AmenityCategory{},
		&models.Amenity{},
		&models.BadgeCategory{},
		&models.TrustBadge{},
		&models.MediaType{},
		&models.RatingCategory{},
		// listing aggregate
		&models.PropertyType{},
		&models.PropertyStatus{},
		&models.Property{},
		&models.PropertyLocation{},
		&models.PropertyMedia{},
		&models.PropertyAmenity{},
		&models.PropertyTrustBadge{},
		&models.PropertyLandmark{},
		&models.PropertyAnalytics{},
		// engagement
		&models.Review{},
		&models.ReviewRating{},
		&models.ReviewMedia{},
		&models.LovedProperty{},
		&models.PropertyInquiry{},
		&models.PropertyViewing{},
	)
}
