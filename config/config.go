package config

import (
	"os"

	"dinedash-api/geo"
	"dinedash-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Geo is the geocoder used by registration, account edits and hours updates.
// Tests swap it for a stub.
var Geo geo.Geocoder

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret []byte

// Load reads .env (if present) and initializes the pieces that depend on the
// environment. Call before InitDB.
func Load() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using environment")
	}
	JWTSecret = []byte(getEnv("JWT_SECRET", "dinedash_super_secret_2025"))
	Geo = geo.NewClient(getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	OpenDB(getEnv("DB_PATH", "dinedash.db"))
}

// OpenDB connects and migrates. Split out from InitDB so tests can point it
// at an in-memory database.
func OpenDB(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.CustomerInfo{},
		&models.DeliveryContractorInfo{},
		&models.Restaurant{},
		&models.DayHours{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.RestaurantReview{},
		&models.Table{},
		&models.Reservation{},
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	// At most one cart per (customer, restaurant). Enforced by the database,
	// not checked-then-inserted in handlers.
	err = DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_cart_per_pair
		ON orders(customer_id, restaurant_id) WHERE status = 'NOT_PLACED_YET'`).Error
	if err != nil {
		logrus.WithError(err).Fatal("failed to create cart uniqueness index")
	}

	logrus.Info("database connected and migrated")
}
