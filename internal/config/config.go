package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dreamnest/shop-backend/internal/models"
)

type Config struct {
	HTTP_ADDR   string
	LOG_LEVEL   string
	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string
	ES_URL      string
	ES_USER     string
	ES_PASSWORD string
	// KAFKA_ADDRESS empty disables event publishing.
	KAFKA_ADDRESS string
	// STORAGE selects the backend: "postgres" (default) or "memory".
	STORAGE string
	// CART_MERGE_CUSTOM_DIMENSIONS="strict" makes custom width/length part
	// of the cart-line identity; default keeps the legacy merge behavior.
	CART_MERGE_CUSTOM_DIMENSIONS string
	COOKIE_SECURE                string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_ADDR:                    getenv("HTTP_ADDR", ":8080"),
		LOG_LEVEL:                    os.Getenv("LOG_LEVEL"),
		DB_HOST:                      os.Getenv("DB_HOST"),
		DB_PORT:                      os.Getenv("DB_PORT"),
		DB_USER:                      os.Getenv("DB_USER"),
		DB_PASSWORD:                  os.Getenv("DB_PASSWORD"),
		DB_NAME:                      os.Getenv("DB_NAME"),
		ES_URL:                       os.Getenv("ES_URL"),
		ES_USER:                      os.Getenv("ES_USER"),
		ES_PASSWORD:                  os.Getenv("ES_PASSWORD"),
		KAFKA_ADDRESS:                os.Getenv("KAFKA_ADDRESS"),
		STORAGE:                      getenv("STORAGE", "postgres"),
		CART_MERGE_CUSTOM_DIMENSIONS: os.Getenv("CART_MERGE_CUSTOM_DIMENSIONS"),
		COOKIE_SECURE:                os.Getenv("COOKIE_SECURE"),
	}

	return config, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) StrictCartIdentity() bool {
	return c.CART_MERGE_CUSTOM_DIMENSIONS == "strict"
}

func (c *Config) SecureCookies() bool {
	return c.COOKIE_SECURE == "true" || c.COOKIE_SECURE == "1"
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.User{},
		&models.Session{},
		&models.Setting{},
	)
	if err != nil {
		return fmt.Errorf("db migrate: %w", err)
	}
	return nil
}
