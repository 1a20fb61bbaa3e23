package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ticketchain/ticketchain/internal/models"
)

type Config struct {
	Port           string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	JWTSecret      string
	JWTExpiry      time.Duration
	PrimaryFeeRate decimal.Decimal
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func LoadConfig() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}

	expiryHours, err := strconv.Atoi(getEnv("JWT_EXPIRE_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRE_HOURS: %w", err)
	}
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	feeRate, err := decimal.NewFromString(getEnv("PLATFORM_FEE_RATE", "0.05"))
	if err != nil {
		return nil, fmt.Errorf("invalid PLATFORM_FEE_RATE: %w", err)
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		JWTSecret:      secret,
		JWTExpiry:      time.Duration(expiryHours) * time.Hour,
		PrimaryFeeRate: feeRate,
	}, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.TicketType{},
		&models.Ticket{},
		&models.Listing{},
		&models.Transaction{},
		&models.Referral{},
		&models.GoldenTicket{},
		&models.GoldenPurchase{},
		&models.ArtistProfile{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// InitRedis connects the notification queue backend. A missing REDIS_ADDR
// is not an error: the queue degrades to log-only.
func InitRedis(ctx context.Context, cfg *Config, logger *zap.Logger) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, notifications will be log-only")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.RedisAddr))
	return client, nil
}
