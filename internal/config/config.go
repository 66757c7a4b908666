package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven constant the application uses.
// It is built once in main and passed by reference; nothing outside
// this package reads the environment.
type Config struct {
	Port      string
	BaseURL   string
	JWTSecret string

	Database DatabaseConfig

	AdminEmail    string
	AdminPassword string
	SupportEmail  string
	ProductName   string
	PurchaseLink  string

	// RewardPerRef is the fixed commission base per buying referral.
	RewardPerRef float64
	// RewardThreshold is the minimum buyer count before a withdrawal
	// request is accepted.
	RewardThreshold int
	// Minimum transfer amounts per payout channel, for display only.
	WireMin   int64
	MobileMin int64
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	rewardPerRef, err := strconv.ParseFloat(getEnv("REWARD_PER_REF", "1700.0"), 64)
	if err != nil {
		return nil, err
	}
	threshold, err := strconv.Atoi(getEnv("REWARD_THRESHOLD", "5"))
	if err != nil {
		return nil, err
	}
	wireMin, err := strconv.ParseInt(getEnv("WIRE_MIN", "15000"), 10, 64)
	if err != nil {
		return nil, err
	}
	mobileMin, err := strconv.ParseInt(getEnv("MOBILE_MIN", "5000"), 10, 64)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		BaseURL:   getEnv("BASE_URL", "http://localhost:8080"),
		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "moneytoflows"),
			Password: getEnv("DB_PASSWORD", "moneytoflows"),
			Name:     getEnv("DB_NAME", "moneytoflows"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		AdminEmail:      getEnv("ADMIN_EMAIL", "admin@moneytoflows.com"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "ChangeMe123!"),
		SupportEmail:    getEnv("SUPPORT_EMAIL", "support@moneytoflows.com"),
		ProductName:     getEnv("PRODUCT_NAME", "MoneyToFlows"),
		PurchaseLink:    getEnv("PURCHASE_LINK", ""),
		RewardPerRef:    rewardPerRef,
		RewardThreshold: threshold,
		WireMin:         wireMin,
		MobileMin:       mobileMin,
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
