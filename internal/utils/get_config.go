package utils

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort       string `yaml:"APP_PORT"`
	AppURL        string `yaml:"APP_URL"`
	StorageDriver string `yaml:"STORAGE_DRIVER"` // memory or postgres
	SeedData      bool   `yaml:"SEED_DATA"`
	Timezone      string `yaml:"TIMEZONE"`

	// Expiry reminders; an empty schedule disables the job
	ExpiryReminderCron string `yaml:"EXPIRY_REMINDER_CRON"`

	// Logging
	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"`
	LogFile   string `yaml:"LOG_FILE"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		AppPort:       "8080",
		AppURL:        "http://localhost:8080",
		StorageDriver: "memory",
		SeedData:      true,
		Timezone:      "Asia/Jakarta",
		LogLevel:      "info",
		LogFormat:     "text",
		LogFile:       "./logs/app.log",
		JWTSecret:     "change-me",
		DBPort:        "5432",
		DBHost:        "localhost",
		SMTPPort:      "587",

		ExpiryReminderCron: "0 0 8 * * *",
	}
}

// LoadConfig reads config.yaml from the working directory. A missing file
// keeps the defaults.
func LoadConfigFile(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	loaded := defaultConfig()
	if err := yaml.Unmarshal(file, &loaded); err != nil {
		return err
	}
	config = loaded

	// Set environment variables for keys that should be accessible via os.Getenv
	os.Setenv("JWT_SECRET", config.JWTSecret)
	os.Setenv("AWS_S3_BUCKET", config.AWSS3Bucket)
	os.Setenv("AWS_S3_REGION", config.AWSS3Region)
	os.Setenv("AWS_ACCESS_KEY", config.AWSAccessKey)
	os.Setenv("AWS_SECRET_KEY", config.AWSSecretKey)
	return nil
}

// ResetConfig restores the defaults.
func ResetConfig() {
	config = defaultConfig()
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "STORAGE_DRIVER":
		return config.StorageDriver
	case "SEED_DATA":
		return strconv.FormatBool(config.SeedData)
	case "TIMEZONE":
		return config.Timezone
	case "EXPIRY_REMINDER_CRON":
		return config.ExpiryReminderCron
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FORMAT":
		return config.LogFormat
	case "LOG_FILE":
		return config.LogFile
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}

// GetBoolConfig parses a boolean key, returning false when unset or malformed.
func GetBoolConfig(key string) bool {
	b, err := strconv.ParseBool(GetConfig(key))
	return err == nil && b
}

// GetLocation returns the configured time zone, falling back to UTC.
func GetLocation() *time.Location {
	loc, err := time.LoadLocation(GetConfig("TIMEZONE"))
	if err != nil {
		return time.UTC
	}
	return loc
}
