package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       *DBconfig
	RabbitMq *RabbitMqconfig
	App      *Appconfig
	Log      *Loggerconfig
}

type DBconfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type RabbitMqconfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type Appconfig struct {
	Port          int
	JwtSecret     string
	SmsFromNumber string
}

type Loggerconfig struct {
	Level string
}

func New() (*Config, error) {
	// .env is optional, real env vars win either way
	_ = godotenv.Load()

	getEnv := func(key, def string) string {
		val := os.Getenv(key)
		if val == "" {
			fmt.Printf("using default value for %v\n", key)
			return def
		}
		return val
	}

	getEnvInt := func(key string, def int) int {
		valStr := os.Getenv(key)
		if valStr == "" {
			fmt.Printf("using default value for %v\n", key)
			return def
		}
		val, err := strconv.Atoi(valStr)
		if err != nil {
			fmt.Printf("using default value for %v\n", key)
			return def
		}
		return val
	}

	cnf := &Config{
		DB: &DBconfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "rickshaw_user"),
			Password: getEnv("DB_PASSWORD", "rickshaw_pass"),
			Database: getEnv("DB_NAME", "rickshaw_db"),
		},
		RabbitMq: &RabbitMqconfig{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnvInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			VHost:    getEnv("RABBITMQ_VHOST", ""),
		},
		App: &Appconfig{
			Port:          getEnvInt("APP_PORT", 5000),
			JwtSecret:     getEnv("JWT_SECRET", "rickshaw-booking-secret"),
			SmsFromNumber: getEnv("SMS_FROM_NUMBER", ""),
		},
		Log: &Loggerconfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
	}

	return cnf, nil
}
