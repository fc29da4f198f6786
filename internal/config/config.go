package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort       string
	GinMode          string
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaFeedTopic   string
	KafkaInjectTopic string
	KafkaGroup       string
}

// Load reads environment variables from .env
func Load() *Config {
	// Load .env if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:       getEnv("PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		KafkaEnabled:     getEnvBool("KAFKA_ENABLED", false),
		KafkaBrokers:     []string{getEnv("KAFKA_BROKER", "localhost:9092")},
		KafkaFeedTopic:   getEnv("KAFKA_FEED_TOPIC", "chat-feed"),
		KafkaInjectTopic: getEnv("KAFKA_INJECT_TOPIC", "chat-inject"),
		KafkaGroup:       getEnv("KAFKA_GROUP", "chat-relay"),
	}
}

// Helper: get env var or fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("⚠️ Invalid bool for %s: %q, using %v", key, value, fallback)
		return fallback
	}
	return parsed
}
