package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "KAFKA_ENABLED", "KAFKA_BROKER", "KAFKA_FEED_TOPIC", "KAFKA_INJECT_TOPIC", "KAFKA_GROUP"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.GinMode != "debug" {
		t.Errorf("GinMode = %q, want debug", cfg.GinMode)
	}
	if cfg.KafkaEnabled {
		t.Error("KafkaEnabled default should be false")
	}
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaBrokers[0] != "localhost:9092" {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if cfg.KafkaFeedTopic != "chat-feed" || cfg.KafkaInjectTopic != "chat-inject" {
		t.Errorf("topics = %q / %q", cfg.KafkaFeedTopic, cfg.KafkaInjectTopic)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKER", "broker:9092")

	cfg := Load()

	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPort = %q, want 9000", cfg.ServerPort)
	}
	if !cfg.KafkaEnabled {
		t.Error("KafkaEnabled not overridden")
	}
	if cfg.KafkaBrokers[0] != "broker:9092" {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
}

func TestGetEnvBoolInvalidFallsBack(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "not-a-bool")
	if getEnvBool("KAFKA_ENABLED", true) != true {
		t.Error("invalid bool did not fall back")
	}
}
