package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/iceddrop/socketpractice-nestjs/internal/api"
	"github.com/iceddrop/socketpractice-nestjs/internal/chat"
	"github.com/iceddrop/socketpractice-nestjs/internal/common"
	"github.com/iceddrop/socketpractice-nestjs/internal/config"
	"github.com/iceddrop/socketpractice-nestjs/internal/kafka"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Registries and dispatcher are the single source of truth for
	// membership; everything else hangs off them.
	conns := chat.NewConnectionRegistry()
	rooms := chat.NewRoomRegistry()
	dispatch := chat.NewDispatcher(conns, rooms)

	var feed common.MessagePublisher
	if cfg.KafkaEnabled {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaFeedTopic)
		defer producer.Close()
		feed = producer

		consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaInjectTopic, cfg.KafkaGroup, dispatch)
		defer consumer.Close()
		go consumer.ConsumeMessages()
	}

	router := chat.NewRouter(conns, rooms, dispatch, feed)

	// Setup HTTP routes
	r := api.SetupRouter(router, conns, rooms, dispatch)

	log.Printf("🚀 Server running on port %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}
}
