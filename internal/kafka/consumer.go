package kafka

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/iceddrop/socketpractice-nestjs/internal/chat"
)

// Consumer reads the inject topic and delivers each record into its room.
// This is the integration path for external systems that want to post
// notices into live rooms without holding a websocket.
type Consumer struct {
	reader   *kafka.Reader
	dispatch *chat.Dispatcher
}

type injectRecord struct {
	Room   string `json:"room"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

// NewConsumer creates a Kafka consumer instance
func NewConsumer(brokers []string, topic string, group string, dispatch *chat.Dispatcher) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: group,
		}),
		dispatch: dispatch,
	}
}

// ConsumeMessages loops over the inject topic and forwards valid records to
// the dispatcher. Invalid records are logged and skipped.
func (c *Consumer) ConsumeMessages() {
	for {
		m, err := c.reader.ReadMessage(context.Background())
		if err != nil {
			log.Printf("⚠️ Consumer error: %v", err)
			continue
		}
		c.dispatchRecord(m.Value)
	}
}

func (c *Consumer) dispatchRecord(value []byte) {
	var rec injectRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		log.Printf("❌ Invalid inject record: %v", err)
		return
	}
	if rec.Room == "" || rec.Text == "" {
		log.Printf("⚠️ Inject record missing room or text, skipped")
		return
	}

	author := rec.Author
	if author == "" {
		author = chat.SystemAuthor
	}
	c.dispatch.ToRoom(rec.Room, chat.EventMessage, chat.Message{
		Room:   rec.Room,
		Author: author,
		Text:   rec.Text,
	})
	log.Printf("📨 Injected message into room %s: %s", rec.Room, rec.Text)
}

// Close closes the Kafka reader gracefully
func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		log.Printf("⚠️ Error closing Kafka consumer: %v", err)
	}
}
