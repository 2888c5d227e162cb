package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/erain9/bookmatch/pkg/messaging"
	"github.com/segmentio/kafka-go"
)

// MessageSender implements messaging.Sender using Kafka
type MessageSender struct {
	writer *kafka.Writer
	topic  string
}

// NewMessageSender creates a new Kafka message sender
func NewMessageSender(brokerAddr, topic string) (*MessageSender, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokerAddr),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &MessageSender{
		writer: writer,
		topic:  topic,
	}, nil
}

// SendDoneMessage sends an execution report to Kafka
func (k *MessageSender) SendDoneMessage(ctx context.Context, done *messaging.DoneMessage) error {
	data, err := json.Marshal(done)
	if err != nil {
		return fmt.Errorf("failed to marshal done message: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(done.OrderID, 10)),
		Value: data,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka writer
func (k *MessageSender) Close() error {
	return k.writer.Close()
}

// Ensure MessageSender implements messaging.Sender
var _ messaging.Sender = (*MessageSender)(nil)
