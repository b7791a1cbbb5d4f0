package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
)

// Notifier delivers a text message to a phone number. Send never fails the caller; it reports delivery with a bool.
type Notifier interface {
	Send(ctx context.Context, phone, message string) bool
	Close() error
}

// Message is the payload published for the SMS transport.
type Message struct {
	Phone   string    `json:"phone"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// KafkaNotifier publishes messages to a topic consumed by the SMS gateway.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
	now      func() time.Time
}

// NewKafkaNotifier wraps an existing producer.
func NewKafkaNotifier(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "notifier"),
		now:      time.Now,
	}
}

func (n *KafkaNotifier) Send(_ context.Context, phone, message string) bool {
	data, err := json.Marshal(Message{Phone: phone, Message: message, SentAt: n.now().UTC()})
	if err != nil {
		n.logger.Error("marshal notification", slog.Any("error", err))
		return false
	}

	msg := &sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(phone),
		Value: sarama.ByteEncoder(data),
	}
	partition, offset, err := n.producer.SendMessage(msg)
	if err != nil {
		n.logger.Error("publish notification", slog.String("topic", n.topic), slog.Any("error", err))
		return false
	}

	n.logger.Debug("notification published",
		slog.String("topic", n.topic),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset))
	return true
}

func (n *KafkaNotifier) Close() error {
	return n.producer.Close()
}

// LogNotifier only logs messages; used when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

func (n *LogNotifier) Send(_ context.Context, phone, message string) bool {
	n.logger.Info("notification", slog.String("phone", phone), slog.String("message", message))
	return true
}

func (n *LogNotifier) Close() error { return nil }
