package publisher

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
	"go.uber.org/zap"
)

type KafkaConfig struct {
	Brokers      []string
	Topic        string
	Username     string
	Password     string
	Mechanism    string
	TLSEnabled   bool
	Async        bool
	WriteTimeout time.Duration
}

type KafkaPublisher struct {
	writer       *kafka.Writer
	writeTimeout time.Duration
	logger       *zap.Logger
}

func NewKafkaPublisher(cfg KafkaConfig, logger *zap.Logger) (*KafkaPublisher, error) {
	mechanism, err := saslMechanism(cfg)
	if err != nil {
		return nil, err
	}

	transport := &kafka.Transport{SASL: mechanism}
	if cfg.TLSEnabled {
		transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}

	p := &KafkaPublisher{writeTimeout: writeTimeout, logger: logger}
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        cfg.Async,
		Transport:    transport,
		Completion:   p.completion,
	}
	return p, nil
}

func saslMechanism(cfg KafkaConfig) (sasl.Mechanism, error) {
	switch strings.ToUpper(cfg.Mechanism) {
	case "":
		return nil, nil
	case "PLAIN":
		return plain.Mechanism{Username: cfg.Username, Password: cfg.Password}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported kafka sasl mechanism %q", cfg.Mechanism)
	}
}

// completion reports failures of async writes, which WriteMessages cannot return.
func (k *KafkaPublisher) completion(messages []kafka.Message, err error) {
	if err != nil {
		k.logger.Warn("kafka async write failed", zap.Int("messages", len(messages)), zap.Error(err))
	}
}

func (k *KafkaPublisher) Publish(ctx context.Context, msgs ...domain.Message) error {
	km := make([]kafka.Message, 0, len(msgs))
	now := time.Now()
	for _, m := range msgs {
		km = append(km, kafka.Message{Key: m.Key, Value: m.Value, Time: now})
	}

	ctx, cancel := context.WithTimeout(ctx, k.writeTimeout)
	defer cancel()

	if err := k.writer.WriteMessages(ctx, km...); err != nil {
		return fmt.Errorf("failed to write messages: %w", err)
	}
	return nil
}

// PublishWithdrawal keys events by shop so one shop's events stay ordered.
func (k *KafkaPublisher) PublishWithdrawal(ctx context.Context, event domain.WithdrawalEvent) error {
	v, err := json.Marshal(NewWithdrawalEventMessage(event))
	if err != nil {
		return err
	}
	return k.Publish(ctx, domain.Message{Key: []byte(event.ShopID), Value: v})
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}
