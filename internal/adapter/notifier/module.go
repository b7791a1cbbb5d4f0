package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"go.uber.org/fx"

	"github.com/polkiloo/bundlemart/internal/config"
)

// Module exposes the configured Notifier and closes it on shutdown.
var Module = fx.Options(
	fx.Provide(newNotifier),
	fx.Invoke(registerLifecycle),
)

var newSyncProducer = sarama.NewSyncProducer

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func producerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "bundlemart"
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	return cfg
}

func newNotifier(p notifierParams) (Notifier, error) {
	if len(p.Config.KafkaBrokers) == 0 {
		p.Logger.Info("kafka brokers not configured, notifications are logged only")
		return NewLogNotifier(p.Logger), nil
	}

	producer, err := newSyncProducer(p.Config.KafkaBrokers, producerConfig())
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	p.Logger.Info("kafka notifier initialized", slog.Any("brokers", p.Config.KafkaBrokers), slog.String("topic", p.Config.NotifyTopic))
	return NewKafkaNotifier(producer, p.Config.NotifyTopic, p.Logger), nil
}

func registerLifecycle(lc fx.Lifecycle, n Notifier) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return n.Close()
		},
	})
}
