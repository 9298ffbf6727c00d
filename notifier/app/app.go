package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/asgoh05/geuk-small-library/notifier/config"
	"github.com/asgoh05/geuk-small-library/notifier/internal/handler"
	cb "github.com/asgoh05/geuk-small-library/pkg/circuit_breaker"
	"github.com/asgoh05/geuk-small-library/pkg/kafka"
	"github.com/asgoh05/geuk-small-library/pkg/logger"
	"github.com/asgoh05/geuk-small-library/pkg/mail"
)

func Run(cfg config.Config) {
	log := logger.NewLogger(cfg.Log, "notifier")

	consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.NotifierConsumerGroup)
	if err != nil {
		log.Fatal("kafka.NewConsumer", zap.Error(err))
	}
	sender := mail.NewSMTPSender(cfg.SMTP, cb.New(cfg.Breaker))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		kafka.Consume(ctx, consumer, handler.NewConsumer(sender, log), log, cfg.Topic)
	}()
	log.Info("consuming", zap.String("topic", cfg.Topic), zap.Strings("brokers", cfg.Kafka.Addrs))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))
	cancel()
	<-done
	if err = consumer.Close(); err != nil {
		log.DPanic("consumer.Close", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}
