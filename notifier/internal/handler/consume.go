package handler

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/asgoh05/geuk-small-library/pkg/kafka"
	"github.com/asgoh05/geuk-small-library/pkg/mail"
)

// Consumer delivers queued overdue notices. Every message is attempted once
// and then marked; failures are logged with the recipient.
type Consumer struct {
	sender mail.Sender
	log    *zap.Logger
}

func NewConsumer(sender mail.Sender, log *zap.Logger) *Consumer {
	return &Consumer{
		sender: sender,
		log:    log.Named("consumer"),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			consumer.deliver(session.Context(), message)
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (consumer *Consumer) deliver(ctx context.Context, message *sarama.ConsumerMessage) {
	var ev kafka.NoticeEvent
	if err := json.Unmarshal(message.Value, &ev); err != nil {
		consumer.log.Error("decode notice", zap.Int64("offset", message.Offset), zap.Error(err))
		return
	}
	err := consumer.sender.Send(ctx, mail.Message{
		FromName: ev.FromName,
		From:     ev.From,
		To:       ev.To,
		Subject:  ev.Subject,
		HTML:     ev.HTML,
		Text:     ev.Text,
	})
	if err != nil {
		consumer.log.Error("notice not delivered",
			zap.String("manageId", ev.ManageID),
			zap.String("to", ev.To),
			zap.Bool("testMode", ev.TestMode),
			zap.Error(err))
		return
	}
	consumer.log.Debug("notice delivered",
		zap.String("manageId", ev.ManageID),
		zap.String("to", ev.To),
		zap.Time("queuedAt", ev.CreatedAt))
}
