// Package notify holds the overdue notice sinks: log, smtp and kafka.
package notify

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/library/internal/overdue"
	"github.com/asgoh05/geuk-small-library/pkg/kafka"
	"github.com/asgoh05/geuk-small-library/pkg/mail"
)

const (
	SinkLog   = "log"
	SinkSMTP  = "smtp"
	SinkKafka = "kafka"
)

type logSink struct {
	log *zap.Logger
}

// NewLogSink only logs notices. It is the dry-run sink.
func NewLogSink(log *zap.Logger) overdue.Sink {
	return &logSink{log: log.Named("notice")}
}

func (s *logSink) Send(_ context.Context, n model.Notice) error {
	s.log.Info("overdue notice",
		zap.String("manageId", n.ManageID),
		zap.String("to", n.To),
		zap.String("subject", n.Subject),
		zap.Bool("testMode", n.TestMode))
	return nil
}

type mailSink struct {
	sender mail.Sender
}

func NewMailSink(sender mail.Sender) overdue.Sink {
	return &mailSink{sender: sender}
}

func (s *mailSink) Send(ctx context.Context, n model.Notice) error {
	return s.sender.Send(ctx, Message(n))
}

func Message(n model.Notice) mail.Message {
	return mail.Message{
		FromName: n.FromName,
		From:     n.From,
		To:       n.To,
		Subject:  n.Subject,
		HTML:     n.HTMLBody,
		Text:     n.TextBody,
	}
}

type kafkaSink struct {
	queue kafka.Enqueuer
	topic string
	now   func() time.Time
}

// NewKafkaSink queues notices for the notifier service. Success means the
// broker accepted the notice, not that it was delivered.
func NewKafkaSink(queue kafka.Enqueuer, topic string) overdue.Sink {
	return &kafkaSink{queue: queue, topic: topic, now: time.Now}
}

func (s *kafkaSink) Send(_ context.Context, n model.Notice) error {
	ev := kafka.NoticeEvent{
		ManageID:  n.ManageID,
		FromName:  n.FromName,
		From:      n.From,
		To:        n.To,
		Subject:   n.Subject,
		HTML:      n.HTMLBody,
		Text:      n.TextBody,
		TestMode:  n.TestMode,
		CreatedAt: s.now(),
	}
	if err := s.queue.Enqueue(s.topic, n.ManageID, ev); err != nil {
		return errors.Wrap(err, "enqueue notice")
	}
	return nil
}
