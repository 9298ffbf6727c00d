package overdue

import (
	"context"

	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Sink delivers one notice.
type Sink interface {
	Send(ctx context.Context, n model.Notice) error
}

type SinkFunc func(ctx context.Context, n model.Notice) error

func (f SinkFunc) Send(ctx context.Context, n model.Notice) error {
	return f(ctx, n)
}

// Sender makes one attempt per notice, paced by limiter when set.
type Sender struct {
	sink    Sink
	limiter *rate.Limiter
	log     *zap.Logger
}

func NewSender(sink Sink, limiter *rate.Limiter, log *zap.Logger) *Sender {
	return &Sender{
		sink:    sink,
		limiter: limiter,
		log:     log.Named("overdue"),
	}
}

// Send never stops on a failed notice. Every notice gets a result.
func (s *Sender) Send(ctx context.Context, notices []model.Notice) model.NoticeReport {
	report := model.NoticeReport{
		BatchID: uuid.NewString(),
		Total:   len(notices),
		Results: make([]model.NoticeResult, 0, len(notices)),
	}
	for i, n := range notices {
		report.TestMode = report.TestMode || n.TestMode
		res := model.NoticeResult{
			ManageID:    n.ManageID,
			BookTitle:   n.BookTitle,
			RealName:    n.RealName,
			Email:       n.To,
			OverdueDays: n.OverdueDays,
			Status:      model.StatusSuccess,
		}
		err := s.wait(ctx, i)
		if err == nil {
			err = s.sink.Send(ctx, n)
		}
		if err != nil {
			res.Status = model.StatusFailed
			res.Error = err.Error()
			report.FailCount++
			s.log.Warn("notice failed",
				zap.String("manageId", n.ManageID),
				zap.String("to", n.To),
				zap.Error(err))
		} else {
			report.SuccessCount++
			s.log.Debug("notice sent",
				zap.String("manageId", n.ManageID),
				zap.String("to", n.To))
		}
		report.Results = append(report.Results, res)
	}
	return report
}

func (s *Sender) wait(ctx context.Context, i int) error {
	if s.limiter == nil || i == 0 {
		return ctx.Err()
	}
	return s.limiter.Wait(ctx)
}

// Send delivers notices through sink without pacing.
func Send(ctx context.Context, sink Sink, notices []model.Notice) model.NoticeReport {
	return NewSender(sink, nil, zap.NewNop()).Send(ctx, notices)
}
