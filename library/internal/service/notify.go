package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/metrics"
	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/library/internal/overdue"
)

// loadLoans reads rented books and the user directory side by side.
func (s *Service) loadLoans(ctx context.Context) ([]model.Book, []model.User, error) {
	var (
		books []model.Book
		users []model.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		books, err = s.repo.ListRented(gctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.repo.ListUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return books, users, nil
}

func (s *Service) CheckOverdue(ctx context.Context) (model.OverdueReport, error) {
	books, users, err := s.loadLoans(ctx)
	if err != nil {
		return model.OverdueReport{}, err
	}
	entries := overdue.Aggregate(books, overdue.NewIndex(users), s.now())
	metrics.OverdueBooks.Set(float64(len(entries)))
	return model.OverdueReport{
		TotalRented:  len(books),
		TotalOverdue: len(entries),
		Items:        entries,
	}, nil
}

// SendOverdueNotices notifies the borrowers of the selected overdue books, or
// of all overdue books when none are selected. In test mode every notice goes
// to the caller's organization email, else to the configured test recipient.
func (s *Service) SendOverdueNotices(ctx context.Context, caller model.Identity, req model.SendNoticesRequest) (model.NoticeReport, error) {
	if s.sender == nil {
		return model.NoticeReport{}, errs.ErrNotificationSinkOff
	}
	report, err := s.CheckOverdue(ctx)
	if err != nil {
		return model.NoticeReport{}, err
	}
	entries := overdue.Select(report.Items, req.ManageIDs)
	if len(entries) == 0 {
		return model.NoticeReport{}, errs.ErrNoNoticesToSend
	}

	opts := s.notice
	opts.TestMode = req.IsTestMode()
	if opts.TestMode && caller.OrganizationEmail != "" {
		opts.TestRecipient = caller.OrganizationEmail
	}
	notices, err := overdue.BuildNotices(entries, opts)
	if err != nil {
		return model.NoticeReport{}, errs.Wrap(errs.ErrValidation, "build notices", err)
	}

	res := s.sender.Send(ctx, notices)
	res.TestMode = opts.TestMode
	for _, r := range res.Results {
		metrics.NoticesSent.WithLabelValues(s.sinkName, string(r.Status)).Inc()
	}
	s.log.Info("overdue notices",
		zap.String("batchId", res.BatchID),
		zap.Bool("testMode", res.TestMode),
		zap.Int("success", res.SuccessCount),
		zap.Int("failed", res.FailCount))
	return res, nil
}

// SendTestEmail sends one fixed message to the test recipient to check the
// sink configuration.
func (s *Service) SendTestEmail(ctx context.Context, caller model.Identity) (model.NoticeReport, error) {
	if s.sender == nil {
		return model.NoticeReport{}, errs.ErrNotificationSinkOff
	}
	to := s.notice.TestRecipient
	if caller.OrganizationEmail != "" {
		to = caller.OrganizationEmail
	}
	if to == "" {
		return model.NoticeReport{}, errs.ErrEmptyEmail
	}
	sentAt := s.now().Format("2006-01-02 15:04:05")
	n := model.Notice{
		ID:       "test",
		FromName: s.notice.FromName,
		From:     s.notice.From,
		To:       to,
		RealName: caller.RealName,
		Subject:  "[GEUK 도서관] 테스트 이메일",
		HTMLBody: fmt.Sprintf("<p>이메일 발송 설정이 정상입니다.</p><p>발송 시각: %s</p>", sentAt),
		TextBody: fmt.Sprintf("이메일 발송 설정이 정상입니다.\n발송 시각: %s\n", sentAt),
		TestMode: true,
	}
	res := s.sender.Send(ctx, []model.Notice{n})
	res.TestMode = true
	return res, nil
}

func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	stats, err := s.repo.CountStats(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	rented, err := s.repo.ListRented(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	now := s.now()
	for _, b := range rented {
		if s.engine.IsOverdue(b, now) {
			stats.OverdueBook++
		}
	}
	return stats, nil
}
