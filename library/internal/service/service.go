package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/library/internal/overdue"
	"github.com/asgoh05/geuk-small-library/library/internal/rental"
	libraryRepo "github.com/asgoh05/geuk-small-library/library/internal/repository"
	"github.com/asgoh05/geuk-small-library/pkg/auth"
)

const DefaultMaxActiveLoans = 3

type Service struct {
	log  *zap.Logger
	repo libraryRepo.Repository

	engine         rental.Engine
	maxActiveLoans int
	loc            *time.Location
	clock          func() time.Time

	sender   *overdue.Sender
	sinkName string
	notice   overdue.NoticeOptions
}

type Option func(s *Service)

func WithEngine(e rental.Engine) Option {
	return func(s *Service) { s.engine = e }
}

func WithMaxActiveLoans(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxActiveLoans = n
		}
	}
}

// WithLocation sets the zone that calendar days are counted in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithNotifier enables overdue notices. opts.TestRecipient is the fallback
// test address when the caller has no organization email.
func WithNotifier(sender *overdue.Sender, sinkName string, opts overdue.NoticeOptions) Option {
	return func(s *Service) {
		s.sender = sender
		s.sinkName = sinkName
		s.notice = opts
	}
}

func NewService(repo libraryRepo.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:            log.Named("service"),
		repo:           repo,
		engine:         rental.NewEngine(),
		maxActiveLoans: DefaultMaxActiveLoans,
		loc:            time.UTC,
		clock:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) now() time.Time {
	return s.clock().In(s.loc)
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// Identify resolves an authenticated principal against the user directory.
// Unknown callers get a guest identity carrying only their login email.
func (s *Service) Identify(ctx context.Context, p auth.Principal) (model.Identity, error) {
	var (
		u   model.User
		err error
	)
	if p.Subject != "" {
		u, err = s.repo.FindUserByExternalID(ctx, p.Subject)
	}
	if p.Subject == "" || errors.Is(err, errs.ErrUserNotFound) {
		u, err = s.repo.FindUserByEmail(ctx, p.Email)
	}
	switch {
	case err == nil:
		return model.IdentityFromUser(u), nil
	case errors.Is(err, errs.ErrUserNotFound):
		return model.GuestIdentity(p.Email, p.Name), nil
	default:
		return model.Identity{}, err
	}
}
