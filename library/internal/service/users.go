package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/pkg/auth"
)

func (s *Service) Register(ctx context.Context, p auth.Principal, req model.RegisterRequest) (model.User, error) {
	if p.Email == "" {
		return model.User{}, errs.ErrEmptyEmail
	}
	externalID := p.Subject
	if externalID == "" {
		externalID = p.Email
	}
	orgEmail := strings.ToLower(strings.TrimSpace(req.OrganizationEmail))
	for _, email := range []string{p.Email, orgEmail} {
		other, err := s.repo.FindUserByEmail(ctx, email)
		switch {
		case err == nil && other.ExternalIdentityID == externalID:
			return model.User{}, errs.ErrDuplicateUser
		case err == nil:
			return model.User{}, errs.ErrEmailTaken
		case !errors.Is(err, errs.ErrUserNotFound):
			return model.User{}, err
		}
	}
	u := model.User{
		ID:                 uuid.NewString(),
		RealName:           strings.TrimSpace(req.RealName),
		PrimaryEmail:       strings.ToLower(p.Email),
		OrganizationEmail:  orgEmail,
		ExternalIdentityID: externalID,
		RegisteredAt:       s.now(),
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return model.User{}, err
	}
	s.log.Info("user registered", zap.String("id", u.ID), zap.String("email", u.PrimaryEmail))
	return u, nil
}

func (s *Service) Profile(ctx context.Context, who model.Identity) (model.User, error) {
	if !who.Registered {
		return model.User{}, errs.ErrUserNotFound
	}
	return s.repo.GetUser(ctx, who.UserID)
}

func (s *Service) UpdateProfile(ctx context.Context, who model.Identity, req model.ProfileUpdateRequest) (model.User, error) {
	if !who.Registered {
		return model.User{}, errs.ErrUserNotFound
	}
	orgEmail := strings.ToLower(strings.TrimSpace(req.OrganizationEmail))
	other, err := s.repo.FindUserByEmail(ctx, orgEmail)
	switch {
	case err == nil && other.ID != who.UserID:
		return model.User{}, errs.ErrEmailTaken
	case err != nil && !errors.Is(err, errs.ErrUserNotFound):
		return model.User{}, err
	}
	if err = s.repo.UpdateUserProfile(ctx, who.UserID, strings.TrimSpace(req.RealName), orgEmail); err != nil {
		return model.User{}, err
	}
	return s.repo.GetUser(ctx, who.UserID)
}

func (s *Service) ListUsers(ctx context.Context) (model.ListUsers, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return model.ListUsers{}, err
	}
	return model.ListUsers{Total: len(users), Items: users}, nil
}

// UserAction bans, unbans, promotes or demotes a user. An admin cannot drop
// their own admin flag.
func (s *Service) UserAction(ctx context.Context, caller model.Identity, req model.UserActionRequest) (model.User, error) {
	u, err := s.repo.GetUser(ctx, req.UserID)
	if err != nil {
		return model.User{}, err
	}
	flags := model.UserFlags{Banned: u.Banned, IsAdmin: u.IsAdmin}
	switch req.Action {
	case model.ActionBan:
		flags.Banned = true
	case model.ActionUnban:
		flags.Banned = false
	case model.ActionMakeAdmin:
		flags.IsAdmin = true
	case model.ActionRemoveAdmin:
		if u.ID == caller.UserID {
			return model.User{}, errs.ErrSelfAdminRemoval
		}
		flags.IsAdmin = false
	default:
		return model.User{}, errs.ErrUnknownUserAction
	}
	if err = s.repo.SetUserFlags(ctx, u.ID, flags); err != nil {
		return model.User{}, err
	}
	s.log.Info("user action",
		zap.String("by", caller.UserID),
		zap.String("userId", u.ID),
		zap.String("action", string(req.Action)))
	u.Banned, u.IsAdmin = flags.Banned, flags.IsAdmin
	return u, nil
}

// PreviewRentalMigration lists on-loan books recorded under a registered
// user's primary email that should move to their organization email.
func (s *Service) PreviewRentalMigration(ctx context.Context) (model.MigrationReport, error) {
	report, _, err := s.migrationTargets(ctx)
	return report, err
}

func (s *Service) ApplyRentalMigration(ctx context.Context) (model.MigrationReport, error) {
	report, books, err := s.migrationTargets(ctx)
	if err != nil {
		return model.MigrationReport{}, err
	}
	report.Items = make([]model.ImportItemResult, 0, len(report.Targets))
	for _, t := range report.Targets {
		book := books[t.ManageID]
		next := book.Rental
		next.BorrowerEmail = t.NewEmail
		err := s.repo.UpdateRental(ctx, book.ManageID, book.Rental, next)
		observe("migrate", &err)
		report.Items = append(report.Items, itemResult(t.ManageID, model.ImportUpdate, err))
		if err == nil {
			report.Updated++
		}
	}
	return report, nil
}

func (s *Service) migrationTargets(ctx context.Context) (model.MigrationReport, map[string]model.Book, error) {
	books, users, err := s.loadLoans(ctx)
	if err != nil {
		return model.MigrationReport{}, nil, err
	}
	byPrimary := make(map[string]model.User, len(users))
	for _, u := range users {
		if u.OrganizationEmail != "" && !strings.EqualFold(u.OrganizationEmail, u.PrimaryEmail) {
			byPrimary[strings.ToLower(u.PrimaryEmail)] = u
		}
	}

	report := model.MigrationReport{TotalRented: len(books), Targets: make([]model.MigrationTarget, 0)}
	byID := make(map[string]model.Book)
	for _, b := range books {
		u, ok := byPrimary[strings.ToLower(b.Rental.BorrowerEmail)]
		if !ok {
			continue
		}
		byID[b.ManageID] = b
		report.Targets = append(report.Targets, model.MigrationTarget{
			ManageID:     b.ManageID,
			Title:        b.Title,
			CurrentEmail: b.Rental.BorrowerEmail,
			NewEmail:     u.OrganizationEmail,
			RealName:     u.RealName,
		})
	}
	return report, byID, nil
}
