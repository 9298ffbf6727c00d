package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/metrics"
	"github.com/asgoh05/geuk-small-library/library/internal/model"
)

func (s *Service) Rent(ctx context.Context, who model.Identity, manageID string) (book model.Book, err error) {
	defer observe("rent", &err)
	if who.Banned {
		return model.Book{}, errs.ErrBanned
	}
	book, err = s.repo.GetBook(ctx, manageID)
	if err != nil {
		return model.Book{}, err
	}
	loans, err := s.repo.ListActiveLoans(ctx, who.Emails())
	if err != nil {
		return model.Book{}, err
	}
	if len(s.engine.ActiveLoans(loans, who)) >= s.maxActiveLoans {
		return model.Book{}, errs.ErrTooManyLoans
	}

	next, err := s.engine.Rent(book, who, s.now())
	if err != nil {
		return model.Book{}, err
	}
	return s.writeRental(ctx, book, next)
}

func (s *Service) Extend(ctx context.Context, who model.Identity, manageID string) (book model.Book, err error) {
	defer observe("extend", &err)
	if who.Banned {
		return model.Book{}, errs.ErrBanned
	}
	book, err = s.repo.GetBook(ctx, manageID)
	if err != nil {
		return model.Book{}, err
	}
	next, err := s.engine.Extend(book, who)
	if err != nil {
		return model.Book{}, err
	}
	return s.writeRental(ctx, book, next)
}

func (s *Service) Return(ctx context.Context, who model.Identity, manageID string) (book model.Book, err error) {
	defer observe("return", &err)
	if who.Banned {
		return model.Book{}, errs.ErrBanned
	}
	book, err = s.repo.GetBook(ctx, manageID)
	if err != nil {
		return model.Book{}, err
	}
	next, err := s.engine.Return(book, who, s.now())
	if err != nil {
		return model.Book{}, err
	}
	return s.writeRental(ctx, book, next)
}

// ResetRental erases the rental record of a book. Admin only.
func (s *Service) ResetRental(ctx context.Context, manageID string) (book model.Book, err error) {
	defer observe("reset", &err)
	book, err = s.repo.GetBook(ctx, manageID)
	if err != nil {
		return model.Book{}, err
	}
	return s.writeRental(ctx, book, s.engine.Reset())
}

func (s *Service) ResetRentals(ctx context.Context, manageIDs []string) model.BulkResult {
	res := model.BulkResult{Total: len(manageIDs), Items: make([]model.ImportItemResult, 0, len(manageIDs))}
	for _, id := range manageIDs {
		_, err := s.ResetRental(ctx, id)
		res.Items = append(res.Items, itemResult(id, model.ImportUpdate, err))
		if err != nil {
			res.Failed++
			continue
		}
		res.Success++
	}
	return res
}

// MyLoans lists the books on loan under any of the caller's emails.
func (s *Service) MyLoans(ctx context.Context, who model.Identity) ([]model.Book, error) {
	loans, err := s.repo.ListActiveLoans(ctx, who.Emails())
	if err != nil {
		return nil, err
	}
	return s.engine.ActiveLoans(loans, who), nil
}

func (s *Service) writeRental(ctx context.Context, book model.Book, next model.RentalInfo) (model.Book, error) {
	if err := next.Validate(); err != nil {
		return model.Book{}, errs.Wrap(errs.ErrValidation, "rental record", err)
	}
	if err := s.repo.UpdateRental(ctx, book.ManageID, book.Rental, next); err != nil {
		s.log.Warn("UpdateRental", zap.String("manageId", book.ManageID), zap.Error(err))
		return model.Book{}, err
	}
	book.Rental = next
	return book, nil
}

func observe(op string, err *error) {
	metrics.RentalOperations.WithLabelValues(op, metrics.Result(*err)).Inc()
}

func itemResult(manageID string, action model.ImportAction, err error) model.ImportItemResult {
	r := model.ImportItemResult{ManageID: manageID, Action: action, Status: model.StatusSuccess}
	if err != nil {
		r.Status = model.StatusFailed
		r.Error = err.Error()
	}
	return r
}
