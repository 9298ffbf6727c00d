package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/metrics"
	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/library/internal/reconcile"
)

func (s *Service) GetBook(ctx context.Context, manageID string) (model.Book, error) {
	return s.repo.GetBook(ctx, strings.TrimSpace(manageID))
}

func (s *Service) ListBooks(ctx context.Context, filter model.ListBooksFilter) ([]model.Book, error) {
	return s.repo.ListBooks(ctx, filter)
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	book := req.Book()
	if book.ManageID == "" {
		return model.Book{}, errs.ErrEmptyManageID
	}
	if err := s.repo.CreateBook(ctx, book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

// UpdateBook changes catalog fields. Rental state is never touched here.
func (s *Service) UpdateBook(ctx context.Context, manageID string, req model.UpdateBookRequest) (model.Book, error) {
	book, err := s.repo.GetBook(ctx, manageID)
	if err != nil {
		return model.Book{}, err
	}
	book.Title = strings.TrimSpace(req.Title)
	book.Author = strings.TrimSpace(req.Author)
	if req.ImgURL != nil {
		book.ImgURL = *req.ImgURL
	}
	if req.Comments != nil {
		book.Comments = *req.Comments
	}
	if err = s.repo.UpdateBookDetails(ctx, book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (s *Service) DeleteBook(ctx context.Context, manageID string) error {
	return s.repo.DeleteBook(ctx, manageID)
}

func (s *Service) DeleteBooks(ctx context.Context, manageIDs []string) (int64, error) {
	return s.repo.DeleteBooks(ctx, manageIDs)
}

// InsertBooks adds every book or none of them.
func (s *Service) InsertBooks(ctx context.Context, reqs []model.CreateBookRequest) ([]model.Book, error) {
	books, err := booksFromRequests(reqs)
	if err != nil {
		return nil, err
	}
	if err = s.repo.InsertBooks(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

// ReplaceBooks overwrites the catalog fields of books by manage id, creating
// the ones not stored yet. Books on loan stay on loan.
func (s *Service) ReplaceBooks(ctx context.Context, reqs []model.CreateBookRequest) ([]model.Book, error) {
	books, err := booksFromRequests(reqs)
	if err != nil {
		return nil, err
	}
	return s.repo.ReplaceBooks(ctx, books)
}

func booksFromRequests(reqs []model.CreateBookRequest) ([]model.Book, error) {
	books := make([]model.Book, 0, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for _, r := range reqs {
		b := r.Book()
		if b.ManageID == "" {
			return nil, errs.ErrEmptyManageID
		}
		if _, ok := seen[b.ManageID]; ok {
			return nil, errs.Wrap(errs.ErrConflict, "manageId "+b.ManageID+" repeated in batch", errs.ErrDuplicateManageID)
		}
		seen[b.ManageID] = struct{}{}
		books = append(books, b)
	}
	return books, nil
}

func (s *Service) plan(ctx context.Context, rows []model.ImportRow) (reconcile.Result, error) {
	catalog, err := s.repo.ListBooks(ctx, model.ListBooksFilter{})
	if err != nil {
		return reconcile.Result{}, err
	}
	res := reconcile.Plan(catalog, rows)
	for _, w := range res.Warnings {
		s.log.Warn("import", zap.String("warning", w))
	}
	return res, nil
}

// PlanImport shows what ImportBooks would do without changing anything.
func (s *Service) PlanImport(ctx context.Context, rows []model.ImportRow) (model.ImportPlan, error) {
	res, err := s.plan(ctx, rows)
	if err != nil {
		return model.ImportPlan{}, err
	}
	return model.ImportPlan{
		ToCreate: res.ToCreate,
		ToUpdate: res.ToUpdate,
		ToDelete: res.ToDelete,
		Invalid:  invalidRows(res.Invalid),
		Warnings: nonNil(res.Warnings),
	}, nil
}

// ImportBooks reconciles the catalog with rows and applies the result item by
// item. A failed item is reported and the rest still run.
func (s *Service) ImportBooks(ctx context.Context, rows []model.ImportRow) (model.ImportReport, error) {
	res, err := s.plan(ctx, rows)
	if err != nil {
		return model.ImportReport{}, err
	}

	report := model.ImportReport{
		Warnings: nonNil(res.Warnings),
		Items:    make([]model.ImportItemResult, 0, len(res.ToCreate)+len(res.ToUpdate)+len(res.ToDelete)+len(res.Invalid)),
	}
	for _, inv := range res.Invalid {
		report.Failed++
		report.Items = append(report.Items,
			importItem(inv.ManageID, model.ImportSkip, errs.New(errs.ErrValidation, inv.Reason)))
	}
	for _, b := range res.ToCreate {
		err := s.repo.CreateBook(ctx, b)
		report.Items = append(report.Items, importItem(b.ManageID, model.ImportCreate, err))
		if err != nil {
			report.Failed++
			continue
		}
		report.Created++
	}
	for _, b := range res.ToUpdate {
		err := s.repo.UpdateBookDetails(ctx, b)
		report.Items = append(report.Items, importItem(b.ManageID, model.ImportUpdate, err))
		if err != nil {
			report.Failed++
			continue
		}
		report.Updated++
	}
	for _, b := range res.ToDelete {
		err := s.repo.DeleteBook(ctx, b.ManageID)
		report.Items = append(report.Items, importItem(b.ManageID, model.ImportDelete, err))
		if err != nil {
			report.Failed++
			continue
		}
		report.Deleted++
	}
	s.log.Info("import applied",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("deleted", report.Deleted),
		zap.Int("failed", report.Failed))
	return report, nil
}

func (s *Service) ExportBooks(ctx context.Context) ([]reconcile.ExportRow, error) {
	books, err := s.repo.ListBooks(ctx, model.ListBooksFilter{})
	if err != nil {
		return nil, err
	}
	return reconcile.Export(books), nil
}

func invalidRows(in []reconcile.Invalid) []model.InvalidRow {
	out := make([]model.InvalidRow, 0, len(in))
	for _, inv := range in {
		out = append(out, model.InvalidRow{Row: inv.Row, ManageID: inv.ManageID, Reason: inv.Reason})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// importItem is itemResult for reconciliation items, counted in ImportItems.
func importItem(manageID string, action model.ImportAction, err error) model.ImportItemResult {
	r := itemResult(manageID, action, err)
	metrics.ImportItems.WithLabelValues(string(action), string(r.Status)).Inc()
	return r
}
