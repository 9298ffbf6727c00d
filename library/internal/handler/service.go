package handler

import (
	"context"
	"time"

	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/library/internal/reconcile"
	"github.com/asgoh05/geuk-small-library/library/internal/service"
	"github.com/asgoh05/geuk-small-library/pkg/auth"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LibraryService interface {
	Location() *time.Location
	Identify(ctx context.Context, p auth.Principal) (model.Identity, error)

	GetBook(ctx context.Context, manageID string) (model.Book, error)
	ListBooks(ctx context.Context, filter model.ListBooksFilter) ([]model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, manageID string, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, manageID string) error
	DeleteBooks(ctx context.Context, manageIDs []string) (int64, error)
	InsertBooks(ctx context.Context, reqs []model.CreateBookRequest) ([]model.Book, error)
	ReplaceBooks(ctx context.Context, reqs []model.CreateBookRequest) ([]model.Book, error)
	PlanImport(ctx context.Context, rows []model.ImportRow) (model.ImportPlan, error)
	ImportBooks(ctx context.Context, rows []model.ImportRow) (model.ImportReport, error)
	ExportBooks(ctx context.Context) ([]reconcile.ExportRow, error)

	Rent(ctx context.Context, who model.Identity, manageID string) (model.Book, error)
	Extend(ctx context.Context, who model.Identity, manageID string) (model.Book, error)
	Return(ctx context.Context, who model.Identity, manageID string) (model.Book, error)
	ResetRental(ctx context.Context, manageID string) (model.Book, error)
	ResetRentals(ctx context.Context, manageIDs []string) model.BulkResult
	MyLoans(ctx context.Context, who model.Identity) ([]model.Book, error)

	CheckOverdue(ctx context.Context) (model.OverdueReport, error)
	SendOverdueNotices(ctx context.Context, caller model.Identity, req model.SendNoticesRequest) (model.NoticeReport, error)
	SendTestEmail(ctx context.Context, caller model.Identity) (model.NoticeReport, error)
	Stats(ctx context.Context) (model.Stats, error)

	Register(ctx context.Context, p auth.Principal, req model.RegisterRequest) (model.User, error)
	Profile(ctx context.Context, who model.Identity) (model.User, error)
	UpdateProfile(ctx context.Context, who model.Identity, req model.ProfileUpdateRequest) (model.User, error)
	ListUsers(ctx context.Context) (model.ListUsers, error)
	UserAction(ctx context.Context, caller model.Identity, req model.UserActionRequest) (model.User, error)
	PreviewRentalMigration(ctx context.Context) (model.MigrationReport, error)
	ApplyRentalMigration(ctx context.Context) (model.MigrationReport, error)
}

var _ LibraryService = (*service.Service)(nil)
