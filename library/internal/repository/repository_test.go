package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/library/migrations"
	"github.com/asgoh05/geuk-small-library/pkg/postgres"
)

var registered = time.Date(2023, time.March, 2, 0, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) *repository {
	t.Helper()
	db, err := postgres.NewPostgresDB(context.Background(),
		&postgres.DB{Driver: postgres.DriverSQLite, DSN: ":memory:"}, migrations.MigrationFiles)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo, err := NewRepository(db, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func onLoan(b model.Book, email string, rentDate time.Time) model.Book {
	due := rentDate.AddDate(0, 0, 14)
	b.Rental = model.RentalInfo{RentDate: &rentDate, ExpectedReturnDate: &due, BorrowerName: "n", BorrowerEmail: email}
	return b
}

func TestRepository_Books(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)

	a := model.NewBook("0001", "Go", "Pike", registered, "")
	b := onLoan(model.NewBook("0002", "Rust", "Klabnik", registered, "worn"), "Gildong@co.com", registered.AddDate(0, 1, 0))
	require.NoError(t, repo.CreateBook(ctx, a))
	require.NoError(t, repo.InsertBooks(ctx, []model.Book{b}))
	require.ErrorIs(t, repo.CreateBook(ctx, a), errs.ErrDuplicateManageID)

	got, err := repo.GetBook(ctx, "0002")
	require.NoError(t, err)
	require.Equal(t, "worn", got.Comments)
	require.False(t, got.Rental.Available)
	require.True(t, got.Rental.RentDate.Equal(*b.Rental.RentDate))
	require.Nil(t, got.Rental.ReturnDate)

	_, err = repo.GetBook(ctx, "9999")
	require.ErrorIs(t, err, errs.ErrBookNotFound)
	require.ErrorIs(t, err, errs.ErrNotFound)

	all, err := repo.ListBooks(ctx, model.ListBooksFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	available, err := repo.ListBooks(ctx, model.ListBooksFilter{OnlyAvailable: true})
	require.NoError(t, err)
	require.Len(t, available, 1)
	rented, err := repo.ListRented(ctx)
	require.NoError(t, err)
	require.Len(t, rented, 1)

	loans, err := repo.ListActiveLoans(ctx, []string{"gildong@CO.com", "other@gmail.com"})
	require.NoError(t, err)
	require.Len(t, loans, 1)
	require.Equal(t, "0002", loans[0].ManageID)

	a.Title = "The Go Programming Language"
	a.Rental.Available = false
	require.NoError(t, repo.UpdateBookDetails(ctx, a))
	got, err = repo.GetBook(ctx, "0001")
	require.NoError(t, err)
	require.Equal(t, "The Go Programming Language", got.Title)
	require.True(t, got.Rental.Available)

	require.NoError(t, repo.DeleteBook(ctx, "0001"))
	require.ErrorIs(t, repo.DeleteBook(ctx, "0001"), errs.ErrBookNotFound)
	n, err := repo.DeleteBooks(ctx, []string{"0002", "0003"})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestRepository_InsertBooksIsAtomic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)
	require.NoError(t, repo.CreateBook(ctx, model.NewBook("0002", "t", "a", registered, "")))

	err := repo.InsertBooks(ctx, []model.Book{
		model.NewBook("0001", "t", "a", registered, ""),
		model.NewBook("0002", "t", "a", registered, ""),
	})
	require.ErrorIs(t, err, errs.ErrDuplicateManageID)
	_, err = repo.GetBook(ctx, "0001")
	require.ErrorIs(t, err, errs.ErrBookNotFound)

	replaced, err := repo.ReplaceBooks(ctx, []model.Book{
		model.NewBook("0001", "new", "a", registered, ""),
		model.NewBook("0002", "replaced", "a", registered, ""),
	})
	require.NoError(t, err)
	require.Len(t, replaced, 2)
	got, err := repo.GetBook(ctx, "0002")
	require.NoError(t, err)
	require.Equal(t, "replaced", got.Title)
}

func TestRepository_ReplaceBooksKeepsLoans(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)
	require.NoError(t, repo.CreateBook(ctx, onLoan(model.NewBook("0001", "t", "a", registered, ""), "a@co.com", registered)))

	replaced, err := repo.ReplaceBooks(ctx, []model.Book{
		model.NewBook("0001", "second edition", "a", registered, "rebound"),
		model.NewBook("0002", "new", "a", registered, ""),
	})
	require.NoError(t, err)
	require.False(t, replaced[0].Rental.Available)
	require.True(t, replaced[1].Rental.Available)

	got, err := repo.GetBook(ctx, "0001")
	require.NoError(t, err)
	require.Equal(t, "second edition", got.Title)
	require.Equal(t, "rebound", got.Comments)
	require.False(t, got.Rental.Available)
	require.Equal(t, "a@co.com", got.Rental.BorrowerEmail)
	require.NotNil(t, got.Rental.ExpectedReturnDate)

	loans, err := repo.ListActiveLoans(ctx, []string{"a@co.com"})
	require.NoError(t, err)
	require.Len(t, loans, 1)
}

func TestRepository_UpdateRental(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)
	book := model.NewBook("0001", "t", "a", registered, "")
	require.NoError(t, repo.CreateBook(ctx, book))

	rented := onLoan(book, "a@co.com", registered).Rental
	require.NoError(t, repo.UpdateRental(ctx, "0001", book.Rental, rented))

	// second writer still believes the book is on the shelf
	err := repo.UpdateRental(ctx, "0001", book.Rental, onLoan(book, "b@co.com", registered).Rental)
	require.ErrorIs(t, err, errs.ErrConcurrentUpdate)
	require.ErrorIs(t, err, errs.ErrConflict)

	err = repo.UpdateRental(ctx, "9999", book.Rental, rented)
	require.ErrorIs(t, err, errs.ErrBookNotFound)

	got, err := repo.GetBook(ctx, "0001")
	require.NoError(t, err)
	require.Equal(t, "a@co.com", got.Rental.BorrowerEmail)
}

func TestRepository_UpdateRentalRace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)
	book := model.NewBook("0001", "t", "a", registered, "")
	require.NoError(t, repo.CreateBook(ctx, book))

	const writers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.UpdateRental(ctx, "0001", book.Rental, onLoan(book, "x@co.com", registered).Rental)
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, success)
}

func TestRepository_Users(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)

	u1 := model.User{
		ID: "u1", RealName: "홍길동", PrimaryEmail: "Gildong@Gmail.com", OrganizationEmail: "gildong@co.com",
		ExternalIdentityID: "google|1", RegisteredAt: registered,
	}
	u2 := model.User{
		ID: "u2", RealName: "김철수", PrimaryEmail: "cheolsu@gmail.com",
		ExternalIdentityID: "google|2", RegisteredAt: registered.AddDate(0, 0, 1),
	}
	require.NoError(t, repo.CreateUser(ctx, u1))
	require.NoError(t, repo.CreateUser(ctx, u2))

	dup := u2
	dup.ID = "u3"
	require.ErrorIs(t, repo.CreateUser(ctx, dup), errs.ErrDuplicateUser)

	got, err := repo.FindUserByEmail(ctx, "GILDONG@co.com")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)
	got, err = repo.FindUserByEmail(ctx, "gildong@gmail.com")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)
	_, err = repo.FindUserByEmail(ctx, "nobody@co.com")
	require.ErrorIs(t, err, errs.ErrUserNotFound)

	got, err = repo.FindUserByExternalID(ctx, "google|2")
	require.NoError(t, err)
	require.Equal(t, "", got.OrganizationEmail)

	require.ErrorIs(t, repo.UpdateUserProfile(ctx, "u2", "김철수", "GILDONG@co.com"), errs.ErrEmailTaken)
	require.ErrorIs(t, repo.UpdateUserProfile(ctx, "u2", "김철수", "gildong@gmail.com"), errs.ErrEmailTaken)
	require.NoError(t, repo.UpdateUserProfile(ctx, "u2", "김철수", "cs@co.com"))
	require.NoError(t, repo.UpdateUserProfile(ctx, "u2", "김철순", "cheolsu@co.com"))
	_, err = repo.FindUserByEmail(ctx, "cs@co.com")
	require.ErrorIs(t, err, errs.ErrUserNotFound)
	require.ErrorIs(t, repo.UpdateUserProfile(ctx, "nope", "x", ""), errs.ErrUserNotFound)

	require.NoError(t, repo.SetUserFlags(ctx, "u2", model.UserFlags{Banned: true}))
	require.ErrorIs(t, repo.SetUserFlags(ctx, "nope", model.UserFlags{}), errs.ErrUserNotFound)
	got, err = repo.GetUser(ctx, "u2")
	require.NoError(t, err)
	require.True(t, got.Banned)
	require.Equal(t, "김철순", got.RealName)
	require.Equal(t, "cheolsu@co.com", got.OrganizationEmail)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "u2", users[0].ID)

	require.NoError(t, repo.CreateBook(ctx, onLoan(model.NewBook("0001", "t", "a", registered, ""), "x@co.com", registered)))
	stats, err := repo.CountStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.TotalBooks)
	require.Equal(t, 1, stats.RentedBooks)
	require.Equal(t, 2, stats.TotalUsers)
	require.Equal(t, 1, stats.ActiveUsers)
	require.Equal(t, 1, stats.BannedUsers)
}

func TestRepository_UserEmailsAreExclusive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	base := model.User{
		ID: "u1", RealName: "홍길동", PrimaryEmail: "gildong@gmail.com", OrganizationEmail: "gildong@co.com",
		ExternalIdentityID: "google|1", RegisteredAt: registered,
	}
	tests := []struct {
		name string
		user model.User
	}{
		{
			name: "primary is another user's organization email",
			user: model.User{ID: "u2", PrimaryEmail: "Gildong@co.com", ExternalIdentityID: "google|2"},
		},
		{
			name: "organization email is another user's primary",
			user: model.User{ID: "u2", PrimaryEmail: "b@gmail.com", OrganizationEmail: "gildong@gmail.com", ExternalIdentityID: "google|2"},
		},
		{
			name: "organization email is another user's organization email",
			user: model.User{ID: "u2", PrimaryEmail: "b@gmail.com", OrganizationEmail: "gildong@co.com", ExternalIdentityID: "google|2"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := newTestRepo(t)
			require.NoError(t, repo.CreateUser(ctx, base))

			tt.user.RegisteredAt = registered
			require.ErrorIs(t, repo.CreateUser(ctx, tt.user), errs.ErrEmailTaken)

			_, err := repo.GetUser(ctx, tt.user.ID)
			require.ErrorIs(t, err, errs.ErrUserNotFound)
			got, err := repo.FindUserByEmail(ctx, "gildong@co.com")
			require.NoError(t, err)
			require.Equal(t, "u1", got.ID)
		})
	}
}
