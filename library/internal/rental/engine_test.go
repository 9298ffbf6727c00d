package rental

import (
	"errors"
	"testing"
	"time"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/pkg/datetime"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC)

func dayN(n int) time.Time {
	return datetime.AddDays(day0, n)
}

func borrower() model.Identity {
	return model.Identity{
		RealName:          "홍길동",
		PrimaryEmail:      "gildong@gmail.com",
		OrganizationEmail: "gildong@co.com",
		Registered:        true,
	}
}

func freshBook() model.Book {
	return model.NewBook("0001", "Go in Action", "Kennedy", day0, "")
}

func TestEngine_EndToEnd(t *testing.T) {
	t.Parallel()
	e := NewEngine()
	who := model.GuestIdentity("a@co.com", "Guest")
	book := freshBook()

	rented, err := e.Rent(book, who, day0)
	require.NoError(t, err)
	require.False(t, rented.Available)
	require.NoError(t, rented.Validate())
	require.Equal(t, datetime.EndOfDay(dayN(14)), *rented.ExpectedReturnDate)
	require.Equal(t, day0, *rented.RentDate)
	require.Equal(t, "a@co.com", rented.BorrowerEmail)
	book.Rental = rented

	returned, err := e.Return(book, who, dayN(10))
	require.NoError(t, err)
	require.True(t, returned.Available)
	require.Nil(t, returned.ExpectedReturnDate)
	require.Equal(t, dayN(10), *returned.ReturnDate)
	require.Equal(t, "a@co.com", returned.BorrowerEmail)
	require.Equal(t, "Guest", returned.BorrowerName)
	require.True(t, returned.Returned())
}

func TestEngine_Rent(t *testing.T) {
	t.Parallel()
	returnedAt := dayN(10)
	rentedAt := dayN(0)
	due := datetime.EndOfDay(dayN(14))

	tests := []struct {
		name     string
		rental   model.RentalInfo
		who      model.Identity
		rentDate time.Time
		wantErr  error
		wantKind error
	}{
		{
			name:     "available",
			rental:   model.RentalInfo{Available: true},
			who:      borrower(),
			rentDate: day0,
		},
		{
			name:     "on loan",
			rental:   model.RentalInfo{RentDate: &rentedAt, ExpectedReturnDate: &due, BorrowerEmail: "x@co.com"},
			who:      borrower(),
			rentDate: day0,
			wantErr:  errs.ErrNotAvailable,
			wantKind: errs.ErrConflict,
		},
		{
			name:     "day after return",
			rental:   model.RentalInfo{Available: true, ReturnDate: &returnedAt},
			who:      borrower(),
			rentDate: dayN(11),
			wantErr:  errs.ErrCooldown,
			wantKind: errs.ErrConflict,
		},
		{
			name:     "two days after return",
			rental:   model.RentalInfo{Available: true, ReturnDate: &returnedAt},
			who:      borrower(),
			rentDate: dayN(12),
			wantErr:  errs.ErrCooldown,
			wantKind: errs.ErrConflict,
		},
		{
			name:     "three days after return",
			rental:   model.RentalInfo{Available: true, ReturnDate: &returnedAt},
			who:      borrower(),
			rentDate: dayN(13),
		},
		{
			name:     "no rent date",
			rental:   model.RentalInfo{Available: true},
			who:      borrower(),
			wantErr:  errs.ErrEmptyDate,
			wantKind: errs.ErrValidation,
		},
		{
			name:     "no email",
			rental:   model.RentalInfo{Available: true},
			who:      model.Identity{RealName: "nobody"},
			rentDate: day0,
			wantErr:  errs.ErrEmptyEmail,
			wantKind: errs.ErrValidation,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			book := freshBook()
			book.Rental = tt.rental
			got, err := NewEngine().Rent(book, tt.who, tt.rentDate)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, tt.wantKind)
				return
			}
			require.NoError(t, err)
			require.False(t, got.Available)
			require.Nil(t, got.ReturnDate)
			require.Equal(t, "gildong@co.com", got.BorrowerEmail)
			require.Equal(t, datetime.EndOfDay(datetime.AddDays(tt.rentDate, 14)), *got.ExpectedReturnDate)
		})
	}
}

func TestEngine_Extend(t *testing.T) {
	t.Parallel()
	e := NewEngine()
	book := freshBook()
	rented, err := e.Rent(book, borrower(), day0)
	require.NoError(t, err)
	book.Rental = rented

	extended, err := e.Extend(book, borrower())
	require.NoError(t, err)
	require.Equal(t, datetime.EndOfDay(dayN(21)), *extended.ExpectedReturnDate)
	require.Equal(t, day0, *extended.RentDate)
	book.Rental = extended

	_, err = e.Extend(book, borrower())
	require.ErrorIs(t, err, errs.ErrExtensionExceeded)
	require.ErrorIs(t, err, errs.ErrConflict)

	_, err = e.Extend(book, model.GuestIdentity("other@co.com", "Other"))
	require.ErrorIs(t, err, errs.ErrNotBorrower)

	_, err = e.Extend(freshBook(), borrower())
	require.ErrorIs(t, err, errs.ErrNotOnLoan)
}

func TestEngine_ReturnAcrossEmails(t *testing.T) {
	t.Parallel()
	e := NewEngine()
	rentedAt := day0
	due := datetime.EndOfDay(dayN(14))

	tests := []struct {
		name     string
		stored   string
		who      model.Identity
		wantKind error
	}{
		{name: "stored primary, caller has both", stored: "gildong@gmail.com", who: borrower()},
		{name: "stored organization, caller has both", stored: "gildong@co.com", who: borrower()},
		{name: "case insensitive", stored: "GilDong@Co.com", who: borrower()},
		{
			name:     "different person",
			stored:   "gildong@gmail.com",
			who:      model.GuestIdentity("someone@co.com", "Someone"),
			wantKind: errs.ErrAuthorization,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			book := freshBook()
			book.Rental = model.RentalInfo{
				RentDate:           &rentedAt,
				ExpectedReturnDate: &due,
				BorrowerName:       "홍길동",
				BorrowerEmail:      tt.stored,
			}
			got, err := e.Return(book, tt.who, dayN(3))
			if tt.wantKind != nil {
				require.ErrorIs(t, err, tt.wantKind)
				require.ErrorIs(t, err, errs.ErrNotBorrower)
				return
			}
			require.NoError(t, err)
			require.True(t, got.Available)
			require.Equal(t, tt.stored, got.BorrowerEmail)
		})
	}
}

func TestEngine_ReturnRejects(t *testing.T) {
	t.Parallel()
	e := NewEngine()

	_, err := e.Return(freshBook(), borrower(), dayN(1))
	require.ErrorIs(t, err, errs.ErrNotOnLoan)

	_, err = e.Return(freshBook(), borrower(), time.Time{})
	require.True(t, errors.Is(err, errs.ErrValidation))
}

func TestEngine_ResetIdempotent(t *testing.T) {
	t.Parallel()
	e := NewEngine()
	book := freshBook()
	rented, err := e.Rent(book, borrower(), day0)
	require.NoError(t, err)
	book.Rental = rented

	book.Rental = e.Reset()
	once := book.Rental
	book.Rental = e.Reset()
	require.Equal(t, once, book.Rental)
	require.True(t, book.Rental.Pristine())
}

func TestEngine_Overdue(t *testing.T) {
	t.Parallel()
	e := NewEngine()
	book := freshBook()
	rented, err := e.Rent(book, borrower(), day0)
	require.NoError(t, err)
	book.Rental = rented

	require.False(t, e.IsOverdue(book, dayN(13)))
	require.False(t, e.IsOverdue(book, dayN(14)))
	require.True(t, e.IsOverdue(book, dayN(15)))
	require.Equal(t, 1, e.OverdueDays(book, dayN(15)))
	require.Equal(t, 6, e.OverdueDays(book, dayN(20)))
	require.Equal(t, 0, e.OverdueDays(book, dayN(2)))
	require.False(t, e.IsOverdue(freshBook(), dayN(40)))
}

func TestEngine_ActiveLoans(t *testing.T) {
	t.Parallel()
	e := NewEngine()
	due := datetime.EndOfDay(dayN(14))
	onLoan := func(id, email string) model.Book {
		b := model.NewBook(id, "t", "a", day0, "")
		b.Rental = model.RentalInfo{RentDate: &day0, ExpectedReturnDate: &due, BorrowerEmail: email}
		return b
	}
	books := []model.Book{
		onLoan("0003", "gildong@co.com"),
		onLoan("0001", "gildong@gmail.com"),
		onLoan("0002", "other@co.com"),
		freshBook(),
	}
	loans := e.ActiveLoans(books, borrower())
	require.Len(t, loans, 2)
	require.Equal(t, "0001", loans[0].ManageID)
	require.Equal(t, "0003", loans[1].ManageID)
}
