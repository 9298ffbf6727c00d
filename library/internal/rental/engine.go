// Package rental holds the rent, extend and return rules for a single book.
//
// Business rules:
//   - A book can be rented only while it is on the shelf.
//   - A returned book is blocked for everyone for CooldownDays after its
//     return date; it becomes rentable on return date + CooldownDays + 1.
//   - A loan is due at the end of day rent date + LoanDays.
//   - While the total window is shorter than MaxLoanDays the borrower may
//     extend it once to rent date + MaxLoanDays.
//   - Only the borrower returns a book. Any email of the borrower's identity
//     is accepted.
//
// The engine never touches storage. It returns the new RentalInfo and the
// caller persists it.
package rental

import (
	"sort"
	"strings"
	"time"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/pkg/datetime"
)

const (
	DefaultLoanDays     = 14
	DefaultMaxLoanDays  = 21
	DefaultCooldownDays = 2
)

type Engine struct {
	LoanDays     int
	MaxLoanDays  int
	CooldownDays int
}

func NewEngine() Engine {
	return Engine{
		LoanDays:     DefaultLoanDays,
		MaxLoanDays:  DefaultMaxLoanDays,
		CooldownDays: DefaultCooldownDays,
	}
}

// Rent checks a book out to the identity at rentDate.
func (e Engine) Rent(book model.Book, who model.Identity, rentDate time.Time) (model.RentalInfo, error) {
	if rentDate.IsZero() {
		return model.RentalInfo{}, errs.ErrEmptyDate
	}
	email := who.ContactEmail()
	if email == "" {
		return model.RentalInfo{}, errs.ErrEmptyEmail
	}
	if !book.Rental.Available {
		return model.RentalInfo{}, errs.ErrNotAvailable
	}
	if e.InCooldown(book, rentDate) {
		return model.RentalInfo{}, errs.ErrCooldown
	}

	rentedAt := rentDate
	due := datetime.EndOfDay(datetime.AddDays(rentDate, e.LoanDays))
	return model.RentalInfo{
		Available:          false,
		RentDate:           &rentedAt,
		ExpectedReturnDate: &due,
		ReturnDate:         nil,
		BorrowerName:       who.RealName,
		BorrowerEmail:      email,
	}, nil
}

// InCooldown reports whether the last return still blocks a rent at date.
func (e Engine) InCooldown(book model.Book, date time.Time) bool {
	r := book.Rental
	if r.ReturnDate == nil {
		return false
	}
	return datetime.RemainingDays(datetime.AddDays(*r.ReturnDate, e.CooldownDays), date) >= 0
}

// Extend stretches the current loan to MaxLoanDays from its original rent date.
func (e Engine) Extend(book model.Book, who model.Identity) (model.RentalInfo, error) {
	r := book.Rental
	if !r.OnLoan() || r.RentDate == nil || r.ExpectedReturnDate == nil {
		return model.RentalInfo{}, errs.ErrNotOnLoan
	}
	if !who.Owns(r.BorrowerEmail) {
		return model.RentalInfo{}, errs.ErrNotBorrower
	}
	if datetime.DaysBetween(*r.ExpectedReturnDate, *r.RentDate) >= e.MaxLoanDays {
		return model.RentalInfo{}, errs.ErrExtensionExceeded
	}

	due := datetime.EndOfDay(datetime.AddDays(*r.RentDate, e.MaxLoanDays))
	r.ExpectedReturnDate = &due
	return r, nil
}

// Return puts the book back on the shelf and keeps the borrower as history.
func (e Engine) Return(book model.Book, who model.Identity, returnDate time.Time) (model.RentalInfo, error) {
	if returnDate.IsZero() {
		return model.RentalInfo{}, errs.ErrEmptyDate
	}
	r := book.Rental
	if !r.OnLoan() {
		return model.RentalInfo{}, errs.ErrNotOnLoan
	}
	if !who.Owns(r.BorrowerEmail) {
		return model.RentalInfo{}, errs.ErrNotBorrower
	}

	returnedAt := returnDate
	r.Available = true
	r.ReturnDate = &returnedAt
	r.ExpectedReturnDate = nil
	return r, nil
}

// Reset erases the rental history. Applying it twice changes nothing.
func (e Engine) Reset() model.RentalInfo {
	return model.RentalInfo{Available: true}
}

// RemainingDays is negative once the loan is overdue. ok is false when the
// book has no due date.
func (e Engine) RemainingDays(book model.Book, now time.Time) (days int, ok bool) {
	r := book.Rental
	if r.Available || r.ExpectedReturnDate == nil {
		return 0, false
	}
	return datetime.RemainingDays(*r.ExpectedReturnDate, now), true
}

func (e Engine) IsOverdue(book model.Book, now time.Time) bool {
	days, ok := e.RemainingDays(book, now)
	return ok && days < 0
}

// OverdueDays is zero for books that are not overdue.
func (e Engine) OverdueDays(book model.Book, now time.Time) int {
	days, ok := e.RemainingDays(book, now)
	if !ok || days >= 0 {
		return 0
	}
	return -days
}

// ActiveLoans returns the books currently on loan under any of the identity's
// emails, ordered by manage id.
func (e Engine) ActiveLoans(books []model.Book, who model.Identity) []model.Book {
	loans := make([]model.Book, 0)
	for _, b := range books {
		if b.Rental.OnLoan() && who.Owns(b.Rental.BorrowerEmail) {
			loans = append(loans, b)
		}
	}
	sort.Slice(loans, func(i, j int) bool {
		return strings.Compare(loans[i].ManageID, loans[j].ManageID) < 0
	})
	return loans
}
