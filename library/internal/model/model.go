package model

import (
	"errors"
	"strings"
	"time"
)

type Book struct {
	ManageID       string     `json:"manageId"`
	Title          string     `json:"title"`
	Author         string     `json:"author"`
	ImgURL         string     `json:"imgUrl"`
	RegisteredDate time.Time  `json:"registeredDate"`
	Comments       string     `json:"comments"`
	Rental         RentalInfo `json:"rental"`
}

// NewBook returns a book on the shelf with no rental history.
func NewBook(manageID, title, author string, registered time.Time, comments string) Book {
	return Book{
		ManageID:       manageID,
		Title:          title,
		Author:         author,
		RegisteredDate: registered,
		Comments:       comments,
		Rental:         RentalInfo{Available: true},
	}
}

// RentalInfo is the current or most recent loan of a book.
type RentalInfo struct {
	Available          bool       `json:"available"`
	RentDate           *time.Time `json:"rentDate"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate"`
	ReturnDate         *time.Time `json:"returnDate"`
	BorrowerName       string     `json:"borrowerName"`
	BorrowerEmail      string     `json:"borrowerEmail"`
}

func (r RentalInfo) OnLoan() bool {
	return !r.Available
}

// Returned reports a book back on the shelf that still carries the last loan.
func (r RentalInfo) Returned() bool {
	return r.Available && r.ReturnDate != nil
}

// Pristine reports a book that was never rented or was reset.
func (r RentalInfo) Pristine() bool {
	return r.Available && r.RentDate == nil && r.ExpectedReturnDate == nil &&
		r.ReturnDate == nil && r.BorrowerName == "" && r.BorrowerEmail == ""
}

type ListBooksFilter struct {
	OnlyAvailable bool
	OnlyRented    bool
}

type CreateBookRequest struct {
	ManageID       string `json:"manageId" validate:"required,max=64"`
	Title          string `json:"title" validate:"required"`
	Author         string `json:"author" validate:"required"`
	ImgURL         string `json:"imgUrl" validate:"omitempty,url"`
	RegisteredDate Date   `json:"registeredDate" validate:"required"`
	Comments       string `json:"comments"`
}

func (r CreateBookRequest) Book() Book {
	b := NewBook(strings.TrimSpace(r.ManageID), r.Title, r.Author, r.RegisteredDate.Time, r.Comments)
	b.ImgURL = r.ImgURL
	return b
}

type UpdateBookRequest struct {
	Title    string  `json:"title" validate:"required"`
	Author   string  `json:"author" validate:"required"`
	ImgURL   *string `json:"imgUrl" validate:"omitempty,url"`
	Comments *string `json:"comments"`
}

// ImportRow is one record of a spreadsheet batch.
type ImportRow struct {
	ManageID       string `json:"manageId"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	RegisteredDate Date   `json:"registeredDate"`
	Comments       string `json:"comments"`
}

type ImportAction string

const (
	ImportCreate ImportAction = "create"
	ImportUpdate ImportAction = "update"
	ImportDelete ImportAction = "delete"
	ImportSkip   ImportAction = "skip"
)

type ItemStatus string

const (
	StatusSuccess ItemStatus = "success"
	StatusFailed  ItemStatus = "failed"
)

type ImportItemResult struct {
	ManageID string       `json:"manageId"`
	Action   ImportAction `json:"action"`
	Status   ItemStatus   `json:"status"`
	Error    string       `json:"error,omitempty"`
}

type ImportReport struct {
	Created  int                `json:"created"`
	Updated  int                `json:"updated"`
	Deleted  int                `json:"deleted"`
	Failed   int                `json:"failed"`
	Warnings []string           `json:"warnings"`
	Items    []ImportItemResult `json:"items"`
}

type BulkResult struct {
	Total   int                `json:"total"`
	Success int                `json:"success"`
	Failed  int                `json:"failed"`
	Items   []ImportItemResult `json:"items"`
}

type Stats struct {
	TotalBooks  int `json:"totalBooks" db:"total_books"`
	TotalUsers  int `json:"totalUsers" db:"total_users"`
	RentedBooks int `json:"rentedBooks" db:"rented_books"`
	OverdueBook int `json:"overdueBooks" db:"overdue_books"`
	ActiveUsers int `json:"activeUsers" db:"active_users"`
	BannedUsers int `json:"bannedUsers" db:"banned_users"`
}

// Date is a calendar date carried as YYYY-MM-DD on the wire.
type Date struct {
	time.Time `json:",inline"`
}

func (d *Date) UnmarshalJSON(b []byte) (err error) {
	s := strings.Trim(string(b), "\"")
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	date, err := time.Parse(time.DateOnly, s)
	if err != nil {
		date, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	d.Time = date
	return
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

// Validate checks the shape of a rental record as stored.
func (r RentalInfo) Validate() error {
	if r.Available {
		if r.ExpectedReturnDate != nil {
			return errors.New("available book has an expected return date")
		}
		return nil
	}
	if r.RentDate == nil || r.ExpectedReturnDate == nil {
		return errors.New("book on loan needs rent and expected return dates")
	}
	if r.BorrowerEmail == "" {
		return errors.New("book on loan needs a borrower email")
	}
	return nil
}

type InvalidRow struct {
	Row      int    `json:"row"`
	ManageID string `json:"manageId,omitempty"`
	Reason   string `json:"reason"`
}

// ImportPlan is a dry run of an import.
type ImportPlan struct {
	ToCreate []Book       `json:"toCreate"`
	ToUpdate []Book       `json:"toUpdate"`
	ToDelete []Book       `json:"toDelete"`
	Invalid  []InvalidRow `json:"invalid"`
	Warnings []string     `json:"warnings"`
}
