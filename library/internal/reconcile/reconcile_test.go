package reconcile

import (
	"testing"
	"time"

	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/stretchr/testify/require"
)

var registered = time.Date(2023, time.September, 4, 0, 0, 0, 0, time.UTC)

func book(id, title string) model.Book {
	return model.NewBook(id, title, "author", registered, "")
}

func row(id, title string) model.ImportRow {
	return model.ImportRow{ManageID: id, Title: title, Author: "author", RegisteredDate: model.Date{Time: registered}}
}

func ids(books []model.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.ManageID)
	}
	return out
}

func TestPlan(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		catalog    []model.Book
		rows       []model.ImportRow
		wantCreate []string
		wantUpdate []string
		wantDelete []string
	}{
		{
			name:       "new row is created",
			catalog:    []model.Book{book("A", "X")},
			rows:       []model.ImportRow{row("A", "X"), row("B", "Y")},
			wantCreate: []string{"B"},
			wantUpdate: []string{},
			wantDelete: []string{},
		},
		{
			name:       "missing row is deleted",
			catalog:    []model.Book{book("A", "X"), book("B", "Y")},
			rows:       []model.ImportRow{row("A", "X")},
			wantCreate: []string{},
			wantUpdate: []string{},
			wantDelete: []string{"B"},
		},
		{
			name:       "changed title is updated",
			catalog:    []model.Book{book("A", "X")},
			rows:       []model.ImportRow{row("A", "Z")},
			wantCreate: []string{},
			wantUpdate: []string{"A"},
			wantDelete: []string{},
		},
		{
			name:       "input order does not matter",
			catalog:    []model.Book{book("C", "c"), book("A", "a")},
			rows:       []model.ImportRow{row("D", "d"), row("A", "a2"), row("B", "b")},
			wantCreate: []string{"B", "D"},
			wantUpdate: []string{"A"},
			wantDelete: []string{"C"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Plan(tt.catalog, tt.rows)
			require.Equal(t, tt.wantCreate, ids(res.ToCreate))
			require.Equal(t, tt.wantUpdate, ids(res.ToUpdate))
			require.Equal(t, tt.wantDelete, ids(res.ToDelete))
			require.Empty(t, res.Invalid)
		})
	}
}

func TestPlan_UpdateKeepsRental(t *testing.T) {
	t.Parallel()
	rentDate := registered.AddDate(0, 1, 0)
	due := rentDate.AddDate(0, 0, 14)
	cur := book("A", "X")
	cur.ImgURL = "https://img/a.png"
	cur.Rental = model.RentalInfo{RentDate: &rentDate, ExpectedReturnDate: &due, BorrowerEmail: "a@co.com"}

	res := Plan([]model.Book{cur}, []model.ImportRow{row("A", "Z")})
	require.Len(t, res.ToUpdate, 1)
	got := res.ToUpdate[0]
	require.Equal(t, "Z", got.Title)
	require.Equal(t, cur.Rental, got.Rental)
	require.Equal(t, cur.ImgURL, got.ImgURL)
}

func TestPlan_CreatedBooksAreAvailable(t *testing.T) {
	t.Parallel()
	res := Plan(nil, []model.ImportRow{row("A", "X")})
	require.Len(t, res.ToCreate, 1)
	require.True(t, res.ToCreate[0].Rental.Pristine())
}

func TestPlan_FieldComparison(t *testing.T) {
	t.Parallel()
	cur := book("A", "X")

	sameDay := row("A", "X")
	sameDay.RegisteredDate = model.Date{Time: registered.Add(15 * time.Hour)}
	require.Empty(t, Plan([]model.Book{cur}, []model.ImportRow{sameDay}).ToUpdate)

	nextDay := row("A", "X")
	nextDay.RegisteredDate = model.Date{Time: registered.AddDate(0, 0, 1)}
	require.Len(t, Plan([]model.Book{cur}, []model.ImportRow{nextDay}).ToUpdate, 1)

	blankComments := row("A", "X")
	blankComments.Comments = "   "
	require.Empty(t, Plan([]model.Book{cur}, []model.ImportRow{blankComments}).ToUpdate)

	newComments := row("A", "X")
	newComments.Comments = "cover torn"
	require.Len(t, Plan([]model.Book{cur}, []model.ImportRow{newComments}).ToUpdate, 1)

	otherAuthor := row("A", "X")
	otherAuthor.Author = "someone else"
	require.Len(t, Plan([]model.Book{cur}, []model.ImportRow{otherAuthor}).ToUpdate, 1)
}

func TestPlan_DuplicateLastRowWins(t *testing.T) {
	t.Parallel()
	res := Plan([]model.Book{book("A", "X")}, []model.ImportRow{row("A", "first"), row("A", "second")})
	require.Len(t, res.ToUpdate, 1)
	require.Equal(t, "second", res.ToUpdate[0].Title)
	require.Len(t, res.Warnings, 1)
	require.Contains(t, res.Warnings[0], "manageId A")
}

func TestPlan_InvalidRows(t *testing.T) {
	t.Parallel()
	noTitle := row("B", "")
	res := Plan(
		[]model.Book{book("A", "X"), book("B", "Y")},
		[]model.ImportRow{row("", "orphan"), row("A", "X"), noTitle},
	)
	require.Len(t, res.Invalid, 2)
	require.Equal(t, 1, res.Invalid[0].Row)
	require.Equal(t, "B", res.Invalid[1].ManageID)
	require.Equal(t, "title is required", res.Invalid[1].Reason)
	require.True(t, res.Empty())
}

func TestExport(t *testing.T) {
	t.Parallel()
	rentDate := time.Date(2024, time.May, 2, 9, 0, 0, 0, time.UTC)
	due := time.Date(2024, time.May, 16, 23, 59, 59, 0, time.UTC)
	b := book("B", "Y")
	b.Rental = model.RentalInfo{RentDate: &rentDate, ExpectedReturnDate: &due, BorrowerName: "n", BorrowerEmail: "n@co.com"}

	rows := Export([]model.Book{b, book("A", "X")})
	require.Len(t, rows, 2)
	require.Equal(t, "A", rows[0].ManageID)
	require.False(t, rows[0].OnLoan)
	require.Equal(t, "", rows[0].RentDate)
	require.Equal(t, "2023-09-04", rows[0].RegisteredDate)
	require.True(t, rows[1].OnLoan)
	require.Equal(t, "2024-05-02", rows[1].RentDate)
	require.Equal(t, "2024-05-16", rows[1].ExpectedReturnDate)
}
