// Package reconcile diffs a spreadsheet batch against the catalog.
package reconcile

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/pkg/datetime"
)

// Result lists what a batch changes. The three sets are disjoint and sorted by
// manage id. Nothing is applied here.
type Result struct {
	ToCreate []model.Book
	ToUpdate []model.Book
	ToDelete []model.Book
	Invalid  []Invalid
	Warnings []string
}

// Invalid is a row rejected before diffing. Row is 1-based in batch order.
type Invalid struct {
	Row      int
	ManageID string
	Reason   string
}

func (r Result) Empty() bool {
	return len(r.ToCreate) == 0 && len(r.ToUpdate) == 0 && len(r.ToDelete) == 0
}

// Plan compares rows with catalog.
//
// A manage id repeated in the batch keeps its last row and yields a warning.
// A row with a manage id but missing fields is rejected, yet its id still
// counts as present so the stored book is left alone.
func Plan(catalog []model.Book, rows []model.ImportRow) Result {
	var res Result

	present := make(map[string]struct{}, len(rows))
	latest := make(map[string]model.ImportRow, len(rows))
	seenAt := make(map[string]int, len(rows))
	for i, raw := range rows {
		row := normalize(raw)
		if row.ManageID == "" {
			res.Invalid = append(res.Invalid, Invalid{Row: i + 1, Reason: "manageId is required"})
			continue
		}
		if prev, ok := seenAt[row.ManageID]; ok {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("manageId %s repeated at rows %d and %d, keeping row %d", row.ManageID, prev, i+1, i+1))
		}
		seenAt[row.ManageID] = i + 1
		present[row.ManageID] = struct{}{}
		latest[row.ManageID] = row
	}

	for id, row := range latest {
		if reason := missingField(row); reason != "" {
			res.Invalid = append(res.Invalid, Invalid{Row: seenAt[id], ManageID: id, Reason: reason})
			delete(latest, id)
		}
	}

	stored := make(map[string]model.Book, len(catalog))
	for _, b := range catalog {
		stored[b.ManageID] = b
		if _, ok := present[b.ManageID]; !ok {
			res.ToDelete = append(res.ToDelete, b)
		}
	}

	for id, row := range latest {
		cur, ok := stored[id]
		if !ok {
			res.ToCreate = append(res.ToCreate,
				model.NewBook(id, row.Title, row.Author, row.RegisteredDate.Time, row.Comments))
			continue
		}
		if changed(cur, row) {
			upd := cur
			upd.Title = row.Title
			upd.Author = row.Author
			upd.RegisteredDate = row.RegisteredDate.Time
			upd.Comments = row.Comments
			res.ToUpdate = append(res.ToUpdate, upd)
		}
	}

	sortBooks(res.ToCreate)
	sortBooks(res.ToUpdate)
	sortBooks(res.ToDelete)
	sort.Slice(res.Invalid, func(i, j int) bool { return res.Invalid[i].Row < res.Invalid[j].Row })
	return res
}

func normalize(r model.ImportRow) model.ImportRow {
	r.ManageID = strings.TrimSpace(r.ManageID)
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.Comments = strings.TrimSpace(r.Comments)
	return r
}

func missingField(r model.ImportRow) string {
	switch {
	case r.Title == "":
		return "title is required"
	case r.Author == "":
		return "author is required"
	case r.RegisteredDate.IsZero():
		return "registeredDate is required"
	}
	return ""
}

func changed(cur model.Book, row model.ImportRow) bool {
	return cur.Title != row.Title ||
		cur.Author != row.Author ||
		!datetime.IsSameCalendarDay(cur.RegisteredDate, row.RegisteredDate.Time) ||
		strings.TrimSpace(cur.Comments) != row.Comments
}

func sortBooks(books []model.Book) {
	sort.Slice(books, func(i, j int) bool { return books[i].ManageID < books[j].ManageID })
}

// ExportRow is a book flattened for spreadsheets. Dates are YYYY-MM-DD or empty.
type ExportRow struct {
	ManageID           string
	Title              string
	Author             string
	RegisteredDate     string
	Comments           string
	OnLoan             bool
	BorrowerName       string
	BorrowerEmail      string
	RentDate           string
	ExpectedReturnDate string
	ReturnDate         string
}

func Export(books []model.Book) []ExportRow {
	rows := make([]ExportRow, 0, len(books))
	for _, b := range books {
		rows = append(rows, ExportRow{
			ManageID:           b.ManageID,
			Title:              b.Title,
			Author:             b.Author,
			RegisteredDate:     formatDate(&b.RegisteredDate),
			Comments:           b.Comments,
			OnLoan:             b.Rental.OnLoan(),
			BorrowerName:       b.Rental.BorrowerName,
			BorrowerEmail:      b.Rental.BorrowerEmail,
			RentDate:           formatDate(b.Rental.RentDate),
			ExpectedReturnDate: formatDate(b.Rental.ExpectedReturnDate),
			ReturnDate:         formatDate(b.Rental.ReturnDate),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ManageID < rows[j].ManageID })
	return rows
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return datetime.FormatDateISO(*t)
}
