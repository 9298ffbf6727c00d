// Package sheet reads import rows from CSV and writes the catalog back out.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/library/internal/reconcile"
	"github.com/asgoh05/geuk-small-library/pkg/datetime"
)

type column int

const (
	colManageID column = iota
	colTitle
	colAuthor
	colRegisteredDate
	colComments
)

var headerAliases = map[string]column{
	"no.":             colManageID,
	"manage id":       colManageID,
	"manage_id":       colManageID,
	"manageid":        colManageID,
	"title":           colTitle,
	"author":          colAuthor,
	"등록일":             colRegisteredDate,
	"reg_date":        colRegisteredDate,
	"registered date": colRegisteredDate,
	"registereddate":  colRegisteredDate,
	"comment":         colComments,
	"comments":        colComments,
	"note":            colComments,
}

var exportHeader = []string{
	"Manage ID", "Title", "Author", "reg_date", "Note",
	"대여중", "최근이용자", "최근이용자(이메일)", "대여일", "반납예정일", "반납일",
}

// ReadRows parses a CSV whose first record is a header. Unknown columns are
// ignored; dates are YYYY-MM-DD or RFC 3339 and read in loc.
func ReadRows(r io.Reader, loc *time.Location) ([]model.ImportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errs.New(errs.ErrValidation, "empty sheet")
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrValidation, "read header", err)
	}
	index := make(map[column]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if c, ok := headerAliases[h]; ok {
			if _, dup := index[c]; !dup {
				index[c] = i
			}
		}
	}
	if _, ok := index[colManageID]; !ok {
		return nil, errs.New(errs.ErrValidation, "sheet has no manage id column")
	}

	rows := make([]model.ImportRow, 0)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Wrap(errs.ErrValidation, fmt.Sprintf("line %d", line), err)
		}
		get := func(c column) string {
			i, ok := index[c]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if isBlank(rec) {
			continue
		}
		row := model.ImportRow{
			ManageID: get(colManageID),
			Title:    get(colTitle),
			Author:   get(colAuthor),
			Comments: get(colComments),
		}
		if s := get(colRegisteredDate); s != "" {
			d, err := datetime.ParseDate(s, loc)
			if err != nil {
				return nil, errs.Wrap(errs.ErrValidation, fmt.Sprintf("line %d", line), err)
			}
			row.RegisteredDate = model.Date{Time: d}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func WriteBooks(w io.Writer, rows []reconcile.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		onLoan := ""
		if r.OnLoan {
			onLoan = "대여중"
		}
		rec := []string{
			r.ManageID, r.Title, r.Author, r.RegisteredDate, r.Comments,
			onLoan, r.BorrowerName, r.BorrowerEmail, r.RentDate, r.ExpectedReturnDate, r.ReturnDate,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FileName is the export attachment name for the given day.
func FileName(now time.Time) string {
	return "books_" + datetime.FormatDateISO(now) + ".csv"
}
