package sheet

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/reconcile"
)

func TestReadRows(t *testing.T) {
	t.Parallel()
	in := "\ufeffno.,title,author,등록일,comment,extra\n" +
		"0001, Go in Action ,Kennedy,2023-09-04,,x\n" +
		",,,,,\n" +
		"0002,Rust,Klabnik,,cover torn\n"

	rows, err := ReadRows(strings.NewReader(in), time.UTC)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "0001", rows[0].ManageID)
	require.Equal(t, "Go in Action", rows[0].Title)
	require.Equal(t, time.Date(2023, 9, 4, 0, 0, 0, 0, time.UTC), rows[0].RegisteredDate.Time)
	require.True(t, rows[1].RegisteredDate.IsZero())
	require.Equal(t, "cover torn", rows[1].Comments)
}

func TestReadRows_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "no id column", in: "title,author\nGo,Pike\n"},
		{name: "bad date", in: "manage_id,title,author,reg_date\n1,a,b,yesterday\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadRows(strings.NewReader(tt.in), time.UTC)
			require.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

func TestWriteBooks(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := WriteBooks(&buf, []reconcile.ExportRow{
		{ManageID: "0001", Title: "Go", Author: "Pike", RegisteredDate: "2023-09-04"},
		{ManageID: "0002", Title: "Rust, 2nd", Author: "Klabnik", OnLoan: true, BorrowerEmail: "a@co.com", RentDate: "2024-05-02"},
	})
	require.NoError(t, err)

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Equal(t, exportHeader, recs[0])
	require.Equal(t, "", recs[1][5])
	require.Equal(t, "Rust, 2nd", recs[2][1])
	require.Equal(t, "대여중", recs[2][5])
	require.Equal(t, "2024-05-02", recs[2][8])
}

func TestFileName(t *testing.T) {
	t.Parallel()
	require.Equal(t, "books_2024-05-02.csv", FileName(time.Date(2024, 5, 2, 13, 0, 0, 0, time.UTC)))
}
