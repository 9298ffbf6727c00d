package overdue

import (
	"context"
	"testing"
	"time"

	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/pkg/datetime"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

func loan(id, email string, due time.Time) model.Book {
	rentDate := datetime.AddDays(due, -14)
	b := model.NewBook(id, "title "+id, "author", rentDate, "")
	b.Rental = model.RentalInfo{
		RentDate:           &rentDate,
		ExpectedReturnDate: &due,
		BorrowerName:       "stored name",
		BorrowerEmail:      email,
	}
	return b
}

func users() []model.User {
	return []model.User{
		{ID: "u1", RealName: "홍길동", PrimaryEmail: "gildong@gmail.com", OrganizationEmail: "gildong@co.com"},
		{ID: "u2", RealName: "김철수", PrimaryEmail: "cheolsu@gmail.com"},
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()
	yesterday := datetime.EndOfDay(datetime.AddDays(now, -1))
	tomorrow := datetime.EndOfDay(datetime.AddDays(now, 1))
	today := datetime.EndOfDay(now)
	weekAgo := datetime.EndOfDay(datetime.AddDays(now, -7))

	returned := loan("0009", "gildong@gmail.com", weekAgo)
	returned.Rental.Available = true
	returned.Rental.ExpectedReturnDate = nil

	books := []model.Book{
		loan("0001", "gildong@gmail.com", yesterday),
		loan("0002", "gildong@co.com", tomorrow),
		loan("0003", "cheolsu@gmail.com", today),
		loan("0004", "stranger@else.com", weekAgo),
		loan("0005", "GILDONG@CO.COM", yesterday),
		returned,
		model.NewBook("0010", "t", "a", now, ""),
	}

	got := Aggregate(books, NewIndex(users()), now)
	require.Len(t, got, 3)

	require.Equal(t, "0004", got[0].Book.ManageID)
	require.Equal(t, 7, got[0].OverdueDays)
	require.False(t, got[0].User.IsRegistered)
	require.Equal(t, UnregisteredName, got[0].User.RealName)
	require.Nil(t, got[0].User.OrganizationEmail)
	require.Equal(t, "stranger@else.com", got[0].User.Contact())

	require.Equal(t, "0001", got[1].Book.ManageID)
	require.Equal(t, 1, got[1].OverdueDays)
	require.True(t, got[1].User.IsRegistered)
	require.Equal(t, "홍길동", got[1].User.RealName)
	require.Equal(t, "gildong@co.com", *got[1].User.OrganizationEmail)

	require.Equal(t, "0005", got[2].Book.ManageID)
	require.Equal(t, "gildong@gmail.com", got[2].User.PrimaryEmail)
}

func TestSelect(t *testing.T) {
	t.Parallel()
	entries := Aggregate([]model.Book{
		loan("0001", "a@co.com", datetime.AddDays(now, -2)),
		loan("0002", "b@co.com", datetime.AddDays(now, -3)),
	}, nil, now)
	require.Len(t, Select(entries, nil), 2)
	sel := Select(entries, []string{" 0001 "})
	require.Len(t, sel, 1)
	require.Equal(t, "0001", sel[0].Book.ManageID)
}

func TestBuildNotices(t *testing.T) {
	t.Parallel()
	entries := Aggregate([]model.Book{
		loan("0001", "gildong@gmail.com", datetime.AddDays(now, -2)),
		loan("0002", "cheolsu@gmail.com", datetime.AddDays(now, -1)),
		loan("0003", "<script>@x.com", datetime.AddDays(now, -1)),
	}, NewIndex(users()), now)

	t.Run("operational", func(t *testing.T) {
		t.Parallel()
		notices, err := BuildNotices(entries, NoticeOptions{FromName: "GEUK 도서관", From: "library@co.com"})
		require.NoError(t, err)
		require.Len(t, notices, 3)
		require.Equal(t, "gildong@co.com", notices[0].To)
		require.Equal(t, "cheolsu@gmail.com", notices[1].To)
		require.Contains(t, notices[0].Subject, "2일 연체")
		require.Contains(t, notices[0].HTMLBody, "0001")
		require.Contains(t, notices[0].TextBody, "반납 예정일: 2024-06-08")
		require.False(t, notices[0].TestMode)
	})

	t.Run("test mode", func(t *testing.T) {
		t.Parallel()
		notices, err := BuildNotices(entries, NoticeOptions{TestMode: true, TestRecipient: "admin@co.com"})
		require.NoError(t, err)
		for _, n := range notices {
			require.Equal(t, "admin@co.com", n.To)
			require.True(t, n.TestMode)
		}
		require.Contains(t, notices[0].HTMLBody, "gildong@co.com")
		require.NotContains(t, notices[2].HTMLBody, "<script>")
		require.Contains(t, notices[2].HTMLBody, "&lt;script&gt;")
	})

	t.Run("test mode without recipient", func(t *testing.T) {
		t.Parallel()
		_, err := BuildNotices(entries, NoticeOptions{TestMode: true})
		require.Error(t, err)
	})
}

func TestSend_ReportsEveryItem(t *testing.T) {
	t.Parallel()
	notices := []model.Notice{
		{ManageID: "0001", To: "a@co.com"},
		{ManageID: "0002", To: "b@co.com"},
		{ManageID: "0003", To: "c@co.com"},
	}
	var attempts []string
	sink := SinkFunc(func(_ context.Context, n model.Notice) error {
		attempts = append(attempts, n.ManageID)
		if n.ManageID == "0002" {
			return errors.New("mailbox unavailable")
		}
		return nil
	})

	report := Send(context.Background(), sink, notices)
	require.Equal(t, []string{"0001", "0002", "0003"}, attempts)
	require.Equal(t, 3, report.Total)
	require.Equal(t, 2, report.SuccessCount)
	require.Equal(t, 1, report.FailCount)
	require.NotEmpty(t, report.BatchID)
	require.Equal(t, model.StatusFailed, report.Results[1].Status)
	require.Equal(t, "mailbox unavailable", report.Results[1].Error)
	require.Equal(t, "b@co.com", report.Results[1].Email)
	require.Equal(t, model.StatusSuccess, report.Results[2].Status)
}

func TestSend_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink := SinkFunc(func(context.Context, model.Notice) error { return nil })
	report := Send(ctx, sink, []model.Notice{{ManageID: "0001"}})
	require.Equal(t, 1, report.FailCount)
}
