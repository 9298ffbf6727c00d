package overdue

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/pkg/datetime"
	"github.com/pkg/errors"
)

type NoticeOptions struct {
	FromName string
	From     string
	// TestMode sends every notice to TestRecipient instead of the borrower.
	TestMode      bool
	TestRecipient string
}

var htmlTmpl = template.Must(template.New("overdue").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Malgun Gothic', Arial, sans-serif; line-height: 1.6; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>GEUK 도서관</h1>
  <h2>도서 연체 알림</h2>
  <p>안녕하세요, <strong>{{.RealName}}</strong>님</p>
  <p>대여하신 도서가 <strong style="color: #dc2626;">{{.OverdueDays}}일 연체</strong>되었습니다.</p>
  <ul>
    <li><strong>도서번호:</strong> {{.ManageID}}</li>
    <li><strong>도서명:</strong> {{.Title}}</li>
    <li><strong>저자:</strong> {{.Author}}</li>
    <li><strong>대여일:</strong> {{.RentDate}}</li>
    <li><strong>반납 예정일:</strong> {{.ExpectedReturnDate}}</li>
    <li><strong>연체 일수:</strong> {{.OverdueDays}}일</li>
  </ul>
  <p>가능한 한 빠른 시일 내에 반납해 주시기 바랍니다.</p>
  {{if .TestMode}}<p style="color: #6b7280;">테스트 발송: 원래 수신자 {{.OriginalRecipient}}</p>{{end}}
  <p style="font-size: 11px; color: #6b7280;">이 이메일은 자동으로 발송되었습니다. 회신하지 마세요.</p>
</div>
</body>
</html>
`))

type noticeData struct {
	ManageID           string
	Title              string
	Author             string
	RealName           string
	RentDate           string
	ExpectedReturnDate string
	OverdueDays        int
	TestMode           bool
	OriginalRecipient  string
}

// BuildNotices addresses one notice per entry.
func BuildNotices(entries []model.OverdueEntry, opts NoticeOptions) ([]model.Notice, error) {
	if opts.TestMode && strings.TrimSpace(opts.TestRecipient) == "" {
		return nil, errors.New("test mode needs a test recipient")
	}
	notices := make([]model.Notice, 0, len(entries))
	for _, e := range entries {
		to := e.User.Contact()
		data := noticeData{
			ManageID:           e.Book.ManageID,
			Title:              e.Book.Title,
			Author:             e.Book.Author,
			RealName:           e.User.RealName,
			RentDate:           dateOrDash(e.Book.RentDate),
			ExpectedReturnDate: dateOrDash(e.Book.ExpectedReturnDate),
			OverdueDays:        e.OverdueDays,
			TestMode:           opts.TestMode,
			OriginalRecipient:  to,
		}
		if opts.TestMode {
			to = opts.TestRecipient
		}

		var html bytes.Buffer
		if err := htmlTmpl.Execute(&html, data); err != nil {
			return nil, errors.Wrapf(err, "render notice %s", e.Book.ManageID)
		}
		notices = append(notices, model.Notice{
			ID:          e.Book.ManageID,
			ManageID:    e.Book.ManageID,
			BookTitle:   e.Book.Title,
			RealName:    e.User.RealName,
			OverdueDays: e.OverdueDays,
			FromName:    opts.FromName,
			From:        opts.From,
			To:          to,
			Subject:     fmt.Sprintf("[GEUK 도서관] 도서 연체 알림 - %s (%d일 연체)", e.Book.Title, e.OverdueDays),
			HTMLBody:    html.String(),
			TextBody:    textBody(data),
			TestMode:    opts.TestMode,
		})
	}
	return notices, nil
}

func textBody(d noticeData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "안녕하세요, %s님\n\n", d.RealName)
	fmt.Fprintf(&b, "대여하신 도서가 %d일 연체되었습니다.\n\n", d.OverdueDays)
	fmt.Fprintf(&b, "도서번호: %s\n도서명: %s\n저자: %s\n", d.ManageID, d.Title, d.Author)
	fmt.Fprintf(&b, "대여일: %s\n반납 예정일: %s\n연체 일수: %d일\n", d.RentDate, d.ExpectedReturnDate, d.OverdueDays)
	b.WriteString("\n가능한 한 빠른 시일 내에 반납해 주시기 바랍니다.\n")
	return b.String()
}

func dateOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return datetime.FormatDateISO(*t)
}
