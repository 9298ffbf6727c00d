package notify

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/pkg/kafka"
	"github.com/asgoh05/geuk-small-library/pkg/mail"
)

type fakeQueue struct {
	topic string
	key   string
	ev    kafka.NoticeEvent
	err   error
}

func (q *fakeQueue) Enqueue(topic, key string, v any) error {
	q.topic, q.key = topic, key
	q.ev = v.(kafka.NoticeEvent)
	return q.err
}

type fakeMailer struct {
	got mail.Message
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	m.got = msg
	return nil
}

var notice = model.Notice{
	ManageID: "0001",
	FromName: "GEUK 도서관",
	From:     "library@co.com",
	To:       "a@co.com",
	Subject:  "subject",
	HTMLBody: "<p>html</p>",
	TextBody: "text",
}

func TestKafkaSink(t *testing.T) {
	t.Parallel()
	q := &fakeQueue{}
	require.NoError(t, NewKafkaSink(q, kafka.OverdueNoticeTopic).Send(context.Background(), notice))
	require.Equal(t, kafka.OverdueNoticeTopic, q.topic)
	require.Equal(t, "0001", q.key)
	require.Equal(t, "a@co.com", q.ev.To)
	require.Equal(t, "<p>html</p>", q.ev.HTML)
	require.False(t, q.ev.CreatedAt.IsZero())

	q.err = errors.New("broker down")
	require.Error(t, NewKafkaSink(q, kafka.OverdueNoticeTopic).Send(context.Background(), notice))
}

func TestMailSink(t *testing.T) {
	t.Parallel()
	m := &fakeMailer{}
	require.NoError(t, NewMailSink(m).Send(context.Background(), notice))
	require.Equal(t, "a@co.com", m.got.To)
	require.Equal(t, "text", m.got.Text)
	require.Equal(t, "GEUK 도서관", m.got.FromName)
}

func TestLogSink(t *testing.T) {
	t.Parallel()
	require.NoError(t, NewLogSink(zap.NewNop()).Send(context.Background(), notice))
}
