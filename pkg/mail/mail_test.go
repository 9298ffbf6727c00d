package mail

import (
	"context"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	netmail "net/mail"
	"strings"
	"testing"
	"time"

	cb "github.com/asgoh05/geuk-small-library/pkg/circuit_breaker"
	"github.com/stretchr/testify/require"
)

func TestMessage_Bytes(t *testing.T) {
	t.Parallel()
	msg := Message{
		FromName: "GEUK 도서관",
		From:     "library@co.com",
		To:       "gildong@co.com",
		Subject:  "[GEUK 도서관] 도서 연체 알림",
		HTML:     "<p>안녕하세요</p>",
		Text:     "안녕하세요",
	}
	raw, err := msg.Bytes()
	require.NoError(t, err)

	parsed, err := netmail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)
	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	require.Equal(t, msg.Subject, subject)

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/alternative", mediaType)

	mr := multipart.NewReader(parsed.Body, params["boundary"])
	var bodies []string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(base64.NewDecoder(base64.StdEncoding, p))
		require.NoError(t, err)
		bodies = append(bodies, string(data))
	}
	require.Equal(t, []string{msg.Text, msg.HTML}, bodies)
}

func TestMessage_BytesRequiresAddresses(t *testing.T) {
	t.Parallel()
	_, err := Message{To: "a@co.com"}.Bytes()
	require.Error(t, err)
}

func TestSMTPSender_BreakerOpens(t *testing.T) {
	t.Parallel()
	breaker := cb.New(cb.Config{Window: 1, FailureRatio: 1, OpenTimeout: time.Hour})
	s := NewSMTPSender(Config{Host: "127.0.0.1", Port: "1", Timeout: time.Second}, breaker)
	msg := Message{From: "library@co.com", To: "a@co.com", Text: "x", HTML: "x"}

	err := s.Send(context.Background(), msg)
	require.Error(t, err)
	require.NotErrorIs(t, err, cb.ErrOpenCB)

	err = s.Send(context.Background(), msg)
	require.ErrorIs(t, err, cb.ErrOpenCB)
}

func TestSMTPSender_RejectsBadRecipient(t *testing.T) {
	t.Parallel()
	s := NewSMTPSender(Config{Host: "127.0.0.1", Port: "1"}, nil)
	require.Error(t, s.Send(context.Background(), Message{From: "l@co.com", To: "not an address"}))
}
