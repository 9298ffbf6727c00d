// Package mail sends HTML mail over SMTP.
package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	cb "github.com/asgoh05/geuk-small-library/pkg/circuit_breaker"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Config struct {
	Host     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	Port     string `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USER"`
	Password string `envconfig:"SMTP_PASSWORD"`
	// ImplicitTLS dials TLS directly (port 465). Otherwise STARTTLS is used
	// when the server offers it.
	ImplicitTLS bool          `envconfig:"SMTP_IMPLICIT_TLS" default:"false"`
	Timeout     time.Duration `envconfig:"SMTP_TIMEOUT" default:"30s"`
}

type Message struct {
	FromName string
	From     string
	To       string
	Subject  string
	HTML     string
	Text     string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPSender struct {
	cfg     Config
	breaker cb.CircuitBreaker
}

func NewSMTPSender(cfg Config, breaker cb.CircuitBreaker) *SMTPSender {
	return &SMTPSender{cfg: cfg, breaker: breaker}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if _, err := mail.ParseAddress(msg.To); err != nil {
		return errors.Wrapf(err, "recipient %q", msg.To)
	}
	body, err := msg.Bytes()
	if err != nil {
		return err
	}
	send := func() error { return s.send(ctx, msg.From, msg.To, body) }
	if s.breaker == nil {
		return send()
	}
	return s.breaker.Call(send)
}

func (s *SMTPSender) send(ctx context.Context, from, to string, body []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	dialer := &net.Dialer{Timeout: s.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrap(err, "connect to SMTP server")
	}
	defer func() { _ = conn.Close() }()
	if s.cfg.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(s.cfg.Timeout))
	}

	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
	if s.cfg.ImplicitTLS {
		conn = tls.Client(conn, tlsCfg)
	}
	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return errors.Wrap(err, "smtp.NewClient")
	}
	defer func() { _ = client.Close() }()

	if !s.cfg.ImplicitTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err = client.StartTLS(tlsCfg); err != nil {
				return errors.Wrap(err, "starttls")
			}
		}
	}
	if s.cfg.Username != "" && s.cfg.Password != "" {
		if err = client.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return errors.Wrap(err, "smtp auth")
		}
	}
	if err = client.Mail(from); err != nil {
		return errors.Wrap(err, "mail from")
	}
	if err = client.Rcpt(to); err != nil {
		return errors.Wrap(err, "rcpt to")
	}
	w, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "data")
	}
	if _, err = w.Write(body); err != nil {
		return errors.Wrap(err, "write body")
	}
	if err = w.Close(); err != nil {
		return errors.Wrap(err, "close body")
	}
	return client.Quit()
}

// Bytes renders the message as multipart/alternative with base64 parts.
func (m Message) Bytes() ([]byte, error) {
	if m.From == "" || m.To == "" {
		return nil, errors.New("from and to are required")
	}
	var buf bytes.Buffer
	from := (&mail.Address{Name: m.FromName, Address: m.From}).String()
	to := (&mail.Address{Address: m.To}).String()
	boundary := "alt_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", m.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	writePart(&buf, boundary, "text/plain", m.Text)
	writePart(&buf, boundary, "text/html", m.HTML)
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes(), nil
}

func writePart(buf *bytes.Buffer, boundary, contentType, body string) {
	fmt.Fprintf(buf, "--%s\r\n", boundary)
	fmt.Fprintf(buf, "Content-Type: %s; charset=UTF-8\r\n", contentType)
	buf.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
	enc := base64.StdEncoding.EncodeToString([]byte(body))
	for len(enc) > 76 {
		buf.WriteString(enc[:76])
		buf.WriteString("\r\n")
		enc = enc[76:]
	}
	buf.WriteString(enc)
	buf.WriteString("\r\n")
}
