package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/tetsupaint/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/email"
	"go.uber.org/zap"
)

type fakeTransport struct {
	err  error
	sent []email.Message
}

func (f *fakeTransport) Send(ctx context.Context, msg email.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testMailer(tr transport) *Mailer {
	return &Mailer{sender: tr, log: zap.NewNop()}
}

func TestSend_MapsMessage(t *testing.T) {
	tr := &fakeTransport{}
	err := testMailer(tr).Send(context.Background(), Email{
		To:       "sales@tetsupaint.co.id",
		ReplyTo:  "budi@example.com",
		Subject:  "Halo",
		TextBody: "text part",
		HTMLBody: "<p>html part</p>",
	})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if len(tr.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(tr.sent))
	}
	msg := tr.sent[0]
	if len(msg.To) != 1 || msg.To[0] != "sales@tetsupaint.co.id" {
		t.Errorf("To = %v", msg.To)
	}
	if msg.ReplyTo != "budi@example.com" || msg.Subject != "Halo" {
		t.Errorf("ReplyTo/Subject = %q/%q", msg.ReplyTo, msg.Subject)
	}
	if msg.TextBody != "text part" || msg.HTMLBody != "<p>html part</p>" {
		t.Errorf("bodies = %q / %q", msg.TextBody, msg.HTMLBody)
	}
}

func TestSend_EmptyRecipient(t *testing.T) {
	tr := &fakeTransport{}
	if err := testMailer(tr).Send(context.Background(), Email{Subject: "x", TextBody: "y"}); err == nil {
		t.Error("Send() with no recipient succeeded")
	}
	if len(tr.sent) != 0 {
		t.Error("transport called without a recipient")
	}
}

func TestSend_TransportError(t *testing.T) {
	relayDown := errors.New("relay down")
	err := testMailer(&fakeTransport{err: relayDown}).Send(context.Background(),
		Email{To: "sales@tetsupaint.co.id", Subject: "x", TextBody: "y"})
	if !errors.Is(err, relayDown) {
		t.Errorf("err = %v, want relay error", err)
	}
}

func TestNew_UsesPantrySender(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", Port: 587, From: "noreply@tetsupaint.co.id"}, zap.NewNop())
	if _, ok := m.sender.(*email.Sender); !ok {
		t.Errorf("sender = %T, want *email.Sender", m.sender)
	}
}

func TestBuildInquiryNotification(t *testing.T) {
	e := BuildInquiryNotification(InquiryEmailData{
		SiteName:  "TETSU Paint",
		Reference: "abcd1234",
		Name:      "Budi <Santoso>",
		Email:     "budi@example.com",
		Subject:   "Product Inquiry",
		Message:   "Need 200L of TETSUMASTIC",
		Received:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	})

	if e.ReplyTo != "budi@example.com" {
		t.Errorf("ReplyTo = %q", e.ReplyTo)
	}
	if !strings.Contains(e.Subject, "Product Inquiry") || !strings.Contains(e.Subject, "abcd1234") {
		t.Errorf("Subject = %q", e.Subject)
	}
	if !strings.Contains(e.TextBody, "Need 200L of TETSUMASTIC") {
		t.Error("text body missing message")
	}
	if strings.Contains(e.HTMLBody, "<Santoso>") {
		t.Error("html body did not escape the visitor name")
	}
	if !strings.Contains(e.HTMLBody, "01 Mar 2026 10:00 UTC") {
		t.Error("html body missing received time")
	}
}

func TestInquiryNotification_FromModel(t *testing.T) {
	in := models.Inquiry{
		Reference: "0123abcd-0000-4000-8000-000000000000",
		Name:      "Sari",
		Email:     "sari@example.com",
		Subject:   models.InquirySubjectSupport,
		Message:   "Primer peeling after two weeks.",
		CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}

	e := InquiryNotification(in, "TETSU Paint", "sales@tetsupaint.co.id")

	if e.To != "sales@tetsupaint.co.id" {
		t.Errorf("To = %q", e.To)
	}
	if e.ReplyTo != "sari@example.com" {
		t.Errorf("ReplyTo = %q", e.ReplyTo)
	}
	if !strings.Contains(e.Subject, "0123abcd") || strings.Contains(e.Subject, "0123abcd-") {
		t.Errorf("Subject = %q, want short reference", e.Subject)
	}
}
