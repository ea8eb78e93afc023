// internal/app/features/contact/handler.go
package contact

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/tetsupaint/internal/app/system/flash"
	"github.com/dalemusser/tetsupaint/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tetsupaint/internal/app/system/inputval"
	"github.com/dalemusser/tetsupaint/internal/app/system/mailer"
	"github.com/dalemusser/tetsupaint/internal/app/system/ratelimit"
	"github.com/dalemusser/tetsupaint/internal/app/system/timeouts"
	"github.com/dalemusser/tetsupaint/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	contactAnchor = "/#contact"
	maxFormBytes  = 32 << 10
)

// InquiryStore persists inquiries.
type InquiryStore interface {
	Create(ctx context.Context, in models.Inquiry) (models.Inquiry, error)
	MarkNotified(ctx context.Context, id primitive.ObjectID) error
}

// Sender delivers email.
type Sender interface {
	Send(ctx context.Context, e mailer.Email) error
}

// Flasher queues a message for the next page view.
type Flasher interface {
	Add(w http.ResponseWriter, r *http.Request, kind, text string)
}

type Handler struct {
	Store    InquiryStore
	Mail     Sender // nil disables notifications
	Limiter  *ratelimit.Limiter
	Flash    Flasher
	Inbox    string
	SiteName string
	HashKey  []byte
	Log      *zap.Logger
}

func NewHandler(store InquiryStore, mail Sender, limiter *ratelimit.Limiter, fl Flasher,
	inbox, siteName string, hashKey []byte, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    store,
		Mail:     mail,
		Limiter:  limiter,
		Flash:    fl,
		Inbox:    inbox,
		SiteName: siteName,
		HashKey:  hashKey,
		Log:      logger,
	}
}

// ServeContact sends visitors to the contact section of the landing page.
// GET /contact
func (h *Handler) ServeContact(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, contactAnchor, http.StatusSeeOther)
}

// HandleSubmit accepts the contact form.
// POST /contact
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.Log.Debug("contact: bad form", zap.Error(err))
		h.Flash.Add(w, r, flash.KindError, "We could not read your message. Please try again.")
		http.Redirect(w, r, contactAnchor, http.StatusSeeOther)
		return
	}

	// Invalid forms are rejected before a token is spent, so typos do not
	// count against the visitor.
	f := parseForm(r)
	if msg := f.validate(); msg != "" {
		h.Flash.Add(w, r, flash.KindError, msg)
		http.Redirect(w, r, contactAnchor, http.StatusSeeOther)
		return
	}

	clientHash := ratelimit.ClientKey(r, h.HashKey)
	if !h.Limiter.Allow(clientHash) {
		h.Log.Info("contact: rate limited", zap.String("client", clientHash))
		h.Flash.Add(w, r, flash.KindError, "You have sent several messages recently. Please try again later.")
		w.Header().Set("Retry-After", "3600")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`<p>Too many messages. <a href="/#contact">Back</a></p>`))
		return
	}

	in := models.Inquiry{
		Name:       f.Name,
		Email:      f.Email,
		Subject:    f.Subject,
		Message:    f.Message,
		ClientHash: clientHash,
		UserAgent:  truncate(r.UserAgent(), 300),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	saved, err := h.Store.Create(ctx, in)
	cancel()
	if err != nil {
		h.Log.Error("contact: store inquiry", zap.Error(err))
		h.Flash.Add(w, r, flash.KindError, "Sorry, we could not send your message. Please email us directly.")
		http.Redirect(w, r, contactAnchor, http.StatusSeeOther)
		return
	}

	h.notify(r.Context(), saved)

	h.Log.Info("contact: inquiry received",
		zap.String("reference", saved.Reference),
		zap.String("subject", saved.Subject))
	h.Flash.Add(w, r, flash.KindSuccess,
		"Thank you. Your reference is "+saved.ShortReference()+".")
	http.Redirect(w, r, contactAnchor, http.StatusSeeOther)
}

// notify emails the inbox. Failures are logged; the inquiry stays
// unnotified.
func (h *Handler) notify(parent context.Context, in models.Inquiry) {
	if h.Mail == nil || h.Inbox == "" {
		return
	}

	email := mailer.InquiryNotification(in, h.SiteName, h.Inbox)

	ctx, cancel := context.WithTimeout(parent, timeouts.Mail())
	defer cancel()
	if err := h.Mail.Send(ctx, email); err != nil {
		h.Log.Warn("contact: notification failed",
			zap.String("reference", in.Reference), zap.Error(err))
		return
	}

	mctx, mcancel := context.WithTimeout(parent, timeouts.Short())
	defer mcancel()
	if err := h.Store.MarkNotified(mctx, in.ID); err != nil {
		h.Log.Warn("contact: mark notified", zap.String("reference", in.Reference), zap.Error(err))
	}
}

// inquiryForm is the submitted form after cleaning.
type inquiryForm struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func parseForm(r *http.Request) inquiryForm {
	return inquiryForm{
		Name:    inputval.Clean(htmlsanitize.StripTags(r.PostFormValue("name"))),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Subject: models.NormalizeInquirySubject(r.PostFormValue("subject")),
		Message: inputval.CleanMultiline(htmlsanitize.StripTags(r.PostFormValue("message"))),
	}
}

// validate returns a visitor-facing message for the first problem found, or
// "" when the form is acceptable.
func (f inquiryForm) validate() string {
	switch {
	case !inputval.LenBetween(f.Name, 1, inputval.MaxNameLen):
		return "Please enter your name (up to 120 characters)."
	case !inputval.IsValidEmail(f.Email):
		return "Please enter a valid email address."
	case !inputval.LenBetween(f.Message, 1, inputval.MaxMessageLen):
		return "Please enter a message (up to 4000 characters)."
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
