// Package flash carries one-shot messages across a redirect (Post/Redirect/
// Get) in an encrypted cookie.
package flash

import (
	"crypto/sha256"
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Kinds of flash message.
const (
	KindSuccess = "success"
	KindError   = "error"
)

const (
	valuesKey = "flash"
	maxAge    = 10 * 60 // seconds; a flash not read within ten minutes is dropped
)

// Message is one flashed notice.
type Message struct {
	Kind string
	Text string
}

// Store reads and writes flash messages.
type Store struct {
	cookies *sessions.CookieStore
	name    string
	log     *zap.Logger
}

// NewStore creates a Store whose cookie is signed with key and encrypted
// with a block key derived from it.
func NewStore(key, cookieName string, secure bool, logger *zap.Logger) (*Store, error) {
	if key == "" {
		return nil, errors.New("flash: session key is empty; provide 32+ random chars")
	}
	if len(key) < 32 {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(key)))
	}

	block := sha256.Sum256([]byte("flash-block:" + key))
	cs := &sessions.CookieStore{
		Codecs: securecookie.CodecsFromPairs([]byte(key), block[:]),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   maxAge,
			Secure:   secure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
	cs.MaxAge(maxAge)

	return &Store{cookies: cs, name: cookieName, log: logger}, nil
}

// Add queues a message for the next page view.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, kind, text string) {
	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		// An undecodable cookie (rotated key, tampering) is replaced.
		s.log.Debug("flash cookie reset", zap.Error(err))
	}
	sess.AddFlash(kind+"\x00"+text, valuesKey)
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("flash save failed", zap.Error(err))
	}
}

// Pop returns and clears the queued messages. It must run before the
// response body is written because it may set a cookie.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		return nil
	}
	raw := sess.Flashes(valuesKey)
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("flash clear failed", zap.Error(err))
	}

	out := make([]Message, 0, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue
		}
		m := Message{Kind: KindSuccess, Text: str}
		for i := 0; i < len(str); i++ {
			if str[i] == 0 {
				m.Kind, m.Text = str[:i], str[i+1:]
				break
			}
		}
		out = append(out, m)
	}
	return out
}
