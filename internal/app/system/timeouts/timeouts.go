// Package timeouts provides the timeout values used with context.WithTimeout
// around Mongo, SMTP and other I/O done while serving a request.
//
//   - Ping: health checks
//   - Short: single-document reads and writes (storing an inquiry)
//   - Mail: one SMTP conversation
//
// Defaults apply until Configure is called at startup.
package timeouts

import (
	"sync"
	"time"
)

const (
	DefaultPing  = 2 * time.Second
	DefaultShort = 5 * time.Second
	DefaultMail  = 15 * time.Second
)

var (
	mu    sync.RWMutex
	ping  = DefaultPing
	short = DefaultShort
	mail  = DefaultMail
)

// Ping returns the timeout for connectivity checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for simple single-document operations.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Mail returns the timeout for sending one email.
func Mail() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return mail
}

// Config holds timeout overrides. Zero values keep the current value.
type Config struct {
	Ping  time.Duration
	Short time.Duration
	Mail  time.Duration
}

// Configure applies cfg. Call it during startup, before serving.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Mail > 0 {
		mail = cfg.Mail
	}
}

// Reset restores the defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping, short, mail = DefaultPing, DefaultShort, DefaultMail
}
