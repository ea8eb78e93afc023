// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration; ports, TLS and logging are
// WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Catalog override. Empty means the catalog compiled into the binary.
	CatalogPath string

	// Flash cookie configuration
	SessionKey  string // Secret for signing the flash cookie; also keys client hashing
	SessionName string // Flash cookie name

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host; empty disables mail
	MailSMTPPort int    // SMTP server port (587 STARTTLS, 465 implicit TLS)
	MailSMTPUser string // SMTP username (empty for relays without auth)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address
	MailFromName string // From display name

	// Contact form
	InquiryInbox       string // Where new inquiries are emailed; empty disables notifications
	ContactRatePerHour int    // Sustained submissions per client per hour
	ContactBurst       int    // Submissions a client may make back to back

	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP.
	// Enable only when a reverse proxy that overwrites those headers sits in
	// front of the app; otherwise clients can pick their own rate-limit key.
	TrustProxy bool

	// Live page channel
	LiveAllowedOrigins []string // Origins allowed to open /live; empty means same host only

	// I/O timeouts
	TimeoutPing  time.Duration
	TimeoutShort time.Duration
	TimeoutMail  time.Duration
}
