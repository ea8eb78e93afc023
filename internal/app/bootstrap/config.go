// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dalemusser/tetsupaint/internal/app/system/inputval"
	"github.com/dalemusser/tetsupaint/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for the TETSU Paint site.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, catalog_path, etc.
//   - Environment variables: TETSU_MONGO_URI, TETSU_CATALOG_PATH, etc.
//   - Command-line flags: --mongo_uri, --catalog_path, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "tetsupaint", Desc: "MongoDB database name"},

	{Name: "catalog_path", Default: "", Desc: "Catalog YAML file (blank uses the built-in catalog)"},

	{Name: "session_key", Default: devSessionKey, Desc: "Flash cookie signing key (must be strong in production)"},
	{Name: "session_name", Default: "tetsu-flash", Desc: "Flash cookie name"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host (blank disables email)"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port (STARTTLS; 465 for implicit TLS)"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@tetsupaint.co.id", Desc: "From email address"},
	{Name: "mail_from_name", Default: "TETSU Paint", Desc: "From display name"},

	// Contact form
	{Name: "inquiry_inbox", Default: "", Desc: "Address that receives contact-form notifications (blank disables)"},
	{Name: "contact_rate_per_hour", Default: 5, Desc: "Contact submissions allowed per client per hour"},
	{Name: "contact_burst", Default: 3, Desc: "Contact submissions a client may send back to back"},

	// Client address: honor X-Forwarded-For / X-Real-IP only behind a trusted proxy
	{Name: "trust_proxy", Default: false, Desc: "Take the client IP from proxy headers (only behind a trusted reverse proxy)"},

	// Live page channel
	{Name: "live_allowed_origins", Default: "", Desc: "Comma-separated origins allowed to open /live (blank: same host)"},

	// Timeouts
	{Name: "timeout_ping", Default: "2s", Desc: "Timeout for health pings"},
	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single-document database operations"},
	{Name: "timeout_mail", Default: "15s", Desc: "Timeout for sending one email"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, TETSU_* for app) and flags,
// merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TETSU", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		CatalogPath: strings.TrimSpace(appValues.String("catalog_path")),

		SessionKey:  appValues.String("session_key"),
		SessionName: appValues.String("session_name"),

		// Email/SMTP
		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		// Contact form
		InquiryInbox:       strings.TrimSpace(appValues.String("inquiry_inbox")),
		ContactRatePerHour: appValues.Int("contact_rate_per_hour"),
		ContactBurst:       appValues.Int("contact_burst"),

		TrustProxy: appValues.Bool("trust_proxy"),

		LiveAllowedOrigins: splitList(appValues.String("live_allowed_origins")),

		TimeoutPing:  appValues.Duration("timeout_ping", timeouts.DefaultPing),
		TimeoutShort: appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMail:  appValues.Duration("timeout_mail", timeouts.DefaultMail),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}

	if appCfg.CatalogPath != "" {
		if _, err := os.Stat(appCfg.CatalogPath); err != nil {
			return fmt.Errorf("catalog_path: %w", err)
		}
	}

	if appCfg.SessionKey == "" {
		return fmt.Errorf("session_key must not be empty")
	}
	if coreCfg.Env == "prod" && appCfg.SessionKey == devSessionKey {
		return fmt.Errorf("session_key must be changed from the development default in prod")
	}

	if appCfg.InquiryInbox != "" && !inputval.IsValidEmail(appCfg.InquiryInbox) {
		return fmt.Errorf("inquiry_inbox %q is not a valid email address", appCfg.InquiryInbox)
	}
	if appCfg.MailSMTPHost != "" && (appCfg.MailSMTPPort <= 0 || appCfg.MailSMTPPort > 65535) {
		return fmt.Errorf("mail_smtp_port %d out of range", appCfg.MailSMTPPort)
	}

	if appCfg.ContactRatePerHour <= 0 {
		return fmt.Errorf("contact_rate_per_hour must be positive, got %d", appCfg.ContactRatePerHour)
	}
	if appCfg.ContactBurst <= 0 {
		return fmt.Errorf("contact_burst must be positive, got %d", appCfg.ContactBurst)
	}

	for name, d := range map[string]time.Duration{
		"timeout_ping":  appCfg.TimeoutPing,
		"timeout_short": appCfg.TimeoutShort,
		"timeout_mail":  appCfg.TimeoutMail,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	return nil
}

// splitList parses a comma-separated config value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
