// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/tetsupaint/internal/app/catalog"
	"github.com/dalemusser/tetsupaint/internal/app/content"
	"github.com/dalemusser/tetsupaint/internal/app/resources"
	inquirystore "github.com/dalemusser/tetsupaint/internal/app/store/inquiries"
	"github.com/dalemusser/tetsupaint/internal/app/system/mailer"
	"github.com/dalemusser/tetsupaint/internal/app/system/ratelimit"
	"github.com/dalemusser/tetsupaint/internal/app/system/tasks"
	"github.com/dalemusser/tetsupaint/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/jobs"
	"go.uber.org/zap"
)

const (
	limiterIdle = 2 * time.Hour

	notifyRetryMinAge = 5 * time.Minute
	notifyRetryMaxAge = 72 * time.Hour
	notifyRetryBatch  = 20
)

// siteResources is what Startup prepares for BuildHandler and Shutdown.
type siteResources struct {
	Catalog *catalog.Store
	Content *content.Site
	Limiter *ratelimit.Limiter
	Mailer  *mailer.Mailer // nil when no SMTP host is configured

	stopJobs  func(context.Context) error
	closeLive func() int
}

// site is set by Startup. WAFFLE runs the hooks in order on one goroutine.
var site *siteResources

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It loads
// the catalog and page copy, registers shared templates and starts the
// background jobs (rate-limit sweep, notification retry).
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Ping:  appCfg.TimeoutPing,
		Short: appCfg.TimeoutShort,
		Mail:  appCfg.TimeoutMail,
	})

	resources.LoadSharedTemplates()

	res, err := loadSiteResources(appCfg, logger)
	if err != nil {
		return err
	}

	bg := []*jobs.ScheduledJob{tasks.LimiterSweepJob(res.Limiter, logger, limiterIdle)}
	if res.Mailer != nil && appCfg.InquiryInbox != "" {
		bg = append(bg, tasks.InquiryNotifyRetryJob(
			inquirystore.New(deps.MongoDatabase),
			res.Mailer,
			tasks.NotifyRetry{
				Inbox:    appCfg.InquiryInbox,
				SiteName: res.siteName(),
				MinAge:   notifyRetryMinAge,
				MaxAge:   notifyRetryMaxAge,
				Batch:    notifyRetryBatch,
			},
			logger,
		))
	} else {
		logger.Warn("contact notifications disabled; set mail_smtp_host and inquiry_inbox to enable")
	}

	sched, err := tasks.NewScheduler(logger, bg...)
	if err != nil {
		return err
	}
	sched.Start()
	res.stopJobs = sched.Stop

	site = res
	return nil
}

func loadSiteResources(appCfg AppConfig, logger *zap.Logger) (*siteResources, error) {
	var (
		cat *catalog.Store
		err error
	)
	if appCfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(appCfg.CatalogPath)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		logger.Error("catalog load failed", zap.String("path", appCfg.CatalogPath), zap.Error(err))
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	pageCopy, err := content.Default()
	if err != nil {
		return nil, fmt.Errorf("load site content: %w", err)
	}

	logger.Info("catalog loaded",
		zap.Int("products", len(cat.Products())),
		zap.Int("projects", len(cat.Projects())),
		zap.Strings("categories", cat.Categories()))

	res := &siteResources{
		Catalog: cat,
		Content: pageCopy,
		Limiter: ratelimit.New(float64(appCfg.ContactRatePerHour), appCfg.ContactBurst),
	}
	if appCfg.MailSMTPHost != "" {
		res.Mailer = mailer.New(mailer.Config{
			Host:     appCfg.MailSMTPHost,
			Port:     appCfg.MailSMTPPort,
			User:     appCfg.MailSMTPUser,
			Pass:     appCfg.MailSMTPPass,
			From:     appCfg.MailFrom,
			FromName: appCfg.MailFromName,
			Timeout:  appCfg.TimeoutMail,
		}, logger)
	}
	return res, nil
}

// siteName is the sender-facing name used in notification emails.
func (s *siteResources) siteName() string {
	return s.Content.Brand + " " + s.Content.BrandSuffix
}
