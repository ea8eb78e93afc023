// internal/app/bootstrap/routes.go
package bootstrap

import (
	"errors"
	"net/http"

	contactfeature "github.com/dalemusser/tetsupaint/internal/app/features/contact"
	errorsfeature "github.com/dalemusser/tetsupaint/internal/app/features/errors"
	healthfeature "github.com/dalemusser/tetsupaint/internal/app/features/health"
	homefeature "github.com/dalemusser/tetsupaint/internal/app/features/home"
	inquirystore "github.com/dalemusser/tetsupaint/internal/app/store/inquiries"
	"github.com/dalemusser/tetsupaint/internal/app/system/flash"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It boots the template engine, builds the
// flash store, and mounts the feature routers: the landing page
// (with its live channel), contact, health and static assets.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	if site == nil {
		return nil, errors.New("bootstrap: Startup has not run")
	}

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	flashStore, err := flash.NewStore(appCfg.SessionKey, appCfg.SessionName, secure, logger)
	if err != nil {
		logger.Error("flash store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// A nil *Mailer must not become a non-nil interface.
	var sender contactfeature.Sender
	if site.Mailer != nil {
		sender = site.Mailer
	}

	r := chi.NewRouter()

	// Proxy headers decide the client IP (and so the rate-limit key) only
	// when the operator says a trusted proxy sets them.
	if appCfg.TrustProxy {
		r.Use(middleware.RealIP)
	}

	errorsHandler := errorsfeature.NewHandler(logger)
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, site.Catalog, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	contactHandler := contactfeature.NewHandler(
		inquirystore.New(deps.MongoDatabase),
		sender,
		site.Limiter,
		flashStore,
		appCfg.InquiryInbox,
		site.siteName(),
		[]byte("client-hash:"+appCfg.SessionKey),
		logger,
	)
	r.Mount("/contact", contactfeature.Routes(contactHandler))

	// Landing page, product fragment and live channel
	homeHandler := homefeature.NewHandler(site.Catalog, site.Content, flashStore, appCfg.LiveAllowedOrigins, logger)
	site.closeLive = homeHandler.CloseLive
	r.Mount("/", homefeature.Routes(homeHandler))

	return r, nil
}
