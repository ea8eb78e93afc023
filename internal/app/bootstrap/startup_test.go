package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/tetsupaint/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:           "mongodb://localhost:27017",
		MongoDatabase:      "tetsupaint",
		SessionKey:         devSessionKey,
		SessionName:        "tetsu-flash",
		MailSMTPHost:       "localhost",
		MailSMTPPort:       587,
		ContactRatePerHour: 5,
		ContactBurst:       3,
		TimeoutPing:        2 * time.Second,
		TimeoutShort:       5 * time.Second,
		TimeoutMail:        15 * time.Second,
	}
}

func TestValidateConfig(t *testing.T) {
	dir := t.TempDir()
	catalogFile := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(catalogFile, []byte("products: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{name: "defaults ok", env: "dev", mutate: func(*AppConfig) {}},
		{name: "bad mongo uri", env: "dev", mutate: func(c *AppConfig) { c.MongoURI = "postgres://x" }, wantErr: "MongoDB URI"},
		{name: "empty database", env: "dev", mutate: func(c *AppConfig) { c.MongoDatabase = " " }, wantErr: "mongo_database"},
		{name: "catalog exists", env: "dev", mutate: func(c *AppConfig) { c.CatalogPath = catalogFile }},
		{name: "catalog missing", env: "dev", mutate: func(c *AppConfig) { c.CatalogPath = filepath.Join(dir, "nope.yaml") }, wantErr: "catalog_path"},
		{name: "empty session key", env: "dev", mutate: func(c *AppConfig) { c.SessionKey = "" }, wantErr: "session_key"},
		{name: "dev key in prod", env: "prod", mutate: func(*AppConfig) {}, wantErr: "development default"},
		{name: "strong key in prod", env: "prod", mutate: func(c *AppConfig) { c.SessionKey = strings.Repeat("k", 48) }},
		{name: "bad inbox", env: "dev", mutate: func(c *AppConfig) { c.InquiryInbox = "sales" }, wantErr: "inquiry_inbox"},
		{name: "good inbox", env: "dev", mutate: func(c *AppConfig) { c.InquiryInbox = "sales@tetsupaint.co.id" }},
		{name: "bad port", env: "dev", mutate: func(c *AppConfig) { c.MailSMTPPort = 0 }, wantErr: "mail_smtp_port"},
		{name: "port ignored without host", env: "dev", mutate: func(c *AppConfig) { c.MailSMTPHost = ""; c.MailSMTPPort = 0 }},
		{name: "zero rate", env: "dev", mutate: func(c *AppConfig) { c.ContactRatePerHour = 0 }, wantErr: "contact_rate_per_hour"},
		{name: "zero burst", env: "dev", mutate: func(c *AppConfig) { c.ContactBurst = 0 }, wantErr: "contact_burst"},
		{name: "zero timeout", env: "dev", mutate: func(c *AppConfig) { c.TimeoutMail = 0 }, wantErr: "timeout_mail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{Env: tt.env}, cfg, testLogger())
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://a.example , ,https://b.example,")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("splitList = %q", got)
	}
	if got := splitList(""); got != nil {
		t.Errorf("splitList(\"\") = %q, want nil", got)
	}
}

func TestLoadSiteResources_Default(t *testing.T) {
	res, err := loadSiteResources(validAppConfig(), testLogger())
	if err != nil {
		t.Fatalf("loadSiteResources failed: %v", err)
	}
	if n := len(res.Catalog.Products()); n != 8 {
		t.Errorf("products = %d, want 8", n)
	}
	if res.Content == nil || res.Content.Brand != "TETSU" {
		t.Errorf("content = %+v", res.Content)
	}
	if res.Limiter == nil {
		t.Error("limiter not built")
	}
	if res.Mailer == nil {
		t.Error("mailer not built although mail_smtp_host is set")
	}
	if got := res.siteName(); got != res.Content.Brand+" "+res.Content.BrandSuffix {
		t.Errorf("siteName = %q", got)
	}
}

func TestLoadSiteResources_NoSMTPHost(t *testing.T) {
	cfg := validAppConfig()
	cfg.MailSMTPHost = ""
	res, err := loadSiteResources(cfg, testLogger())
	if err != nil {
		t.Fatalf("loadSiteResources failed: %v", err)
	}
	if res.Mailer != nil {
		t.Error("expected no mailer without an SMTP host")
	}
}

func TestLoadSiteResources_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	yaml := `products:
  - {id: a, name: A, category: Specialty, description: d, features: [x], image: a.png}
projects: []
core_values: []
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := validAppConfig()
	cfg.CatalogPath = path
	res, err := loadSiteResources(cfg, testLogger())
	if err != nil {
		t.Fatalf("loadSiteResources failed: %v", err)
	}
	if cats := res.Catalog.Categories(); len(cats) != 1 || cats[0] != "Specialty" {
		t.Errorf("categories = %q", cats)
	}
}

func TestLoadSiteResources_InvalidCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	yaml := `products:
  - {id: a, name: A, category: Paint}
  - {id: a, name: B, category: Specialty}
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := validAppConfig()
	cfg.CatalogPath = path
	_, err := loadSiteResources(cfg, testLogger())
	if err == nil {
		t.Fatal("expected error for invalid catalog")
	}
	if !strings.Contains(err.Error(), "load catalog") {
		t.Errorf("error = %v", err)
	}
}

func TestEnsureSchema_CreatesInquiryIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db}
	if err := EnsureSchema(ctx, &config.CoreConfig{}, validAppConfig(), deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	cur, err := db.Collection("inquiries").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes: %v", err)
	}
	var idx []bson.M
	if err := cur.All(ctx, &idx); err != nil {
		t.Fatalf("decode indexes: %v", err)
	}

	names := map[string]bool{}
	for _, ix := range idx {
		if n, ok := ix["name"].(string); ok {
			names[n] = true
		}
	}
	for _, want := range []string{"idx_inquiry_created_desc", "uniq_inquiry_reference", "idx_inquiry_notified_created"} {
		if !names[want] {
			t.Errorf("missing index %s (have %v)", want, names)
		}
	}
}

func TestShutdown_NoDeps(t *testing.T) {
	saved := site
	defer func() { site = saved }()

	stopped := false
	site = &siteResources{stopJobs: func(context.Context) error { stopped = true; return nil }, closeLive: func() int { return 0 }}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := Shutdown(ctx, &config.CoreConfig{}, AppConfig{}, DBDeps{}, testLogger()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if !stopped {
		t.Error("background jobs not stopped")
	}
}
