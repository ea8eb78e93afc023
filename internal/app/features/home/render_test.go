package home

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dalemusser/tetsupaint/internal/app/resources"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

var bootOnce sync.Once

// bootTemplates compiles the shared layout and this package's templates
// into the package-level engine used by ServeRoot and ServeProducts.
func bootTemplates(t *testing.T) {
	t.Helper()
	var err error
	bootOnce.Do(func() {
		resources.LoadSharedTemplates()
		eng := templates.New(false)
		if err = eng.Boot(zap.NewNop()); err == nil {
			templates.UseEngine(eng, zap.NewNop())
		}
	})
	if err != nil {
		t.Fatalf("template boot: %v", err)
	}
}

var (
	protectiveIDs = []string{"tetsumastic", "tetsuthane", "tetsuguard", "tetsukyd"}
	industryIDs   = []string{"tetsulac", "tetsucryl", "tetsumax", "tetsufloor"}
)

func TestRender_Pages(t *testing.T) {
	bootTemplates(t)
	h := NewHandler(testCatalog(t), testSite(t), nil, nil, zap.NewNop())
	r := Routes(h)

	tests := []struct {
		name     string
		target   string
		present  []string
		absent   []string
		contains []string
	}{
		{
			name:     "default landing",
			target:   "/",
			present:  protectiveIDs,
			absent:   industryIDs,
			contains: []string{`data-active="Protective &amp; Marine"`, `class="mobile-menu" hidden`},
		},
		{
			name:     "category and menu from query",
			target:   "/?category=General+Industry&menu=open",
			present:  industryIDs,
			absent:   protectiveIDs,
			contains: []string{`data-live="/live?category=General`, `menu=open"`, `aria-expanded="true"`},
		},
		{
			name:     "unknown category",
			target:   "/?category=Nope",
			absent:   append(append([]string{}, protectiveIDs...), industryIDs...),
			contains: []string{"No products in this category."},
		},
		{
			name:    "products fragment",
			target:  "/products?category=General+Industry",
			present: industryIDs,
			absent:  protectiveIDs,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			body := rec.Body.String()
			for _, id := range tt.present {
				if !strings.Contains(body, `data-id="`+id+`"`) {
					t.Errorf("missing product %s", id)
				}
			}
			for _, id := range tt.absent {
				if strings.Contains(body, `data-id="`+id+`"`) {
					t.Errorf("unexpected product %s", id)
				}
			}
			for _, s := range tt.contains {
				if !strings.Contains(body, s) {
					t.Errorf("body missing %q", s)
				}
			}
		})
	}
}
