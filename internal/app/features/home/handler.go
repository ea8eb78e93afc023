package home

import (
	"net/http"
	"sync"

	"github.com/dalemusser/tetsupaint/internal/app/content"
	"github.com/dalemusser/tetsupaint/internal/app/system/flash"
	"github.com/dalemusser/tetsupaint/internal/app/system/viewport"
	"github.com/dalemusser/tetsupaint/internal/app/viewstate"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the landing page.
type Handler struct {
	Catalog Catalog
	Site    *content.Site
	Flash   *flash.Store
	Log     *zap.Logger

	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}

	// afterUnmount, when set, is called with a live page's scroll source
	// once the page has been torn down.
	afterUnmount func(*viewport.Source)
}

// NewHandler constructs a home Handler. allowedOrigins restricts which
// pages may open the live channel; when empty, only same-host origins are
// accepted.
func NewHandler(cat Catalog, site *content.Site, fl *flash.Store, allowedOrigins []string, logger *zap.Logger) *Handler {
	h := &Handler{
		Catalog: cat,
		Site:    site,
		Flash:   fl,
		Log:     logger,
		conns:   make(map[*websocket.Conn]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if len(allowedOrigins) > 0 {
		h.upgrader.CheckOrigin = originChecker(allowedOrigins)
	}
	return h
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRoot renders the full page. Query parameters category and menu=open
// select the view state so every state is reachable without script.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controllerFromQuery(r)
	vm := BuildPageVM(h.Site, h.Catalog, ctrl.State())
	if h.Flash != nil {
		vm.Flashes = h.Flash.Pop(w, r)
	}

	templates.Render(w, r, "home", vm)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /products – product grid fragment                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeProducts(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controllerFromQuery(r)
	templates.RenderSnippet(w, "home_products", BuildProductsVM(h.Catalog, ctrl.State()))
}

func (h *Handler) controllerFromQuery(r *http.Request) *viewstate.Controller {
	ctrl := viewstate.New(h.Catalog)
	q := r.URL.Query()
	if q.Has("category") {
		ctrl.SetActiveCategory(q.Get("category"))
	}
	if q.Get("menu") == "open" {
		ctrl.ToggleMenu()
	}
	return ctrl
}
