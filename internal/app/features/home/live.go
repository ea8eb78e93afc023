// internal/app/features/home/live.go
package home

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/tetsupaint/internal/app/system/viewport"
	"github.com/dalemusser/tetsupaint/internal/app/viewstate"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// ServeLive upgrades to a WebSocket and runs one mounted page for the
// lifetime of the connection. The page starts in the state named by the
// query (category, menu=open), which is the state the page was rendered in.
//
// GET /live
func (h *Handler) ServeLive(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.Log.Debug("live: upgrade failed", zap.Error(err))
		return
	}
	initial := h.controllerFromQuery(r).State()

	h.track(conn)
	defer h.untrack(conn)

	h.runPage(conn, initial)
}

// runPage owns the page's controller and scroll source. Everything that
// touches view state happens on this goroutine; the pinger only writes.
func (h *Handler) runPage(conn *websocket.Conn, initial viewstate.State) {
	src := viewport.NewSource()
	page := Mount(h.Catalog, src, initial)

	var (
		wmu  sync.Mutex
		wg   sync.WaitGroup
		done = make(chan struct{})
	)

	defer func() {
		if rec := recover(); rec != nil {
			h.Log.Error("live: page panicked", zap.Any("panic", rec))
		}
		if h.afterUnmount != nil {
			h.afterUnmount(src)
		}
	}()
	defer page.Unmount()
	defer func() {
		close(done)
		wg.Wait()
		_ = conn.Close()
	}()

	write := func(v any) error {
		wmu.Lock()
		defer wmu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(v)
	}

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	if err := write(page.Snapshot()); err != nil {
		h.Log.Debug("live: initial snapshot failed", zap.Error(err))
		return
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				wmu.Lock()
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
				wmu.Unlock()
				if err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Log.Debug("live: read failed", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			h.Log.Debug("live: malformed event", zap.Error(err))
			wmu.Lock()
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "malformed event"),
				time.Now().Add(writeWait))
			wmu.Unlock()
			return
		}

		if !page.Dispatch(ev) {
			h.Log.Debug("live: unknown event ignored", zap.String("type", ev.Type))
			continue
		}
		if err := write(page.Snapshot()); err != nil {
			h.Log.Debug("live: snapshot write failed", zap.Error(err))
			return
		}
	}
}

// CloseLive ends every open live page. It is called during shutdown since
// hijacked connections are not closed by the HTTP server.
func (h *Handler) CloseLive() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	deadline := time.Now().Add(time.Second)
	for c := range h.conns {
		_ = c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			deadline)
		_ = c.Close()
	}
	return len(h.conns)
}

func (h *Handler) track(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Handler) untrack(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

// originChecker accepts requests with no Origin header and those whose
// origin matches one of allowed (scheme://host[:port], case-insensitive).
func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		a = strings.TrimRight(strings.ToLower(strings.TrimSpace(a)), "/")
		if a != "" {
			set[a] = struct{}{}
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return false
		}
		_, ok := set[strings.ToLower(u.Scheme+"://"+u.Host)]
		return ok
	}
}
