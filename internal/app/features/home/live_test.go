package home

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/tetsupaint/internal/app/system/viewport"
	"github.com/dalemusser/tetsupaint/internal/app/viewstate"
	"github.com/gorilla/websocket"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type liveHarness struct {
	srv       *httptest.Server
	h         *Handler
	unmounted chan *viewport.Source
}

func newLiveHarness(t *testing.T, origins ...string) *liveHarness {
	t.Helper()
	h := NewHandler(testCatalog(t), testSite(t), nil, origins, zap.NewNop())
	lh := &liveHarness{h: h, unmounted: make(chan *viewport.Source, 4)}
	h.afterUnmount = func(src *viewport.Source) { lh.unmounted <- src }
	lh.srv = httptest.NewServer(http.HandlerFunc(h.ServeLive))
	return lh
}

func (lh *liveHarness) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	return lh.dialPath(t, "")
}

// dialPath dials the live endpoint with pathAndQuery appended, e.g. a
// LiveURL query string.
func (lh *liveHarness) dialPath(t *testing.T, pathAndQuery string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(lh.srv.URL, "http") + pathAndQuery
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func (lh *liveHarness) waitUnmount(t *testing.T) *viewport.Source {
	t.Helper()
	select {
	case src := <-lh.unmounted:
		return src
	case <-time.After(5 * time.Second):
		t.Fatal("page was not unmounted")
		return nil
	}
}

func readSnapshot(t *testing.T, conn *websocket.Conn) Snapshot {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var s Snapshot
	if err := conn.ReadJSON(&s); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	return s
}

func send(t *testing.T, conn *websocket.Conn, ev Event) {
	t.Helper()
	if err := conn.WriteJSON(ev); err != nil {
		t.Fatalf("write %s: %v", ev.Type, err)
	}
}

func TestLive_Session(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	lh := newLiveHarness(t)
	defer lh.srv.Close()

	conn := lh.dial(t)

	first := readSnapshot(t, conn)
	if first.ActiveCategory != "Protective & Marine" || first.MenuOpen || first.Scrolled {
		t.Errorf("initial snapshot = %+v", first.State)
	}
	if len(first.Products) != 4 {
		t.Errorf("initial products = %v", first.Products)
	}

	send(t, conn, Event{Type: EventCategory, Category: "General Industry"})
	s := readSnapshot(t, conn)
	if s.ActiveCategory != "General Industry" || len(s.Products) != 4 || s.Products[0] != "tetsulac" {
		t.Errorf("after category: %+v", s)
	}

	send(t, conn, Event{Type: EventMenu})
	if s = readSnapshot(t, conn); !s.MenuOpen {
		t.Error("menu should be open")
	}

	send(t, conn, Event{Type: EventNav, Href: "#about"})
	if s = readSnapshot(t, conn); s.MenuOpen {
		t.Error("nav should close the menu")
	}

	send(t, conn, Event{Type: EventScroll, Y: 51})
	if s = readSnapshot(t, conn); !s.Scrolled {
		t.Error("scroll 51 should set scrolled")
	}

	// Unknown types get no reply; the next known event still does.
	send(t, conn, Event{Type: "hover"})
	send(t, conn, Event{Type: EventScroll, Y: 10})
	if s = readSnapshot(t, conn); s.Scrolled {
		t.Error("scroll 10 should clear scrolled")
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()

	src := lh.waitUnmount(t)
	if n := src.Listeners(); n != 0 {
		t.Errorf("listeners after disconnect = %d, want 0", n)
	}
}

func TestLive_MountsRenderedState(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	lh := newLiveHarness(t)
	defer lh.srv.Close()

	cat := testCatalog(t)
	tests := []struct {
		name string
		st   viewstate.State
		want []string
	}{
		{
			name: "general industry with menu open",
			st:   viewstate.State{ActiveCategory: "General Industry", MenuOpen: true},
			want: []string{"tetsulac", "tetsucryl", "tetsumax", "tetsufloor"},
		},
		{
			name: "default",
			st:   viewstate.New(cat).State(),
			want: []string{"tetsumastic", "tetsuthane", "tetsuguard", "tetsukyd"},
		},
		{
			name: "unknown category",
			st:   viewstate.State{ActiveCategory: "Nope"},
			want: []string{},
		},
		{
			name: "empty category",
			st:   viewstate.State{ActiveCategory: ""},
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := BuildPageVM(testSite(t), cat, tt.st)

			// The handler serves at the server root; keep only the query.
			conn := lh.dialPath(t, strings.TrimPrefix(vm.LiveURL, "/live"))
			first := readSnapshot(t, conn)
			_ = conn.Close()
			lh.waitUnmount(t)

			if first.ActiveCategory != tt.st.ActiveCategory || first.MenuOpen != tt.st.MenuOpen || first.Scrolled {
				t.Errorf("first snapshot = %+v, rendered %+v", first.State, tt.st)
			}
			if strings.Join(first.Products, ",") != strings.Join(tt.want, ",") {
				t.Errorf("products = %v, want %v", first.Products, tt.want)
			}
		})
	}
}

func TestLive_AbruptDisconnectReleases(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	lh := newLiveHarness(t)
	defer lh.srv.Close()

	conn := lh.dial(t)
	readSnapshot(t, conn)
	_ = conn.Close()

	if n := lh.waitUnmount(t).Listeners(); n != 0 {
		t.Errorf("listeners = %d, want 0", n)
	}
}

func TestLive_MalformedEventCloses(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	lh := newLiveHarness(t)
	defer lh.srv.Close()

	conn := lh.dial(t)
	defer conn.Close()
	readSnapshot(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseUnsupportedData) {
		t.Errorf("read error = %v, want close 1003", err)
	}
	if n := lh.waitUnmount(t).Listeners(); n != 0 {
		t.Errorf("listeners = %d, want 0", n)
	}
}

func TestLive_CloseLive(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	lh := newLiveHarness(t)
	defer lh.srv.Close()

	conn := lh.dial(t)
	defer conn.Close()
	readSnapshot(t, conn)

	if n := lh.h.CloseLive(); n != 1 {
		t.Errorf("CloseLive() = %d, want 1", n)
	}
	if n := lh.waitUnmount(t).Listeners(); n != 0 {
		t.Errorf("listeners = %d, want 0", n)
	}
}

func TestLive_OriginRejected(t *testing.T) {
	lh := newLiveHarness(t, "https://tetsupaint.co.id")
	defer lh.srv.Close()

	url := "ws" + strings.TrimPrefix(lh.srv.URL, "http")
	hdr := http.Header{"Origin": []string{"https://evil.example"}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, hdr)
	if err == nil {
		conn.Close()
		t.Fatal("dial succeeded from a foreign origin")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("response = %v, want 403", resp)
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://TetsuPaint.co.id/", " http://localhost:8080 "})

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://tetsupaint.co.id", true},
		{"http://localhost:8080", true},
		{"http://localhost:3000", false},
		{"https://tetsupaint.co.id.evil.example", false},
		{"::not a url", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/live", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := check(r); got != tt.want {
			t.Errorf("origin %q: got %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestControllerFromQuery(t *testing.T) {
	h := NewHandler(testCatalog(t), testSite(t), nil, nil, zap.NewNop())

	tests := []struct {
		target       string
		wantCategory string
		wantMenu     bool
	}{
		{"/", "Protective & Marine", false},
		{"/?category=General+Industry", "General Industry", false},
		{"/?category=Nonexistent&menu=open", "Nonexistent", true},
		{"/?menu=closed", "Protective & Marine", false},
		{"/?category=", "", false},
	}
	for _, tt := range tests {
		st := h.controllerFromQuery(httptest.NewRequest("GET", tt.target, nil)).State()
		if st.ActiveCategory != tt.wantCategory || st.MenuOpen != tt.wantMenu {
			t.Errorf("%s: state = %+v", tt.target, st)
		}
	}
}
