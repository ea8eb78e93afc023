// internal/app/features/home/page.go
package home

import (
	"github.com/dalemusser/tetsupaint/internal/app/system/viewport"
	"github.com/dalemusser/tetsupaint/internal/app/viewstate"
)

// Event types sent by the browser over the live channel.
const (
	EventCategory  = "category"
	EventMenu      = "menu"
	EventMenuClose = "menu_close"
	EventNav       = "nav"
	EventScroll    = "scroll"
)

// Event is one user gesture.
type Event struct {
	Type     string  `json:"type"`
	Category string  `json:"category,omitempty"`
	Href     string  `json:"href,omitempty"`
	Y        float64 `json:"y,omitempty"`
}

// Snapshot is what the server sends back after every handled event.
type Snapshot struct {
	viewstate.State
	Products []string `json:"products"`
}

// Page is one mounted landing page: a view-state controller subscribed to
// the page's scroll source. A Page is driven from a single goroutine.
type Page struct {
	ctrl    *viewstate.Controller
	src     *viewport.Source
	release func()
}

// Mount creates the page state from initial and subscribes it to src.
// The active category and menu flag are taken from initial; scrolled
// always starts false and follows the first offset src delivers.
func Mount(cat viewstate.Catalog, src *viewport.Source, initial viewstate.State) *Page {
	ctrl := viewstate.New(cat)
	ctrl.SetActiveCategory(initial.ActiveCategory)
	if initial.MenuOpen {
		ctrl.ToggleMenu()
	}

	p := &Page{
		ctrl: ctrl,
		src:  src,
	}
	p.release = src.Subscribe(p.ctrl.OnScroll)
	return p
}

// Unmount releases the scroll subscription. It is safe to call more than
// once.
func (p *Page) Unmount() {
	p.release()
}

// Dispatch applies ev and reports whether it was a known event type.
func (p *Page) Dispatch(ev Event) bool {
	switch ev.Type {
	case EventCategory:
		p.ctrl.SetActiveCategory(ev.Category)
	case EventMenu:
		p.ctrl.ToggleMenu()
	case EventMenuClose:
		p.ctrl.CloseMenu()
	case EventNav:
		p.ctrl.CloseMenu()
	case EventScroll:
		p.src.Scroll(ev.Y)
	default:
		return false
	}
	return true
}

// State returns the current view state.
func (p *Page) State() viewstate.State {
	return p.ctrl.State()
}

// Snapshot returns the state together with the ids of the visible
// products.
func (p *Page) Snapshot() Snapshot {
	filtered := p.ctrl.FilteredProducts()
	ids := make([]string, 0, len(filtered))
	for _, pr := range filtered {
		ids = append(ids, pr.ID)
	}
	return Snapshot{State: p.ctrl.State(), Products: ids}
}
