// Package viewstate owns the small piece of mutable state behind one mounted
// landing page: which product category is selected, whether the mobile menu
// is open, and whether the viewport has scrolled past the header threshold.
//
// A Controller belongs to exactly one page and is driven from that page's
// event loop. It is not safe for concurrent use and does not need to be.
package viewstate

import "github.com/dalemusser/tetsupaint/internal/domain/models"

// ScrollThreshold is the vertical offset, in CSS pixels, past which the
// page counts as scrolled. The boundary is exclusive.
const ScrollThreshold = 50

// Catalog is the part of the catalog store the controller reads.
type Catalog interface {
	Products() []models.Product
	Categories() []string
}

// State is a snapshot of a page's view state.
type State struct {
	ActiveCategory string `json:"activeCategory"`
	MenuOpen       bool   `json:"menuOpen"`
	Scrolled       bool   `json:"scrolled"`
}

// Controller holds a page's State and derives views from it.
type Controller struct {
	catalog Catalog
	state   State
}

// New returns a controller in the initial state: the first catalog
// category is active, the menu is closed and the page is not scrolled.
func New(c Catalog) *Controller {
	ctrl := &Controller{catalog: c}
	if cats := c.Categories(); len(cats) > 0 {
		ctrl.state.ActiveCategory = cats[0]
	}
	return ctrl
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// SetActiveCategory selects category. Any string is accepted; a category
// no product carries simply filters to nothing.
func (c *Controller) SetActiveCategory(category string) {
	c.state.ActiveCategory = category
}

// ToggleMenu flips the mobile menu open or closed.
func (c *Controller) ToggleMenu() {
	c.state.MenuOpen = !c.state.MenuOpen
}

// CloseMenu closes the mobile menu. Closing a closed menu is a no-op.
func (c *Controller) CloseMenu() {
	c.state.MenuOpen = false
}

// OnScroll records the viewport's vertical offset. It is meant to be called
// for every scroll event, not only when the threshold is crossed.
func (c *Controller) OnScroll(scrollY float64) {
	c.state.Scrolled = scrollY > ScrollThreshold
}

// FilteredProducts returns the products in the active category, in catalog
// order.
func (c *Controller) FilteredProducts() []models.Product {
	return FilterProducts(c.catalog.Products(), c.state.ActiveCategory)
}

// FilterProducts returns the sub-sequence of products whose category equals
// category. The result is never nil.
func FilterProducts(products []models.Product, category string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
