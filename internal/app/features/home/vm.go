// internal/app/features/home/vm.go
package home

import (
	"net/url"

	"github.com/dalemusser/tetsupaint/internal/app/content"
	"github.com/dalemusser/tetsupaint/internal/app/system/flash"
	"github.com/dalemusser/tetsupaint/internal/app/viewstate"
	"github.com/dalemusser/tetsupaint/internal/domain/models"
)

// Catalog is everything the landing page reads from the catalog store.
type Catalog interface {
	viewstate.Catalog
	Projects() []models.Project
	CoreValues() []models.CoreValue
}

// CategoryTab is one product category filter button.
type CategoryTab struct {
	Name   string
	Href   string
	Active bool
}

// NavItem is a navigation link. Href already carries the query needed to
// render the page with the menu closed.
type NavItem struct {
	Name   string
	Href   string
	Anchor string
}

// PageVM is the full landing page view model.
type PageVM struct {
	Title string
	Site  *content.Site
	State viewstate.State

	Nav        []NavItem
	MenuHref   string // toggles the menu without script
	Categories []CategoryTab
	Products   []models.Product
	Projects   []models.Project
	CoreValues []models.CoreValue

	Subjects []string
	Flashes  []flash.Message
	LiveURL  string
}

// BuildPageVM projects a view state and the catalog into the page view
// model. It reads nothing but its arguments.
func BuildPageVM(site *content.Site, cat Catalog, st viewstate.State) PageVM {
	vm := PageVM{
		Title:      site.Brand + " " + site.BrandSuffix + " | " + site.Company,
		Site:       site,
		State:      st,
		MenuHref:   pageHref(st.ActiveCategory, !st.MenuOpen, "#home"),
		Products:   viewstate.FilterProducts(cat.Products(), st.ActiveCategory),
		Projects:   cat.Projects(),
		CoreValues: cat.CoreValues(),
		Subjects:   append([]string(nil), models.InquirySubjects...),
		LiveURL:    liveHref(st),
	}

	for _, l := range site.Nav {
		// Following any navigation link closes the menu.
		vm.Nav = append(vm.Nav, NavItem{
			Name:   l.Name,
			Href:   pageHref(st.ActiveCategory, false, l.Href),
			Anchor: l.Href,
		})
	}

	for _, c := range cat.Categories() {
		vm.Categories = append(vm.Categories, CategoryTab{
			Name:   c,
			Href:   pageHref(c, st.MenuOpen, "#products"),
			Active: c == st.ActiveCategory,
		})
	}

	return vm
}

// ProductsVM is the product grid fragment view model.
type ProductsVM struct {
	ActiveCategory string
	Products       []models.Product
}

// BuildProductsVM returns the product grid for st.
func BuildProductsVM(cat Catalog, st viewstate.State) ProductsVM {
	return ProductsVM{
		ActiveCategory: st.ActiveCategory,
		Products:       viewstate.FilterProducts(cat.Products(), st.ActiveCategory),
	}
}

// liveHref is the live channel URL that mounts a page in st. The category
// is always carried so an empty or unknown one survives the round trip.
func liveHref(st viewstate.State) string {
	q := url.Values{}
	q.Set("category", st.ActiveCategory)
	if st.MenuOpen {
		q.Set("menu", "open")
	}
	return "/live?" + q.Encode()
}

func pageHref(category string, menuOpen bool, anchor string) string {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if menuOpen {
		q.Set("menu", "open")
	}
	href := "/"
	if enc := q.Encode(); enc != "" {
		href += "?" + enc
	}
	return href + anchor
}
