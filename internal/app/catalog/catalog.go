// Package catalog holds the read-only product, project and core-value lists
// that the landing page is composed from.
//
// A Store is built once at startup (see Load, LoadFile and Default) and is
// safe for concurrent use because nothing mutates it afterwards. Accessors
// return copies, so callers may reorder or edit what they get back.
package catalog

import "github.com/dalemusser/tetsupaint/internal/domain/models"

// Store is an immutable catalog.
type Store struct {
	products   []models.Product
	projects   []models.Project
	coreValues []models.CoreValue
	categories []string
}

// New builds a Store from already-validated lists. The lists are copied.
func New(products []models.Product, projects []models.Project, coreValues []models.CoreValue) *Store {
	s := &Store{
		products:   cloneProducts(products),
		projects:   append([]models.Project(nil), projects...),
		coreValues: append([]models.CoreValue(nil), coreValues...),
	}
	s.categories = distinctCategories(s.products)
	return s
}

// Products returns every product in catalog order.
func (s *Store) Products() []models.Product {
	return cloneProducts(s.products)
}

// Projects returns every portfolio project in catalog order.
func (s *Store) Projects() []models.Project {
	return append([]models.Project(nil), s.projects...)
}

// CoreValues returns the core values in acronym order.
func (s *Store) CoreValues() []models.CoreValue {
	return append([]models.CoreValue(nil), s.coreValues...)
}

// Categories returns each category used by at least one product, once, in
// the order it first appears in Products. It is not sorted.
func (s *Store) Categories() []string {
	return append([]string(nil), s.categories...)
}

// Product looks up a product by id.
func (s *Store) Product(id string) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.Product{}, false
}

func distinctCategories(products []models.Product) []string {
	seen := make(map[string]struct{}, len(models.ProductCategories))
	out := make([]string, 0, len(models.ProductCategories))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

func cloneProducts(in []models.Product) []models.Product {
	if in == nil {
		return nil
	}
	out := make([]models.Product, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
