// internal/domain/models/product.go
package models

// Product is one sellable coating formulation from the catalog.
//
// Products are static configuration: they are loaded once at startup and
// never created, changed, or removed while the server runs.
type Product struct {
	ID          string   `yaml:"id" json:"id"`             // stable unique key, e.g. "tetsumastic"
	Name        string   `yaml:"name" json:"name"`         // display name, e.g. "TETSUMASTIC"
	Category    string   `yaml:"category" json:"category"` // one of ProductCategories
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features" json:"features"` // ordered feature labels
	Image       string   `yaml:"image" json:"image"`       // image reference relative to /static/img
}

// Clone returns a copy of p that shares no memory with it.
func (p Product) Clone() Product {
	if p.Features != nil {
		p.Features = append([]string(nil), p.Features...)
	}
	return p
}
