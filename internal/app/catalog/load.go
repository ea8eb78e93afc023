package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dalemusser/tetsupaint/internal/domain/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog string

// file is the on-disk catalog layout.
type file struct {
	Products   []models.Product   `yaml:"products"`
	Projects   []models.Project   `yaml:"projects"`
	CoreValues []models.CoreValue `yaml:"core_values"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Store, error) {
	s, err := Load(strings.NewReader(defaultCatalog))
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return s, nil
}

// LoadFile reads and validates the catalog at path.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return s, nil
}

// Load decodes a YAML catalog from r and validates it. Unknown keys are
// rejected so typos in an operator-supplied file surface at startup.
func Load(r io.Reader) (*Store, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := Validate(f.Products, f.Projects); err != nil {
		return nil, err
	}
	return New(f.Products, f.Projects, f.CoreValues), nil
}

// Validate checks the catalog invariants: product ids are present and
// unique, product categories belong to the closed set, and project ids are
// unique. Every violation is reported, joined into one error.
func Validate(products []models.Product, projects []models.Project) error {
	var errs []error

	seen := make(map[string]int, len(products))
	for i, p := range products {
		switch {
		case strings.TrimSpace(p.ID) == "":
			errs = append(errs, fmt.Errorf("product #%d: missing id", i+1))
		case seen[p.ID] > 0:
			errs = append(errs, fmt.Errorf("product %q: duplicate id (first at #%d)", p.ID, seen[p.ID]))
		default:
			seen[p.ID] = i + 1
		}
		if !models.IsValidProductCategory(p.Category) {
			errs = append(errs, fmt.Errorf("product %q: unknown category %q", p.ID, p.Category))
		}
	}

	seenProjects := make(map[string]struct{}, len(projects))
	for i, p := range projects {
		if strings.TrimSpace(p.ID) == "" {
			errs = append(errs, fmt.Errorf("project #%d: missing id", i+1))
			continue
		}
		if _, dup := seenProjects[p.ID]; dup {
			errs = append(errs, fmt.Errorf("project %q: duplicate id", p.ID))
			continue
		}
		seenProjects[p.ID] = struct{}{}
	}

	return errors.Join(errs...)
}
