// Package content loads the landing page's marketing copy.
//
// Copy lives in YAML next to the catalog. Long-form fields are Markdown;
// they are rendered once at load time and sanitized, so templates receive
// ready-to-use template.HTML.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/dalemusser/tetsupaint/internal/app/system/htmlsanitize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

//go:embed data/content.yaml
var defaultContent string

// NavLink is an in-page navigation target.
type NavLink struct {
	Name string `yaml:"name"`
	Href string `yaml:"href"`
}

// Stat is a headline figure shown under the hero.
type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Hero is the top-of-page banner.
type Hero struct {
	Eyebrow      string `yaml:"eyebrow"`
	Headline     string `yaml:"headline"`
	HeadlineTail string `yaml:"headline_tail"`
	Lead         string `yaml:"lead"`
	Image        string `yaml:"image"`
}

// About is the company profile section.
type About struct {
	Eyebrow    string `yaml:"eyebrow"`
	Heading    string `yaml:"heading"`
	Image      string `yaml:"image"`
	BadgeTitle string `yaml:"badge_title"`
	BadgeText  string `yaml:"badge_text"`
	BodyMD     string `yaml:"body_md"`
	Vision     string `yaml:"vision"`
	Mission    string `yaml:"mission"`

	Body template.HTML `yaml:"-"`
}

// Brand is one brand in the brand architecture section.
type Brand struct {
	Name       string `yaml:"name"`
	Tag        string `yaml:"tag"`
	Image      string `yaml:"image"`
	Link       string `yaml:"link"`
	LinkText   string `yaml:"link_text"`
	ComingSoon bool   `yaml:"coming_soon"`
	BodyMD     string `yaml:"body_md"`

	Body template.HTML `yaml:"-"`
}

// Trait is one company personality trait.
type Trait struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Certification lists accreditations and the certificate number.
type Certification struct {
	Labels []string `yaml:"labels"`
	Number string   `yaml:"number"`
}

// Contact holds the published contact details.
type Contact struct {
	Heading string   `yaml:"heading"`
	Address []string `yaml:"address"`
	Phone   string   `yaml:"phone"`
	Email   string   `yaml:"email"`
}

// Footer is the page footer.
type Footer struct {
	Links     []string `yaml:"links"`
	Copyright string   `yaml:"copyright"`
}

// Site is all page copy.
type Site struct {
	Company       string        `yaml:"company"`
	Brand         string        `yaml:"brand"`
	BrandSuffix   string        `yaml:"brand_suffix"`
	Nav           []NavLink     `yaml:"nav"`
	Hero          Hero          `yaml:"hero"`
	Stats         []Stat        `yaml:"stats"`
	About         About         `yaml:"about"`
	Brands        []Brand       `yaml:"brands"`
	Personality   []Trait       `yaml:"personality"`
	Certification Certification `yaml:"certification"`
	Contact       Contact       `yaml:"contact"`
	Footer        Footer        `yaml:"footer"`
}

var md = goldmark.New(goldmark.WithExtensions(extension.Typographer))

// Default returns the copy compiled into the binary.
func Default() (*Site, error) {
	return Load(strings.NewReader(defaultContent))
}

// Load decodes site copy from r and renders its Markdown fields.
func Load(r io.Reader) (*Site, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Site
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	var err error
	if s.About.Body, err = Render(s.About.BodyMD); err != nil {
		return nil, fmt.Errorf("about: %w", err)
	}
	for i := range s.Brands {
		if s.Brands[i].Body, err = Render(s.Brands[i].BodyMD); err != nil {
			return nil, fmt.Errorf("brand %q: %w", s.Brands[i].Name, err)
		}
	}
	return &s, nil
}

// Render converts Markdown to sanitized HTML.
func Render(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return htmlsanitize.SanitizeToHTML(buf.String()), nil
}
