// internal/domain/models/corevalue.go
package models

// CoreValue is one letter of the company's values acronym.
type CoreValue struct {
	Letter      string `yaml:"letter" json:"letter"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}
