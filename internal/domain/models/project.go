// internal/domain/models/project.go
package models

// Project is a completed installation shown in the portfolio.
type Project struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Location string `yaml:"location" json:"location"`
	Image    string `yaml:"image" json:"image"`
}
