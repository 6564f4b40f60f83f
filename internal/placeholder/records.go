package placeholder

import (
	"github.com/google/uuid"
	"github.com/hadirapp-com/support-template/internal/models"
)

// NewID returns a fresh collision-free identifier for primary-key use.
func NewID() string {
	return uuid.New().String()
}

// NewTemplate constructs a template with a fresh identifier. CreatedAt and
// UpdatedAt carry the same instant.
func NewTemplate(title, content string) models.Template {
	now := models.Now()
	return models.Template{
		ID:        NewID(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewVariable constructs a variable with a fresh identifier. CreatedAt and
// UpdatedAt carry the same instant.
func NewVariable(name, value, description string) models.Variable {
	now := models.Now()
	return models.Variable{
		ID:          NewID(),
		Name:        name,
		Value:       value,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
