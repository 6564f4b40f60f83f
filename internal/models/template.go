// Package models defines the record shapes persisted by the template library.
package models

// Template is a stored piece of reusable text. Content may contain
// {{name}} placeholders that reference variables by name.
type Template struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}
