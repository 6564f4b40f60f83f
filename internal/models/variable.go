package models

// Variable is a stored name/value pair used to resolve placeholders.
// Name is intended to be unique within the collection; uniqueness is
// enforced by the editing surface, not by the engine.
type Variable struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}
