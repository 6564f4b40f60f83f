package models

// ValidationError reports a single problem found while validating template
// content against the known variable set. It is never persisted.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
