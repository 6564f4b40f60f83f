package models

// BundleVersion is the export format version written by this release.
const BundleVersion = "1.0.0"

// Bundle is a point-in-time snapshot of all templates and variables,
// exchanged as pretty-printed JSON. A bundle is valid only when both
// collections are present as arrays, possibly empty.
type Bundle struct {
	Templates  []Template `json:"templates"`
	Variables  []Variable `json:"variables"`
	Version    string     `json:"version"`
	ExportedAt string     `json:"exportedAt"`
}
