package models

import (
	"encoding/json"
	"time"
)

// Timestamp is a time instant persisted as an RFC 3339 string.
//
// Decoding is lenient: input that is not a string or does not parse as
// RFC 3339 yields the zero time instead of an error, so a single damaged
// timestamp cannot fail a whole collection load.
type Timestamp struct {
	time.Time
}

// Now returns the current instant, normalized to UTC.
func Now() Timestamp {
	return Timestamp{Time: time.Now().UTC()}
}

// At wraps an existing time as a Timestamp, normalized to UTC.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// MarshalJSON encodes the instant as an RFC 3339 string in UTC.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON decodes an RFC 3339 string, falling back to the zero time
// on malformed input.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		t.Time = time.Time{}
		return nil
	}

	t.Time = parsed.UTC()
	return nil
}
