package placeholder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := NewID()
		require.NotEmpty(t, id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewTemplate(t *testing.T) {
	tmpl := NewTemplate("Order ready", "Hello {{name}}")

	require.NotEmpty(t, tmpl.ID)
	require.Equal(t, "Order ready", tmpl.Title)
	require.Equal(t, "Hello {{name}}", tmpl.Content)
	require.False(t, tmpl.CreatedAt.IsZero())
	require.Equal(t, tmpl.CreatedAt, tmpl.UpdatedAt)
}

func TestNewVariable(t *testing.T) {
	v := NewVariable("name", "Ada", "the customer")

	require.NotEmpty(t, v.ID)
	require.Equal(t, "name", v.Name)
	require.Equal(t, "Ada", v.Value)
	require.Equal(t, "the customer", v.Description)
	require.False(t, v.CreatedAt.IsZero())
	require.Equal(t, v.CreatedAt, v.UpdatedAt)
}
