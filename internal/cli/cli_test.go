package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hadirapp-com/support-template/internal/models"
)

func TestParseVarFlags(t *testing.T) {
	t.Run("valid pairs", func(t *testing.T) {
		values, err := parseVarFlags([]string{"name=Ada", "order_id=42", "empty="})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"name": "Ada", "order_id": "42", "empty": ""}, values)
	})

	t.Run("value may contain equals", func(t *testing.T) {
		values, err := parseVarFlags([]string{"url=https://example.com?a=b"})
		require.NoError(t, err)
		require.Equal(t, "https://example.com?a=b", values["url"])
	})

	t.Run("missing equals", func(t *testing.T) {
		_, err := parseVarFlags([]string{"name"})
		require.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := parseVarFlags([]string{"=value"})
		require.Error(t, err)
	})
}

func TestFindTemplate(t *testing.T) {
	templates := []models.Template{
		{ID: "aaaa1111-0000-0000-0000-000000000000", Title: "Greeting"},
		{ID: "aaab2222-0000-0000-0000-000000000000", Title: "Order ready"},
		{ID: "bbbb3333-0000-0000-0000-000000000000", Title: "Refund"},
	}

	t.Run("exact id", func(t *testing.T) {
		tmpl, err := findTemplate(templates, "bbbb3333-0000-0000-0000-000000000000")
		require.NoError(t, err)
		require.Equal(t, "Refund", tmpl.Title)
	})

	t.Run("exact title", func(t *testing.T) {
		tmpl, err := findTemplate(templates, "Order ready")
		require.NoError(t, err)
		require.Equal(t, "aaab2222-0000-0000-0000-000000000000", tmpl.ID)
	})

	t.Run("unique id prefix", func(t *testing.T) {
		tmpl, err := findTemplate(templates, "bbbb")
		require.NoError(t, err)
		require.Equal(t, "Refund", tmpl.Title)
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		_, err := findTemplate(templates, "aaa")
		require.Error(t, err)
		require.Contains(t, err.Error(), "ambiguous")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := findTemplate(templates, "nope")
		require.Error(t, err)
		require.Contains(t, err.Error(), "not found")
	})
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "exactlyten", truncate("exactlyten", 10))
	require.Equal(t, "something ...", truncate("something much longer than the limit", 10))
}

func TestShortID(t *testing.T) {
	require.Equal(t, "aaaa1111", shortID("aaaa1111-0000-0000-0000-000000000000"))
	require.Equal(t, "tiny", shortID("tiny"))
}

func TestFormatNames(t *testing.T) {
	require.Equal(t, "-", formatNames(nil))
	require.Equal(t, "name, order_id", formatNames([]string{"name", "order_id"}))
}
