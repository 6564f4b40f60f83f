package library

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hadirapp-com/support-template/internal/models"
	"github.com/hadirapp-com/support-template/internal/placeholder"
	"github.com/hadirapp-com/support-template/internal/store"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	return New(store.NewMemory(), zerolog.Nop())
}

func TestLoadEmptyStore(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	templates := lib.LoadTemplates(ctx)
	require.NotNil(t, templates)
	require.Empty(t, templates)

	variables := lib.LoadVariables(ctx)
	require.NotNil(t, variables)
	require.Empty(t, variables)
}

func TestSaveAndLoadTemplates(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	saved := []models.Template{
		placeholder.NewTemplate("Greeting", "Hello {{name}}"),
		placeholder.NewTemplate("Order ready", "Order {{order_id}} is ready."),
	}
	require.NoError(t, lib.SaveTemplates(ctx, saved))

	loaded := lib.LoadTemplates(ctx)
	require.Len(t, loaded, 2)
	require.Equal(t, saved[0].ID, loaded[0].ID)
	require.Equal(t, saved[0].Title, loaded[0].Title)
	require.Equal(t, saved[0].Content, loaded[0].Content)
	require.True(t, saved[0].CreatedAt.Equal(loaded[0].CreatedAt.Time))
	require.Equal(t, saved[1].ID, loaded[1].ID)
}

func TestSaveAndLoadVariables(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	saved := []models.Variable{
		placeholder.NewVariable("name", "Ada", ""),
		placeholder.NewVariable("order_id", "42", "the order number"),
	}
	require.NoError(t, lib.SaveVariables(ctx, saved))

	loaded := lib.LoadVariables(ctx)
	require.Len(t, loaded, 2)
	require.Equal(t, saved[0].Name, loaded[0].Name)
	require.Equal(t, saved[1].Description, loaded[1].Description)
}

func TestSaveNilNormalizesToEmpty(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	require.NoError(t, lib.SaveTemplates(ctx, nil))
	require.NotNil(t, lib.LoadTemplates(ctx))
	require.Empty(t, lib.LoadTemplates(ctx))
}

func TestLoadCorruptValueDegradesToEmpty(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, KeyTemplates, "not json at all"))
	require.NoError(t, s.Set(ctx, KeyVariables, `{"wrong": "shape"}`))

	lib := New(s, zerolog.Nop())
	require.Empty(t, lib.LoadTemplates(ctx))
	require.Empty(t, lib.LoadVariables(ctx))
}

func TestLoadStoreFailureDegradesToEmpty(t *testing.T) {
	lib := New(&failingStore{}, zerolog.Nop())
	ctx := context.Background()

	templates := lib.LoadTemplates(ctx)
	require.NotNil(t, templates)
	require.Empty(t, templates)

	variables := lib.LoadVariables(ctx)
	require.NotNil(t, variables)
	require.Empty(t, variables)
}

func TestSaveFailurePropagates(t *testing.T) {
	lib := New(&failingStore{}, zerolog.Nop())
	ctx := context.Background()

	err := lib.SaveTemplates(ctx, []models.Template{placeholder.NewTemplate("x", "y")})
	require.Error(t, err)
	require.ErrorIs(t, err, errStoreDown)

	err = lib.SaveVariables(ctx, []models.Variable{placeholder.NewVariable("a", "b", "")})
	require.Error(t, err)
	require.ErrorIs(t, err, errStoreDown)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestLibrary(t)
	ctx := context.Background()

	templates := []models.Template{placeholder.NewTemplate("Greeting", "Hello {{name}}")}
	variables := []models.Variable{placeholder.NewVariable("name", "Ada", "")}
	require.NoError(t, src.SaveTemplates(ctx, templates))
	require.NoError(t, src.SaveVariables(ctx, variables))

	bundle, err := src.Export(ctx)
	require.NoError(t, err)

	dst := newTestLibrary(t)
	require.NoError(t, dst.Import(ctx, bundle))

	gotTemplates := dst.LoadTemplates(ctx)
	require.Len(t, gotTemplates, 1)
	require.Equal(t, templates[0].ID, gotTemplates[0].ID)
	require.Equal(t, templates[0].Content, gotTemplates[0].Content)
	require.True(t, templates[0].UpdatedAt.Equal(gotTemplates[0].UpdatedAt.Time))

	gotVariables := dst.LoadVariables(ctx)
	require.Len(t, gotVariables, 1)
	require.Equal(t, variables[0].Name, gotVariables[0].Name)
	require.Equal(t, variables[0].Value, gotVariables[0].Value)
}

func TestExportBundleShape(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	text, err := lib.Export(ctx)
	require.NoError(t, err)

	var bundle models.Bundle
	require.NoError(t, json.Unmarshal([]byte(text), &bundle))
	require.Equal(t, models.BundleVersion, bundle.Version)
	require.NotEmpty(t, bundle.ExportedAt)
	require.NotNil(t, bundle.Templates)
	require.NotNil(t, bundle.Variables)
}

func TestImportRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "definitely not json"},
		{"wrong shape", `{"invalid": "data"}`},
		{"missing variables", `{"templates": []}`},
		{"missing templates", `{"variables": []}`},
		{"null collections", `{"templates": null, "variables": null}`},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemory()
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, KeyTemplates, `[]`))

			lib := New(s, zerolog.Nop())
			err := lib.Import(ctx, tt.text)
			require.ErrorIs(t, err, ErrImportFormat)

			// A rejected import leaves the store untouched.
			value, ok, getErr := s.Get(ctx, KeyTemplates)
			require.NoError(t, getErr)
			require.True(t, ok)
			require.Equal(t, `[]`, value)
			_, ok, getErr = s.Get(ctx, KeyVariables)
			require.NoError(t, getErr)
			require.False(t, ok)
		})
	}
}

func TestImportEmptyCollections(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	require.NoError(t, lib.SaveTemplates(ctx, []models.Template{placeholder.NewTemplate("x", "y")}))
	require.NoError(t, lib.Import(ctx, `{"templates": [], "variables": []}`))
	require.Empty(t, lib.LoadTemplates(ctx))
	require.Empty(t, lib.LoadVariables(ctx))
}

func TestImportWriteFailureReportsFormatError(t *testing.T) {
	lib := New(&failingStore{}, zerolog.Nop())
	err := lib.Import(context.Background(), `{"templates": [], "variables": []}`)
	require.ErrorIs(t, err, ErrImportFormat)
}

func TestClear(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	require.NoError(t, lib.SaveTemplates(ctx, []models.Template{placeholder.NewTemplate("x", "y")}))
	require.NoError(t, lib.SaveVariables(ctx, []models.Variable{placeholder.NewVariable("a", "b", "")}))

	require.NoError(t, lib.Clear(ctx))
	require.Empty(t, lib.LoadTemplates(ctx))
	require.Empty(t, lib.LoadVariables(ctx))
}

var errStoreDown = errors.New("store down")

// failingStore errors on every operation.
type failingStore struct{}

func (f *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errStoreDown
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	return errStoreDown
}

func (f *failingStore) Remove(ctx context.Context, keys ...string) error {
	return errStoreDown
}

func (f *failingStore) Close() error {
	return nil
}
