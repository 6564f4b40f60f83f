// Package library is the persistence adapter between the typed template and
// variable collections and the key-value store. It owns the two collection
// keys and the versioned export bundle format.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hadirapp-com/support-template/internal/models"
	"github.com/hadirapp-com/support-template/internal/store"
)

// Collection keys inside the store.
const (
	KeyTemplates = "templates"
	KeyVariables = "variables"
)

// ErrImportFormat is the uniform failure reported for any import problem:
// unparseable text, a bundle missing either collection, or a failed write.
// The underlying cause is not preserved across this boundary.
var ErrImportFormat = errors.New("failed to import; check format")

// Library maps the two record collections to the store. Construct one per
// process and pass it by handle; it holds no global state.
type Library struct {
	store  store.Store
	logger zerolog.Logger
}

// New creates a library over the given store.
func New(s store.Store, logger zerolog.Logger) *Library {
	return &Library{store: s, logger: logger}
}

// LoadTemplates returns the template collection. An absent key or any read
// failure degrades to an empty collection; reads never surface errors.
func (l *Library) LoadTemplates(ctx context.Context) []models.Template {
	raw, ok, err := l.store.Get(ctx, KeyTemplates)
	if err != nil {
		l.logger.Warn().Err(err).Str("key", KeyTemplates).Msg("template load failed, starting empty")
		return []models.Template{}
	}
	if !ok {
		return []models.Template{}
	}

	var templates []models.Template
	if err := json.Unmarshal([]byte(raw), &templates); err != nil {
		l.logger.Warn().Err(err).Str("key", KeyTemplates).Msg("template collection unreadable, starting empty")
		return []models.Template{}
	}
	if templates == nil {
		templates = []models.Template{}
	}

	return templates
}

// LoadVariables returns the variable collection with the same degradation
// behavior as LoadTemplates.
func (l *Library) LoadVariables(ctx context.Context) []models.Variable {
	raw, ok, err := l.store.Get(ctx, KeyVariables)
	if err != nil {
		l.logger.Warn().Err(err).Str("key", KeyVariables).Msg("variable load failed, starting empty")
		return []models.Variable{}
	}
	if !ok {
		return []models.Variable{}
	}

	var variables []models.Variable
	if err := json.Unmarshal([]byte(raw), &variables); err != nil {
		l.logger.Warn().Err(err).Str("key", KeyVariables).Msg("variable collection unreadable, starting empty")
		return []models.Variable{}
	}
	if variables == nil {
		variables = []models.Variable{}
	}

	return variables
}

// SaveTemplates replaces the stored template collection. Write failures
// propagate to the caller.
func (l *Library) SaveTemplates(ctx context.Context, templates []models.Template) error {
	if templates == nil {
		templates = []models.Template{}
	}

	data, err := json.Marshal(templates)
	if err != nil {
		return fmt.Errorf("failed to encode templates: %w", err)
	}
	if err := l.store.Set(ctx, KeyTemplates, string(data)); err != nil {
		return fmt.Errorf("failed to save templates: %w", err)
	}
	return nil
}

// SaveVariables replaces the stored variable collection. Write failures
// propagate to the caller.
func (l *Library) SaveVariables(ctx context.Context, variables []models.Variable) error {
	if variables == nil {
		variables = []models.Variable{}
	}

	data, err := json.Marshal(variables)
	if err != nil {
		return fmt.Errorf("failed to encode variables: %w", err)
	}
	if err := l.store.Set(ctx, KeyVariables, string(data)); err != nil {
		return fmt.Errorf("failed to save variables: %w", err)
	}
	return nil
}

// Export loads both collections and serializes them as a pretty-printed,
// versioned bundle snapshot.
func (l *Library) Export(ctx context.Context) (string, error) {
	bundle := models.Bundle{
		Version:    models.BundleVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}

	// The collections live under independent keys, so load them concurrently.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		bundle.Templates = l.LoadTemplates(groupCtx)
		return nil
	})
	group.Go(func() error {
		bundle.Variables = l.LoadVariables(groupCtx)
		return nil
	})
	if err := group.Wait(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode bundle: %w", err)
	}
	return string(data), nil
}

// Import parses serialized bundle text and replaces both stored collections.
// Both writes are attempted in order; the first failure aborts. Every
// failure mode reports ErrImportFormat and a failed parse performs no
// writes.
func (l *Library) Import(ctx context.Context, text string) error {
	var bundle struct {
		Templates *[]models.Template `json:"templates"`
		Variables *[]models.Variable `json:"variables"`
	}

	if err := json.Unmarshal([]byte(text), &bundle); err != nil {
		return fmt.Errorf("%w: %v", ErrImportFormat, err)
	}
	if bundle.Templates == nil || bundle.Variables == nil {
		return fmt.Errorf("%w: bundle must contain templates and variables", ErrImportFormat)
	}

	if err := l.SaveTemplates(ctx, *bundle.Templates); err != nil {
		return fmt.Errorf("%w: %v", ErrImportFormat, err)
	}
	if err := l.SaveVariables(ctx, *bundle.Variables); err != nil {
		return fmt.Errorf("%w: %v", ErrImportFormat, err)
	}

	l.logger.Info().
		Int("templates", len(*bundle.Templates)).
		Int("variables", len(*bundle.Variables)).
		Msg("bundle imported")

	return nil
}

// Clear removes both collections from the store. Store failures propagate.
func (l *Library) Clear(ctx context.Context) error {
	if err := l.store.Remove(ctx, KeyTemplates, KeyVariables); err != nil {
		return fmt.Errorf("failed to clear collections: %w", err)
	}
	return nil
}
