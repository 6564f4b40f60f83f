// Package placeholder implements extraction, validation and substitution of
// {{name}} tokens in template content. All functions are pure and safe for
// concurrent use.
package placeholder

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hadirapp-com/support-template/internal/models"
)

// pattern matches a placeholder token: the shortest run of close-brace-free
// characters between double-brace markers. A nested "{{" is captured
// verbatim up to the first "}}"; this is intentionally not a balanced-brace
// parser, and extraction and substitution share the exact same matching.
var pattern = regexp.MustCompile(`\{\{([^}]*)\}\}`)

// Extract returns the placeholder names referenced by content, de-duplicated
// and ordered by first occurrence. A name is the token's inner text trimmed
// of surrounding whitespace; a whitespace-only token yields the empty name.
func Extract(content string) []string {
	matches := pattern.FindAllStringSubmatch(content, -1)

	names := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, match := range matches {
		name := strings.TrimSpace(match[1])
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}

// Validate checks every placeholder in content against the known variable
// names and returns one error per unresolved distinct name, in extraction
// order. An empty result means the content is fully resolvable.
func Validate(content string, known map[string]struct{}) []models.ValidationError {
	var errs []models.ValidationError
	for _, name := range Extract(content) {
		if _, ok := known[name]; ok {
			continue
		}
		errs = append(errs, models.ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("Variable '%s' is not defined in settings", name),
		})
	}
	return errs
}

// KnownNames builds the lookup set Validate expects from a variable collection.
func KnownNames(variables []models.Variable) map[string]struct{} {
	known := make(map[string]struct{}, len(variables))
	for _, v := range variables {
		known[v.Name] = struct{}{}
	}
	return known
}

// Substitute replaces every placeholder occurrence, repeats included, with
// the value mapped to its trimmed name. Tokens whose name is absent from
// values or maps to an empty string are left in place unchanged, braces and
// all.
func Substitute(content string, values map[string]string) string {
	return pattern.ReplaceAllStringFunc(content, func(token string) string {
		name := strings.TrimSpace(token[2 : len(token)-2])
		if value, ok := values[name]; ok && value != "" {
			return value
		}
		return token
	})
}

// Values builds the substitution map from a variable collection.
func Values(variables []models.Variable) map[string]string {
	values := make(map[string]string, len(variables))
	for _, v := range variables {
		values[v.Name] = v.Value
	}
	return values
}
