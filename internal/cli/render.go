// Package cli render and validate commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/hadirapp-com/support-template/internal/placeholder"
)

var (
	renderVars []string
	renderCopy bool
)

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(validateCmd)

	renderCmd.Flags().StringArrayVar(&renderVars, "var", nil, "override a variable as name=value (repeatable)")
	renderCmd.Flags().BoolVar(&renderCopy, "copy", false, "copy the rendered text to the clipboard")
}

var renderCmd = &cobra.Command{
	Use:   "render <id-or-title>",
	Short: "Render a template",
	Long: `Substitute stored variable values into a template and print the result.

Placeholders without a non-empty value are left in place unchanged.`,
	Example: `  hadir render "Order ready"
  hadir render "Order ready" --var order_id=12345 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		overrides, err := parseVarFlags(renderVars)
		if err != nil {
			return err
		}

		lib, s, err := openLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		templates := lib.LoadTemplates(ctx)
		tmpl, err := findTemplate(templates, args[0])
		if err != nil {
			return err
		}

		values := placeholder.Values(lib.LoadVariables(ctx))
		for name, value := range overrides {
			values[name] = value
		}

		result := placeholder.Substitute(tmpl.Content, values)

		unresolved := make([]string, 0)
		for _, name := range placeholder.Extract(tmpl.Content) {
			if values[name] == "" {
				unresolved = append(unresolved, name)
			}
		}
		if len(unresolved) > 0 {
			fmt.Fprintf(os.Stderr, "Warning: unresolved placeholders left in place: %s\n", strings.Join(unresolved, ", "))
		}

		if renderCopy {
			if err := clipboard.WriteAll(result); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, map[string]any{
				"template_id": tmpl.ID,
				"title":       tmpl.Title,
				"result":      result,
				"unresolved":  unresolved,
			})
		}

		fmt.Println(result)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [id-or-title]",
	Short: "Validate templates against defined variables",
	Long:  "Check one template, or all of them, for placeholders that no variable defines.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		lib, s, err := openLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		templates := lib.LoadTemplates(ctx)
		if len(args) == 1 {
			tmpl, err := findTemplate(templates, args[0])
			if err != nil {
				return err
			}
			templates = append(templates[:0:0], *tmpl)
		}

		known := placeholder.KnownNames(lib.LoadVariables(ctx))

		invalid := 0
		rows := make([][]string, 0)
		results := make([]map[string]any, 0, len(templates))
		for _, tmpl := range templates {
			errs := placeholder.Validate(tmpl.Content, known)
			results = append(results, map[string]any{
				"template_id": tmpl.ID,
				"title":       tmpl.Title,
				"errors":      errs,
			})
			if len(errs) == 0 {
				continue
			}
			invalid++
			for _, e := range errs {
				rows = append(rows, []string{tmpl.Title, e.Field, e.Message})
			}
		}

		if IsJSONOutput() {
			if err := WriteOutput(os.Stdout, results); err != nil {
				return err
			}
		} else if len(rows) == 0 {
			fmt.Printf("All %d template(s) valid\n", len(templates))
		} else {
			if err := writeTable(os.Stdout, []string{"TEMPLATE", "FIELD", "MESSAGE"}, rows); err != nil {
				return err
			}
		}

		if invalid > 0 {
			return fmt.Errorf("%d template(s) reference undefined variables", invalid)
		}
		return nil
	},
}

// parseVarFlags turns repeated name=value flags into a map.
func parseVarFlags(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q, expected name=value", pair)
		}
		values[name] = value
	}
	return values, nil
}
