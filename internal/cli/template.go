// Package cli template management commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hadirapp-com/support-template/internal/models"
	"github.com/hadirapp-com/support-template/internal/placeholder"
)

var (
	// template add flags
	tmplAddTitle   string
	tmplAddContent string
	tmplAddFile    string
	tmplAddForce   bool

	// template edit flags
	tmplEditTitle   string
	tmplEditContent string
	tmplEditFile    string
	tmplEditForce   bool
)

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateEditCmd)
	templateCmd.AddCommand(templateRemoveCmd)

	// Add flags
	templateAddCmd.Flags().StringVar(&tmplAddTitle, "title", "", "template title (required)")
	templateAddCmd.Flags().StringVar(&tmplAddContent, "content", "", "template content")
	templateAddCmd.Flags().StringVar(&tmplAddFile, "file", "", "read content from file")
	templateAddCmd.Flags().BoolVarP(&tmplAddForce, "force", "f", false, "save even with undefined placeholders")
	templateAddCmd.MarkFlagRequired("title")

	// Edit flags
	templateEditCmd.Flags().StringVar(&tmplEditTitle, "title", "", "new title")
	templateEditCmd.Flags().StringVar(&tmplEditContent, "content", "", "new content")
	templateEditCmd.Flags().StringVar(&tmplEditFile, "file", "", "read new content from file")
	templateEditCmd.Flags().BoolVarP(&tmplEditForce, "force", "f", false, "save even with undefined placeholders")
}

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tmpl"},
	Short:   "Manage templates",
	Long: `Manage reply templates.

Template content may reference variables with {{name}} placeholders.`,
}

var templateAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new template",
	Example: `  # Add from the command line
  hadir template add --title "Order ready" --content "Hello {{name}}, your order {{order_id}} is ready."

  # Add from a file
  hadir template add --title "Order ready" --file reply.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		content, err := resolveContent(tmplAddContent, tmplAddFile)
		if err != nil {
			return err
		}

		lib, s, err := openLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		variables := lib.LoadVariables(ctx)
		errs := placeholder.Validate(content, placeholder.KnownNames(variables))
		if len(errs) > 0 && !tmplAddForce {
			printValidationErrors(tmplAddTitle, errs)
			return fmt.Errorf("template references undefined variables; use --force to save anyway")
		}

		tmpl := placeholder.NewTemplate(tmplAddTitle, content)
		templates := append(lib.LoadTemplates(ctx), tmpl)

		if err := lib.SaveTemplates(ctx, templates); err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, tmpl)
		}

		fmt.Printf("Template added:\n")
		fmt.Printf("  ID:           %s\n", tmpl.ID)
		fmt.Printf("  Title:        %s\n", tmpl.Title)
		fmt.Printf("  Placeholders: %s\n", formatNames(placeholder.Extract(tmpl.Content)))
		return nil
	},
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		lib, s, err := openLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		templates := lib.LoadTemplates(ctx)

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, templates)
		}

		if len(templates) == 0 {
			fmt.Println("No templates found")
			return nil
		}

		rows := make([][]string, 0, len(templates))
		for _, tmpl := range templates {
			rows = append(rows, []string{
				tmpl.Title,
				shortID(tmpl.ID),
				formatNames(placeholder.Extract(tmpl.Content)),
				formatTimestamp(tmpl.UpdatedAt),
			})
		}

		return writeTable(os.Stdout, []string{"TITLE", "ID", "PLACEHOLDERS", "UPDATED"}, rows)
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id-or-title>",
	Short: "Show a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

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

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, tmpl)
		}

		fmt.Printf("Title:        %s\n", tmpl.Title)
		fmt.Printf("ID:           %s\n", tmpl.ID)
		fmt.Printf("Created:      %s\n", formatTimestamp(tmpl.CreatedAt))
		fmt.Printf("Updated:      %s\n", formatTimestamp(tmpl.UpdatedAt))
		fmt.Printf("Placeholders: %s\n", formatNames(placeholder.Extract(tmpl.Content)))
		fmt.Println()
		fmt.Println(tmpl.Content)
		return nil
	},
}

var templateEditCmd = &cobra.Command{
	Use:   "edit <id-or-title>",
	Short: "Edit a template",
	Long:  "Update a template's title or content. The updated timestamp moves; creation time is preserved.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if tmplEditTitle == "" && tmplEditContent == "" && tmplEditFile == "" {
			return fmt.Errorf("nothing to change; pass --title, --content or --file")
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

		content := tmpl.Content
		if tmplEditContent != "" || tmplEditFile != "" {
			content, err = resolveContent(tmplEditContent, tmplEditFile)
			if err != nil {
				return err
			}

			variables := lib.LoadVariables(ctx)
			errs := placeholder.Validate(content, placeholder.KnownNames(variables))
			if len(errs) > 0 && !tmplEditForce {
				printValidationErrors(tmpl.Title, errs)
				return fmt.Errorf("template references undefined variables; use --force to save anyway")
			}
		}

		for i := range templates {
			if templates[i].ID != tmpl.ID {
				continue
			}
			if tmplEditTitle != "" {
				templates[i].Title = tmplEditTitle
			}
			templates[i].Content = content
			templates[i].UpdatedAt = models.Now()
			tmpl = &templates[i]
			break
		}

		if err := lib.SaveTemplates(ctx, templates); err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, tmpl)
		}

		fmt.Printf("Template '%s' updated\n", tmpl.Title)
		return nil
	},
}

var templateRemoveCmd = &cobra.Command{
	Use:     "remove <id-or-title>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a template",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

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

		remaining := make([]models.Template, 0, len(templates)-1)
		for _, t := range templates {
			if t.ID != tmpl.ID {
				remaining = append(remaining, t)
			}
		}

		if err := lib.SaveTemplates(ctx, remaining); err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, map[string]any{
				"removed":     true,
				"template_id": tmpl.ID,
				"title":       tmpl.Title,
			})
		}

		fmt.Printf("Template '%s' removed\n", tmpl.Title)
		return nil
	},
}

// findTemplate resolves an argument to a template by exact ID, exact title,
// or unique ID prefix.
func findTemplate(templates []models.Template, idOrTitle string) (*models.Template, error) {
	for i := range templates {
		if templates[i].ID == idOrTitle {
			return &templates[i], nil
		}
	}
	for i := range templates {
		if templates[i].Title == idOrTitle {
			return &templates[i], nil
		}
	}

	var match *models.Template
	for i := range templates {
		if strings.HasPrefix(templates[i].ID, idOrTitle) {
			if match != nil {
				return nil, fmt.Errorf("template %q is ambiguous", idOrTitle)
			}
			match = &templates[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("template %q not found", idOrTitle)
	}
	return match, nil
}

func resolveContent(inline, file string) (string, error) {
	if inline != "" && file != "" {
		return "", fmt.Errorf("pass either --content or --file, not both")
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read content file: %w", err)
		}
		return string(data), nil
	}
	if inline == "" {
		return "", fmt.Errorf("content is required; pass --content or --file")
	}
	return inline, nil
}

func printValidationErrors(title string, errs []models.ValidationError) {
	fmt.Fprintf(os.Stderr, "Validation failed for %q:\n", title)
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "  [%s] %s\n", e.Field, e.Message)
	}
}

func formatNames(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
