// Package cli variable management commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hadirapp-com/support-template/internal/models"
	"github.com/hadirapp-com/support-template/internal/placeholder"
)

var varSetDescription string

func init() {
	rootCmd.AddCommand(variableCmd)
	variableCmd.AddCommand(variableSetCmd)
	variableCmd.AddCommand(variableListCmd)
	variableCmd.AddCommand(variableRemoveCmd)

	variableSetCmd.Flags().StringVar(&varSetDescription, "description", "", "what the variable is for")
}

var variableCmd = &cobra.Command{
	Use:     "variable",
	Aliases: []string{"var"},
	Short:   "Manage variables",
	Long: `Manage the variables that fill {{name}} placeholders.

Variable names are unique: setting an existing name updates its value.`,
}

var variableSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Create or update a variable",
	Example: `  hadir variable set agent_name "Maria"
  hadir variable set signature "Kind regards, support team" --description "closing line"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name, value := args[0], args[1]

		lib, s, err := openLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		variables := lib.LoadVariables(ctx)

		var updated *models.Variable
		for i := range variables {
			if variables[i].Name != name {
				continue
			}
			variables[i].Value = value
			if varSetDescription != "" {
				variables[i].Description = varSetDescription
			}
			variables[i].UpdatedAt = models.Now()
			updated = &variables[i]
			break
		}

		created := updated == nil
		if created {
			v := placeholder.NewVariable(name, value, varSetDescription)
			variables = append(variables, v)
			updated = &variables[len(variables)-1]
		}

		if err := lib.SaveVariables(ctx, variables); err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, updated)
		}

		if created {
			fmt.Printf("Variable '%s' created\n", name)
		} else {
			fmt.Printf("Variable '%s' updated\n", name)
		}
		return nil
	},
}

var variableListCmd = &cobra.Command{
	Use:   "list",
	Short: "List variables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		lib, s, err := openLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		variables := lib.LoadVariables(ctx)

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, variables)
		}

		if len(variables) == 0 {
			fmt.Println("No variables found")
			return nil
		}

		rows := make([][]string, 0, len(variables))
		for _, v := range variables {
			rows = append(rows, []string{
				v.Name,
				truncate(v.Value, 40),
				truncate(v.Description, 30),
				shortID(v.ID),
				formatTimestamp(v.UpdatedAt),
			})
		}

		return writeTable(os.Stdout, []string{"NAME", "VALUE", "DESCRIPTION", "ID", "UPDATED"}, rows)
	},
}

var variableRemoveCmd = &cobra.Command{
	Use:     "remove <name-or-id>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a variable",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		lib, s, err := openLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		variables := lib.LoadVariables(ctx)

		var removed *models.Variable
		remaining := make([]models.Variable, 0, len(variables))
		for i := range variables {
			if removed == nil && (variables[i].Name == args[0] || variables[i].ID == args[0]) {
				removed = &variables[i]
				continue
			}
			remaining = append(remaining, variables[i])
		}
		if removed == nil {
			return fmt.Errorf("variable %q not found", args[0])
		}

		if err := lib.SaveVariables(ctx, remaining); err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, map[string]any{
				"removed":     true,
				"variable_id": removed.ID,
				"name":        removed.Name,
			})
		}

		fmt.Printf("Variable '%s' removed\n", removed.Name)
		return nil
	},
}
