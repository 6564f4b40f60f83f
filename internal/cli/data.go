// Package cli export, import and clear commands for the stored data.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hadirapp-com/support-template/internal/library"
)

var (
	exportOutput string
	clearForce   bool
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(clearCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write the bundle to a file instead of stdout")
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip confirmation")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all templates and variables",
	Long:  "Export both collections as a versioned JSON bundle for backup or transfer.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		lib, s, err := openLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		step := startProgress("Exporting bundle")
		bundle, err := lib.Export(ctx)
		if err != nil {
			step.Fail(err)
			return fmt.Errorf("failed to export: %w", err)
		}
		step.Done()

		if exportOutput == "" {
			fmt.Println(bundle)
			return nil
		}

		if err := os.WriteFile(exportOutput, []byte(bundle), 0o644); err != nil {
			return fmt.Errorf("failed to write bundle: %w", err)
		}

		if !IsJSONOutput() {
			fmt.Printf("Bundle written to %s\n", exportOutput)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a bundle",
	Long: `Import a previously exported bundle, replacing both stored collections.

Pass "-" to read the bundle from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read bundle: %w", err)
		}

		lib, s, err := openLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		step := startProgress("Importing bundle")
		if err := lib.Import(ctx, string(data)); err != nil {
			step.Fail(err)
			if errors.Is(err, library.ErrImportFormat) {
				return library.ErrImportFormat
			}
			return err
		}
		step.Done()

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, map[string]any{"imported": true})
		}

		fmt.Println("Bundle imported")
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all templates and variables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if !clearForce {
			fmt.Print("Remove all templates and variables? [y/N]: ")
			var response string
			fmt.Scanln(&response)
			if response != "y" && response != "Y" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		lib, s, err := openLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := lib.Clear(ctx); err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, map[string]any{"cleared": true})
		}

		fmt.Println("All data removed")
		return nil
	},
}
