package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardconv/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [csv_file]",
	Short: "Check that a card table can be converted",
	Long: `Validate checks the table header against the columns the converter reads.
Missing required columns are errors; missing optional columns are warnings,
since those fields fall back to empty values.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath := args[0]

		// Check if path exists
		if _, err := os.Stat(csvPath); os.IsNotExist(err) {
			return fmt.Errorf("table not found: %s", csvPath)
		}

		cfg, _, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		v := validator.NewValidator(csvPath, cfg.TableOptions())
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "%s Table '%s' can be converted.\n", colorize.GreenString("✅"), csvPath)
		} else {
			fmt.Fprintf(out, "%s Table '%s' has %d errors:\n", colorize.RedString("❌"), csvPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, colorize.YellowString("%s", warn))
			}
		}

		return nil
	},
}
