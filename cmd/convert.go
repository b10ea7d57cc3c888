package cmd

import (
	"errors"
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardconv/internal/deck"
	"github.com/arcanaland/cardconv/internal/table"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert [csv_file]",
	Short: "Convert a card table to JSON",
	Long: `Convert reads a CSV table with one card per row and writes {"cards": [...]}
to output.json in the current directory.

Cells that cannot be read as the field's type fall back to 0 or "".
A table without the ID, Name, CardType, HP, Type, Weakness, RetreatCost,
Tags or ImageKey column is rejected.

Examples:
  cardconv convert cards.csv
  cardconv convert --output deck.yaml --format yaml cards.csv`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("please provide the CSV file to convert")
		}
		return cobra.MaximumNArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath := args[0]

		cfg, log, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		outputPath, _ := cmd.Flags().GetString("output")
		if outputPath == "" {
			outputPath = cfg.OutputFile
		}
		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = cfg.Format
		}
		format, err = deck.ParseFormat(format)
		if err != nil {
			return err
		}

		t, err := table.ReadFile(csvPath, cfg.TableOptions())
		if err != nil {
			return err
		}
		log.Debug("read table", "path", csvPath, "rows", len(t.Rows), "columns", len(t.Columns))

		d, err := deck.Convert(t, log)
		if err != nil {
			return fmt.Errorf("error converting %s: %w", csvPath, err)
		}

		if err := deck.WriteFile(outputPath, d, format); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
			colorize.GreenString("✅ Wrote %d cards to", len(d.Cards)), outputPath)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "Output file (default from config, output.json)")
	convertCmd.Flags().StringP("format", "f", "", "Output format: json or yaml (default from config, json)")
}
