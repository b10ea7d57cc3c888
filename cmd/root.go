package cmd

import (
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardconv/internal/config"
	"github.com/arcanaland/cardconv/internal/logger"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardconv",
	Short: "Tool for converting trading card tables to JSON",
	Long: `Cardconv is a command-line tool that converts a CSV table of trading cards,
one row per card, into a JSON document that card browsers and game clients can load.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	RootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	RootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	RootCmd.AddCommand(convertCmd)
	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// loadSettings reads the config file and builds the logger for a command.
// An unreadable config file is logged and the defaults are used.
func loadSettings(cmd *cobra.Command) (*config.Config, *charmlog.Logger, error) {
	cfg, loadErr := config.LoadConfig()
	if loadErr != nil {
		cfg = config.Default()
	}

	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = cfg.LogLevel
	}
	jsonLogs, _ := cmd.Flags().GetBool("log-json")

	log, err := logger.New(logger.Config{
		Level:  level,
		Output: cmd.ErrOrStderr(),
		JSON:   jsonLogs,
	})
	if err != nil {
		return nil, nil, err
	}

	if loadErr != nil {
		log.Warn("using default settings", "err", loadErr)
	}

	return cfg, log, nil
}
