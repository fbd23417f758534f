package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"diabprep/pkg/config"
	"diabprep/pkg/logging"
)

var version = "dev"

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "diabprep",
		Short: "Prepare the diabetes dataset for model training",
		Long: `diabprep cleans a tabular medical dataset: zeros in columns that cannot be
zero become missing values, each column is imputed or dropped depending on how
much is missing, and numeric columns are clipped to Z-score or IQR bounds with
an indicator column per treated column.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file (default: ./diabprep.yaml or $HOME/.config/diabprep/diabprep.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "log format (console, json)")

	root.AddCommand(cleanCmd())
	root.AddCommand(inspectCmd())
	root.AddCommand(versionCmd())
	return root
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// flagKeys maps config keys to flag names.
type flagKeys map[string]string

// loadConfig reads file and environment settings, overlays the command's
// flags, validates the result and sets up logging.
func loadConfig(cmd *cobra.Command, keys flagKeys) (config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	v, err := config.New(cfgFile)
	if err != nil {
		return config.Config{}, err
	}

	keys["logging.level"] = "log-level"
	keys["logging.format"] = "log-format"
	if err := bindFlags(v, cmd, keys); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return config.Config{}, err
	}
	if err := logging.SetupLogger(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return config.Config{}, fmt.Errorf("failed to setup logging: %w", err)
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, keys flagKeys) error {
	for key, name := range keys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			return fmt.Errorf("unknown flag %q for key %q", name, key)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "diabprep %s\n", version)
		},
	}
}
