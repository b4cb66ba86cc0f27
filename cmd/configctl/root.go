package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd is the application entry point. Verbosity is a per-command
// concern (see CommonOptions.RegisterFlags), so the root command itself
// sets up a baseline logger and lets each leaf command raise or lower it.
var rootCmd = &cobra.Command{
	Use:   "configctl",
	Short: "Inspect and resolve hierarchical configuration",
	Long: `configctl resolves keys against a layered configuration registry:
.properties files, YAML files, and the process environment, as described
in a manifest. It exercises the config resolution
engine end to end from the command line — placeholder expansion,
override fallback, and typed coercion.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging(slog.LevelInfo)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.configctl.yaml)")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(initCmd)
}

// initConfig loads the CLI's own bootstrap configuration from a config
// file and the environment. This is scaffolding around the engine, not
// part of the engine's public API — the library itself takes no
// environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error("failed to find home directory", "error", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".configctl")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

func setupLogging(level slog.Level) {
	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
