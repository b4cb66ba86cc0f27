package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sourcesManifestPath string
	sourcesOpts         = DefaultCommonOptions()
)

var sourcesCmd = &cobra.Command{
	Use:     "sources",
	Short:   "List registered sources in priority order",
	Args:    cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error { return sourcesOpts.ValidateFlags() },
	RunE:    runSources,
}

func init() {
	sourcesCmd.Flags().StringVar(&sourcesManifestPath, "manifest", "configctl.yaml", "source manifest path")
	sourcesOpts.RegisterFlags(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	setupLogging(sourcesOpts.LogLevel())

	m, err := loadManifest(sourcesManifestPath)
	if err != nil {
		return err
	}

	ctx, cancel := sourcesOpts.ApplyToContext(cmd.Context())
	defer cancel()

	loader, err := loadWithTimeout(ctx, m)
	if err != nil {
		return err
	}

	labels := loader.Registry().Labels()

	if sourcesOpts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(labels)
	}

	for i, label := range labels {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, label)
	}
	return nil
}
