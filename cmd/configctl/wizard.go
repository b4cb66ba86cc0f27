package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var (
	initOutputPath string
	initOpts       = DefaultCommonOptions()
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Interactively build a source manifest",
	Args:    cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error { return initOpts.ValidateFlags() },
	RunE:    runInit,
}

func init() {
	initCmd.Flags().StringVar(&initOutputPath, "output", "configctl.yaml", "manifest output path")
	initOpts.RegisterFlags(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	setupLogging(initOpts.LogLevel())

	var sourceTypes []string
	var propertiesPath, yamlPath string
	var propertiesRequired bool

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which sources should configctl load?").
				Options(
					huh.NewOption(".properties file", "properties").Selected(true),
					huh.NewOption("YAML file", "yaml"),
					huh.NewOption("process environment", "env"),
				).
				Value(&sourceTypes),
		),
	).Run()
	if err != nil {
		return err
	}

	m := manifest{}

	for _, t := range sourceTypes {
		switch t {
		case "properties":
			if err := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Path to .properties file").Value(&propertiesPath),
				huh.NewConfirm().Title("Required (fail if missing)?").Value(&propertiesRequired),
			)).Run(); err != nil {
				return err
			}
			m.Sources = append(m.Sources, sourceManifest{
				Type:     "properties",
				Path:     propertiesPath,
				Required: propertiesRequired,
			})
		case "yaml":
			if err := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Path to YAML file").Value(&yamlPath),
			)).Run(); err != nil {
				return err
			}
			m.Sources = append(m.Sources, sourceManifest{Type: "yaml", Path: yamlPath})
		case "env":
			m.Sources = append(m.Sources, sourceManifest{Type: "env", Label: "environment"})
		}
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to render manifest: %w", err)
	}

	if err := os.WriteFile(initOutputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	if !initOpts.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote manifest to %s\n", initOutputPath)
	}
	return nil
}
