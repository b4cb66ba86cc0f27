package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kyrobbins/goconfig/internal/config"
)

var (
	getManifestPath string
	getType         string
	getOpts         = DefaultCommonOptions()
)

var getCmd = &cobra.Command{
	Use:     "get <key>",
	Short:   "Resolve a configuration key",
	Args:    cobra.ExactArgs(1),
	PreRunE: func(_ *cobra.Command, _ []string) error { return getOpts.ValidateFlags() },
	RunE:    runGet,
}

func init() {
	getCmd.Flags().StringVar(&getManifestPath, "manifest", "configctl.yaml", "source manifest path")
	getCmd.Flags().StringVar(&getType, "type", "string", "coerce to: string, bool, int, long, float, double, version")
	getOpts.RegisterFlags(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	setupLogging(getOpts.LogLevel())

	m, err := loadManifest(getManifestPath)
	if err != nil {
		return err
	}

	ctx, cancel := getOpts.ApplyToContext(cmd.Context())
	defer cancel()

	loader, err := loadWithTimeout(ctx, m)
	if err != nil {
		return err
	}

	switch getType {
	case "string":
		v, err := loader.GetString(key, getOpts.MaxAge)
		return printResult(cmd, v, err)
	case "bool":
		v, err := loader.GetBoolean(key, getOpts.MaxAge)
		return printResult(cmd, v, err)
	case "int":
		v, err := loader.GetInt(key, getOpts.MaxAge)
		return printResult(cmd, v, err)
	case "long":
		v, err := loader.GetInt64(key, getOpts.MaxAge)
		return printResult(cmd, v, err)
	case "float":
		v, err := loader.GetFloat32(key, getOpts.MaxAge)
		return printResult(cmd, v, err)
	case "double":
		v, err := loader.GetFloat64(key, getOpts.MaxAge)
		return printResult(cmd, v, err)
	case "version":
		v, err := loader.GetVersion(key, getOpts.MaxAge)
		return printResult(cmd, v, err)
	default:
		return fmt.Errorf("unknown --type %q", getType)
	}
}

// printResult renders a Value/error pair returned by one of the Loader's
// typed accessors. Go's lack of covariant return types means each call
// site returns a distinct Value[T], so this is generic over that shape.
// Format follows CommonOptions.Format: "text" prints the bare value,
// "json" wraps it with presence/property-name metadata.
func printResult[T any](cmd *cobra.Command, value config.Value[T], err error) error {
	if err != nil {
		return err
	}
	if !value.IsPresent() {
		return fmt.Errorf("Key for [%s] not configured", value.PropertyName)
	}

	var zero T
	resolved := value.OrElse(zero)

	if getOpts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(struct {
			Key   string `json:"key"`
			Value T      `json:"value"`
		}{Key: value.PropertyName, Value: resolved})
	}

	fmt.Fprintln(cmd.OutOrStdout(), resolved)
	return nil
}
