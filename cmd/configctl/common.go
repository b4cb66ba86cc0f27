package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

// CommonOptions contains flags shared across all commands.
type CommonOptions struct {
	// Output
	Format string

	// Execution
	Timeout time.Duration
	MaxAge  time.Duration

	Verbose bool
	Quiet   bool
}

// DefaultCommonOptions returns sensible defaults.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Timeout: 30 * time.Second,
		Format:  "text",
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Global timeout for source loading (0 to disable)")
	cmd.Flags().DurationVar(&opts.MaxAge, "max-age", opts.MaxAge,
		"Maximum cache age for a resolved value (0 forces a fresh lookup)")

	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: text, json")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"Verbose output")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false,
		"Quiet output (errors only)")
}

// ApplyToContext applies timeout to context. A nil ctx (a command run
// outside of Execute/ExecuteContext, as in tests) is treated as
// context.Background().
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return ctx, func() {}
}

// LogLevel derives the slog level from Verbose/Quiet: debug when verbose,
// error when quiet (errors only), info otherwise.
func (opts *CommonOptions) LogLevel() slog.Level {
	switch {
	case opts.Verbose:
		return slog.LevelDebug
	case opts.Quiet:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidateFlags validates common options.
func (opts *CommonOptions) ValidateFlags() error {
	if opts.Verbose && opts.Quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[opts.Format] {
		return fmt.Errorf("invalid format: %s (valid: text, json)", opts.Format)
	}

	return nil
}
