// Package cli implements the astroctl command tree. Every command computes
// its result in-process through the chart use cases and prints it as JSON.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"AstroInsight/internal/di"
	"AstroInsight/pkg/config"

	"github.com/spf13/cobra"
)

// RootOptions holds the global flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Timeout    time.Duration
}

type runtime struct {
	opts    RootOptions
	toolkit *di.Toolkit
}

// NewRootCommand creates the astroctl root command with every subcommand.
func NewRootCommand(version string) *cobra.Command {
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:           "astroctl",
		Short:         "Compute charts, transits and sky snapshots from the command line",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return rt.init()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if rt.toolkit == nil {
				return nil
			}
			return rt.toolkit.Close()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&rt.opts.ConfigPath, "config", "c", "config/config.yaml", "config file path; empty uses defaults")
	pf.StringVar(&rt.opts.LogLevel, "log-level", "error", "log level (debug, info, warn, error)")
	pf.DurationVar(&rt.opts.Timeout, "timeout", 30*time.Second, "timeout for each command")

	cmd.AddCommand(
		newSkyCmd(rt),
		newNatalCmd(rt),
		newSolarReturnCmd(rt),
		newVersionCmd(version),
	)
	return cmd
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context, version string) error {
	return NewRootCommand(version).ExecuteContext(ctx)
}

func (rt *runtime) init() error {
	cfg, err := config.LoadWithEnv(rt.opts.ConfigPath)
	if err != nil {
		return err
	}
	if rt.opts.LogLevel != "" {
		cfg.Log.Level = rt.opts.LogLevel
	}
	// logs go to stderr so stdout stays valid JSON
	cfg.Log.Output = "stderr"
	tk, err := di.InitializeToolkit(cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	rt.toolkit = tk
	return nil
}

// context bounds a command by the --timeout flag.
func (rt *runtime) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if rt.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, rt.opts.Timeout)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "astroctl %s\n", version)
		},
	}
}
