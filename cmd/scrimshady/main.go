// scrimshady displays the desktop region behind its own window through
// a GPU post-processing effect, while keeping the window itself
// invisible to screen capture.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrimshady/scrimshady/internal/config"
	"github.com/scrimshady/scrimshady/internal/effects"
)

// Set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	var startEffect string

	root := &cobra.Command{
		Use:           "scrimshady",
		Short:         "desktop see-through window with GPU effects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the effect window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if startEffect != "" {
				cfg.Effects.Start = startEffect
			}
			return run(cfg)
		},
	}
	runCmd.Flags().StringVar(&startEffect, "effect", "", "startup effect (name or 1-based ordinal)")

	effectsCmd := &cobra.Command{
		Use:   "effects",
		Short: "list the effect roster",
		Run: func(cmd *cobra.Command, args []string) {
			for i, name := range effects.Names() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %s\n", i+1, name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "write the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Save(config.Default(), cfgFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scrimshady %s (%s)\n", version, commit)
		},
	}

	root.AddCommand(runCmd, effectsCmd, configCmd, versionCmd)
	return root
}
