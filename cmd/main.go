package main

import (
	"os"

	"github.com/spf13/cobra"

	"rulesets/logger"
)

type options struct {
	configPath string
	outputDir  string
	logLevel   string
	updated    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Fatalf("%v", err)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "rulesets",
		Short:         "Build categorized domain rule sets from public filter lists",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), opts, os.Stdout)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "config.yaml", "config file path, created with defaults if missing")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "output directory (overrides output_dir)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides log_level)")
	flags.StringVar(&opts.updated, "updated", "", "generation timestamp, RFC 3339 or YYYY-MM-DD (default $LAST_UPDATED, then now)")

	root.AddCommand(
		&cobra.Command{
			Use:   "build",
			Short: "Merge the configured sources into one rule file per category",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runBuild(cmd.Context(), opts, os.Stdout)
			},
		},
		&cobra.Command{
			Use:   "geosite",
			Short: "Split the geosite feed into rule files by category keywords",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runGeosite(cmd.Context(), opts, os.Stdout)
			},
		},
	)

	return root
}
