package main

import (
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command, which prints the effective
// configuration as YAML. The output is a valid configuration file.
func NewConfigCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := NewApp(logger).Configure(opts)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}
