package main

import (
	"github.com/spf13/cobra"
)

// NewBuildCmd creates the build command, an explicit form of the root
// command.
func NewBuildCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the shell and write the STL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, opts)
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}
