package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chazu/orbishell/pkg/logging"
)

// NewRootCmd creates the root command. Without a subcommand it builds the
// shell once.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "orbishell",
		Short: "Build the Orbi shell as a printable STL",
		Long: `orbishell builds the Orbi shell: three organic legs, a dome, a hollowed
plenum with side ducts, ball-joint sockets and nozzles, composed on a voxel
lattice, smoothed and written as a binary STL.

Parameters come from the built-in defaults, an optional YAML file, an
optional parameter script, ORBI_* environment variables and flags, in that
order.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	opts.bind(cmd.Flags())

	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewConfigCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		var logged *loggedError
		if !errors.As(err, &logged) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logging.New(verbose)
}

func runBuild(cmd *cobra.Command, opts *options) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app := NewApp(logger)
	cfg, err := app.Configure(opts)
	if err != nil {
		return err
	}

	var w io.Writer
	switch opts.reportPath {
	case "":
	case "-":
		w = cmd.OutOrStdout()
	default:
		f, err := os.Create(opts.reportPath)
		if err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		defer f.Close()
		w = f
	}
	return app.Build(cfg, w)
}
