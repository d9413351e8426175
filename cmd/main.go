package main

import (
	"context"
	"io"
	"os"

	"polymer/internal/config"
	"polymer/internal/di"
	"polymer/internal/runner"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout))
}

func execute(ctx context.Context, args []string, in io.Reader, out io.Writer) int {
	code := runner.ExitOK
	root := newRootCmd(ctx, in, out, &code)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		// cobra уже напечатал ошибку в stderr
		return runner.ExitUsage
	}
	return code
}

func newRootCmd(ctx context.Context, in io.Reader, out io.Writer, code *int) *cobra.Command {
	var flags *config.Flags

	root := &cobra.Command{
		Use:   "polymer",
		Short: "Reduce a polymer by removing reactive unit pairs",
		Long: `Reads one line from stdin and keeps removing the first pair of adjacent
units that are the same letter in opposite case, until none is left.
The reduced polymer is printed to stdout, diagnostics go to stderr.

Example:
  echo dabAcCaCBAcCcaDA | polymer -v`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Resolve(cmd.Flags())
			if err != nil {
				return err
			}
			*code = di.Execute(ctx, di.NewReduceApp(cfg, di.Streams{In: in, Out: out}))
			return nil
		},
	}
	flags = config.RegisterFlags(root.PersistentFlags())

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /reduce over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Resolve(cmd.Flags())
			if err != nil {
				return err
			}
			*code = di.Execute(ctx, di.NewServeApp(cfg))
			return nil
		},
	}
	flags.RegisterServeFlags(serve.Flags())
	root.AddCommand(serve)

	return root
}
