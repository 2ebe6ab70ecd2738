package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tesselate/compiler/internal/component"
	"github.com/tesselate/compiler/internal/printer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var loose bool
	var legacy bool

	cmd := &cobra.Command{
		Use:   "componentparser [file]",
		Short: "Parse a single-file component into its ESTree-compatible JSON AST",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source []byte
			var filename string
			var err error
			if len(args) == 1 {
				filename = args[0]
				source, err = os.ReadFile(filename)
				if err != nil {
					return err
				}
			} else {
				source, err = io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
			}

			opts := component.Options{Modern: !legacy, Loose: loose, Filename: filename}
			root, diagnostics, err := component.Parse(source, opts)
			for _, d := range diagnostics {
				fmt.Fprintln(os.Stderr, d.Error())
			}
			if err != nil {
				return err
			}
			return printer.PrintJSON(os.Stdout, root)
		},
	}

	cmd.Flags().BoolVar(&loose, "loose", false, "recover from parse errors instead of aborting on the first one")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "set Options.Modern to false (the parser accepts the same grammar either way)")
	return cmd
}
