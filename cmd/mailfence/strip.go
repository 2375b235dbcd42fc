package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-mailfence/pkg/fence"
)

func newStripCmd(a *app) *cobra.Command {
	var (
		output string
		minify bool
	)
	cmd := &cobra.Command{
		Use:   "strip <file>",
		Short: "Remove every marker, producing publishable HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := fence.Strip(doc)
			if err != nil {
				return err
			}
			if minify {
				if out, err = minifyHTML(out, false); err != nil {
					return err
				}
			}
			a.logger.Debug("stripped markers", "in", len(doc), "out", len(out))
			return writeOutput(cmd, output, []byte(out))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&minify, "minify", false, "minify the published HTML")
	return cmd
}
