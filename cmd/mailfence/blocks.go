package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-mailfence/pkg/fence"
)

func newBlocksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "blocks <file>",
		Short: "List the editable blocks of a template",
		Long: `List every editable block with its type, limits and current value.
Structural problems are printed to stderr; a missing end marker or a nested
start marker makes the command fail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			blocks, problems := fence.Parse(doc)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tMAX\tOPTIONS\tVALUE")
			for _, b := range blocks {
				max := "-"
				if b.MaxLength > 0 {
					max = strconv.Itoa(b.MaxLength)
				}
				options := "-"
				if len(b.Options) > 0 {
					options = strings.Join(b.Options, "|")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", b.Name, b.Type, max, options, preview(b.Value(), 48))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			for _, p := range problems {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", p)
			}
			if fatal := fence.FirstFatal(problems); fatal != nil {
				return fatal
			}
			return nil
		},
	}
}

func preview(value string, limit int) string {
	flat := strings.Join(strings.Fields(value), " ")
	if runes := []rune(flat); len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	if flat == "" {
		return "-"
	}
	return flat
}
