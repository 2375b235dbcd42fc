package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-mailfence/pkg/mergetag"
)

func newSuggestCmd(a *app) *cobra.Command {
	var catalogPath string
	cmd := &cobra.Command{
		Use:   "suggest [query]",
		Short: "Suggest merge tags matching a query",
		Long: `List merge tags whose label or token contains the query, ignoring case.
Without a query every tag is listed. --catalog reads a JSON or YAML catalog
instead of the bundled one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := mergetag.Default()
			if catalogPath != "" {
				raw, err := readInput(cmd, catalogPath)
				if err != nil {
					return err
				}
				if catalog, err = mergetag.Decode([]byte(raw)); err != nil {
					return err
				}
			}
			query := ""
			if len(args) == 1 {
				query = strings.TrimSpace(args[0])
			}

			matches := catalog.Suggest(query)
			a.logger.Debug("merge tag suggestions", "query", query, "matches", len(matches))
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, m := range matches {
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.Value, m.Group, m.Label)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "merge tag catalog file")
	return cmd
}
