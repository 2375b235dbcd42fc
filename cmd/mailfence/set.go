package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-mailfence/pkg/session"
)

func newSetCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "set <file> name=value...",
		Short: "Write sanitized values into blocks",
		Long: `Write values into named blocks. Each value is sanitized for the block
type before it is written; markers and everything outside them are kept.
A configured brand is applied before the values are written.

Examples:
  mailfence set template.html 'GREETING=Dear ${Leads.First Name},'
  mailfence set template.html SIGNOFF_NAME=Sam -o out.html`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments := make([][2]string, 0, len(args)-1)
			for _, arg := range args[1:] {
				name, value, ok := strings.Cut(arg, "=")
				if !ok || strings.TrimSpace(name) == "" {
					return fmt.Errorf("invalid assignment %q, want name=value", arg)
				}
				assignments = append(assignments, [2]string{strings.TrimSpace(name), value})
			}

			doc, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			var options []session.Option
			if a.cfg.Brand != "" {
				options = append(options, session.WithBrand(a.cfg.Brand))
			}
			s, err := a.newSession(doc, options...)
			if err != nil {
				return err
			}
			for _, kv := range assignments {
				if err := s.SetField(kv[0], kv[1]); err != nil {
					return err
				}
			}
			return writeOutput(cmd, output, []byte(s.HTML()))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
