package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-mailfence/pkg/mergetag"
	"github.com/goliatone/go-mailfence/pkg/session"
	"github.com/goliatone/go-mailfence/pkg/snapshot"
	"github.com/goliatone/go-mailfence/pkg/tui"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		output     string
		exportPath string
	)
	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Edit blocks, brand and sections interactively",
		Long: `Open an interactive editor over a template. The result is written back
to the file unless -o is given; --export also saves a snapshot of the session.
Ctrl+C discards the changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			driver := a.driver
			if driver == nil {
				driver = tui.NewSurveyDriver(cmd.OutOrStdout())
			}
			editor, err := tui.NewEditor(s,
				tui.WithPromptDriver(driver),
				tui.WithBrands(a.brands),
				tui.WithLogger(a.logger),
				tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
			)
			if err != nil {
				return err
			}
			if err := editor.Run(cmd.Context()); err != nil {
				return err
			}

			if output == "" {
				output = args[0]
			}
			html := s.HTML()
			if err := writeOutput(cmd, output, []byte(html)); err != nil {
				return err
			}
			if exportPath != "" {
				data, err := snapshot.Encode(s.Export(), snapshot.FormatForPath(exportPath))
				if err != nil {
					return err
				}
				if err := writeOutput(cmd, exportPath, data); err != nil {
					return err
				}
			}
			a.logger.Info("template saved", "output", output, "sections", len(s.Sections()), "merge_tags", len(mergetag.Tokens(html)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite the input)")
	cmd.Flags().StringVar(&exportPath, "export", "", "also write a snapshot (.json or .yaml)")
	return cmd
}
