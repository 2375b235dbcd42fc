package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-mailfence"
	"github.com/goliatone/go-mailfence/pkg/fence"
	"github.com/goliatone/go-mailfence/pkg/session"
	"github.com/goliatone/go-mailfence/pkg/snapshot"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		templatePath string
		output       string
		publish      bool
		minify       bool
	)
	cmd := &cobra.Command{
		Use:   "render <snapshot>",
		Short: "Apply a snapshot to a template",
		Long: `Apply the brand, fields and sections of a JSON or YAML snapshot to a
template. The template comes from --template, the template config key, or the
bundled default. Output keeps the markers unless --publish is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			snap, err := snapshot.Decode([]byte(raw))
			if err != nil {
				return err
			}

			if templatePath == "" {
				templatePath = a.cfg.Template
			}
			doc := mailfence.DefaultTemplate()
			if templatePath != "" {
				if doc, err = readInput(cmd, templatePath); err != nil {
					return err
				}
			}

			var options []session.Option
			if snap.Brand == "" && a.cfg.Brand != "" {
				options = append(options, session.WithBrand(a.cfg.Brand))
			}
			s, err := a.newSession(doc, options...)
			if err != nil {
				return err
			}
			if err := s.Import(snap); err != nil {
				return err
			}

			out := s.HTML()
			if publish {
				if out, err = fence.Strip(out); err != nil {
					return err
				}
			}
			if minify {
				if out, err = minifyHTML(out, !publish); err != nil {
					return err
				}
			}
			a.logger.Info("rendered snapshot", "sections", len(snap.Sections), "fields", len(snap.Fields), "brand", s.Brand())
			return writeOutput(cmd, output, []byte(out))
		},
	}
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "template file (default: config or bundled template)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&publish, "publish", false, "strip markers from the output")
	cmd.Flags().BoolVar(&minify, "minify", false, "minify the output HTML")
	return cmd
}
