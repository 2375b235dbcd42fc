package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-mailfence/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-parse a template whenever it changes",
		Long: `Watch a template and report its blocks and structural problems every
time it is saved. Runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := watch.New(args[0], watch.WithDebounce(debounce), watch.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return w.Run(cmd.Context(), func(r watch.Report) {
				out := cmd.OutOrStdout()
				if r.Err != nil {
					a.logger.Error("read template", "path", r.Path, "error", r.Err.Error())
					return
				}
				status := "ok"
				if fatal := r.Fatal(); fatal != nil {
					status = "broken"
				}
				fmt.Fprintf(out, "%s %s: %d blocks, %d problems\n", time.Now().Format(time.TimeOnly), status, len(r.Blocks), len(r.Problems))
				for _, p := range r.Problems {
					a.logger.Warn("structural problem", "path", r.Path, "problem", p.Error())
				}
			})
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-parsing")
	return cmd
}
