package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mailfence"
	"github.com/goliatone/go-mailfence/pkg/snapshot"
)

const (
	initTemplateFile = "template.html"
	initSnapshotFile = "snapshot.yaml"
	initConfigFile   = "mailfence.yaml"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter template, snapshot and config",
		Long: `Write the bundled template, a starter snapshot and a mailfence.yaml into
dir (default: the current directory). Existing files are kept unless --force
is given.

Next steps:
  mailfence render snapshot.yaml --publish -o email.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}

			starter, err := snapshot.Encode(mailfence.StarterSnapshot(), snapshot.FormatYAML)
			if err != nil {
				return err
			}
			config, err := yaml.Marshal(map[string]any{
				"brand":    "myclub",
				"template": initTemplateFile,
				"log":      map[string]string{"level": "info", "format": "text"},
			})
			if err != nil {
				return err
			}

			files := []struct {
				name string
				data []byte
			}{
				{initTemplateFile, []byte(mailfence.DefaultTemplate())},
				{initSnapshotFile, starter},
				{initConfigFile, config},
			}
			for _, f := range files {
				path := filepath.Join(dir, f.name)
				if !force {
					if _, err := os.Stat(path); err == nil {
						a.logger.Warn("file exists, skipping", "path", path)
						continue
					} else if !errors.Is(err, fs.ErrNotExist) {
						return err
					}
				}
				if err := os.WriteFile(path, f.data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "created", path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing files")
	return cmd
}
