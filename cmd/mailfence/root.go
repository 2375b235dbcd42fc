package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-mailfence/pkg/brand"
	"github.com/goliatone/go-mailfence/pkg/session"
	"github.com/goliatone/go-mailfence/pkg/tui"
)

// app carries the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     Config
	logger  *slog.Logger
	brands  *brand.Store
	// driver overrides the survey prompts of the edit command.
	driver tui.PromptDriver
}

func newApp() *app {
	return &app{v: newViper(), logger: slog.New(slog.DiscardHandler)}
}

func newRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mailfence",
		Short: "Edit the fenced regions of HTML email templates",
		Long: `mailfence edits the regions of an HTML email template marked with
<!-- editable:start name="..." --> ... <!-- editable:end --> comments.
Everything outside the markers is left byte-for-byte as it was.

Quick Start:
  mailfence init campaign          Write a starter template and snapshot
  mailfence blocks template.html   List the editable blocks
  mailfence edit template.html     Edit blocks, brand and sections interactively
  mailfence strip template.html    Publish without markers`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./mailfence.yaml, or MAILFENCE_CONFIG_FILE)")
	flags.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("brand", "", "brand preset applied by render and set")
	bindFlags(a.v, flags, map[string]string{
		"log.level":  "log-level",
		"log.format": "log-format",
		"brand":      "brand",
	})

	root.AddCommand(
		newBlocksCmd(a),
		newSetCmd(a),
		newRenderCmd(a),
		newEditCmd(a),
		newStripCmd(a),
		newWatchCmd(a),
		newInitCmd(a),
		newSuggestCmd(a),
	)
	return root
}

// bindFlags maps config keys onto flags; a flag set on the command line wins
// over the config file and environment.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if flag := flags.Lookup(name); flag != nil {
			_ = v.BindPFlag(key, flag)
		}
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	brands, err := loadBrands(cfg.Brands)
	if err != nil {
		return err
	}
	a.cfg, a.logger, a.brands = cfg, logger, brands
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("config loaded", "file", used)
	}
	return nil
}

// newSession opens a session over template with the configured presets and
// logger.
func (a *app) newSession(template string, options ...session.Option) (*session.Session, error) {
	base := []session.Option{session.WithLogger(a.logger), session.WithBrands(a.brands)}
	return session.New(template, append(base, options...)...)
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
