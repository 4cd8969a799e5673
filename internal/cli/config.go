package cli

import (
	"errors"
	"os"

	"usertable/internal/config"
	"usertable/internal/rows"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigInitCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the config file and the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"path": path,
					"file": app.cfg,
					"effective": map[string]any{
						"seed":     app.Seed,
						"backend":  effectiveBackend(app.Backend),
						"format":   app.Format,
						"logFile":  app.LogFile,
						"logLevel": app.LogLevel,
					},
				},
			})
		},
	}
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return writeErr(cmd, err)
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return writeErr(cmd, errors.New("config already exists (use --force to overwrite): "+path))
				}
			}

			cfg := &config.Config{
				Seed:     app.Seed,
				Backend:  app.Backend,
				LogFile:  app.LogFile,
				LogLevel: app.LogLevel,
			}
			if app.cfg != nil {
				cfg.TUI = app.cfg.TUI
			}
			if err := config.Save(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"path": path, "config": cfg},
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func effectiveBackend(name string) string {
	if name == "" {
		return rows.BackendMemory
	}
	return name
}
