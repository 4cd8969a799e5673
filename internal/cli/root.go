package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"usertable/internal/config"
	"usertable/internal/format"
	"usertable/internal/logging"
	"usertable/internal/model"
	"usertable/internal/rows"
	"usertable/internal/seed"
	"usertable/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Seed       string
	Sample     bool
	Backend    string
	Format     string
	PrettyJSON bool
	LogFile    string
	LogLevel   string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "usertable",
		Short:        "Edit a table of users in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive table with demo users
  usertable --sample

  # Start from a seed file (JSON or YAML); nothing is written back
  usertable --seed users.yaml --backend sqlite

  # Scriptable commands
  usertable rows --seed users.json
  usertable roles --format edn
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.loadConfig()
	}

	cmd.PersistentFlags().StringVar(&app.Seed, "seed", envOr("USERTABLE_SEED", ""), "JSON or YAML file with the initial rows")
	cmd.PersistentFlags().BoolVar(&app.Sample, "sample", false, "Start with demo rows when no seed file is given")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("USERTABLE_BACKEND", ""), "Row backend (memory|sqlite); both keep data in-process only")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("USERTABLE_FORMAT", format.JSON), "Output format (json|edn)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("USERTABLE_LOG_FILE", ""), "Write logs to this file (rotated)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("USERTABLE_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newRowsCmd(app))
	cmd.AddCommand(newRolesCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// loadConfig fills settings left empty by flags and env from the config file.
func (app *App) loadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	app.cfg = cfg
	if app.Seed == "" {
		app.Seed = cfg.Seed
	}
	if app.Backend == "" {
		app.Backend = cfg.Backend
	}
	if app.LogFile == "" {
		app.LogFile = cfg.LogFile
	}
	if app.LogLevel == "" {
		app.LogLevel = cfg.LogLevel
	}
	return nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	log, err := app.logger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := openStore(cmd.Context(), app, log)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	log.Info("starting tui", zap.Int("rows", st.Len()), zap.String("backend", app.Backend))
	return tui.Run(cmd.Context(), st, tui.Options{
		Logger: log,
		Theme:  app.cfg.Theme(),
		Glyphs: app.cfg.Glyphs(),
	})
}

func (app *App) logger() (*zap.Logger, error) {
	return logging.New(logging.Options{Path: app.LogFile, Level: app.LogLevel})
}

func openStore(ctx context.Context, app *App, log *zap.Logger) (*rows.Store, error) {
	initial, err := initialRows(app)
	if err != nil {
		return nil, err
	}
	b, err := rows.OpenBackend(ctx, app.Backend)
	if err != nil {
		return nil, err
	}
	st := rows.New(b, rows.WithLogger(log))
	if err := st.Seed(initial); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

func initialRows(app *App) ([]model.Row, error) {
	switch {
	case strings.TrimSpace(app.Seed) != "":
		return seed.Load(app.Seed)
	case app.Sample:
		return seed.Sample(), nil
	default:
		return nil, nil
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
