package cli

import (
	"fmt"
	"strconv"
	"strings"

	"usertable/internal/model"

	"github.com/spf13/cobra"
)

func newRowsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Print the initial rows",
		Long:  "Print the rows a new session would start with, after seed validation.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := app.logger()
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = log.Sync() }()

			st, err := openStore(cmd.Context(), app, log)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = st.Close() }()

			return writeOut(cmd, app, map[string]any{
				"data": st.Rows(),
				"meta": map[string]any{"count": st.Len()},
			})
		},
	}
	cmd.AddCommand(newRowsGetCmd(app))
	return cmd
}

func newRowsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print one row by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("invalid id %q", args[0]))
			}

			log, err := app.logger()
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = log.Sync() }()

			st, err := openStore(cmd.Context(), app, log)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = st.Close() }()

			r, ok := st.Get(id)
			if !ok {
				return writeErr(cmd, errNotFound("row", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": r})
		},
	}
}

func newRolesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the selectable roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs := model.Roles()
			out := make([]string, len(rs))
			for i, r := range rs {
				out[i] = string(r)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}
