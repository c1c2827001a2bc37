package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/stocksync/internal/appcontext"
	"github.com/agentstation/stocksync/internal/cmd/output"
	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/errors"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(app appcontext.Interface) *cobra.Command {
	var (
		limit int
		dsn   string
	)

	cmd := &cobra.Command{
		Use:     "history",
		GroupID: "management",
		Short:   "Show recorded sync runs",
		Example: `  stocksync history --history sqlite://stocksync.db
  STOCKSYNC_HISTORY=postgres://localhost/stocksync stocksync history --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dsn == "" {
				settings, err := app.Settings()
				if err != nil {
					return err
				}
				dsn = settings.History
			}
			if dsn == "" {
				return errors.NewValidationError("history", dsn, "set --history or STOCKSYNC_HISTORY")
			}

			store, err := app.History(dsn)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return render(cmd, app, output.RunsTable(runs), runs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultHistoryLimit, "maximum number of runs to show")
	cmd.Flags().StringVar(&dsn, "history", "", "history database (sqlite://path or postgres DSN)")
	return cmd
}
