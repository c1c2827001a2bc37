package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/stocksync"
	"github.com/agentstation/stocksync/internal/appcontext"
	"github.com/agentstation/stocksync/internal/cmd/alerts"
	"github.com/agentstation/stocksync/internal/cmd/output"
	"github.com/agentstation/stocksync/internal/feed"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/offers"
	"github.com/agentstation/stocksync/pkg/sync"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand(app appcontext.Interface) *cobra.Command {
	var (
		dryRun   bool
		feedFile string
		dsn      string
	)

	cmd := &cobra.Command{
		Use:     "sync [marketplace]",
		GroupID: "core",
		Short:   "Push the distributor snapshot to marketplace catalogs",
		Long: `Sync downloads the distributor stock feed and reconciles it with every
configured marketplace target: the Ozon seller account and each Yandex Market
campaign (FBS, DBS).

For each target the catalog is listed, stocks are set from the feed (offers
missing from the feed are set to zero), prices are set for offers present in
the feed, and the updates are submitted in batches. The first failure stops
the run; batches already submitted stay applied.`,
		Example: `  stocksync sync                         # Sync every configured marketplace
  stocksync sync yandex                  # Sync Yandex Market campaigns only
  stocksync sync --dry-run -o json       # Show the updates without submitting
  stocksync sync --feed-file ostatki.zip # Use a local feed instead of downloading`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := app.Logger()

			settings, err := app.Settings()
			if err != nil {
				return err
			}

			var syncOpts []stocksync.SyncOption
			if len(args) == 1 {
				market, ok := offers.ParseMarketplace(args[0])
				if !ok {
					return errors.NewValidationError("marketplace", args[0], "must be ozon or yandex")
				}
				syncOpts = append(syncOpts, stocksync.WithMarketplaces(market))
			}
			syncOpts = append(syncOpts, stocksync.WithDryRun(dryRun))

			if feedFile != "" {
				records, err := feed.LoadFile(feedFile, settings.Feed.HeaderRow)
				if err != nil {
					return err
				}
				syncOpts = append(syncOpts, stocksync.WithSnapshot(records))
			}

			var clientOpts []stocksync.Option
			if dsn == "" {
				dsn = settings.History
			}
			if dsn != "" {
				store, err := app.History(dsn)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				clientOpts = append(clientOpts, stocksync.WithRecorder(store))
			}

			client, err := app.Client(clientOpts...)
			if err != nil {
				return err
			}
			client.OnBatchSubmitted(func(e sync.BatchEvent) {
				logger.Info().
					Str("target", e.Target.String()).
					Str("resource", string(e.Resource)).
					Int("batch", e.Index+1).
					Int("batches", e.Total).
					Int("size", e.Size).
					Bool("dry_run", e.DryRun).
					Msg("Batch done")
			})

			result, syncErr := client.Sync(ctx, syncOpts...)
			if result != nil && len(result.Targets) > 0 {
				if err := render(cmd, app, output.ResultTable(result), result); err != nil {
					return err
				}
			}
			if output.DetectFormat(app.OutputFormat()).IsTable() {
				_ = alerts.Write(cmd.ErrOrStderr(), alerts.ForResult(result, syncErr))
			}
			return syncErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "reconcile and batch without submitting anything")
	cmd.Flags().StringVar(&feedFile, "feed-file", "", "read the snapshot from a local .zip or .xls file")
	cmd.Flags().StringVar(&dsn, "history", "", "record run history in a database (sqlite://path or postgres DSN)")

	return cmd
}
