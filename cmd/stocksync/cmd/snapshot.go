package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/stocksync/internal/appcontext"
	"github.com/agentstation/stocksync/internal/cmd/output"
	"github.com/agentstation/stocksync/internal/feed"
	"github.com/agentstation/stocksync/pkg/offers"
)

// NewSnapshotCommand creates the snapshot command.
func NewSnapshotCommand(app appcontext.Interface) *cobra.Command {
	var feedFile string

	cmd := &cobra.Command{
		Use:     "snapshot",
		GroupID: "core",
		Short:   "Download and print the distributor stock feed",
		Example: `  stocksync snapshot
  stocksync snapshot --feed-file ostatki.xls -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				records []offers.Record
				err     error
			)
			if feedFile != "" {
				settings, serr := app.Settings()
				if serr != nil {
					return serr
				}
				records, err = feed.LoadFile(feedFile, settings.Feed.HeaderRow)
			} else {
				client, cerr := app.Client()
				if cerr != nil {
					return cerr
				}
				records, err = client.Snapshot(cmd.Context())
			}
			if err != nil {
				return err
			}
			return render(cmd, app, output.RecordsTable(records), records)
		},
	}

	cmd.Flags().StringVar(&feedFile, "feed-file", "", "read a local .zip or .xls file instead of downloading")
	return cmd
}
