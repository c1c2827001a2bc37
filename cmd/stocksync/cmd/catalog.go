package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/stocksync/internal/appcontext"
	"github.com/agentstation/stocksync/internal/cmd/output"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/offers"
)

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "catalog <marketplace> [campaign]",
		GroupID: "core",
		Short:   "List the offer identifiers of a marketplace catalog",
		Long: `Catalog drains the marketplace offer listing and prints every offer id,
duplicates removed, in listing order. For Yandex Market the campaign can be
given by name (fbs, dbs) or id; the first configured campaign is used otherwise.`,
		Example: `  stocksync catalog ozon
  stocksync catalog yandex dbs -o json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			market, ok := offers.ParseMarketplace(args[0])
			if !ok {
				return errors.NewValidationError("marketplace", args[0], "must be ozon or yandex")
			}
			campaign := ""
			if len(args) == 2 {
				campaign = args[1]
			}

			client, err := app.Client()
			if err != nil {
				return err
			}
			ids, err := client.Catalog(cmd.Context(), market, campaign)
			if err != nil {
				return err
			}

			app.Logger().Info().Str("marketplace", market.String()).Int("offers", ids.Len()).Msg("Catalog listed")
			return render(cmd, app, output.CatalogTable(ids.List()), ids.List())
		},
	}
}
