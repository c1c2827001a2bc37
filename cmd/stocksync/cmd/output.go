// Package cmd implements the stocksync subcommands. Each constructor takes
// the application context so commands can be tested with appcontext.Mock.
package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/stocksync/internal/appcontext"
	"github.com/agentstation/stocksync/internal/cmd/output"
)

// render writes data with the configured formatter. table is used for the
// table formats, raw for JSON and YAML.
func render(cmd *cobra.Command, app appcontext.Interface, table output.Data, raw any) error {
	format := output.DetectFormat(app.OutputFormat())
	var data any = raw
	if format.IsTable() {
		data = table
	}
	return output.NewFormatter(format).Format(writer(cmd), data)
}

func writer(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
