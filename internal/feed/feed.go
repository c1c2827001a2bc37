// Package feed downloads and parses the distributor's stock snapshot: a zip
// archive holding a legacy .xls sheet with one row per watch.
package feed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentstation/stocksync/internal/transport"
	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/logging"
	"github.com/agentstation/stocksync/pkg/offers"
)

// Column titles of the stock sheet.
const (
	ColumnCode     = "Код"
	ColumnQuantity = "Количество"
	ColumnPrice    = "Цена"
)

// Source loads snapshots from a feed URL.
type Source struct {
	url       string
	headerRow int
	client    *transport.Client
}

// Option configures a Source.
type Option func(*Source)

// WithURL sets the archive URL.
func WithURL(url string) Option {
	return func(s *Source) {
		if url != "" {
			s.url = url
		}
	}
}

// WithHeaderRow sets the zero-based row holding the column titles.
func WithHeaderRow(row int) Option {
	return func(s *Source) {
		s.headerRow = row
	}
}

// WithTimeout sets the download timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.client = transport.New("feed", "", nil, transport.WithTimeout(d))
		}
	}
}

// New creates a Source for the default distributor feed.
func New(opts ...Option) *Source {
	s := &Source{
		url:       constants.DefaultFeedURL,
		headerRow: constants.DefaultFeedHeaderRow,
		client:    transport.New("feed", "", nil, transport.WithTimeout(constants.FeedDownloadTimeout)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the archive URL the source downloads.
func (s *Source) URL() string {
	return s.url
}

// Load downloads the archive and returns its records in sheet order.
// Nothing is written to disk.
func (s *Source) Load(ctx context.Context) ([]offers.Record, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	data, err := s.client.Get(ctx, s.url, constants.MaxFeedArchiveSize)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("url", s.url).Int("bytes", len(data)).Dur("took", time.Since(start)).Msg("Feed downloaded")

	records, err := Decode(data, urlPath(s.url), s.headerRow)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("records", len(records)).Msg("Snapshot loaded")
	return records, nil
}

// LoadFile reads a local .zip archive or .xls sheet.
func LoadFile(name string, headerRow int) ([]offers.Record, error) {
	data, err := os.ReadFile(name) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, errors.WrapIO("read", name, err)
	}
	return Decode(data, name, headerRow)
}

// Decode parses archive or sheet bytes, choosing the format by name's extension.
func Decode(data []byte, name string, headerRow int) ([]offers.Record, error) {
	sheet := data
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip":
		extracted, entry, err := ExtractSheet(data)
		if err != nil {
			return nil, err
		}
		sheet, name = extracted, entry
	case ".xls":
	default:
		return nil, errors.NewValidationError("feed", name, "feed must be a .zip or .xls file")
	}

	rows, err := ReadSheet(sheet, name, constants.MaxFeedRows)
	if err != nil {
		return nil, err
	}
	return ParseRows(rows, headerRow)
}

// ParseRows maps sheet rows to records using the header at headerRow.
// Cells are trimmed, rows with a blank code are skipped, and a header
// missing any of the code, quantity or price columns is a ParseError.
func ParseRows(rows [][]string, headerRow int) ([]offers.Record, error) {
	if headerRow < 0 || headerRow >= len(rows) {
		return nil, &errors.ParseError{
			Format:  "xls",
			Line:    headerRow + 1,
			Message: "sheet has no header row",
		}
	}

	index := map[string]int{}
	for i, title := range rows[headerRow] {
		title = strings.TrimSpace(title)
		if _, seen := index[title]; !seen {
			index[title] = i
		}
	}
	var missing []string
	for _, col := range []string{ColumnCode, ColumnQuantity, ColumnPrice} {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &errors.ParseError{
			Format:  "xls",
			Line:    headerRow + 1,
			Message: "missing columns: " + strings.Join(missing, ", "),
		}
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]offers.Record, 0, len(rows)-headerRow-1)
	for _, row := range rows[headerRow+1:] {
		code := cell(row, ColumnCode)
		if code == "" {
			continue
		}
		records = append(records, offers.Record{
			Code:     code,
			Quantity: cell(row, ColumnQuantity),
			Price:    cell(row, ColumnPrice),
		})
	}
	return records, nil
}

// urlPath returns the path component of a URL, or the input when it has none.
func urlPath(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	return rawURL
}
