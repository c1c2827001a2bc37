// Package constants provides shared constants used throughout the stocksync codebase.
// This includes timeouts, marketplace batch limits, page sizes, and file permissions
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to marketplace APIs
	DefaultHTTPTimeout = 30 * time.Second

	// FeedDownloadTimeout is the timeout for downloading the distributor feed archive
	FeedDownloadTimeout = 2 * time.Minute

	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Ozon seller API limits.
const (
	// OzonStockBatchSize is the maximum number of stocks per /v1/product/import/stocks call
	OzonStockBatchSize = 100

	// OzonPriceBatchSize is the maximum number of prices per /v1/product/import/prices call
	OzonPriceBatchSize = 1000

	// OzonPageSize is the limit sent to /v2/product/list
	OzonPageSize = 1000
)

// Yandex Market partner API limits.
const (
	// YandexStockBatchSize is the maximum number of skus per offers/stocks call
	YandexStockBatchSize = 2000

	// YandexPriceBatchSize is the maximum number of offers per offer-prices/updates call
	YandexPriceBatchSize = 500

	// YandexPageSize is the limit sent to offer-mapping-entries
	YandexPageSize = 200
)

// Feed constants describe the distributor stock archive.
const (
	// DefaultFeedURL is the distributor's published stock archive
	DefaultFeedURL = "https://timeworld.ru/upload/files/ostatki.zip"

	// DefaultFeedHeaderRow is the zero-based row holding the column titles
	DefaultFeedHeaderRow = 17

	// MaxFeedRows is the largest feed sheet accepted, the BIFF8 sheet row limit
	MaxFeedRows = 65536

	// MaxFeedArchiveSize caps the decompressed size of a feed file in bytes
	MaxFeedArchiveSize = 64 * 1024 * 1024
)

// Quantity sentinels used by the distributor feed.
const (
	// QuantityMany is reported for "more than ten" items in stock
	QuantityMany = ">10"

	// QuantityManyStock is the stock pushed for QuantityMany
	QuantityManyStock = 100

	// QuantityReserved is reported for a single reserved item that cannot be sold
	QuantityReserved = "1"
)

// History constants.
const (
	// DefaultHistoryLimit is the number of runs listed by the history command
	DefaultHistoryLimit = 20
)
