// Package history records the outcome of every sync target in a SQL database
// so operators can review past runs. It is write-only from the sync's point
// of view: nothing recorded here feeds back into reconciliation.
package history

import (
	"context"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/agentstation/stocksync/pkg/errors"
	stsync "github.com/agentstation/stocksync/pkg/sync"
)

// Run statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Run is one target pass as stored in the sync_runs table.
type Run struct {
	ID           uint      `gorm:"primaryKey" json:"id" yaml:"id"`
	RunID        string    `gorm:"size:36;index;not null" json:"run_id" yaml:"run_id"`
	Marketplace  string    `gorm:"size:32;not null" json:"marketplace" yaml:"marketplace"`
	Target       string    `gorm:"size:64;not null" json:"target" yaml:"target"`
	CampaignID   string    `gorm:"size:64" json:"campaign_id" yaml:"campaign_id"`
	CatalogSize  int       `json:"catalog_size" yaml:"catalog_size"`
	StockUpdates int       `json:"stock_updates" yaml:"stock_updates"`
	ActiveStocks int       `json:"active_stocks" yaml:"active_stocks"`
	PriceUpdates int       `json:"price_updates" yaml:"price_updates"`
	StockBatches int       `json:"stock_batches" yaml:"stock_batches"`
	PriceBatches int       `json:"price_batches" yaml:"price_batches"`
	DryRun       bool      `json:"dry_run" yaml:"dry_run"`
	Status       string    `gorm:"size:16;not null" json:"status" yaml:"status"`
	Error        string    `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt    time.Time `gorm:"index" json:"started_at" yaml:"started_at"`
	DurationMs   int64     `json:"duration_ms" yaml:"duration_ms"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// TableName overrides the gorm default.
func (Run) TableName() string {
	return "sync_runs"
}

// Store persists runs through gorm.
type Store struct {
	db *gorm.DB
}

// Open connects to dsn and migrates the schema. A "sqlite://" prefix selects
// SQLite with the remainder as the file path; anything else is handed to the
// PostgreSQL driver.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.NewValidationError("history", dsn, "database DSN is required")
	}

	var dialector gorm.Dialector
	if path, ok := strings.CutPrefix(dsn, "sqlite://"); ok {
		dialector = sqlite.Open(path)
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.NewConfigError("history", "failed to connect to database", err)
	}
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, errors.NewConfigError("history", "failed to migrate schema", err)
	}
	return &Store{db: db}, nil
}

// Record stores the outcome of one target. result may be partial when
// syncErr is set.
func (s *Store) Record(ctx context.Context, runID string, startedAt time.Time, result *stsync.TargetResult, syncErr error) error {
	run := NewRun(runID, startedAt, result, syncErr)
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return errors.WrapIO("write", "sync_runs", err)
	}
	return nil
}

// NewRun flattens a target result into a Run row.
func NewRun(runID string, startedAt time.Time, result *stsync.TargetResult, syncErr error) *Run {
	run := &Run{
		RunID:     runID,
		Status:    StatusOK,
		StartedAt: startedAt.UTC(),
	}
	if result != nil {
		run.Marketplace = result.Target.Marketplace.String()
		run.Target = result.Target.String()
		run.CampaignID = result.Target.CampaignID
		run.CatalogSize = result.CatalogSize
		run.StockUpdates = len(result.Stocks)
		run.ActiveStocks = len(result.ActiveStocks)
		run.PriceUpdates = len(result.Prices)
		run.StockBatches = result.StockBatches
		run.PriceBatches = result.PriceBatches
		run.DryRun = result.DryRun
		run.DurationMs = result.Duration.Milliseconds()
	}
	if syncErr != nil {
		run.Status = StatusFailed
		run.Error = syncErr.Error()
	}
	return run
}

// List returns up to limit runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	q := s.db.WithContext(ctx).Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, errors.WrapIO("read", "sync_runs", err)
	}
	return runs, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
