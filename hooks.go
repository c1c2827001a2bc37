package stocksync

import (
	gosync "sync"

	"github.com/agentstation/stocksync/pkg/sync"
)

// Hook function types for sync events
type (
	// TargetSyncedHook is called after each target, with the error that
	// stopped it if any
	TargetSyncedHook func(result *sync.TargetResult, err error)

	// BatchSubmittedHook is called after each chunk is submitted (or skipped in a dry run)
	BatchSubmittedHook func(event sync.BatchEvent)
)

// hooks manages event callbacks for sync runs
type hooks struct {
	mu               gosync.RWMutex
	onTargetSynced   []TargetSyncedHook
	onBatchSubmitted []BatchSubmittedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnTargetSynced registers a callback for finished targets.
func (c *Client) OnTargetSynced(fn TargetSyncedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onTargetSynced = append(c.hooks.onTargetSynced, fn)
}

// OnBatchSubmitted registers a callback for submitted chunks.
func (c *Client) OnBatchSubmitted(fn BatchSubmittedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onBatchSubmitted = append(c.hooks.onBatchSubmitted, fn)
}

func (h *hooks) triggerTarget(result *sync.TargetResult, err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onTargetSynced {
		fn(result, err)
	}
}

func (h *hooks) triggerBatch(event sync.BatchEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onBatchSubmitted {
		fn(event)
	}
}
