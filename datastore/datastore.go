/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/tablestore/storagemodels"
)

type TableStore interface {
	// TableName returns the immutable name the handle was constructed with.
	TableName() string

	// Exists reports whether the remote table currently exists. A false
	// result is only returned when the backend definitively reports the
	// table as absent; any other failure is returned as an error.
	Exists(ctx context.Context) (bool, error)

	// Get fetches one item by exact key. An absent item is reported as a
	// nil Item with a nil error.
	Get(ctx context.Context, key storagemodels.Key) (storagemodels.Item, error)

	// Put writes or fully overwrites the item at its key.
	Put(ctx context.Context, item storagemodels.Item) error

	// Update applies a partial update described by an update expression and
	// its bound values, both passed through verbatim to the backend.
	Update(ctx context.Context, key storagemodels.Key, expression string, values map[string]any) error

	// Delete removes the item; deleting an absent key is not an error.
	Delete(ctx context.Context, key storagemodels.Key) error

	// ResetBatch clears the pending-write buffer.
	ResetBatch()

	// AddToBatch appends an item to the in-memory buffer without touching
	// the backend. The buffer is unbounded; callers are responsible for
	// flushing before backend payload limits are reached.
	AddToBatch(item storagemodels.Item)

	// BatchSize returns the number of buffered items.
	BatchSize() int

	// FlushBatch writes every buffered item in bulk and clears the buffer
	// on success. On failure the buffer is left intact so the flush can be
	// retried. Flushing an empty buffer is a no-op.
	FlushBatch(ctx context.Context) error

	// ScanAll retrieves every item in the table, following continuation
	// tokens until exhausted. No ordering guarantee across pages.
	ScanAll(ctx context.Context) ([]storagemodels.Item, error)

	// Count returns the number of items in the table via a count-only scan.
	Count(ctx context.Context) (int, error)

	// DeleteTable deletes the remote table, waits until the backend
	// confirms it is gone, and invalidates the handle. All subsequent
	// operations fail with a StaleHandleError.
	DeleteTable(ctx context.Context) error
}
