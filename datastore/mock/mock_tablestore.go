/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a mock implementation of the TableStore interface for testing
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/storagemodels"
)

// TableStore is an in-memory mock implementation of datastore.TableStore.
// Items are kept in insertion order; error setters let tests force failures
// on individual operations.
type TableStore struct {
	mu    sync.RWMutex
	name  string
	cfg   storagemodels.TableConfig
	items []storagemodels.Item
	batch []storagemodels.Item
	stale bool

	existsError error
	getError    error
	putError    error
	updateError error
	deleteError error
	flushError  error
	scanError   error
}

// New creates a mock TableStore for the given config. The config's key
// schema drives key extraction for Get/Put/Delete.
func New(cfg storagemodels.TableConfig) *TableStore {
	return &TableStore{
		name: cfg.TableName,
		cfg:  cfg,
	}
}

// WithExistsError makes Exists return an error
func (m *TableStore) WithExistsError(err error) *TableStore {
	m.existsError = err
	return m
}

// WithGetError makes Get return an error
func (m *TableStore) WithGetError(err error) *TableStore {
	m.getError = err
	return m
}

// WithPutError makes Put return an error
func (m *TableStore) WithPutError(err error) *TableStore {
	m.putError = err
	return m
}

// WithUpdateError makes Update return an error
func (m *TableStore) WithUpdateError(err error) *TableStore {
	m.updateError = err
	return m
}

// WithDeleteError makes Delete return an error
func (m *TableStore) WithDeleteError(err error) *TableStore {
	m.deleteError = err
	return m
}

// WithFlushError makes FlushBatch return an error, leaving the buffer intact
func (m *TableStore) WithFlushError(err error) *TableStore {
	m.flushError = err
	return m
}

// WithScanError makes ScanAll and Count return an error
func (m *TableStore) WithScanError(err error) *TableStore {
	m.scanError = err
	return m
}

// TableName returns the configured table name
func (m *TableStore) TableName() string {
	return m.name
}

// Exists reports whether the mock table is still live
func (m *TableStore) Exists(ctx context.Context) (bool, error) {
	if m.existsError != nil {
		return false, m.existsError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.stale, nil
}

// Get retrieves an item by key, nil when absent
func (m *TableStore) Get(ctx context.Context, key storagemodels.Key) (storagemodels.Item, error) {
	if err := m.ensureLive("Get"); err != nil {
		return nil, err
	}
	if m.getError != nil {
		return nil, m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	want := m.keyString(key)
	for _, item := range m.items {
		if m.itemKeyString(item) == want {
			return copyItem(item), nil
		}
	}
	return nil, nil
}

// Put stores or overwrites an item
func (m *TableStore) Put(ctx context.Context, item storagemodels.Item) error {
	if err := m.ensureLive("Put"); err != nil {
		return err
	}
	if m.putError != nil {
		return m.putError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.putLocked(item)
	return nil
}

// Update verifies the item exists; the expression itself is not interpreted
func (m *TableStore) Update(ctx context.Context, key storagemodels.Key, expression string, values map[string]any) error {
	if err := m.ensureLive("Update"); err != nil {
		return err
	}
	if m.updateError != nil {
		return m.updateError
	}
	if expression == "" {
		return errors.NewConfigError("UpdateExpression", "must not be empty")
	}
	return nil
}

// Delete removes an item; deleting an absent key succeeds
func (m *TableStore) Delete(ctx context.Context, key storagemodels.Key) error {
	if err := m.ensureLive("Delete"); err != nil {
		return err
	}
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	want := m.keyString(key)
	kept := m.items[:0]
	for _, item := range m.items {
		if m.itemKeyString(item) != want {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return nil
}

// ResetBatch clears the pending batch buffer
func (m *TableStore) ResetBatch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batch = nil
}

// AddToBatch buffers an item without writing it
func (m *TableStore) AddToBatch(item storagemodels.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batch = append(m.batch, item)
}

// BatchSize returns the number of buffered items
func (m *TableStore) BatchSize() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.batch)
}

// FlushBatch writes all buffered items; on a forced error the buffer is
// retained, matching the real implementation's contract
func (m *TableStore) FlushBatch(ctx context.Context) error {
	if err := m.ensureLive("FlushBatch"); err != nil {
		return err
	}
	if m.flushError != nil {
		return m.flushError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.batch {
		m.putLocked(item)
	}
	m.batch = nil
	return nil
}

// ScanAll returns every stored item
func (m *TableStore) ScanAll(ctx context.Context) ([]storagemodels.Item, error) {
	if err := m.ensureLive("ScanAll"); err != nil {
		return nil, err
	}
	if m.scanError != nil {
		return nil, m.scanError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]storagemodels.Item, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, copyItem(item))
	}
	return out, nil
}

// Count returns the number of stored items
func (m *TableStore) Count(ctx context.Context) (int, error) {
	if err := m.ensureLive("Count"); err != nil {
		return 0, err
	}
	if m.scanError != nil {
		return 0, m.scanError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items), nil
}

// DeleteTable drops all data and marks the store stale
func (m *TableStore) DeleteTable(ctx context.Context) error {
	if err := m.ensureLive("DeleteTable"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stale = true
	m.items = nil
	m.batch = nil
	return nil
}

// Helper methods for testing

// SetItems replaces the stored items directly
func (m *TableStore) SetItems(items []storagemodels.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = items
}

// Items returns a copy of the stored items
func (m *TableStore) Items() []storagemodels.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]storagemodels.Item, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, copyItem(item))
	}
	return out
}

// Clear removes all stored items without marking the store stale
func (m *TableStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
}

func (m *TableStore) ensureLive(op string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.stale {
		return errors.NewStaleHandleError(m.name, op)
	}
	return nil
}

func (m *TableStore) putLocked(item storagemodels.Item) {
	key := m.itemKeyString(item)
	for i, existing := range m.items {
		if m.itemKeyString(existing) == key {
			m.items[i] = copyItem(item)
			return
		}
	}
	m.items = append(m.items, copyItem(item))
}

func (m *TableStore) keyString(key storagemodels.Key) string {
	s := ""
	for _, ks := range m.cfg.KeySchema {
		s += fmt.Sprintf("|%v", key[ks.AttributeName])
	}
	return s
}

func (m *TableStore) itemKeyString(item storagemodels.Item) string {
	s := ""
	for _, ks := range m.cfg.KeySchema {
		s += fmt.Sprintf("|%v", item[ks.AttributeName])
	}
	return s
}

func copyItem(item storagemodels.Item) storagemodels.Item {
	out := make(storagemodels.Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
