/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablestore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/tablestore/datastore"
)

// Manager is a higher-level interface that manages a collection of TableStore
// handles keyed by name, typically the table name.
type Manager interface {
	// Register stores the provided TableStore under the given key.
	Register(key string, ts datastore.TableStore) error
	// Get retrieves the registered TableStore for a given key.
	Get(key string) (datastore.TableStore, error)
	// Remove drops the TableStore registered under key. Removing an
	// unregistered key is an error.
	Remove(key string) error
	// List returns the registered keys in sorted order.
	List() []string
}

// handleManager is a thread-safe implementation of the Manager interface.
type handleManager struct {
	mu     sync.RWMutex
	stores map[string]datastore.TableStore
}

// NewManager creates and returns a new Manager implementation.
func NewManager() Manager {
	return &handleManager{
		stores: make(map[string]datastore.TableStore),
	}
}

// Register stores the provided TableStore under the given key.
func (hm *handleManager) Register(key string, ts datastore.TableStore) error {
	hm.mu.Lock()
	defer hm.mu.Unlock()

	if _, exists := hm.stores[key]; exists {
		return fmt.Errorf("table store with key %q already registered", key)
	}
	hm.stores[key] = ts
	return nil
}

// Get retrieves the TableStore associated with the given key.
func (hm *handleManager) Get(key string) (datastore.TableStore, error) {
	hm.mu.RLock()
	defer hm.mu.RUnlock()

	ts, exists := hm.stores[key]
	if !exists {
		return nil, fmt.Errorf("table store with key %q not found", key)
	}
	return ts, nil
}

// Remove drops the TableStore registered under key.
func (hm *handleManager) Remove(key string) error {
	hm.mu.Lock()
	defer hm.mu.Unlock()

	if _, exists := hm.stores[key]; !exists {
		return fmt.Errorf("table store with key %q not found", key)
	}
	delete(hm.stores, key)
	return nil
}

// List returns the registered keys in sorted order.
func (hm *handleManager) List() []string {
	hm.mu.RLock()
	defer hm.mu.RUnlock()

	keys := make([]string, 0, len(hm.stores))
	for k := range hm.stores {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
