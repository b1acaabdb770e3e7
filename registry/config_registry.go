/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sync"

	"github.com/suparena/tablestore/storagemodels"
)

// configRegistry holds the mapping from a table name to its provisioning config.

var (
	configRegistry = make(map[string]*storagemodels.TableConfig)
	mu             sync.RWMutex
)

// RegisterTableConfig associates a table name with its TableConfig.
// If a config is already registered for the name, it panics to prevent
// accidental overrides.
func RegisterTableConfig(cfg *storagemodels.TableConfig) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := configRegistry[cfg.TableName]; exists {
		panic(fmt.Sprintf("config registry: table %q already registered", cfg.TableName))
	}
	configRegistry[cfg.TableName] = cfg
}

// GetTableConfig retrieves the registered config for the given table name.
// If no config is registered, it returns an error.
func GetTableConfig(tableName string) (*storagemodels.TableConfig, error) {
	mu.RLock()
	defer mu.RUnlock()
	cfg, ok := configRegistry[tableName]
	if !ok {
		return nil, fmt.Errorf("config registry: no config registered for table %q", tableName)
	}
	return cfg, nil
}

// RegisteredTables returns the names of all registered tables.
func RegisteredTables() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(configRegistry))
	for name := range configRegistry {
		names = append(names, name)
	}
	return names
}
