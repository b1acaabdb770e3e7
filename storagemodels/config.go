/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/suparena/tablestore/errors"
)

// LoadTableConfigFile reads a TableConfig from a JSON or YAML file.
// The format is chosen by file extension: .yaml/.yml for YAML, anything
// else is treated as JSON. The decoded config is validated before return.
func LoadTableConfigFile(path string) (*TableConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("", "reading config file "+path+": "+err.Error())
	}

	var cfg TableConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.NewConfigError("", "decoding YAML config "+path+": "+err.Error())
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, errors.NewConfigError("", "decoding JSON config "+path+": "+err.Error())
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
