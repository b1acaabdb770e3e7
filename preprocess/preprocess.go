/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package preprocess

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/storagemodels"
)

// Preprocessor renames raw attribute names to their prefixed key-attribute
// names and coerces key values to the types the table declares. It is built
// once from a TableConfig and is safe for concurrent use; processing never
// mutates the input item.
//
// Given a prefix "snippet." and a declared key attribute "snippet.channelId"
// of type S, a raw item attribute "channelId" becomes "snippet.channelId"
// with its value coerced to a string. Attributes that do not correspond to a
// declared key attribute pass through unchanged.
type Preprocessor struct {
	prefix string
	types  map[string]string // unprefixed name -> declared scalar type
}

// New builds a Preprocessor from the table's attribute definitions. Only
// definitions whose name starts with prefix participate in renaming and
// coercion. An empty prefix matches every declared attribute.
func New(cfg storagemodels.TableConfig, prefix string) *Preprocessor {
	p := &Preprocessor{
		prefix: prefix,
		types:  make(map[string]string),
	}
	for _, ad := range cfg.AttributeDefinitions {
		if strings.HasPrefix(ad.AttributeName, prefix) {
			p.types[strings.TrimPrefix(ad.AttributeName, prefix)] = ad.AttributeType
		}
	}
	return p
}

// ProcessItem returns a new item with key attributes renamed and coerced.
func (p *Preprocessor) ProcessItem(raw storagemodels.Item) (storagemodels.Item, error) {
	out := make(storagemodels.Item, len(raw))
	for name, value := range raw {
		declared, ok := p.types[name]
		if !ok {
			out[name] = value
			continue
		}

		coerced, err := coerce(value, declared)
		if err != nil {
			return nil, errors.NewConfigError(p.prefix+name, err.Error())
		}
		out[p.prefix+name] = coerced
	}
	return out, nil
}

func coerce(value any, declaredType string) (any, error) {
	switch declaredType {
	case "S":
		return toString(value), nil
	case "N":
		return toNumber(value)
	case "B", "BOOL":
		return toBoolean(value)
	default:
		return nil, fmt.Errorf("declared type %q not supported", declaredType)
	}
}

func toString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// toNumber prefers an integer representation, falling back to float64.
func toNumber(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v == float64(int64(v)) {
			return int64(v), nil
		}
		return v, nil
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i, nil
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, nil
		}
		return nil, fmt.Errorf("cannot convert %q to a number", v)
	default:
		return nil, fmt.Errorf("cannot convert %v to a number", value)
	}
}

func toBoolean(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
		return false, fmt.Errorf("cannot convert %q to a boolean", v)
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	default:
		return false, fmt.Errorf("cannot convert %v to a boolean", value)
	}
}
