/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/suparena/tablestore/errors"
)

// Item is one record in a table: a mapping from attribute name to a typed
// scalar or nested value (string, number, boolean, binary, list, map, null).
// Items have no fixed schema beyond the declared key attributes.
type Item = map[string]any

// Key is a mapping containing exactly the item's declared key attribute(s)
// and their values. It uniquely identifies one Item within a table.
type Key = map[string]any

// KeySchemaElement declares one attribute of a table's primary key.
type KeySchemaElement struct {
	// AttributeName is the name of the key attribute.
	AttributeName string `json:"AttributeName" yaml:"AttributeName"`
	// KeyType is "HASH" for the partition key or "RANGE" for the sort key.
	KeyType string `json:"KeyType" yaml:"KeyType"`
}

// AttributeDefinition declares the type of a key attribute.
type AttributeDefinition struct {
	// AttributeName is the name of the attribute.
	AttributeName string `json:"AttributeName" yaml:"AttributeName"`
	// AttributeType is the scalar type: "S" (string), "N" (number) or "B" (binary).
	AttributeType string `json:"AttributeType" yaml:"AttributeType"`
}

// ProvisionedThroughput declares the read and write capacity for a table.
type ProvisionedThroughput struct {
	ReadCapacityUnits  int64 `json:"ReadCapacityUnits" yaml:"ReadCapacityUnits"`
	WriteCapacityUnits int64 `json:"WriteCapacityUnits" yaml:"WriteCapacityUnits"`
}

// TableConfig describes a table for provisioning. It is passed through
// verbatim to the backend's create-table call.
type TableConfig struct {
	// TableName is required and immutable for the lifetime of a handle.
	TableName string `json:"TableName" yaml:"TableName"`
	// KeySchema specifies the attributes that make up the primary key.
	KeySchema []KeySchemaElement `json:"KeySchema,omitempty" yaml:"KeySchema,omitempty"`
	// AttributeDefinitions describes the key attributes of the table.
	AttributeDefinitions []AttributeDefinition `json:"AttributeDefinitions,omitempty" yaml:"AttributeDefinitions,omitempty"`
	// ProvisionedThroughput specifies read and write capacity units.
	ProvisionedThroughput *ProvisionedThroughput `json:"ProvisionedThroughput,omitempty" yaml:"ProvisionedThroughput,omitempty"`
}

// Validate checks the config for the structural problems the backend would
// otherwise reject at provisioning time. A nil error does not guarantee the
// backend will accept the config; it only catches what can be caught locally.
func (c *TableConfig) Validate() error {
	if c.TableName == "" {
		return errors.NewConfigError("TableName", "must not be empty")
	}

	defined := make(map[string]bool, len(c.AttributeDefinitions))
	for _, ad := range c.AttributeDefinitions {
		if ad.AttributeName == "" {
			return errors.NewConfigError("AttributeDefinitions", "attribute name must not be empty")
		}
		switch ad.AttributeType {
		case "S", "N", "B":
		default:
			return errors.NewConfigError("AttributeDefinitions", "attribute type must be S, N or B")
		}
		defined[ad.AttributeName] = true
	}

	for _, ks := range c.KeySchema {
		switch ks.KeyType {
		case "HASH", "RANGE":
		default:
			return errors.NewConfigError("KeySchema", "key type must be HASH or RANGE")
		}
		if !defined[ks.AttributeName] {
			return errors.NewConfigError("KeySchema",
				"key attribute "+ks.AttributeName+" has no attribute definition")
		}
	}

	return nil
}

// ValidateForProvisioning is Validate plus the requirements for creating a
// new table: a key schema and attribute definitions must be present.
func (c *TableConfig) ValidateForProvisioning() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.KeySchema) == 0 {
		return errors.NewConfigError("KeySchema", "required when creating a table")
	}
	if len(c.AttributeDefinitions) == 0 {
		return errors.NewConfigError("AttributeDefinitions", "required when creating a table")
	}
	return nil
}

// KeyAttributeNames returns the names of the declared key attributes in
// key-schema order.
func (c *TableConfig) KeyAttributeNames() []string {
	names := make([]string, 0, len(c.KeySchema))
	for _, ks := range c.KeySchema {
		names = append(names, ks.AttributeName)
	}
	return names
}

// KeyFromItem extracts the declared key attributes from an item.
// The second return value is false when the item is missing a key attribute.
func (c *TableConfig) KeyFromItem(item Item) (Key, bool) {
	key := make(Key, len(c.KeySchema))
	for _, ks := range c.KeySchema {
		v, ok := item[ks.AttributeName]
		if !ok {
			return nil, false
		}
		key[ks.AttributeName] = v
	}
	return key, true
}

// LoadReport summarises a bulk JSON load for operator visibility.
type LoadReport struct {
	// ItemsBefore is the table's item count before the load.
	ItemsBefore int `json:"itemsBefore"`
	// ItemsLoaded is the number of items read from the file and flushed.
	ItemsLoaded int `json:"itemsLoaded"`
	// ItemsAfter is the table's item count after the load.
	ItemsAfter int `json:"itemsAfter"`
}
