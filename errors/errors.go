/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a table or item is not found where existence was required
	ErrNotFound = errors.New("not found")

	// ErrProvisioning is returned when table creation is rejected by the backend
	ErrProvisioning = errors.New("table provisioning failed")

	// ErrBackend is returned for any other backend or transport failure
	ErrBackend = errors.New("backend operation failed")

	// ErrStaleHandle is returned when an operation is attempted on a handle whose table was deleted
	ErrStaleHandle = errors.New("stale table handle")

	// ErrConfig is returned for malformed configuration or malformed local input files
	ErrConfig = errors.New("invalid configuration")
)

// NotFoundError represents an error when a table does not exist where
// existence was required. An absent item on Get is a normal return value,
// not an error, and never produces a NotFoundError.
type NotFoundError struct {
	Kind string // "table" or "item"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ProvisioningError represents a table creation rejected by the backend.
type ProvisioningError struct {
	Table string
	Cause error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning table %q failed: %v", e.Table, e.Cause)
}

func (e *ProvisioningError) Is(target error) bool {
	return target == ErrProvisioning
}

func (e *ProvisioningError) Unwrap() error {
	return e.Cause
}

// BackendError represents a backend or transport failure, carrying the
// backend's error code and message when available.
type BackendError struct {
	Op      string
	Table   string
	Code    string
	Message string
	Cause   error
}

func (e *BackendError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s on table %q failed: %s: %s", e.Op, e.Table, e.Code, e.Message)
	}
	return fmt.Sprintf("%s on table %q failed: %v", e.Op, e.Table, e.Cause)
}

func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// StaleHandleError represents an operation attempted on a handle whose
// table has been deleted.
type StaleHandleError struct {
	Table string
	Op    string
}

func (e *StaleHandleError) Error() string {
	return fmt.Sprintf("%s on table %q: handle is stale, table was deleted", e.Op, e.Table)
}

func (e *StaleHandleError) Is(target error) bool {
	return target == ErrStaleHandle
}

// ConfigError represents malformed input configuration or a malformed local file.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// Helper functions for creating errors

// NewTableNotFoundError creates a NotFoundError for a missing table
func NewTableNotFoundError(name string) error {
	return &NotFoundError{Kind: "table", Name: name}
}

// NewProvisioningError creates a new ProvisioningError
func NewProvisioningError(table string, cause error) error {
	return &ProvisioningError{Table: table, Cause: cause}
}

// NewBackendError creates a new BackendError
func NewBackendError(op, table, code, message string, cause error) error {
	return &BackendError{Op: op, Table: table, Code: code, Message: message, Cause: cause}
}

// NewStaleHandleError creates a new StaleHandleError
func NewStaleHandleError(table, op string) error {
	return &StaleHandleError{Table: table, Op: op}
}

// NewConfigError creates a new ConfigError
func NewConfigError(field, message string) error {
	return &ConfigError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsProvisioning checks if an error is a provisioning error
func IsProvisioning(err error) bool {
	return errors.Is(err, ErrProvisioning)
}

// IsBackend checks if an error is a backend error
func IsBackend(err error) bool {
	return errors.Is(err, ErrBackend)
}

// IsStaleHandle checks if an error is a stale handle error
func IsStaleHandle(err error) bool {
	return errors.Is(err, ErrStaleHandle)
}

// IsConfig checks if an error is a configuration error
func IsConfig(err error) bool {
	return errors.Is(err, ErrConfig)
}
