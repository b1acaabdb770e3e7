/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package datastore defines the core table-store abstraction used throughout
// the tablestore module.
//
// The TableStore interface captures the full lifecycle of a managed table:
// existence checks, single-item CRUD, buffered bulk writes, paginated scans
// and counts, and table deletion with handle invalidation. Backends implement
// this interface; current implementations include:
//
//   - datastore/ddb: DynamoDB-backed implementation using the AWS SDK v2
//   - datastore/mock: configurable in-memory implementation for testing
//
// Code that consumes tables should depend on this interface rather than a
// concrete backend, which keeps it testable against the mock implementation.
package datastore
