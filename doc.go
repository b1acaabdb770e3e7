/*
Package tablestore provides a thin, explicit table-management layer for Go
applications backed by DynamoDB, covering the full table lifecycle without
hiding the data model behind an ORM.

Key Features:
  - Find-or-create table handles: constructing a handle provisions the table
    when it is missing and waits for it to become usable
  - Single-item CRUD with explicit keys and update expressions
  - A buffered batch protocol with deterministic failure semantics
  - Paginated scans, count-only scans and channel-based streaming scans
  - JSON dump and load of whole tables for backups and fixtures
  - Semantic error types for better error handling
  - Thread-safe handle management
  - A mock TableStore implementation for testing

Basic Usage:

	client, _ := ddb.NewClient(ctx, ddb.ClientOptions{})

	cfg := storagemodels.TableConfig{
	    TableName: "Videos",
	    KeySchema: []storagemodels.KeySchemaElement{
	        {AttributeName: "id", KeyType: "HASH"},
	    },
	    AttributeDefinitions: []storagemodels.AttributeDefinition{
	        {AttributeName: "id", AttributeType: "S"},
	    },
	}
	handle, _ := ddb.NewTableHandle(ctx, client, cfg)

	// Register the handle with a manager
	mgr := tablestore.NewManager()
	mgr.Register("videos", handle)

	// Use it
	err := handle.Put(ctx, storagemodels.Item{"id": "123", "title": "hello"})

For more information, see the documentation at https://github.com/suparena/tablestore
*/
package tablestore
