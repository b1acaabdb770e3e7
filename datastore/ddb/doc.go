/*
Package ddb provides the DynamoDB implementation of the TableStore interface.

The TableHandle supports:
  - Find-or-create binding: constructing a handle creates the table when it
    does not exist and waits for it to become ACTIVE
  - Single-item Get/Put/Update/Delete with attributevalue marshaling
  - A buffered batch protocol with chunked BatchWriteItem flushes
  - Paginated full-table scans, filtered scans and count-only scans
  - Channel-based streaming scans with retry logic
  - Table deletion with handle invalidation

Construction:

	cfg := storagemodels.TableConfig{
	    TableName: "Snippets",
	    KeySchema: []storagemodels.KeySchemaElement{
	        {AttributeName: "id", KeyType: "HASH"},
	    },
	    AttributeDefinitions: []storagemodels.AttributeDefinition{
	        {AttributeName: "id", AttributeType: "S"},
	    },
	}
	handle, err := ddb.NewTableHandle(ctx, client, cfg)

Batching:

	handle.AddToBatch(item1)
	handle.AddToBatch(item2)
	if err := handle.FlushBatch(ctx); err != nil {
	    // buffer is retained; fix the cause and flush again,
	    // or abandon it with ResetBatch
	}

Streaming:

	results := handle.ScanStream(ctx,
	    storagemodels.WithBufferSize(100),
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	)

After DeleteTable the handle is stale and every operation fails with a
StaleHandleError; bind a new handle to reuse the table name.

For usage examples, see the integration tests and documentation.
*/
package ddb
