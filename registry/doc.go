/*
Package registry manages table configuration registration for TableStore.

The registry associates table names with their provisioning configs so that
tools operating on a bare table name (such as the bulk JSON loader and the
tablectl CLI) can resolve the full key schema without re-reading config files:

	registry.RegisterTableConfig(&storagemodels.TableConfig{
	    TableName: "Responses",
	    KeySchema: []storagemodels.KeySchemaElement{
	        {AttributeName: "id", KeyType: "HASH"},
	    },
	    AttributeDefinitions: []storagemodels.AttributeDefinition{
	        {AttributeName: "id", AttributeType: "S"},
	    },
	})

	cfg, err := registry.GetTableConfig("Responses")

The registry is thread-safe and should be populated during initialization,
typically in init() functions or at process startup.
*/
package registry
