/*
Package storagemodels defines the data structures used throughout TableStore.

Key Types:

TableConfig:
The provisioning description for a table, passed through verbatim to the
backend's create-table call:

	cfg := &storagemodels.TableConfig{
	    TableName: "Responses",
	    KeySchema: []storagemodels.KeySchemaElement{
	        {AttributeName: "id", KeyType: "HASH"},
	    },
	    AttributeDefinitions: []storagemodels.AttributeDefinition{
	        {AttributeName: "id", AttributeType: "S"},
	    },
	    ProvisionedThroughput: &storagemodels.ProvisionedThroughput{
	        ReadCapacityUnits:  5,
	        WriteCapacityUnits: 5,
	    },
	}

Configs can also be decoded from JSON or YAML files with LoadTableConfigFile.

Item and Key:
Items are schemaless attribute maps; a Key contains exactly the declared
key attributes and addresses one item:

	item := storagemodels.Item{"id": "a", "v": 1}
	key := storagemodels.Key{"id": "a"}

StreamResult:
Results from streaming scans with per-item metadata, plus functional
options (WithPageSize, WithMaxRetries, WithProgressHandler, ...) for
configuring a streaming scan.
*/
package storagemodels
