/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeClient is an in-memory DynamoDBAPI used across the package tests.
// Pagination is simulated through a synthetic "__pos" continuation key so
// callers exercise the same ExclusiveStartKey / LastEvaluatedKey protocol
// the real service uses.
type fakeClient struct {
	mu     sync.Mutex
	tables map[string]*fakeTable

	createCalls int
	batchCalls  int
	scanCalls   int

	lastScanInput   *sdk.ScanInput
	lastUpdateInput *sdk.UpdateItemInput

	describeErr          error
	describeNotFoundOnce bool
	createErr            error
	scanErr              error
	scanErrRemaining     int
	batchErr             error
	batchErrRemaining    int
	unprocessedOnce      bool
	forcedPageSize       int
}

type fakeTable struct {
	keySchema  []types.KeySchemaElement
	attrDefs   []types.AttributeDefinition
	throughput *types.ProvisionedThroughputDescription
	items      []map[string]types.AttributeValue
}

func newFakeClient() *fakeClient {
	return &fakeClient{tables: map[string]*fakeTable{}}
}

func (f *fakeClient) DescribeTable(ctx context.Context, params *sdk.DescribeTableInput, optFns ...func(*sdk.Options)) (*sdk.DescribeTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.describeErr != nil {
		return nil, f.describeErr
	}
	if f.describeNotFoundOnce {
		f.describeNotFoundOnce = false
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
	}

	t, ok := f.tables[aws.ToString(params.TableName)]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
	}
	return &sdk.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:             params.TableName,
			TableStatus:           types.TableStatusActive,
			KeySchema:             t.keySchema,
			AttributeDefinitions:  t.attrDefs,
			ProvisionedThroughput: t.throughput,
		},
	}, nil
}

func (f *fakeClient) CreateTable(ctx context.Context, params *sdk.CreateTableInput, optFns ...func(*sdk.Options)) (*sdk.CreateTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}

	name := aws.ToString(params.TableName)
	if _, ok := f.tables[name]; ok {
		return nil, &types.ResourceInUseException{Message: aws.String("table already exists")}
	}

	t := &fakeTable{
		keySchema: params.KeySchema,
		attrDefs:  params.AttributeDefinitions,
	}
	if pt := params.ProvisionedThroughput; pt != nil {
		t.throughput = &types.ProvisionedThroughputDescription{
			ReadCapacityUnits:  pt.ReadCapacityUnits,
			WriteCapacityUnits: pt.WriteCapacityUnits,
		}
	}
	f.tables[name] = t
	return &sdk.CreateTableOutput{}, nil
}

func (f *fakeClient) DeleteTable(ctx context.Context, params *sdk.DeleteTableInput, optFns ...func(*sdk.Options)) (*sdk.DeleteTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.TableName)
	if _, ok := f.tables[name]; !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
	}
	delete(f.tables, name)
	return &sdk.DeleteTableOutput{}, nil
}

func (f *fakeClient) GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tables[aws.ToString(params.TableName)]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
	}

	want := t.keyOf(params.Key)
	for _, item := range t.items {
		if t.keyOf(item) == want {
			return &sdk.GetItemOutput{Item: copyAttrMap(item)}, nil
		}
	}
	return &sdk.GetItemOutput{}, nil
}

func (f *fakeClient) PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tables[aws.ToString(params.TableName)]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
	}
	t.put(params.Item)
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tables[aws.ToString(params.TableName)]; !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
	}
	f.lastUpdateInput = params
	return &sdk.UpdateItemOutput{}, nil
}

func (f *fakeClient) DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tables[aws.ToString(params.TableName)]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
	}

	want := t.keyOf(params.Key)
	kept := t.items[:0]
	for _, item := range t.items {
		if t.keyOf(item) != want {
			kept = append(kept, item)
		}
	}
	t.items = kept
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeClient) BatchWriteItem(ctx context.Context, params *sdk.BatchWriteItemInput, optFns ...func(*sdk.Options)) (*sdk.BatchWriteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.batchCalls++
	if f.batchErrRemaining > 0 {
		f.batchErrRemaining--
		return nil, f.batchErr
	}

	unprocessed := map[string][]types.WriteRequest{}
	for name, requests := range params.RequestItems {
		t, ok := f.tables[name]
		if !ok {
			return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
		}
		for i, req := range requests {
			if f.unprocessedOnce && i == 0 {
				f.unprocessedOnce = false
				unprocessed[name] = append(unprocessed[name], req)
				continue
			}
			if req.PutRequest != nil {
				t.put(req.PutRequest.Item)
			}
		}
	}

	out := &sdk.BatchWriteItemOutput{}
	if len(unprocessed) > 0 {
		out.UnprocessedItems = unprocessed
	}
	return out, nil
}

func (f *fakeClient) Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.scanCalls++
	f.lastScanInput = params
	if f.scanErrRemaining > 0 {
		f.scanErrRemaining--
		return nil, f.scanErr
	}

	t, ok := f.tables[aws.ToString(params.TableName)]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
	}

	pos := 0
	if params.ExclusiveStartKey != nil {
		if m, ok := params.ExclusiveStartKey["__pos"].(*types.AttributeValueMemberN); ok {
			pos, _ = strconv.Atoi(m.Value)
		}
	}

	pageSize := len(t.items) - pos
	if f.forcedPageSize > 0 && f.forcedPageSize < pageSize {
		pageSize = f.forcedPageSize
	}
	if params.Limit != nil && int(*params.Limit) < pageSize {
		pageSize = int(*params.Limit)
	}
	end := pos + pageSize
	if end > len(t.items) {
		end = len(t.items)
	}

	out := &sdk.ScanOutput{Count: int32(end - pos)}
	if params.Select != types.SelectCount {
		for _, item := range t.items[pos:end] {
			out.Items = append(out.Items, copyAttrMap(item))
		}
	}
	if end < len(t.items) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"__pos": &types.AttributeValueMemberN{Value: strconv.Itoa(end)},
		}
	}
	return out, nil
}

// itemCount reports how many items a table holds, for assertions.
func (f *fakeClient) itemCount(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[table]
	if !ok {
		return 0
	}
	return len(t.items)
}

func (t *fakeTable) put(item map[string]types.AttributeValue) {
	key := t.keyOf(item)
	for i, existing := range t.items {
		if t.keyOf(existing) == key {
			t.items[i] = copyAttrMap(item)
			return
		}
	}
	t.items = append(t.items, copyAttrMap(item))
}

// keyOf builds a comparable string key from the table's declared key
// attributes.
func (t *fakeTable) keyOf(item map[string]types.AttributeValue) string {
	key := ""
	for _, ks := range t.keySchema {
		key += "|" + attrString(item[aws.ToString(ks.AttributeName)])
	}
	return key
}

func attrString(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return "S:" + v.Value
	case *types.AttributeValueMemberN:
		return "N:" + v.Value
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("BOOL:%v", v.Value)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func copyAttrMap(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
