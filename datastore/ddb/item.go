/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerrors "github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/storagemodels"
)

// Get fetches one item by exact key. An absent item is nil, nil.
func (h *TableHandle) Get(ctx context.Context, key storagemodels.Key) (storagemodels.Item, error) {
	if err := h.ensureBound("Get"); err != nil {
		return nil, err
	}

	keyMap, err := marshalKey(key)
	if err != nil {
		return nil, err
	}

	out, err := h.api.GetItem(ctx, &sdk.GetItemInput{
		TableName: aws.String(h.name),
		Key:       keyMap,
	})
	if err != nil {
		h.log.Error().Err(err).Str("table", h.name).Interface("key", key).Msg("GetItem failed")
		return nil, wrapBackendError("GetItem", h.name, err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var item storagemodels.Item
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return item, nil
}

// Put writes or fully overwrites the item, running it through the handle's
// preprocessor first when one is installed.
func (h *TableHandle) Put(ctx context.Context, item storagemodels.Item) error {
	if err := h.ensureBound("Put"); err != nil {
		return err
	}

	prepared, err := h.prepareItem(item)
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(prepared)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = h.api.PutItem(ctx, &sdk.PutItemInput{
		TableName: aws.String(h.name),
		Item:      av,
	})
	if err != nil {
		h.log.Error().Err(err).Str("table", h.name).Msg("PutItem failed")
		return wrapBackendError("PutItem", h.name, err)
	}
	return nil
}

// Update applies a partial update. The expression and its ":placeholder"
// values are passed through to the backend verbatim.
func (h *TableHandle) Update(ctx context.Context, key storagemodels.Key, expression string, values map[string]any) error {
	if err := h.ensureBound("Update"); err != nil {
		return err
	}
	if expression == "" {
		return storeerrors.NewConfigError("UpdateExpression", "must not be empty")
	}

	keyMap, err := marshalKey(key)
	if err != nil {
		return err
	}

	exprValues, err := attributevalue.MarshalMap(values)
	if err != nil {
		return fmt.Errorf("failed to marshal expression values: %w", err)
	}

	input := &sdk.UpdateItemInput{
		TableName:        aws.String(h.name),
		Key:              keyMap,
		UpdateExpression: aws.String(expression),
	}
	if len(exprValues) > 0 {
		input.ExpressionAttributeValues = exprValues
	}

	_, err = h.api.UpdateItem(ctx, input)
	if err != nil {
		h.log.Error().Err(err).Str("table", h.name).Interface("key", key).Msg("UpdateItem failed")
		return wrapBackendError("UpdateItem", h.name, err)
	}
	return nil
}

// Delete removes the item at key. Deleting an absent key succeeds.
func (h *TableHandle) Delete(ctx context.Context, key storagemodels.Key) error {
	if err := h.ensureBound("Delete"); err != nil {
		return err
	}

	keyMap, err := marshalKey(key)
	if err != nil {
		return err
	}

	_, err = h.api.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: aws.String(h.name),
		Key:       keyMap,
	})
	if err != nil {
		h.log.Error().Err(err).Str("table", h.name).Interface("key", key).Msg("DeleteItem failed")
		return wrapBackendError("DeleteItem", h.name, err)
	}
	return nil
}

// prepareItem applies the configured preprocessor, if any.
func (h *TableHandle) prepareItem(item storagemodels.Item) (storagemodels.Item, error) {
	if h.pre == nil {
		return item, nil
	}
	return h.pre.ProcessItem(item)
}

func marshalKey(key storagemodels.Key) (map[string]types.AttributeValue, error) {
	if len(key) == 0 {
		return nil, storeerrors.NewConfigError("key", "must not be empty")
	}
	keyMap, err := attributevalue.MarshalMap(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}
	return keyMap, nil
}
