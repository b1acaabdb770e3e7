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

	"github.com/suparena/tablestore/storagemodels"
)

// ScanAll retrieves every item in the table, following pagination until
// exhausted. Items are returned in the order the backend delivers them;
// no ordering is guaranteed across pages.
func (h *TableHandle) ScanAll(ctx context.Context) ([]storagemodels.Item, error) {
	return h.scanPages(ctx, nil, nil)
}

// ScanWithFilter scans the whole table with a filter expression and its
// ":placeholder" values passed through to the backend verbatim. Filtering
// happens server-side after the read, so a filtered scan consumes the same
// read capacity as a full scan.
func (h *TableHandle) ScanWithFilter(ctx context.Context, filterExpr string, values map[string]any) ([]storagemodels.Item, error) {
	exprValues, err := attributevalue.MarshalMap(values)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filter values: %w", err)
	}
	return h.scanPages(ctx, aws.String(filterExpr), exprValues)
}

func (h *TableHandle) scanPages(ctx context.Context, filterExpr *string, exprValues map[string]types.AttributeValue) ([]storagemodels.Item, error) {
	if err := h.ensureBound("Scan"); err != nil {
		return nil, err
	}

	input := &sdk.ScanInput{
		TableName:        aws.String(h.name),
		FilterExpression: filterExpr,
	}
	if len(exprValues) > 0 {
		input.ExpressionAttributeValues = exprValues
	}

	var items []storagemodels.Item
	paginator := sdk.NewScanPaginator(h.api, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			h.log.Error().Err(err).Str("table", h.name).Msg("Scan failed")
			return nil, wrapBackendError("Scan", h.name, err)
		}
		for _, raw := range out.Items {
			var item storagemodels.Item
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal scanned item: %w", err)
			}
			items = append(items, item)
		}
	}
	return items, nil
}

// Count returns the number of items in the table using a count-only scan.
// Every page's count is summed, including the terminal page that carries no
// continuation key.
func (h *TableHandle) Count(ctx context.Context) (int, error) {
	if err := h.ensureBound("Count"); err != nil {
		return 0, err
	}

	input := &sdk.ScanInput{
		TableName: aws.String(h.name),
		Select:    types.SelectCount,
	}

	total := 0
	for {
		out, err := h.api.Scan(ctx, input)
		if err != nil {
			h.log.Error().Err(err).Str("table", h.name).Msg("count scan failed")
			return 0, wrapBackendError("Scan", h.name, err)
		}
		total += int(out.Count)

		if len(out.LastEvaluatedKey) == 0 {
			return total, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}
