/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/tablestore/storagemodels"
)

const (
	// batchWriteChunkSize is the DynamoDB per-request BatchWriteItem limit.
	batchWriteChunkSize = 25

	// unprocessedMaxAttempts bounds resubmission of UnprocessedItems
	// returned by an otherwise successful BatchWriteItem call.
	unprocessedMaxAttempts = 5

	unprocessedBaseBackoff = 50 * time.Millisecond
)

// ResetBatch discards all buffered items.
func (h *TableHandle) ResetBatch() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.batch = nil
}

// AddToBatch appends an item to the in-memory buffer. Nothing is written to
// the backend until FlushBatch. The buffer is unbounded; callers flushing
// very large buffers pay for it in flush time, not in AddToBatch.
func (h *TableHandle) AddToBatch(item storagemodels.Item) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.batch = append(h.batch, item)
}

// BatchSize returns the number of buffered items.
func (h *TableHandle) BatchSize() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.batch)
}

// FlushBatch writes every buffered item in chunked BatchWriteItem calls and
// clears the buffer on success. On any failure the buffer is left intact, so
// a later FlushBatch retries the whole buffer; callers that want to abandon
// it call ResetBatch. Flushing an empty buffer is a no-op.
//
// UnprocessedItems returned by a successful call are resubmitted with a
// bounded backoff, matching the backend's bulk-write protocol.
func (h *TableHandle) FlushBatch(ctx context.Context) error {
	if err := h.ensureBound("FlushBatch"); err != nil {
		return err
	}

	h.mu.Lock()
	pending := make([]storagemodels.Item, len(h.batch))
	copy(pending, h.batch)
	h.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	requests := make([]types.WriteRequest, 0, len(pending))
	for _, item := range pending {
		prepared, err := h.prepareItem(item)
		if err != nil {
			return err
		}
		av, err := attributevalue.MarshalMap(prepared)
		if err != nil {
			return fmt.Errorf("failed to marshal batch item: %w", err)
		}
		requests = append(requests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: av},
		})
	}

	for start := 0; start < len(requests); start += batchWriteChunkSize {
		end := start + batchWriteChunkSize
		if end > len(requests) {
			end = len(requests)
		}
		if err := h.writeChunk(ctx, requests[start:end]); err != nil {
			h.log.Error().Err(err).Str("table", h.name).
				Int("buffered", len(pending)).Msg("batch flush failed, buffer retained")
			return err
		}
	}

	h.mu.Lock()
	h.batch = nil
	h.mu.Unlock()

	h.log.Debug().Str("table", h.name).Int("items", len(pending)).Msg("batch flushed")
	return nil
}

// writeChunk submits one BatchWriteItem request and resubmits any
// UnprocessedItems until none remain or attempts are exhausted.
func (h *TableHandle) writeChunk(ctx context.Context, chunk []types.WriteRequest) error {
	remaining := chunk
	for attempt := 0; len(remaining) > 0; attempt++ {
		if attempt > unprocessedMaxAttempts {
			return wrapBackendError("BatchWriteItem", h.name,
				fmt.Errorf("%d items still unprocessed after %d attempts", len(remaining), unprocessedMaxAttempts))
		}
		if attempt > 0 {
			backoff := time.Duration(attempt) * unprocessedBaseBackoff
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		out, err := h.api.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				h.name: remaining,
			},
		})
		if err != nil {
			return wrapBackendError("BatchWriteItem", h.name, err)
		}

		remaining = out.UnprocessedItems[h.name]
	}
	return nil
}
