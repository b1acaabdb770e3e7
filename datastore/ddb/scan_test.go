/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerrors "github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/storagemodels"
)

func seedItems(t *testing.T, h *TableHandle, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		item := storagemodels.Item{"id": fmt.Sprintf("item-%d", i), "seq": i}
		if err := h.Put(ctx, item); err != nil {
			t.Fatalf("seed Put failed: %v", err)
		}
	}
}

func TestScanAllFollowsPagination(t *testing.T) {
	fake := newFakeClient()
	h := newTestHandle(t, fake, "videos")
	seedItems(t, h, 5)

	fake.forcedPageSize = 2

	items, err := h.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("ScanAll failed: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items across pages, got %d", len(items))
	}

	seen := map[string]bool{}
	for _, item := range items {
		id, _ := item["id"].(string)
		seen[id] = true
	}
	for i := 0; i < 5; i++ {
		if !seen[fmt.Sprintf("item-%d", i)] {
			t.Errorf("item-%d missing from scan results", i)
		}
	}
}

func TestScanAllEmptyTable(t *testing.T) {
	fake := newFakeClient()
	h := newTestHandle(t, fake, "videos")

	items, err := h.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("ScanAll failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestCountIsPageSizeIndependent(t *testing.T) {
	fake := newFakeClient()
	h := newTestHandle(t, fake, "videos")
	seedItems(t, h, 5)
	ctx := context.Background()

	// One item per page: the terminal page still contributes its count.
	fake.forcedPageSize = 1
	n, err := h.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 5 {
		t.Errorf("expected count 5 with 1-item pages, got %d", n)
	}

	// Everything in a single page.
	fake.forcedPageSize = 0
	n, err = h.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 5 {
		t.Errorf("expected count 5 with single page, got %d", n)
	}

	// Uneven split: 2 + 2 + 1, the trailing page has no continuation key.
	fake.forcedPageSize = 2
	n, err = h.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 5 {
		t.Errorf("expected count 5 with 2-item pages, got %d", n)
	}
}

func TestCountUsesCountOnlySelect(t *testing.T) {
	fake := newFakeClient()
	h := newTestHandle(t, fake, "videos")
	seedItems(t, h, 3)

	if _, err := h.Count(context.Background()); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if fake.lastScanInput.Select != types.SelectCount {
		t.Errorf("expected Select=COUNT, got %v", fake.lastScanInput.Select)
	}
}

func TestCountErrorIsBackendError(t *testing.T) {
	fake := newFakeClient()
	h := newTestHandle(t, fake, "videos")

	fake.scanErr = errors.New("scan blew up")
	fake.scanErrRemaining = 1

	if _, err := h.Count(context.Background()); !storeerrors.IsBackend(err) {
		t.Errorf("expected BackendError, got %v", err)
	}
}

func TestScanWithFilterPassesExpressionThrough(t *testing.T) {
	fake := newFakeClient()
	h := newTestHandle(t, fake, "videos")
	seedItems(t, h, 3)

	_, err := h.ScanWithFilter(context.Background(), "seq > :min", map[string]any{":min": 1})
	if err != nil {
		t.Fatalf("ScanWithFilter failed: %v", err)
	}

	in := fake.lastScanInput
	if aws.ToString(in.FilterExpression) != "seq > :min" {
		t.Errorf("filter expression not passed verbatim: %q", aws.ToString(in.FilterExpression))
	}
	if _, ok := in.ExpressionAttributeValues[":min"]; !ok {
		t.Errorf("filter values not passed through: %+v", in.ExpressionAttributeValues)
	}
}
