/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	storeerrors "github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/storagemodels"
)

func TestDumpMissingTableReturnsNotFound(t *testing.T) {
	fake := newFakeClient()
	path := filepath.Join(t.TempDir(), "out.json")

	err := DumpTableToJSON(context.Background(), fake, "missing", path)
	if !storeerrors.IsNotFound(err) {
		t.Errorf("expected NotFoundError for missing table, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no dump file should be written for a missing table")
	}
}

func TestDumpWritesPrettyPrintedArray(t *testing.T) {
	fake := newFakeClient()
	h := newTestHandle(t, fake, "videos")
	seedItems(t, h, 2)
	path := filepath.Join(t.TempDir(), "out.json")

	if err := DumpTableToJSON(context.Background(), fake, "videos", path); err != nil {
		t.Fatalf("DumpTableToJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read dump file: %v", err)
	}

	var items []storagemodels.Item
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("dump file is not a JSON array: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 dumped items, got %d", len(items))
	}

	// 4-space indentation, no envelope object.
	text := string(data)
	if !strings.HasPrefix(text, "[") {
		t.Errorf("dump should be a bare array, got prefix %q", text[:1])
	}
	if !strings.Contains(text, "\n    {") && !strings.Contains(text, "\n        \"") {
		t.Errorf("dump should be pretty-printed with 4-space indent:\n%s", text)
	}
}

func TestDumpEmptyTableWritesEmptyArray(t *testing.T) {
	fake := newFakeClient()
	newTestHandle(t, fake, "videos")
	path := filepath.Join(t.TempDir(), "out.json")

	if err := DumpTableToJSON(context.Background(), fake, "videos", path); err != nil {
		t.Fatalf("DumpTableToJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read dump file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("expected empty array, got %q", string(data))
	}
}

func TestLoadRequiresExplicitSchema(t *testing.T) {
	fake := newFakeClient()
	path := filepath.Join(t.TempDir(), "in.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTableFromJSON(context.Background(), fake,
		storagemodels.TableConfig{TableName: "videos"}, path)
	if !storeerrors.IsConfig(err) {
		t.Errorf("expected ConfigError for name-only config, got %v", err)
	}
}

func TestLoadMalformedJSONReturnsConfigError(t *testing.T) {
	fake := newFakeClient()
	path := filepath.Join(t.TempDir(), "in.json")
	if err := os.WriteFile(path, []byte(`{"not":"an array"`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTableFromJSON(context.Background(), fake, testConfig("videos"), path)
	if !storeerrors.IsConfig(err) {
		t.Errorf("expected ConfigError for malformed file, got %v", err)
	}
}

func TestLoadMissingFileReturnsConfigError(t *testing.T) {
	fake := newFakeClient()
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	_, err := LoadTableFromJSON(context.Background(), fake, testConfig("videos"), path)
	if !storeerrors.IsConfig(err) {
		t.Errorf("expected ConfigError for missing file, got %v", err)
	}
}

func TestLoadCreatesTableAndReportsCounts(t *testing.T) {
	fake := newFakeClient()
	path := filepath.Join(t.TempDir(), "in.json")
	payload := `[
    {"id": "a", "title": "first"},
    {"id": "b", "title": "second"},
    {"id": "c", "title": "third"}
]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := LoadTableFromJSON(context.Background(), fake, testConfig("videos"), path)
	if err != nil {
		t.Fatalf("LoadTableFromJSON failed: %v", err)
	}

	if report.ItemsBefore != 0 {
		t.Errorf("expected 0 items before load, got %d", report.ItemsBefore)
	}
	if report.ItemsLoaded != 3 {
		t.Errorf("expected 3 items loaded, got %d", report.ItemsLoaded)
	}
	if report.ItemsAfter != 3 {
		t.Errorf("expected 3 items after load, got %d", report.ItemsAfter)
	}
	if fake.itemCount("videos") != 3 {
		t.Errorf("expected 3 items in backend, got %d", fake.itemCount("videos"))
	}
}

func TestDumpLoadRoundTripPreservesItemSet(t *testing.T) {
	source := newFakeClient()
	h := newTestHandle(t, source, "videos")
	ctx := context.Background()

	originals := []storagemodels.Item{
		{"id": "a", "title": "alpha", "views": 10},
		{"id": "b", "title": "beta", "views": 20},
		{"id": "c", "title": "gamma"},
	}
	for _, item := range originals {
		if err := h.Put(ctx, item); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "dump.json")
	if err := DumpTableToJSON(ctx, source, "videos", path); err != nil {
		t.Fatalf("DumpTableToJSON failed: %v", err)
	}

	// Load into a fresh backend.
	target := newFakeClient()
	report, err := LoadTableFromJSON(ctx, target, testConfig("videos"), path)
	if err != nil {
		t.Fatalf("LoadTableFromJSON failed: %v", err)
	}
	if report.ItemsAfter != len(originals) {
		t.Fatalf("expected %d items after load, got %d", len(originals), report.ItemsAfter)
	}

	h2, err := NewTableHandle(ctx, target, testConfig("videos"))
	if err != nil {
		t.Fatalf("NewTableHandle on target failed: %v", err)
	}
	loaded, err := h2.ScanAll(ctx)
	if err != nil {
		t.Fatalf("ScanAll on target failed: %v", err)
	}

	byID := map[string]storagemodels.Item{}
	for _, item := range loaded {
		id, _ := item["id"].(string)
		byID[id] = item
	}
	for _, want := range originals {
		got, ok := byID[want["id"].(string)]
		if !ok {
			t.Errorf("item %v missing after round trip", want["id"])
			continue
		}
		if got["title"] != want["title"] {
			t.Errorf("item %v: title %v != %v", want["id"], got["title"], want["title"])
		}
	}
}
