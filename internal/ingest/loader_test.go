package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/winzyu/beauty-product-analysis/internal/observability"
	"github.com/winzyu/beauty-product-analysis/internal/types"
)

func writeRawFile(t *testing.T, root, store, category, name, content string) {
	t.Helper()
	dir := filepath.Join(root, store, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoaderLoad(t *testing.T) {
	root := t.TempDir()
	writeRawFile(t, root, "target", "blush", "page_1.json",
		`[{"title": "Putty Blush", "price": 7.0}, {"title": "Powder Blush", "price": 29.0}]`)
	writeRawFile(t, root, "riteaid", "lip gloss", "products.json",
		`{"products": [{"name": "Super Lustrous", "price_text": "$8.99"}]}`)

	metrics := observability.NewMetrics(testLogger())
	loader := NewLoader(root, metrics, testLogger())

	items, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	byStore := map[types.Store]int{}
	for _, item := range items {
		byStore[item.Store]++
	}
	if byStore[types.StoreTarget] != 2 {
		t.Errorf("target items = %d, want 2", byStore[types.StoreTarget])
	}
	if byStore[types.StoreRiteAid] != 1 {
		t.Errorf("riteaid items = %d, want 1", byStore[types.StoreRiteAid])
	}

	for _, item := range items {
		if item.Store == types.StoreRiteAid && item.Category != "lip_gloss" {
			t.Errorf("riteaid category = %q, want lip_gloss", item.Category)
		}
	}

	snap := metrics.Snapshot()
	if snap["files_loaded"] != 2 {
		t.Errorf("files_loaded = %d, want 2", snap["files_loaded"])
	}
	if snap["items_ingested"] != 3 {
		t.Errorf("items_ingested = %d, want 3", snap["items_ingested"])
	}
}

func TestLoaderSkipsBadFiles(t *testing.T) {
	root := t.TempDir()
	writeRawFile(t, root, "ulta", "primer", "good.json", `[{"title": "Photo Finish", "price": 39.0}]`)
	writeRawFile(t, root, "ulta", "primer", "bad.json", `{not json`)
	writeRawFile(t, root, "unknown_store", "primer", "odd.json", `[{"title": "x"}]`)

	metrics := observability.NewMetrics(testLogger())
	loader := NewLoader(root, metrics, testLogger())

	items, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].GetString("title") != "Photo Finish" {
		t.Errorf("title = %q", items[0].GetString("title"))
	}

	snap := metrics.Snapshot()
	if snap["ingest_errors"] != 1 {
		t.Errorf("ingest_errors = %d, want 1", snap["ingest_errors"])
	}
}

func TestLoaderMissingRoot(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "missing"), observability.NewMetrics(testLogger()), testLogger())
	if _, err := loader.Load(); err == nil {
		t.Fatal("expected error for missing root")
	}
}
