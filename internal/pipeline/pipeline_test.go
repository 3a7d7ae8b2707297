package pipeline

import (
	"log/slog"
	"os"
	"testing"

	"github.com/winzyu/beauty-product-analysis/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func TestPipelineBasic(t *testing.T) {
	p := New(testLogger)
	p.Use(&TrimMiddleware{})

	item := types.NewRawItem(types.StoreTarget, "blush")
	item.Set("title", "  Milani Rose Powder Blush  ")
	item.Set("brand", " Milani ")

	result, err := p.Process(item)
	if err != nil {
		t.Fatalf("pipeline error: %v", err)
	}
	if result.GetString("title") != "Milani Rose Powder Blush" {
		t.Errorf("expected trimmed title, got %q", result.GetString("title"))
	}
	if result.GetString("brand") != "Milani" {
		t.Errorf("expected trimmed brand, got %q", result.GetString("brand"))
	}
}

func TestHTMLSanitizeMiddleware(t *testing.T) {
	m := NewHTMLSanitizeMiddleware()
	item := types.NewRawItem(types.StoreRiteAid, "primer")
	item.Set("title", `<span class="name">e.l.f. <b>Power Grip</b></span> &amp; more`)

	result, err := m.Process(item)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	cleaned := result.GetString("title")
	if cleaned != "e.l.f. Power Grip & more" {
		t.Errorf("expected 'e.l.f. Power Grip & more', got %q", cleaned)
	}
}

func TestMojibakeMiddleware(t *testing.T) {
	m := NewMojibakeMiddleware()
	item := types.NewRawItem(types.StoreUlta, "foundation")
	item.Set("brand", "LancÃ‚me")

	result, err := m.Process(item)
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if got := result.GetString("brand"); got != "Lanc me" {
		t.Errorf("expected artifacts collapsed to spaces, got %q", got)
	}
}

func TestFieldRenameMiddleware(t *testing.T) {
	m := &FieldRenameMiddleware{Mapping: map[string]string{"product_name": "title"}}

	item := types.NewRawItem(types.StoreRiteAid, "blush")
	item.Set("product_name", "Wet n Wild Color Icon Blush")

	result, _ := m.Process(item)
	if result.GetString("title") != "Wet n Wild Color Icon Blush" {
		t.Errorf("expected renamed field, got %q", result.GetString("title"))
	}
	if result.Has("product_name") {
		t.Error("old field should be removed")
	}
}

func TestDefaultValueMiddleware(t *testing.T) {
	m := &DefaultValueMiddleware{Defaults: map[string]any{"in_stock": true}}

	item := types.NewRawItem(types.StoreTarget, "powder")
	result, _ := m.Process(item)

	v, ok := result.Get("in_stock")
	if !ok || v != true {
		t.Errorf("expected default in_stock=true, got %v (present=%v)", v, ok)
	}

	item2 := types.NewRawItem(types.StoreTarget, "powder")
	item2.Set("in_stock", false)
	result, _ = m.Process(item2)
	if v, _ := result.Get("in_stock"); v != false {
		t.Error("existing value should not be overwritten")
	}
}

func TestPipelineDropPropagates(t *testing.T) {
	p := New(testLogger)
	p.Use(dropAll{})
	p.Use(&TrimMiddleware{})

	item := types.NewRawItem(types.StoreTarget, "blush")
	result, err := p.Process(item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Error("dropped item should stay dropped")
	}
}

type dropAll struct{}

func (dropAll) Name() string                                        { return "drop_all" }
func (dropAll) Process(item *types.RawItem) (*types.RawItem, error) { return nil, nil }

// --- Benchmarks ---

func BenchmarkPipeline(b *testing.B) {
	p := New(testLogger)
	p.Use(&TrimMiddleware{})
	p.Use(NewHTMLSanitizeMiddleware())
	p.Use(NewMojibakeMiddleware())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		item := types.NewRawItem(types.StoreTarget, "blush")
		item.Set("title", "  Milani <b>Rose</b> Powder Blush  ")
		item.Set("brand", " Milani ")
		p.Process(item)
	}
}
