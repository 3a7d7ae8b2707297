package ingest

import (
	"errors"
	"testing"

	"github.com/winzyu/beauty-product-analysis/internal/types"
)

const ultaLog = `2025-03-14 10:02:11 INFO Starting Blush scraper
2025-03-14 10:02:14 INFO Found brand: e.l.f. Cosmetics
2025-03-14 10:02:14 INFO Found product name: Putty Blush
2025-03-14 10:02:14 INFO Found price: $7.00
2025-03-14 10:02:14 INFO Found review count: 1842
2025-03-14 10:02:14 INFO Found color options: 8
2025-03-14 10:02:15 INFO Found brand: MAC
2025-03-14 10:02:15 INFO Found product name: Powder Blush
2025-03-14 10:02:15 INFO Found price: $29.00
2025-03-14 10:02:15 INFO Product is exclusive
2025-03-14 10:02:20 INFO Starting Setting Spray scraper
2025-03-14 10:02:23 INFO Found brand: Urban Decay
2025-03-14 10:02:23 INFO Found product name: All Nighter Setting Spray
2025-03-14 10:02:23 INFO Found price: $36.00
2025-03-14 10:02:23 INFO Found review count: 5521
`

func TestUltaParseLog(t *testing.T) {
	parser := NewUltaParser(testLogger())

	items, err := parser.ParseLog(ultaLog)
	if err != nil {
		t.Fatalf("ParseLog failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	first := items[0]
	if first.Store != types.StoreUlta {
		t.Errorf("Store = %q", first.Store)
	}
	if first.Category != "blush" {
		t.Errorf("Category = %q, want blush", first.Category)
	}
	if got := first.GetString("brand"); got != "e.l.f. Cosmetics" {
		t.Errorf("brand = %q", got)
	}
	if got := first.GetString("title"); got != "e.l.f. Cosmetics Putty Blush" {
		t.Errorf("title = %q", got)
	}
	if v, _ := first.Get("price"); v != 7.00 {
		t.Errorf("price = %v, want 7", v)
	}
	if v, _ := first.Get("review_count"); v != 1842 {
		t.Errorf("review_count = %v", v)
	}
	if v, _ := first.Get("color_options"); v != 8 {
		t.Errorf("color_options = %v", v)
	}

	second := items[1]
	if v, _ := second.Get("exclusive"); v != true {
		t.Errorf("exclusive = %v, want true", v)
	}

	third := items[2]
	if third.Category != "setting_spray" {
		t.Errorf("Category = %q, want setting_spray", third.Category)
	}
	if got := third.GetString("title"); got != "Urban Decay All Nighter Setting Spray" {
		t.Errorf("title = %q", got)
	}
}

func TestUltaParseLogDropsNameless(t *testing.T) {
	parser := NewUltaParser(testLogger())

	log := `Starting Foundation scraper
Found brand: Ghost Brand
Found brand: L'Oreal
Found product name: True Match Foundation
Found price: $12.99
`
	items, err := parser.ParseLog(log)
	if err != nil {
		t.Fatalf("ParseLog failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if got := items[0].GetString("brand"); got != "L'Oreal" {
		t.Errorf("brand = %q", got)
	}
}

func TestUltaParseLogEmpty(t *testing.T) {
	parser := NewUltaParser(testLogger())

	_, err := parser.ParseLog("nothing to see")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, types.ErrEmptyPayload) {
		t.Errorf("error = %v, want ErrEmptyPayload", err)
	}
}
