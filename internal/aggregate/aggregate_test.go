package aggregate

import (
	"log/slog"
	"os"
	"reflect"
	"testing"

	"github.com/winzyu/beauty-product-analysis/internal/observability"
	"github.com/winzyu/beauty-product-analysis/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

var testCategories = []string{"blush", "concealer", "primer"}

func rec(store types.Store, category, name string, priced bool, value float64) types.ProductRecord {
	r := types.ProductRecord{Store: store, Category: category, Name: name}
	if priced {
		r.Price = &value
	}
	return r
}

func newCollection(t *testing.T, records ...types.ProductRecord) *Collection {
	t.Helper()
	m := observability.NewMetrics(testLogger)
	return Aggregate(records, testCategories, m, testLogger)
}

func TestFirstWinsDedup(t *testing.T) {
	m := observability.NewMetrics(testLogger)
	c := New(testCategories, m, testLogger)

	first := rec(types.StoreTarget, "blush", "Milani Rose Powder Blush", true, 8.99)
	second := rec(types.StoreTarget, "blush", "Milani Rose Powder Blush", true, 6.49)

	if !c.Add(first) {
		t.Fatal("first record should be added")
	}
	if c.Add(second) {
		t.Fatal("duplicate (store, name) should be dropped")
	}

	group := c.Group(GroupKey{types.StoreTarget, "blush"})
	if len(group) != 1 {
		t.Fatalf("group has %d records, want 1", len(group))
	}
	if *group[0].Price != 8.99 {
		t.Errorf("kept record price = %v, want the first-seen 8.99", *group[0].Price)
	}
	if m.DuplicatesDropped.Load() != 1 {
		t.Errorf("duplicate count = %d, want 1", m.DuplicatesDropped.Load())
	}
}

func TestDedupIsPerStore(t *testing.T) {
	c := newCollection(t,
		rec(types.StoreTarget, "blush", "Benetint", true, 13.00),
		rec(types.StoreUlta, "blush", "Benetint", true, 18.00),
	)
	if c.Len() != 2 {
		t.Errorf("same name at different stores should both stay, got %d", c.Len())
	}
}

func TestCheapestPerGroup(t *testing.T) {
	c := newCollection(t,
		rec(types.StoreTarget, "blush", "A", true, 10),
		rec(types.StoreTarget, "blush", "B", true, 5),
		rec(types.StoreRiteAid, "blush", "C", true, 7),
	)

	got := CheapestPerGroup(c)
	if len(got) != 2 {
		t.Fatalf("got %d groups, want 2", len(got))
	}
	if got[GroupKey{types.StoreTarget, "blush"}].Name != "B" {
		t.Errorf("target blush cheapest = %q, want B", got[GroupKey{types.StoreTarget, "blush"}].Name)
	}
	if got[GroupKey{types.StoreRiteAid, "blush"}].Name != "C" {
		t.Errorf("riteaid blush cheapest = %q, want C", got[GroupKey{types.StoreRiteAid, "blush"}].Name)
	}
}

func TestCheapestOverall(t *testing.T) {
	c := newCollection(t,
		rec(types.StoreTarget, "blush", "A", true, 10),
		rec(types.StoreTarget, "blush", "B", true, 5),
		rec(types.StoreRiteAid, "blush", "C", true, 7),
	)

	got := CheapestOverall(c)
	if len(got) != 1 {
		t.Fatalf("got %d categories, want 1", len(got))
	}
	if got["blush"].Name != "B" || got["blush"].Store != types.StoreTarget {
		t.Errorf("overall blush = %q@%s, want B@target", got["blush"].Name, got["blush"].Store)
	}
}

func TestCheapestTieKeepsFirstSeen(t *testing.T) {
	c := newCollection(t,
		rec(types.StoreTarget, "primer", "First", true, 4.99),
		rec(types.StoreTarget, "primer", "Second", true, 4.99),
	)
	got := CheapestPerGroup(c)
	if got[GroupKey{types.StoreTarget, "primer"}].Name != "First" {
		t.Errorf("tie should keep first-seen record")
	}
}

func TestUnpricedGroupAbsent(t *testing.T) {
	c := newCollection(t,
		rec(types.StoreTarget, "blush", "Priced", true, 10),
		rec(types.StoreRiteAid, "concealer", "NoPrice1", false, 0),
		rec(types.StoreRiteAid, "concealer", "NoPrice2", false, 0),
	)

	perGroup := CheapestPerGroup(c)
	if _, present := perGroup[GroupKey{types.StoreRiteAid, "concealer"}]; present {
		t.Error("group with all-null prices should be absent, not a sentinel entry")
	}
	overall := CheapestOverall(c)
	if _, present := overall["concealer"]; present {
		t.Error("category with no priced records should be absent")
	}
}

func TestUnknownCategoryExcludedFromOverall(t *testing.T) {
	m := observability.NewMetrics(testLogger)
	c := New(testCategories, m, testLogger)
	c.Add(rec(types.StoreTarget, "nail_polish", "OPI Red", true, 9.99))

	if c.Len() != 1 {
		t.Fatal("unknown-category record should be preserved in the collection")
	}
	if m.UnknownCategories.Load() != 1 {
		t.Errorf("unknown category count = %d, want 1", m.UnknownCategories.Load())
	}

	// Still visible per group, but never cross-store matched.
	perGroup := CheapestPerGroup(c)
	if _, present := perGroup[GroupKey{types.StoreTarget, "nail_polish"}]; !present {
		t.Error("unknown category should still appear in per-group results")
	}
	overall := CheapestOverall(c)
	if _, present := overall["nail_polish"]; present {
		t.Error("unknown category must not join the cross-store aggregate")
	}
}

func TestIdempotentRerun(t *testing.T) {
	records := []types.ProductRecord{
		rec(types.StoreTarget, "blush", "A", true, 10),
		rec(types.StoreTarget, "blush", "B", true, 5),
		rec(types.StoreRiteAid, "blush", "C", true, 7),
		rec(types.StoreUlta, "primer", "D", false, 0),
	}

	run := func() (map[GroupKey]types.ProductRecord, map[string]types.ProductRecord) {
		m := observability.NewMetrics(testLogger)
		c := Aggregate(records, testCategories, m, testLogger)
		return CheapestPerGroup(c), CheapestOverall(c)
	}

	g1, o1 := run()
	g2, o2 := run()
	if !reflect.DeepEqual(g1, g2) {
		t.Error("CheapestPerGroup is not deterministic across reruns")
	}
	if !reflect.DeepEqual(o1, o2) {
		t.Error("CheapestOverall is not deterministic across reruns")
	}
}

func TestKeysSorted(t *testing.T) {
	c := newCollection(t,
		rec(types.StoreUlta, "primer", "X", true, 1),
		rec(types.StoreTarget, "concealer", "Y", true, 2),
		rec(types.StoreTarget, "blush", "Z", true, 3),
	)
	keys := c.Keys()
	want := []GroupKey{
		{types.StoreTarget, "blush"},
		{types.StoreTarget, "concealer"},
		{types.StoreUlta, "primer"},
	}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}
}
