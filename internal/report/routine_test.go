package report

import (
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/winzyu/beauty-product-analysis/internal/aggregate"
	"github.com/winzyu/beauty-product-analysis/internal/observability"
	"github.com/winzyu/beauty-product-analysis/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(v float64) *float64 { return &v }

func testCollection(t *testing.T) *aggregate.Collection {
	t.Helper()
	records := []types.ProductRecord{
		{Store: types.StoreTarget, Category: "blush", Name: "Target Blush", Price: ptr(5.00)},
		{Store: types.StoreTarget, Category: "concealer", Name: "Target Concealer", Price: ptr(8.00)},
		{Store: types.StoreRiteAid, Category: "blush", Name: "RiteAid Blush", Price: ptr(6.00)},
		{Store: types.StoreRiteAid, Category: "concealer", Name: "RiteAid Concealer", Price: ptr(7.00)},
	}
	return aggregate.Aggregate(records, []string{"blush", "concealer"},
		observability.NewMetrics(testLogger()), testLogger())
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildRoutines(t *testing.T) {
	analysis := Build(testCollection(t), testLogger())

	if len(analysis.Routines) != 2 {
		t.Fatalf("got %d store routines, want 2", len(analysis.Routines))
	}

	totals := map[string]float64{}
	for _, routine := range analysis.Routines {
		totals[string(routine.Store)] = routine.Total
		if len(routine.Items) != 2 {
			t.Errorf("%s routine has %d items, want 2", routine.Store, len(routine.Items))
		}
	}
	if !approx(totals["target"], 13.00) {
		t.Errorf("target total = %.2f, want 13.00", totals["target"])
	}
	if !approx(totals["riteaid"], 13.00) {
		t.Errorf("riteaid total = %.2f, want 13.00", totals["riteaid"])
	}

	// Optimal: target blush 5.00 plus riteaid concealer 7.00.
	if !approx(analysis.Optimal.Total, 12.00) {
		t.Errorf("optimal total = %.2f, want 12.00", analysis.Optimal.Total)
	}
	if len(analysis.Optimal.Items) != 2 {
		t.Fatalf("optimal items = %d, want 2", len(analysis.Optimal.Items))
	}
	if analysis.Optimal.Items[0].Category != "blush" || analysis.Optimal.Items[0].Store != types.StoreTarget {
		t.Errorf("optimal blush = %+v", analysis.Optimal.Items[0])
	}
	if analysis.Optimal.Items[1].Store != types.StoreRiteAid {
		t.Errorf("optimal concealer = %+v", analysis.Optimal.Items[1])
	}
}

func TestBuildSavings(t *testing.T) {
	analysis := Build(testCollection(t), testLogger())

	if len(analysis.Savings) != 2 {
		t.Fatalf("got %d savings entries, want 2", len(analysis.Savings))
	}
	for _, saving := range analysis.Savings {
		if !approx(saving.Amount, 1.00) {
			t.Errorf("%s saving = %.2f, want 1.00", saving.Strategy, saving.Amount)
		}
		wantPct := 1.00 / 13.00 * 100
		if math.Abs(saving.Percent-wantPct) > 0.01 {
			t.Errorf("%s percent = %.2f, want %.2f", saving.Strategy, saving.Percent, wantPct)
		}
	}
}

func TestWriteSummary(t *testing.T) {
	analysis := Build(testCollection(t), testLogger())

	var sb strings.Builder
	if err := analysis.WriteSummary(&sb); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"SAVINGS ANALYSIS",
		"Optimal Routine: $12.00",
		"Target Routine: $13.00",
		"$1.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteHTML(t *testing.T) {
	analysis := Build(testCollection(t), testLogger())

	var sb strings.Builder
	if err := analysis.WriteHTML(&sb); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"<title>Cheapest Makeup Products</title>",
		"Optimal Routine (Total: $12.00)",
		"Target Blush",
		"RiteAid Concealer",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestBuildEmptyCollection(t *testing.T) {
	c := aggregate.New([]string{"blush"}, observability.NewMetrics(testLogger()), testLogger())
	analysis := Build(c, testLogger())

	if len(analysis.Routines) != 0 {
		t.Errorf("routines = %d, want 0", len(analysis.Routines))
	}
	if analysis.Optimal.Total != 0 {
		t.Errorf("optimal total = %.2f, want 0", analysis.Optimal.Total)
	}
	if len(analysis.Savings) != 0 {
		t.Errorf("savings = %d, want 0", len(analysis.Savings))
	}
}
