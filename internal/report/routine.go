// Package report turns aggregated price data into shopping routines:
// the cost of buying every category at a single store versus splitting
// the trip across stores for the cheapest option in each category.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/winzyu/beauty-product-analysis/internal/aggregate"
	"github.com/winzyu/beauty-product-analysis/internal/types"
)

// RoutineItem is one product slot in a routine.
type RoutineItem struct {
	Category string              `json:"category"`
	Name     string              `json:"name"`
	Store    types.Store         `json:"store"`
	Price    float64             `json:"price"`
	Record   types.ProductRecord `json:"-"`
}

// Routine is a full shopping list under one strategy, either a single
// store or the optimal multi-store split.
type Routine struct {
	Strategy string        `json:"strategy"`
	Store    types.Store   `json:"store,omitempty"`
	Items    []RoutineItem `json:"items"`
	Total    float64       `json:"total"`
}

// Saving is the extra cost of a single-store routine over the optimal
// multi-store routine.
type Saving struct {
	Strategy string  `json:"strategy"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

// Analysis is the complete routine comparison.
type Analysis struct {
	Routines []Routine `json:"routines"`
	Optimal  Routine   `json:"optimal"`
	Savings  []Saving  `json:"savings"`
}

// Build computes one routine per store plus the optimal routine, then
// the savings of the optimal over each single-store strategy. A store
// routine only covers categories where that store had a priced
// product, so totals are comparable per category, not padded.
func Build(c *aggregate.Collection, logger *slog.Logger) *Analysis {
	perGroup := aggregate.CheapestPerGroup(c)
	overall := aggregate.CheapestOverall(c)

	analysis := &Analysis{}

	for _, store := range c.Stores() {
		routine := Routine{
			Strategy: string(store) + " routine",
			Store:    store,
		}
		for key, rec := range perGroup {
			if key.Store != store || !c.Comparable(key.Category) {
				continue
			}
			routine.Items = append(routine.Items, itemOf(rec))
			routine.Total += *rec.Price
		}
		sortItems(routine.Items)
		analysis.Routines = append(analysis.Routines, routine)
	}

	optimal := Routine{Strategy: "optimal routine"}
	for _, rec := range overall {
		optimal.Items = append(optimal.Items, itemOf(rec))
		optimal.Total += *rec.Price
	}
	sortItems(optimal.Items)
	analysis.Optimal = optimal

	for _, routine := range analysis.Routines {
		if routine.Total <= 0 {
			continue
		}
		amount := routine.Total - optimal.Total
		analysis.Savings = append(analysis.Savings, Saving{
			Strategy: routine.Strategy,
			Amount:   amount,
			Percent:  amount / routine.Total * 100,
		})
	}
	sort.Slice(analysis.Savings, func(i, j int) bool {
		return analysis.Savings[i].Amount > analysis.Savings[j].Amount
	})

	logger.Info("routine analysis built",
		"store_routines", len(analysis.Routines),
		"optimal_items", len(optimal.Items),
		"optimal_total", optimal.Total,
	)
	return analysis
}

func itemOf(rec types.ProductRecord) RoutineItem {
	return RoutineItem{
		Category: rec.Category,
		Name:     rec.Name,
		Store:    rec.Store,
		Price:    *rec.Price,
		Record:   rec,
	}
}

func sortItems(items []RoutineItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Category < items[j].Category
	})
}

// WriteSummary writes the savings analysis as plain text.
func (a *Analysis) WriteSummary(w io.Writer) error {
	var b strings.Builder
	b.WriteString("===== MAKEUP ROUTINE SAVINGS ANALYSIS =====\n\n")

	b.WriteString("Total Routine Costs:\n")
	for _, routine := range a.Routines {
		fmt.Fprintf(&b, "  %s: $%.2f\n", titleCase(routine.Strategy), routine.Total)
	}
	fmt.Fprintf(&b, "  %s: $%.2f\n\n", titleCase(a.Optimal.Strategy), a.Optimal.Total)

	b.WriteString("Potential Savings with Optimal Multi-store Strategy:\n")
	for _, saving := range a.Savings {
		fmt.Fprintf(&b, "  vs. %s: $%.2f (%.1f%% of total cost)\n",
			titleCase(saving.Strategy), saving.Amount, saving.Percent)
	}

	b.WriteString("\nOptimal Routine:\n")
	for _, item := range a.Optimal.Items {
		fmt.Fprintf(&b, "  %s: %s at %s for $%.2f\n",
			titleCase(displayCategory(item.Category)), item.Name, item.Store, item.Price)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// displayCategory converts a normalized category back to words.
func displayCategory(category string) string {
	return strings.ReplaceAll(category, "_", " ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
