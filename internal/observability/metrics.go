package observability

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// Metrics tracks pipeline diagnostics. Every dropped or excluded record
// increments a counter here so nothing disappears silently.
type Metrics struct {
	// Ingest metrics
	ItemsIngested atomic.Int64
	FilesLoaded   atomic.Int64
	IngestErrors  atomic.Int64

	// Normalizer metrics
	RecordsNormalized atomic.Int64
	RecordsRejected   atomic.Int64
	PricesUnparseable atomic.Int64
	UnknownStores     atomic.Int64

	// Aggregation metrics
	DuplicatesDropped atomic.Int64
	UnknownCategories atomic.Int64

	// Output metrics
	RecordsStored atomic.Int64

	logger *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger.With("component", "metrics"),
	}
}

// ServeHTTP serves metrics in Prometheus text exposition format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	metrics := []struct {
		name  string
		help  string
		value int64
	}{
		{"beautyscan_items_ingested_total", "Total raw items ingested", m.ItemsIngested.Load()},
		{"beautyscan_files_loaded_total", "Total raw data files loaded", m.FilesLoaded.Load()},
		{"beautyscan_ingest_errors_total", "Total ingest errors", m.IngestErrors.Load()},
		{"beautyscan_records_normalized_total", "Total records normalized", m.RecordsNormalized.Load()},
		{"beautyscan_records_rejected_total", "Total records rejected (missing name)", m.RecordsRejected.Load()},
		{"beautyscan_prices_unparseable_total", "Total unparseable prices", m.PricesUnparseable.Load()},
		{"beautyscan_unknown_stores_total", "Total records with unknown store tags", m.UnknownStores.Load()},
		{"beautyscan_duplicates_dropped_total", "Total duplicate records dropped", m.DuplicatesDropped.Load()},
		{"beautyscan_unknown_categories_total", "Total records outside the category set", m.UnknownCategories.Load()},
		{"beautyscan_records_stored_total", "Total records stored", m.RecordsStored.Load()},
	}

	for _, metric := range metrics {
		fmt.Fprintf(w, "# HELP %s %s\n", metric.name, metric.help)
		fmt.Fprintf(w, "# TYPE %s counter\n", metric.name)
		fmt.Fprintf(w, "%s %d\n", metric.name, metric.value)
	}
}

// StartServer starts the metrics HTTP server.
func (m *Metrics) StartServer(port int, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, m)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	addr := fmt.Sprintf(":%d", port)
	m.logger.Info("metrics server starting", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			m.logger.Error("metrics server error", "error", err)
		}
	}()

	return nil
}

// Snapshot returns all counters as a map.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"items_ingested":     m.ItemsIngested.Load(),
		"files_loaded":       m.FilesLoaded.Load(),
		"ingest_errors":      m.IngestErrors.Load(),
		"records_normalized": m.RecordsNormalized.Load(),
		"records_rejected":   m.RecordsRejected.Load(),
		"prices_unparseable": m.PricesUnparseable.Load(),
		"unknown_stores":     m.UnknownStores.Load(),
		"duplicates_dropped": m.DuplicatesDropped.Load(),
		"unknown_categories": m.UnknownCategories.Load(),
		"records_stored":     m.RecordsStored.Load(),
	}
}
