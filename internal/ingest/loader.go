package ingest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/winzyu/beauty-product-analysis/internal/observability"
	"github.com/winzyu/beauty-product-analysis/internal/types"
)

// Loader walks a raw data tree laid out as <root>/<store>/<category>/*.json
// and turns every product object it finds into a RawItem tagged with the
// store and category from its path.
type Loader struct {
	root    string
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string, metrics *observability.Metrics, logger *slog.Logger) *Loader {
	return &Loader{
		root:    dir,
		metrics: metrics,
		logger:  logger.With("component", "loader"),
	}
}

// Load reads every JSON file under the root. Files that fail to parse
// are logged and counted, not fatal; the rest of the tree still loads.
func (l *Loader) Load() ([]*types.RawItem, error) {
	info, err := os.Stat(l.root)
	if err != nil {
		return nil, &types.IngestError{Source: "loader", Path: l.root, Err: err}
	}
	if !info.IsDir() {
		return nil, &types.IngestError{Source: "loader", Path: l.root, Err: fmt.Errorf("not a directory")}
	}

	var items []*types.RawItem
	walkErr := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		store, category, ok := l.classify(path)
		if !ok {
			l.logger.Warn("skipping file outside store/category layout", "path", path)
			return nil
		}

		fileItems, err := l.loadFile(path, store, category)
		if err != nil {
			l.metrics.IngestErrors.Add(1)
			l.logger.Error("failed to load file", "path", path, "error", err)
			return nil
		}

		l.metrics.FilesLoaded.Add(1)
		l.metrics.ItemsIngested.Add(int64(len(fileItems)))
		items = append(items, fileItems...)
		return nil
	})
	if walkErr != nil {
		return nil, &types.IngestError{Source: "loader", Path: l.root, Err: walkErr}
	}

	l.logger.Info("raw data loaded", "root", l.root, "items", len(items))
	return items, nil
}

// classify derives (store, category) from the path relative to the root.
func (l *Loader) classify(path string) (types.Store, string, bool) {
	rel, err := filepath.Rel(l.root, path)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 3 {
		return "", "", false
	}
	store, ok := types.ParseStore(parts[0])
	if !ok {
		return "", "", false
	}
	return store, types.NormalizeCategory(parts[1]), true
}

func (l *Loader) loadFile(path string, store types.Store, category string) ([]*types.RawItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	products, err := decodeProducts(data)
	if err != nil {
		return nil, err
	}

	items := make([]*types.RawItem, 0, len(products))
	for _, raw := range products {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		item := types.NewRawItem(store, category)
		item.Fields = obj
		items = append(items, item)
	}
	return items, nil
}

// decodeProducts accepts either a bare JSON array of products or an
// object wrapping the array under a "products" key.
func decodeProducts(data []byte) ([]any, error) {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return nil, types.ErrEmptyPayload
	}

	switch data[0] {
	case '[':
		var arr []any
		if err := json.Unmarshal(data, &arr); err != nil {
			return nil, err
		}
		return arr, nil
	case '{':
		var wrapper struct {
			Products []any `json:"products"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, err
		}
		if wrapper.Products == nil {
			return nil, fmt.Errorf("object has no products array")
		}
		return wrapper.Products, nil
	default:
		return nil, fmt.Errorf("unrecognized payload shape")
	}
}
