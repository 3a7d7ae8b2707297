package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/winzyu/beauty-product-analysis/internal/config"
)

func riteAidPage(names ...string) string {
	page := `<html><body><ol class="products list items product-items">`
	for _, name := range names {
		page += fmt.Sprintf(`<li class="item product product-item">
			<a class="product-item-link" href="/shop/%s">%s</a>
			<span class="price">$9.99</span>
		</li>`, name, name)
	}
	return page + `</ol></body></html>`
}

func TestRiteAidClientSearchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "lip gloss" {
			t.Errorf("q = %q", q.Get("q"))
		}
		switch q.Get("p") {
		case "1":
			fmt.Fprint(w, riteAidPage("gloss-one", "gloss-two"))
		case "2":
			fmt.Fprint(w, riteAidPage("gloss-three"))
		default:
			fmt.Fprint(w, riteAidPage())
		}
	}))
	defer srv.Close()

	httpFetcher, err := NewHTTPFetcher(testFetchConfig(), testLogger())
	if err != nil {
		t.Fatalf("NewHTTPFetcher failed: %v", err)
	}
	defer httpFetcher.Close()

	storeCfg := &config.RiteAidConfig{BaseURL: srv.URL, MaxPages: 10}
	client := NewRiteAidClient(httpFetcher, storeCfg, testFetchConfig(), testLogger())

	items, err := client.SearchAll(context.Background(), "lip gloss", "lip_gloss")
	if err != nil {
		t.Fatalf("SearchAll failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].GetString("title") != "gloss-one" {
		t.Errorf("title = %q", items[0].GetString("title"))
	}
	if got := items[2].GetString("url"); got != srv.URL+"/shop/gloss-three" {
		t.Errorf("url = %q", got)
	}
}
