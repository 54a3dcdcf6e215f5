package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const fullPage = `<!DOCTYPE html>
<html><head>
<meta property="product:price:amount" content="3599.99">
<meta property="og:image" content="https://img.example/x.jpg">
</head><body>
<div class="product-offer-summary__shop-logo">
  <a href="/sklepy/shop-123"><img src="//logos.example/shop.png"></a>
</div>
</body></html>`

const emptyPage = `<!DOCTYPE html><html><head></head><body></body></html>`

func TestScrapeFullPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fullPage)
	}))
	defer srv.Close()

	d, err := New(srv.URL).Scrape(context.Background(), "103514745")
	if err != nil {
		t.Fatalf("Scrape error: %v", err)
	}
	if d.Price == nil || *d.Price != 359999 {
		t.Fatalf("price: got %v, want 359999", d.Price)
	}
	if d.PhotoURL == nil || *d.PhotoURL != "https://img.example/x.jpg" {
		t.Fatalf("photo: got %v", d.PhotoURL)
	}
	if d.ShopURL == nil || *d.ShopURL != srv.URL+"/sklepy/shop-123" {
		t.Fatalf("shop url: got %v", d.ShopURL)
	}
	if d.ShopImage == nil || *d.ShopImage != "https://logos.example/shop.png" {
		t.Fatalf("shop image: got %v", d.ShopImage)
	}
}

// A page without the expected fragments yields nil fields instead of
// half-assembled URLs.
func TestScrapeEmptyPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, emptyPage)
	}))
	defer srv.Close()

	d, err := New(srv.URL).Scrape(context.Background(), "1")
	if err != nil {
		t.Fatalf("Scrape error: %v", err)
	}
	if d.Price != nil || d.PhotoURL != nil || d.ShopURL != nil || d.ShopImage != nil {
		t.Fatalf("expected all nil fields, got %+v", d)
	}
}

func TestScrapeBadStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Scrape(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for 404 page, got nil")
	}
}

// SyncAll must tag each product's outcome independently and never run more
// workers than configured.
func TestSyncAllBoundedAndTagged(t *testing.T) {
	t.Parallel()

	var inflight, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := inflight.Add(1)
		defer inflight.Add(-1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		if r.URL.Path == "/bad" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, fullPage)
	}))
	defer srv.Close()

	items := []Item{
		{ProductID: 1, CeneoID: "a"},
		{ProductID: 2, CeneoID: "bad"},
		{ProductID: 3, CeneoID: "c"},
		{ProductID: 4, CeneoID: "d"},
		{ProductID: 5, CeneoID: "bad"},
	}
	results := New(srv.URL).SyncAll(context.Background(), items, 2,
		func(ctx context.Context, productID uint64, d Details) error {
			if productID == 3 {
				return errors.New("apply failed")
			}
			return nil
		})

	if len(results) != len(items) {
		t.Fatalf("got %d results, want %d", len(results), len(items))
	}
	failed := map[uint64]bool{}
	for _, r := range results {
		if r.Err != nil {
			failed[r.ProductID] = true
		}
	}
	// 2 and 5 fail at scrape time, 3 fails at apply time.
	for _, id := range []uint64{2, 3, 5} {
		if !failed[id] {
			t.Fatalf("product %d should have failed", id)
		}
	}
	for _, id := range []uint64{1, 4} {
		if failed[id] {
			t.Fatalf("product %d should have succeeded", id)
		}
	}
	if p := peak.Load(); p > 2 {
		t.Fatalf("worker bound exceeded: peak %d", p)
	}
}

func TestSyncAllNoItems(t *testing.T) {
	t.Parallel()

	results := New("http://unused.invalid").SyncAll(context.Background(), nil, 4,
		func(ctx context.Context, productID uint64, d Details) error { return nil })
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
