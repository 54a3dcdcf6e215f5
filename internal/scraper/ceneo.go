// Package scraper fetches product details from the external
// price-comparison site. One call is one outbound request: there is no
// retry and no caching, so callers decide how failures are reported.
package scraper

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Details holds the fields extracted from a product page. Price is in
// minor currency units and nil when the page carries no price. URL fields
// are nil when the corresponding fragment is missing from the page, so
// stored records never contain half-assembled URLs.
type Details struct {
	Price     *int64
	PhotoURL  *string
	ShopURL   *string
	ShopImage *string
}

// Scraper issues outbound fetches against a configurable base URL. Tests
// point BaseURL at a local httptest server.
type Scraper struct {
	BaseURL string
	Client  *http.Client
}

// New returns a Scraper with a conservative request timeout so a hanging
// page cannot stall a bulk update indefinitely.
func New(baseURL string) *Scraper {
	return &Scraper{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Scrape fetches the page for an external product identifier and extracts
// price, primary image, vendor link and vendor logo.
func (s *Scraper) Scrape(ctx context.Context, ceneoID string) (Details, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/"+ceneoID, nil)
	if err != nil {
		return Details{}, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return Details{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Details{}, fmt.Errorf("scrape %s: unexpected status %d", ceneoID, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Details{}, err
	}

	var d Details
	// The listing exposes its price and photo through standard meta tags.
	if v, ok := doc.Find(`meta[property="product:price:amount"]`).Attr("content"); ok {
		if major, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			minor := int64(math.Round(major * 100))
			d.Price = &minor
		}
	}
	if v, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && v != "" {
		d.PhotoURL = &v
	}

	// Vendor link and logo live inside the offer summary block. The scraped
	// fragments are relative, so they are prefixed with the site origin, but
	// only when actually present.
	wrapper := doc.Find(".product-offer-summary__shop-logo a")
	if href, ok := wrapper.Attr("href"); ok && href != "" {
		u := s.BaseURL + href
		d.ShopURL = &u
	}
	if src, ok := wrapper.Find("img").Attr("src"); ok && src != "" {
		u := "https:" + src
		d.ShopImage = &u
	}
	return d, nil
}

// Result tags the outcome of one synchronization inside a bulk run.
type Result struct {
	ProductID uint64
	CeneoID   string
	Err       error
}

// Item pairs a product id with its external identifier for bulk runs.
type Item struct {
	ProductID uint64
	CeneoID   string
}

// Apply is called with the scraped details of one product. Implementations
// persist the details; an error marks that product's result as failed.
type Apply func(ctx context.Context, productID uint64, d Details) error

// SyncAll synchronizes every item using a bounded pool of workers instead
// of one goroutine per product, so a large catalog cannot exhaust outbound
// connections. Each product gets a tagged result; one failure does not
// stop the others.
func (s *Scraper) SyncAll(ctx context.Context, items []Item, workers int, apply Apply) []Result {
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	in := make(chan Item)
	out := make(chan Result)
	for w := 0; w < workers; w++ {
		go func() {
			for it := range in {
				res := Result{ProductID: it.ProductID, CeneoID: it.CeneoID}
				d, err := s.Scrape(ctx, it.CeneoID)
				if err == nil {
					err = apply(ctx, it.ProductID, d)
				}
				res.Err = err
				out <- res
			}
		}()
	}
	go func() {
		for _, it := range items {
			in <- it
		}
		close(in)
	}()

	results := make([]Result, 0, len(items))
	for range items {
		results = append(results, <-out)
	}
	return results
}
