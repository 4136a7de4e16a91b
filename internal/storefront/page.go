package storefront

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"tokoshop/internal/listing"
	"tokoshop/internal/models"
)

// Observer is notified about fetch fallbacks and discarded loads.
type Observer interface {
	FetchFailed()
	StaleLoad()
}

type nopObserver struct{}

func (nopObserver) FetchFailed() {}
func (nopObserver) StaleLoad()   {}

// View is what a listing page renders.
type View struct {
	listing.Page
	Loading bool `json:"loading"`
}

// ListingPage holds the state of the product listing page.
//
// Every Load takes a generation number before fetching. Its result becomes the
// page state only if no later Load started in the meantime, so a slow response
// for old filters can never replace the result for newer ones.
type ListingPage struct {
	fetcher Fetcher
	log     *zap.Logger
	obs     Observer

	generation atomic.Uint64

	mu       sync.RWMutex
	products []models.Product
	params   listing.Params
	loading  bool
}

// NewListingPage creates a listing page over fetcher. log and obs may be nil.
func NewListingPage(fetcher Fetcher, log *zap.Logger, obs Observer) *ListingPage {
	if log == nil {
		log = zap.NewNop()
	}
	if obs == nil {
		obs = nopObserver{}
	}
	return &ListingPage{
		fetcher:  fetcher,
		log:      log,
		obs:      obs,
		products: []models.Product{},
		params:   listing.Params{Sort: listing.DefaultSort, Page: 1},
	}
}

// Load fetches the collection and reduces it with params. A failed fetch is
// logged and yields an empty listing; it is never returned to the caller.
// The returned view always reflects this call's own fetch, whether or not it
// was applied to the page state.
func (p *ListingPage) Load(ctx context.Context, params listing.Params) View {
	gen := p.generation.Add(1)

	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	products, err := p.fetcher.Fetch(ctx)
	if err != nil {
		p.log.Error("Error fetching products", zap.Error(err), zap.Uint64("generation", gen))
		p.obs.FetchFailed()
		products = []models.Product{}
	}

	view := View{Page: listing.Reduce(products, params)}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation.Load() {
		p.log.Debug("discarding stale listing load", zap.Uint64("generation", gen))
		p.obs.StaleLoad()
		return view
	}
	p.products = products
	p.params = params
	p.loading = false
	return view
}

// Current renders the page from the last applied load.
func (p *ListingPage) Current() View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return View{
		Page:    listing.Reduce(p.products, p.params),
		Loading: p.loading,
	}
}

// Params returns the parameters of the last applied load.
func (p *ListingPage) Params() listing.Params {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.params
}
