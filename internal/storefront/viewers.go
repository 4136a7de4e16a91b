package storefront

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultViewerTTL is how long an idle shopper keeps its listing page.
const DefaultViewerTTL = 30 * time.Minute

type viewer struct {
	page     *ListingPage
	lastSeen time.Time
}

// Viewers keeps one ListingPage per shopper. The generation guard of a page
// only orders loads of the same shopper, so two shoppers browsing at once
// never discard each other's results.
type Viewers struct {
	fetcher Fetcher
	log     *zap.Logger
	obs     Observer
	ttl     time.Duration

	mu        sync.Mutex
	pages     map[string]*viewer
	lastPrune time.Time
}

// NewViewers creates an empty registry. A ttl of zero uses DefaultViewerTTL.
func NewViewers(fetcher Fetcher, log *zap.Logger, obs Observer, ttl time.Duration) *Viewers {
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultViewerTTL
	}
	return &Viewers{
		fetcher:   fetcher,
		log:       log,
		obs:       obs,
		ttl:       ttl,
		pages:     make(map[string]*viewer),
		lastPrune: time.Now(),
	}
}

// Page returns the listing page of the shopper id, creating it on first use.
func (v *Viewers) Page(id string) *ListingPage {
	now := time.Now()

	v.mu.Lock()
	defer v.mu.Unlock()

	if now.Sub(v.lastPrune) >= v.ttl {
		v.prune(now)
	}

	vw, ok := v.pages[id]
	if !ok {
		vw = &viewer{page: NewListingPage(v.fetcher, v.log.With(zap.String("viewer", id)), v.obs)}
		v.pages[id] = vw
	}
	vw.lastSeen = now
	return vw.page
}

// TTL is how long an idle shopper keeps its page.
func (v *Viewers) TTL() time.Duration {
	return v.ttl
}

// Len is the number of shoppers currently tracked.
func (v *Viewers) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.pages)
}

func (v *Viewers) prune(now time.Time) {
	for id, vw := range v.pages {
		if now.Sub(vw.lastSeen) >= v.ttl {
			delete(v.pages, id)
		}
	}
	v.lastPrune = now
	v.log.Debug("pruned idle listing viewers", zap.Int("remaining", len(v.pages)))
}
