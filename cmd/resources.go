package cmd

import (
	"github.com/theirongolddev/cstat/internal/cache"
	"github.com/theirongolddev/cstat/internal/config"
	"github.com/theirongolddev/cstat/internal/fetch"
)

// resourceSet binds the three external resources to their TTLs and fetchers.
// Limits refresh synchronously (small TTL, the reset countdown should be
// current); ccusage and pricing prefer staleness over render latency.
type resourceSet struct {
	limits  cache.Resource
	ccusage cache.Resource
	pricing cache.Resource
}

func newResources(cfg config.Config, store *cache.Store) resourceSet {
	return resourceSet{
		limits: cache.Resource{
			Key:   cache.KeyLimits,
			TTL:   cfg.Cache.LimitsTTL,
			Fetch: fetch.Limits(store),
		},
		ccusage: cache.Resource{
			Key:        cache.KeyCcusage,
			TTL:        cfg.Cache.CcusageTTL,
			Fetch:      fetch.Ccusage(store),
			Background: true,
		},
		pricing: cache.Resource{
			Key:        cache.KeyPricing,
			TTL:        cfg.Cache.PricingTTL,
			Fetch:      fetch.Pricing(store),
			Background: true,
		},
	}
}

func (r resourceSet) all() []cache.Resource {
	return []cache.Resource{r.pricing, r.limits, r.ccusage}
}

func (r resourceSet) byKey(k cache.Key) (cache.Resource, bool) {
	for _, res := range r.all() {
		if res.Key == k {
			return res, true
		}
	}
	return cache.Resource{}, false
}
