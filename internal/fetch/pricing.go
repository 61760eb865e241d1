package fetch

import (
	"context"
	"io"
	"net/http"

	"github.com/theirongolddev/cstat/internal/cache"
)

// pricingURL is the LiteLLM community pricing table, cached for a day.
const pricingURL = "https://raw.githubusercontent.com/BerriAI/litellm/main/model_prices_and_context_window.json"

// The pricing table runs to several MB, well past the usual API body cap.
const maxPricingSize = 32 << 20

// Pricing returns the fetch for the model pricing resource.
func Pricing(store *cache.Store) cache.Fetch {
	return func(ctx context.Context) bool {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pricingURL, nil)
		if err != nil {
			return false
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return false
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxPricingSize))
		if err != nil || len(body) == 0 {
			return false
		}
		return store.Write(cache.KeyPricing, body) == nil
	}
}
