package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/theirongolddev/cstat/internal/cache"
)

const (
	usageLimitsURL = "https://api.anthropic.com/api/oauth/usage"
	oauthBeta      = "oauth-2025-04-20"
	httpTimeout    = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var httpClient = &http.Client{Timeout: httpTimeout}

// Limits returns the fetch for the OAuth usage-limits resource.
func Limits(store *cache.Store) cache.Fetch {
	return func(ctx context.Context) bool {
		token := OAuthToken(ctx)
		if token == "" {
			return false
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, usageLimitsURL, nil)
		if err != nil {
			return false
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("anthropic-beta", oauthBeta)

		body, ok := doJSON(req)
		if !ok {
			return false
		}
		return store.Write(cache.KeyLimits, body) == nil
	}
}

// doJSON performs the request and returns a non-empty body on HTTP 200.
func doJSON(req *http.Request) ([]byte, bool) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil || len(body) == 0 {
		return nil, false
	}
	return body, true
}
