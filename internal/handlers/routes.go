package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/younesh11/url-shortner/internal/ratelimit"
)

// RegisterRoutes registers all shortener routes with per-endpoint rate
// limit configuration.
func RegisterRoutes(api huma.API, linkHandler *LinkHandler) {
	// Write operations get stricter limits.
	huma.Register(api, huma.Operation{
		OperationID:   "create-short-link",
		Method:        http.MethodPost,
		Path:          "/api/shorten",
		Summary:       "Create short link",
		Description:   "Creates a shortened URL, optionally with a custom alias, expiry, and code generation strategy.",
		Tags:          []string{"shortener"},
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
					{Window: time.Hour, Max: 100},
					{Window: 24 * time.Hour, Max: 500},
				},
			},
		},
	}, linkHandler.CreateShortLink)

	huma.Register(api, huma.Operation{
		OperationID: "resolve-code",
		Method:      http.MethodGet,
		Path:        "/api/resolve/{code}",
		Summary:     "Resolve short code",
		Description: "Returns metadata for a short code without redirecting.",
		Tags:        []string{"shortener"},
	}, linkHandler.Resolve)

	// Redirects take high read traffic; keep them out of the schema
	// like the rest of the site-root namespace.
	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to original URL",
		Tags:        []string{"redirect"},
		Hidden:      true,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, linkHandler.RedirectToURL)
}
