package handlers

import "time"

// Strategy selects how short codes are produced.
type Strategy string

const (
	StrategyRandom   Strategy = "random"
	StrategyHash     Strategy = "hash"
	StrategySequence Strategy = "sequence"
)

// CreateShortLinkRequest is the request body for creating a short link.
type CreateShortLinkRequest struct {
	Body struct {
		URL       string     `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"url"`
		Alias     string     `doc:"Optional custom alias"                example:"my-link" json:"alias,omitempty"     required:"false"`
		ExpiresAt *time.Time `doc:"Optional expiry (must be future)"     json:"expires_at,omitempty"                  required:"false"`
		Strategy  Strategy   `doc:"Code generation strategy"             enum:"random,hash,sequence" json:"strategy,omitempty" required:"false"`
	}
}

// CreateShortLinkResponse is the response for a successfully created short link.
type CreateShortLinkResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		Code     string `doc:"The short code"     example:"x7kq2pd"                       json:"code"`
		ShortURL string `doc:"The full short URL" example:"http://localhost:8000/x7kq2pd" json:"short_url"`
	}
}

// ResolveRequest is the request for resolving a short code without redirecting.
type ResolveRequest struct {
	Code string `doc:"The short code" example:"x7kq2pd" maxLength:"32" minLength:"3" path:"code"`
}

// ResolveResponse reports metadata for a short code.
type ResolveResponse struct {
	Body struct {
		Exists  bool   `json:"exists"`
		Expired bool   `json:"expired"`
		LongURL string `json:"long_url,omitempty" required:"false"`
	}
}

// RedirectRequest is the request for redirecting a short link.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"x7kq2pd" path:"code" pattern:"^[A-Za-z0-9_-]{3,32}$"`
}

// RedirectResponse redirects the client to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}
