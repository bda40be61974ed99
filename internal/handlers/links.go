package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/younesh11/url-shortner/internal/analytics"
	"github.com/younesh11/url-shortner/internal/messaging"
	"github.com/younesh11/url-shortner/internal/shortener"
)

// LinkHandler exposes shortener operations over HTTP.
type LinkHandler struct {
	service            *shortener.Service
	baseURL            string
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent]
	publishLinkVisited messaging.Publish[analytics.LinkVisitedEvent]
	logger             *zap.Logger
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(
	service *shortener.Service,
	baseURL string,
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishLinkVisited messaging.Publish[analytics.LinkVisitedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		service:            service,
		baseURL:            baseURL,
		publishLinkCreated: publishLinkCreated,
		publishLinkVisited: publishLinkVisited,
		logger:             logger,
	}
}

func (h *LinkHandler) CreateShortLink(ctx context.Context, req *CreateShortLinkRequest) (*CreateShortLinkResponse, error) {
	link, err := h.service.Create(ctx, shortener.CreateParams{
		URL:       req.Body.URL,
		Alias:     req.Body.Alias,
		ExpiresAt: req.Body.ExpiresAt,
		Strategy:  shortener.StrategyName(req.Body.Strategy),
	})
	if err != nil {
		return nil, mapCreateError(err)
	}

	strategy := string(req.Body.Strategy)
	if link.CustomAlias {
		strategy = "alias"
	} else if strategy == "" {
		strategy = string(StrategyRandom)
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkCreatedEvent{
		Code:        string(link.Code),
		TargetURL:   link.TargetURL,
		URLHash:     string(link.URLHash),
		Strategy:    strategy,
		CustomAlias: link.CustomAlias,
		CreatedAt:   link.CreatedAt,
		ExpiresAt:   link.ExpiresAt,
		RequestID:   meta.RequestID,
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
	}

	if err := h.publishLinkCreated(event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	shortURL := fmt.Sprintf("%s/%s", h.baseURL, link.Code)

	resp := &CreateShortLinkResponse{}
	resp.Headers.Location = shortURL
	resp.Body.Code = string(link.Code)
	resp.Body.ShortURL = shortURL

	return resp, nil
}

func (h *LinkHandler) Resolve(ctx context.Context, req *ResolveRequest) (*ResolveResponse, error) {
	res, err := h.service.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to resolve code")
	}

	resp := &ResolveResponse{}
	resp.Body.Exists = res.Exists
	resp.Body.Expired = res.Expired
	resp.Body.LongURL = res.TargetURL

	return resp, nil
}

func (h *LinkHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	link, err := h.service.LookupActive(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		return nil, huma.Error500InternalServerError("failed to look up code")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkVisitedEvent{
		Code:      req.Code,
		VisitedAt: time.Now().UTC(),
		RequestID: meta.RequestID,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
	}

	if err = h.publishLinkVisited(event); err != nil {
		h.logger.Error("failed to publish link visited event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	// 302 keeps clients re-checking the mapping instead of caching it forever.
	resp := &RedirectResponse{
		Status: http.StatusFound,
	}
	resp.Headers.Location = link.TargetURL

	return resp, nil
}

func mapCreateError(err error) error {
	switch {
	case errors.Is(err, shortener.ErrInvalidURL):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, shortener.ErrInvalidAlias):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, shortener.ErrUnknownStrategy):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, shortener.ErrAliasTaken):
		return huma.Error409Conflict("alias already taken")
	case errors.Is(err, shortener.ErrCodeExhausted):
		return huma.Error503ServiceUnavailable("could not generate a unique short code; try again")
	default:
		return huma.Error500InternalServerError("failed to save link")
	}
}
