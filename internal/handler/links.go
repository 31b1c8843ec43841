package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"microsvc/internal/domain"
)

// LinkService defines the shortener operations the handlers need.
type LinkService interface {
	Shorten(ctx context.Context, url string) (*domain.ShortLink, error)
	Resolve(ctx context.Context, code string) (string, error)
	Stats(ctx context.Context, code string) (*domain.ShortLink, error)
}

// LinkHandler serves the URL shortener endpoints.
type LinkHandler struct {
	service LinkService
	baseURL string
}

// NewLinkHandler creates a LinkHandler. When baseURL is empty, short URLs
// are built from the Host header of the shorten request.
func NewLinkHandler(service LinkService, baseURL string) *LinkHandler {
	return &LinkHandler{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Home handles GET /.
func (h *LinkHandler) Home(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ServiceStatusResponse{
		Status:  "healthy",
		Service: "URL Shortener API",
	})
}

// Health handles GET /api/health.
func (h *LinkHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Message: "URL Shortener API is running",
	})
}

// Shorten handles POST /api/shorten.
func (h *LinkHandler) Shorten(w http.ResponseWriter, r *http.Request) {
	var req ShortenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validateURL(req.URL); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	link, err := h.service.Shorten(r.Context(), req.URL)
	if err != nil {
		writeInternal(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ShortenResponse{
		ShortCode: link.Code,
		ShortURL:  h.shortURL(r, link.Code),
	})
}

// Redirect handles GET /{code}.
func (h *LinkHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	url, err := h.service.Resolve(r.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, kindNotFound, "Short URL not found")
			return
		}
		writeInternal(w, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

// Stats handles GET /api/stats/{code}.
func (h *LinkHandler) Stats(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	link, err := h.service.Stats(r.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, kindNotFound, "Short URL not found")
			return
		}
		writeInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		URL:       link.URL,
		Clicks:    link.Clicks,
		CreatedAt: link.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (h *LinkHandler) shortURL(r *http.Request, code string) string {
	if h.baseURL != "" {
		return h.baseURL + "/" + code
	}
	return "http://" + r.Host + "/" + code
}
