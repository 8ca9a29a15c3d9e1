package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"librero/internal/logging"
	"librero/internal/metrics"
	"librero/internal/models"
	"librero/internal/services"
)

const (
	serviceName     = "librero-recommender"
	requestTimeout  = 10 * time.Second
	maxRequestBytes = 1 << 20
	maxListLimit    = 100
)

var validate = validator.New()

// Catalog supplies the works a request operates on.
type Catalog interface {
	Load(ctx context.Context, limit int) []models.Work
}

// Options sizes the catalog snapshots taken by the handlers.
type Options struct {
	// CatalogLimit is the catalog size used for recommendations.
	CatalogLimit int
	// ListLimit is the default page size of /api/books.
	ListLimit int
}

// Handler serves the recommendation API.
type Handler struct {
	catalog Catalog
	engine  *services.Engine
	opts    Options
}

// NewHandler wires the handlers to a catalog and an engine.
func NewHandler(catalog Catalog, engine *services.Engine, opts Options) *Handler {
	if opts.CatalogLimit <= 0 {
		opts.CatalogLimit = services.DefaultLimit
	}
	if opts.ListLimit <= 0 {
		opts.ListLimit = 5
	}
	return &Handler{catalog: catalog, engine: engine, opts: opts}
}

// RecommendRequest is the body of POST /api/recommend.
type RecommendRequest struct {
	BooksRead []string `json:"books_read" validate:"max=100,dive,required,max=500"`
}

// RecommendResponse is returned by POST /api/recommend.
type RecommendResponse struct {
	Recommendation string   `json:"recommendation"`
	Message        string   `json:"message"`
	TotalBooks     int      `json:"total_books"`
	UnknownTitles  []string `json:"unknown_titles,omitempty"`
}

// BookView is one entry of GET /api/books.
type BookView struct {
	Title   string `json:"title"`
	Authors string `json:"authors"`
	Year    int    `json:"year"`
}

// BooksResponse is returned by GET /api/books.
type BooksResponse struct {
	Books []BookView `json:"books"`
}

// Health reports liveness. It does not touch the catalog store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}

// Recommend handles POST /api/recommend.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req RecommendRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
			return
		}
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	catalog := h.catalog.Load(ctx, h.opts.CatalogLimit)
	rec := h.engine.Recommend(catalog, req.BooksRead)
	metrics.RecordRecommendation(rec.Outcome.String())

	resp := RecommendResponse{
		Recommendation: services.RecommendationTitle(rec),
		Message:        services.FormatMessage(rec),
		TotalBooks:     len(catalog),
	}

	log := logging.Ctx(ctx)
	switch rec.Outcome {
	case services.OutcomeRejected:
		resp.UnknownTitles = rec.Unknown
		log.Info().Strs("unknown_titles", rec.Unknown).Msg("Rejected read list")
		respondJSON(w, http.StatusBadRequest, resp)
		return
	case services.OutcomeExhausted:
		log.Info().Int("books_read", len(req.BooksRead)).Msg("Catalog exhausted")
	default:
		log.Info().Str("title", rec.Work.Title).Int("remaining", rec.Remaining).Msg("Recommendation served")
	}
	respondJSON(w, http.StatusOK, resp)
}

// ListBooks handles GET /api/books?limit=N.
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	limit := h.opts.ListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxListLimit {
			respondError(w, http.StatusBadRequest, "limit must be an integer between 0 and "+strconv.Itoa(maxListLimit))
			return
		}
		limit = n
	}

	works := h.catalog.Load(ctx, limit)
	books := make([]BookView, 0, len(works))
	for _, work := range works {
		books = append(books, BookView{Title: work.Title, Authors: work.Authors, Year: work.Year})
	}
	respondJSON(w, http.StatusOK, BooksResponse{Books: books})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, "books_read entries must not be empty")
		case "max":
			if fe.Field() == "BooksRead" {
				msgs = append(msgs, "books_read allows at most "+fe.Param()+" entries")
			} else {
				msgs = append(msgs, "books_read entries must be at most "+fe.Param()+" characters")
			}
		default:
			msgs = append(msgs, fe.Field()+" failed "+fe.Tag())
		}
	}
	return strings.Join(msgs, "; ")
}
