package services

import (
	"context"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"librero/internal/database"
	"librero/internal/logging"
	"librero/internal/metrics"
	"librero/internal/models"
)

// DefaultLimit is the number of works loaded when callers have no preference.
const DefaultLimit = 10

// CatalogRepository is the persistent side of the catalog store.
// *database.DB implements it.
type CatalogRepository interface {
	EnsureSchema(ctx context.Context) error
	SeedIfEmpty(ctx context.Context, works []models.Work) (int, error)
	ListBooks(ctx context.Context, limit int) ([]database.BookRow, error)
}

// CatalogOptions tunes access to the repository.
type CatalogOptions struct {
	// Timeout bounds one complete load (schema, seed and query).
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// DefaultCatalogOptions returns the options used when none are configured.
func DefaultCatalogOptions() CatalogOptions {
	return CatalogOptions{
		Timeout:          2 * time.Second,
		FailureThreshold: 3,
		OpenTimeout:      30 * time.Second,
	}
}

// CatalogService produces the current catalog. Store failures never reach
// the caller: they are logged and answered with the built-in catalog.
type CatalogService struct {
	repo    CatalogRepository
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[[]models.Work]
}

// NewCatalogService returns a store backed by repo. A nil repo serves the
// built-in catalog only.
func NewCatalogService(repo CatalogRepository, opts CatalogOptions) *CatalogService {
	defaults := DefaultCatalogOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = defaults.FailureThreshold
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = defaults.OpenTimeout
	}

	log := logging.WithComponent("catalog")
	settings := gobreaker.Settings{
		Name:    "catalog-store",
		Timeout: opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Catalog store breaker changed state")
		},
	}

	return &CatalogService{
		repo:    repo,
		timeout: opts.Timeout,
		breaker: gobreaker.NewCircuitBreaker[[]models.Work](settings),
	}
}

// Source names where the catalog comes from when the store is healthy.
func (s *CatalogService) Source() string {
	if s.repo == nil {
		return "memory"
	}
	return "sqlite"
}

// Load returns up to limit works. A non-positive limit yields an empty
// catalog without touching the store. Cancelling ctx does not abort a store
// load: it is bounded by the configured timeout only, so a caller going away
// is never counted against the breaker.
func (s *CatalogService) Load(ctx context.Context, limit int) []models.Work {
	if limit <= 0 {
		return []models.Work{}
	}
	start := time.Now()

	if s.repo == nil {
		metrics.RecordCatalogLoad(metrics.SourceMemory, time.Since(start))
		return models.DefaultCatalogN(limit)
	}

	works, err := s.breaker.Execute(func() ([]models.Work, error) {
		return s.loadFromStore(ctx, limit)
	})
	if err != nil || len(works) == 0 {
		event := logging.Ctx(ctx).Warn().Int("limit", limit).Str("breaker", s.breaker.State().String())
		if err != nil {
			event = event.Err(err)
		}
		event.Msg("Using fallback book list")
		metrics.RecordCatalogLoad(metrics.SourceFallback, time.Since(start))
		return models.DefaultCatalogN(limit)
	}

	metrics.RecordCatalogLoad(metrics.SourceStore, time.Since(start))
	return works
}

// loadFromStore is the single region in which store failures may occur.
func (s *CatalogService) loadFromStore(ctx context.Context, limit int) (works []models.Work, err error) {
	defer func() {
		if r := recover(); r != nil {
			works, err = nil, fmt.Errorf("catalog store panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	seeded, err := s.repo.SeedIfEmpty(ctx, models.DefaultCatalog())
	if err != nil {
		return nil, err
	}
	if seeded > 0 {
		logging.Ctx(ctx).Info().Int("rows", seeded).Msg("Seeded empty books table with default catalog")
	}

	// Case-insensitive duplicates are dropped after the query, so fetch more
	// rows until limit distinct titles are found or the table runs out.
	fetch := limit
	for {
		rows, err := s.repo.ListBooks(ctx, fetch)
		if err != nil {
			return nil, err
		}

		works = make([]models.Work, 0, len(rows))
		for _, r := range rows {
			works = append(works, r.Work())
		}
		works = models.Dedupe(works)
		if len(works) >= limit {
			return works[:limit], nil
		}
		if len(rows) < fetch {
			return works, nil
		}
		fetch *= 2
	}
}
