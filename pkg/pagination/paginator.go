package pagination

import (
	"context"
	"iter"

	"github.com/Sternrassler/gh-rest-client/pkg/client"
	"github.com/Sternrassler/gh-rest-client/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	pagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "github_pagination_pages_total",
		Help: "Total pages fetched by paginators",
	})

	itemsYielded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "github_pagination_items_total",
		Help: "Total items yielded by paginators",
	})
)

// FetchFunc retrieves one page. pageIndex is 0-based; batchSize is the
// requested page size.
type FetchFunc[T any] func(ctx context.Context, pageIndex, batchSize int) ([]T, error)

// Paginator is a lazily evaluated, restartable sequence of items spread over
// pages. It holds no iteration state; every All call starts at page 0.
type Paginator[T any] struct {
	batchSize int
	fetch     FetchFunc[T]
	logger    zerolog.Logger
}

// New creates a paginator. batchSize must be within 1..100; an invalid size is
// reported as *client.ConfigurationError before any fetch happens.
func New[T any](batchSize int, fetch FetchFunc[T]) (*Paginator[T], error) {
	if err := client.ValidatePerPage(batchSize); err != nil {
		return nil, err
	}
	if fetch == nil {
		return nil, &client.ConfigurationError{Field: "fetch", Reason: "must not be nil"}
	}

	return &Paginator[T]{
		batchSize: batchSize,
		fetch:     fetch,
		logger:    logging.NewLogger("pagination"),
	}, nil
}

// BatchSize returns the page size requested from the fetch function.
func (p *Paginator[T]) BatchSize() int {
	return p.batchSize
}

// All returns the item sequence. A fetch error is yielded once with the zero
// item and ends the sequence. Context cancellation is checked before every
// page fetch.
func (p *Paginator[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		for pageIndex := 0; ; pageIndex++ {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}

			page, err := p.fetch(ctx, pageIndex, p.batchSize)
			if err != nil {
				p.logger.Debug().Err(err).Int("page", pageIndex).Msg("Page fetch failed")
				yield(zero, err)
				return
			}
			pagesFetched.Inc()

			p.logger.Debug().
				Int("page", pageIndex).
				Int("items", len(page)).
				Int("batch_size", p.batchSize).
				Msg("Fetched page")

			for _, item := range page {
				itemsYielded.Inc()
				if !yield(item, nil) {
					return
				}
			}

			if len(page) < p.batchSize {
				return
			}
		}
	}
}

// Take returns up to n items, fetching no page beyond the one holding the
// n-th item. Take(ctx, 0) performs no fetch.
func (p *Paginator[T]) Take(ctx context.Context, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}

	out := make([]T, 0, min(n, p.batchSize))
	for item, err := range p.All(ctx) {
		if err != nil {
			return out, err
		}
		out = append(out, item)
		if len(out) == n {
			break
		}
	}
	return out, nil
}

// Collect drains the sequence. On error it returns the items gathered so far
// together with the error.
func (p *Paginator[T]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	for item, err := range p.All(ctx) {
		if err != nil {
			return out, err
		}
		out = append(out, item)
	}
	return out, nil
}

// List binds a paginator to a GitHub list endpoint returning a JSON array.
// opts are applied to every page request before page and per_page.
func List[T any](c *client.Client, segments []string, batchSize int, opts ...client.RequestOption) (*Paginator[T], error) {
	return New(batchSize, func(ctx context.Context, pageIndex, size int) ([]T, error) {
		return client.Get[[]T](ctx, c, segments, pageOptions(opts, pageIndex, size)...)
	})
}

// ListMapped binds a paginator to a list endpoint whose page is wrapped in an
// envelope P, such as {"total_count": n, "repositories": [...]}. mapper
// extracts the items of one page.
func ListMapped[P, T any](c *client.Client, segments []string, batchSize int, mapper func(P) []T, opts ...client.RequestOption) (*Paginator[T], error) {
	if mapper == nil {
		return nil, &client.ConfigurationError{Field: "mapper", Reason: "must not be nil"}
	}
	return New(batchSize, func(ctx context.Context, pageIndex, size int) ([]T, error) {
		envelope, err := client.Get[P](ctx, c, segments, pageOptions(opts, pageIndex, size)...)
		if err != nil {
			return nil, err
		}
		return mapper(envelope), nil
	})
}

// pageOptions appends the page parameters to a fresh copy of opts.
func pageOptions(opts []client.RequestOption, pageIndex, size int) []client.RequestOption {
	out := make([]client.RequestOption, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, client.WithPage(pageIndex, size))
}
