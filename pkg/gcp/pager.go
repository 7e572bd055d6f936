package gcp

import (
	"context"

	"google.golang.org/api/iterator"
)

// Filter reports whether an item should be yielded by an Iterator. Filters
// run client-side, after the page fetch, and compensate for list APIs whose
// filter language supports only a single predicate per request.
type Filter[T any] func(T) bool

// PageFetcher fetches one page of a listing. It receives the continuation
// token from the previous page (empty for the first page) and returns the
// page's items plus the token for the next page. An empty returned token
// means the final page.
type PageFetcher[T any] func(ctx context.Context, pageToken string) ([]T, string, error)

// Iterator walks a token-paginated listing lazily, one item at a time.
// Page N+1 is always requested with the token from page N. Iteration is not
// restartable: every Iterator issues fresh network calls.
//
// Next returns iterator.Done once the listing is exhausted, matching the
// convention of the Google API iterators.
type Iterator[T any] struct {
	ctx     context.Context
	fetch   PageFetcher[T]
	filters []Filter[T]

	buf     []T
	token   string
	started bool
	err     error
}

// NewIterator returns an Iterator over the pages produced by fetch, yielding
// only items that pass every filter.
func NewIterator[T any](ctx context.Context, fetch PageFetcher[T], filters ...Filter[T]) *Iterator[T] {
	return &Iterator[T]{ctx: ctx, fetch: fetch, filters: filters}
}

// Next returns the next item. It returns iterator.Done when the listing is
// exhausted, and any page-fetch failure aborts iteration immediately. After
// a non-nil return, all subsequent calls return the same error.
func (it *Iterator[T]) Next() (T, error) {
	var zero T
	if it.err != nil {
		return zero, it.err
	}
	for {
		for len(it.buf) > 0 {
			item := it.buf[0]
			it.buf = it.buf[1:]
			if it.keep(item) {
				return item, nil
			}
		}
		if it.started && it.token == "" {
			it.err = iterator.Done
			return zero, it.err
		}
		if err := it.ctx.Err(); err != nil {
			it.err = err
			return zero, it.err
		}
		items, next, err := it.fetch(it.ctx, it.token)
		if err != nil {
			it.err = err
			return zero, it.err
		}
		it.started = true
		it.token = next
		it.buf = items
	}
}

func (it *Iterator[T]) keep(item T) bool {
	for _, f := range it.filters {
		if !f(item) {
			return false
		}
	}
	return true
}

// All drains the iterator into a slice.
func (it *Iterator[T]) All() ([]T, error) {
	var out []T
	for {
		item, err := it.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
}
