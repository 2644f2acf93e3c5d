package pagination

// MaxOffset bounds the offset a request may carry.
const MaxOffset = 1<<31 - 1

// PageRequest selects a window of a collection.
type PageRequest struct {
	Offset int
	Limit  int
}

// Normalize clamps the request to valid values based on the config.
// A zero or negative limit falls back to the default; limits above the
// maximum are capped.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Offset < 0 {
		r.Offset = 0
	}
	if r.Offset > MaxOffset {
		r.Offset = MaxOffset
	}
	if r.Limit < 1 {
		r.Limit = cfg.DefaultLimit
	}
	if r.Limit > cfg.MaxLimit {
		r.Limit = cfg.MaxLimit
	}
}

// PageResult holds one page of records along with the pre-pagination total.
type PageResult[T any] struct {
	Data   []T
	Total  int
	Offset int
	Limit  int
}

// Apply slices items according to the (normalized) request.
func Apply[T any](items []T, page PageRequest) PageResult[T] {
	total := len(items)

	start := min(page.Offset, total)
	end := min(start+page.Limit, total)

	data := make([]T, end-start)
	copy(data, items[start:end])

	return PageResult[T]{
		Data:   data,
		Total:  total,
		Offset: page.Offset,
		Limit:  page.Limit,
	}
}

// HasNext reports whether records remain after this page.
func (p PageResult[T]) HasNext() bool {
	return p.Offset < p.Total-p.Limit
}

// HasPrev reports whether records precede this page.
func (p PageResult[T]) HasPrev() bool {
	return p.Offset > 0
}

// LastOffset returns the offset of the final page.
func (p PageResult[T]) LastOffset() int {
	if p.Total == 0 || p.Limit < 1 {
		return 0
	}
	return ((p.Total - 1) / p.Limit) * p.Limit
}
