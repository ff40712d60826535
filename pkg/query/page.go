package query

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// PageRequest identifies a bounded slice of a result set. Page is zero-based.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the request to sane bounds: negative pages become zero,
// non-positive sizes fall back to the default, oversized requests are capped.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	return p
}

// Offset returns the row offset of the page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page carries one slice of results plus the store-reported total count.
type Page[T any] struct {
	Items      []T
	PageNumber int
	Size       int
	TotalCount int64
}
