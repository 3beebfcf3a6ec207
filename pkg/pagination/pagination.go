package pagination

import "strconv"

// DefaultPageSize matches the panel tables: five rows per page.
const DefaultPageSize = 5

// Meta describes one page of an in-memory collection.
type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// ParsePage interprets a query-string page value; anything unusable becomes
// page one.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// PageCount returns ceil(total/size).
func PageCount(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate slices one page out of the already-fetched collection: page p
// holds items [size*(p-1), size*p). Pages past the end come back empty.
func Paginate[T any](items []T, page, size int) ([]T, Meta) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	meta := Meta{
		Page:       page,
		PageSize:   size,
		TotalItems: len(items),
		TotalPages: PageCount(len(items), size),
	}

	start := (page - 1) * size
	if start >= len(items) {
		return []T{}, meta
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], meta
}
