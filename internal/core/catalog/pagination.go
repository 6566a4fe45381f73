package catalog

// pageDelta is how many pages are shown on each side of the current one.
const pageDelta = 2

// Page is one slice of a larger collection.
type Page[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
}

// Paginate slices items into the requested 1-based page. The page number is
// clamped into [1, TotalPages] and TotalPages is never below 1. A page size
// below 1 is replaced by DefaultPageSize.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{
		Items:      out,
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}
}

// PageItem is one entry of the pagination control: a page number or a gap.
type PageItem struct {
	Number   int  `json:"number,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PageControls returns the compact page sequence for a pager: the first
// page, the last page, up to pageDelta pages around current, and a single
// ellipsis in place of each gap. It returns nil when there is nothing to
// paginate.
func PageControls(current, totalPages int) []PageItem {
	if totalPages <= 1 {
		return nil
	}

	items := []PageItem{{Number: 1}}
	if current-pageDelta > 2 {
		items = append(items, PageItem{Ellipsis: true})
	}
	for i := max(2, current-pageDelta); i <= min(totalPages-1, current+pageDelta); i++ {
		items = append(items, PageItem{Number: i})
	}
	if current+pageDelta < totalPages-1 {
		items = append(items, PageItem{Ellipsis: true})
	}
	items = append(items, PageItem{Number: totalPages})
	return items
}

// ShownRange returns the 1-based positions of the first and last element on
// page, as in "showing 13 to 24 of 30". Both are 0 for an empty collection.
func ShownRange(page, pageSize, total int) (from, to int) {
	if total == 0 || pageSize < 1 {
		return 0, 0
	}
	from = min((page-1)*pageSize+1, total)
	to = min(page*pageSize, total)
	return from, to
}
