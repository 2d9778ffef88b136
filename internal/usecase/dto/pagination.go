package dto

type Pagination struct {
	CurrentPage  int
	TotalPages   int
	TotalItems   int64
	ItemsPerPage int
}

// NewPagination describes one page of total items. A zero limit means the
// whole result set was returned as a single page.
func NewPagination(page, limit int, total int64) Pagination {
	if limit <= 0 {
		return Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: total, ItemsPerPage: int(total)}
	}
	if page < 1 {
		page = 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{CurrentPage: page, TotalPages: pages, TotalItems: total, ItemsPerPage: limit}
}
