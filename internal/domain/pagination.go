package domain

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MaxPage      = 1_000_000
)

// Page is a validated page request.
type Page struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip. Pages past MaxPage or limits
// past MaxLimit are clamped so the product cannot overflow.
func (p Page) Offset() uint64 {
	page, limit := min(max(p.Page, 1), MaxPage), min(max(p.Limit, 0), MaxLimit)
	return uint64(page-1) * uint64(limit)
}

// PageInfo describes where a page sits in the full result set.
type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPageInfo computes page metadata for total matching rows.
func NewPageInfo(p Page, total int64) PageInfo {
	info := PageInfo{Page: p.Page, Limit: p.Limit, Total: total, HasPrev: p.Page > 1}
	if p.Limit > 0 {
		limit := int64(p.Limit)
		info.TotalPages = (total + limit - 1) / limit
		info.HasNext = int64(p.Page) < info.TotalPages
	}
	return info
}

// PageResult is one page of rows plus its metadata.
type PageResult[T any] struct {
	Items []T
	Info  PageInfo
}
