package store

// ListingFilter holds the optional constraints of a listing query. Zero
// values mean the dimension is unconstrained; all set dimensions are
// AND-combined. Only active listings are ever eligible.
type ListingFilter struct {
	Search   string
	Category string
	City     string
	Area     string
}

// MapFilter extends ListingFilter with an optional price range. A nil bound
// leaves that side open.
type MapFilter struct {
	ListingFilter
	MinPrice *float64
	MaxPrice *float64
}

func (f MapFilter) priceActive() bool {
	return f.MinPrice != nil || f.MaxPrice != nil
}

const (
	DefaultLimit = 12
	MaxLimit     = 50
)

// Pagination is a 1-indexed page request. Callers validate raw input; Clamp
// still defends against out-of-range values reaching query math.
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Clamp() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

type PageInfo struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPageInfo assumes p is already clamped.
func NewPageInfo(p Pagination, total int64) PageInfo {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return PageInfo{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}
