package pagination

// Defaults and bounds for page-based listing endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a normalized page/limit pair. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps raw page/limit values into valid bounds. Zero or negative
// values fall back to the defaults; limit is capped at MaxLimit.
func Normalize(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset is the SQL OFFSET for the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total/limit), never below 1 even for an empty result.
func (p Params) TotalPages(total int) int {
	pages := (total + p.Limit - 1) / p.Limit
	if pages < 1 {
		return 1
	}
	return pages
}

// Page is a paginated result envelope. A page past the end carries an empty
// Items slice, not an error.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	PageNumber int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// NewPage assembles the envelope for one page of results.
func NewPage[T any](items []T, total int, params Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		PageNumber: params.Page,
		TotalPages: params.TotalPages(total),
	}
}
