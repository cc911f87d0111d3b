package kernel

// PaginationOptions is the normalized page request handed to repositories.
// Callers are expected to clamp Page and PageSize before building one.
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func (p PaginationOptions) Offset() int { return (p.Page - 1) * p.PageSize }

// Page describes the position of a result slice within the full set.
type Page struct {
	Number  int  `json:"number"`
	Size    int  `json:"size"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasMore bool `json:"has_more"`
}

// Paginated wraps one page of items with its position metadata.
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}
