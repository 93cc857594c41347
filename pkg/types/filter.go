package types

// Filter represents query parameters for filtering and pagination.
type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"with_pagination"`
}

// Pagination carries the resolved limit/offset for a list query.
type Pagination struct {
	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
	Page   uint64 `json:"page"`
}
