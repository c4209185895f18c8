package types

// BackendEnvelope wraps every commerce backend response.
type BackendEnvelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

// Page is the backend's paginated listing shape. PageNumber is 1-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

// Empty reports whether the page holds no rows.
func (p Page[T]) Empty() bool {
	return len(p.Content) == 0
}
