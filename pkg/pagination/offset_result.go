package pagination

// OffsetResult represents traditional offset-based pagination
type OffsetResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

// NewOffsetResult creates a new offset-based result
func NewOffsetResult[T any](items []T, total int64, page int, limit int) *OffsetResult[T] {
	if items == nil {
		items = []T{}
	}
	offset := (page - 1) * limit
	hasMore := int64(offset+limit) < total

	return &OffsetResult[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
		HasMore:    hasMore,
	}
}

// TotalPages is ceil(total/limit), 0 when limit is not positive.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
