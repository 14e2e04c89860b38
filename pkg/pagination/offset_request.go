package pagination

import "fmt"

// OffsetRequest represents a page/limit pagination request
type OffsetRequest struct {
	Page  int `json:"page" query:"page" example:"1"`
	Limit int `json:"limit" query:"limit" example:"10"`
}

func NewOffsetRequest() OffsetRequest {
	return OffsetRequest{Page: DefaultPage, Limit: DefaultLimit}
}

// Validate rejects negative values and fills in defaults for unset ones.
// Limits above MaxLimit are clamped.
func (r *OffsetRequest) Validate() error {
	if r.Page < 0 {
		return fmt.Errorf("page must be at least 1")
	}
	if r.Limit < 0 {
		return fmt.Errorf("limit must be at least 1")
	}
	if r.Page == 0 {
		r.Page = DefaultPage
	}
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	return nil
}

func (r OffsetRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}
