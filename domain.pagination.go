package main

import "math"

const (
	// DefaultPageLimit is applied whenever the client did not
	// supply a usable limit.
	DefaultPageLimit int64 = 50
	MaxPageLimit     int64 = 100
)

// PageRequest carries the client supplied window over a result set.
type PageRequest struct {
	Limit int64
	Skip  int64
}

// Normalize sanitizes the window: limits outside (0, MaxPageLimit]
// fall back to the default and negative skips to zero.
func (p PageRequest) Normalize() PageRequest {
	if p.Limit <= 0 || p.Limit > MaxPageLimit {
		p.Limit = DefaultPageLimit
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
	return p
}

// Pagination is the metadata block shipped alongside paginated listings.
type Pagination struct {
	Limit      int64 `json:"limit"`
	Skip       int64 `json:"skip"`
	Count      int64 `json:"count"`
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPagination derives the metadata block from a normalized window,
// the number of records returned and the total of matching records.
func NewPagination(p PageRequest, count, total int64) Pagination {
	return Pagination{
		Limit:      p.Limit,
		Skip:       p.Skip,
		Count:      count,
		Total:      total,
		Page:       p.Skip/p.Limit + 1,
		TotalPages: int64(math.Ceil(float64(total) / float64(p.Limit))),
		HasNext:    p.Skip+count < total,
		HasPrev:    p.Skip > 0,
	}
}

// percentOf returns part over total as a percentage rounded to two
// decimals, and 0 when the total is zero.
func percentOf(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}
