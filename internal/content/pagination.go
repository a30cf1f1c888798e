package content

import "strconv"

// PageMeta describes one page of a filtered collection. Total always reflects
// the same filter as the accompanying data slice.
type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ParsePage interprets a raw page query value. Non-numeric or non-positive
// input falls back to the first page.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// NewPageMeta computes pagination metadata for a filtered total.
func NewPageMeta(page, perPage int, total int64) PageMeta {
	if page < 1 {
		page = 1
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return PageMeta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset returns the zero-based record offset of the page.
func (m PageMeta) Offset() int {
	return (m.Page - 1) * m.PerPage
}
