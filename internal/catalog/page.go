package catalog

const (
	DefaultPerPage = 10
	MaxPerPage     = 50
)

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices items into 1-based pages. Out of range pages come back
// empty with the totals still filled in.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	out := Page[T]{
		Items:      []T{},
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	}

	if page > out.TotalPages {
		return out
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}
	out.Items = items[start:end]
	return out
}
