package pagination

import (
	"fmt"
	"strings"
)

const (
	// DefaultSize is the standard page size when one is not provided.
	DefaultSize = 10
	// MaxSize caps how many rows any page query can request.
	MaxSize = 100
)

// Params holds offset pagination inputs from controllers or services.
// Page numbering starts at zero.
type Params struct {
	Page int
	Size int
	Sort Sort
}

// Sort is a validated column/direction pair.
type Sort struct {
	Column     string
	Descending bool
}

// OrderClause renders the sort as a SQL ORDER BY expression. Column comes
// from a whitelist, never from raw request input.
func (s Sort) OrderClause() string {
	dir := "ASC"
	if s.Descending {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", s.Column, dir)
}

// NormalizePage clamps negative page numbers to zero.
func NormalizePage(page int) int {
	if page < 0 {
		return 0
	}
	return page
}

// NormalizeSize enforces the configured default and maximum sizes.
func NormalizeSize(size int) int {
	if size <= 0 {
		return DefaultSize
	}
	if size > MaxSize {
		return MaxSize
	}
	return size
}

// ParseSort parses a "field,direction" expression against a whitelist of
// sortable fields mapped to their column names. An empty value falls back to
// the provided default field, ascending.
func ParseSort(value string, allowed map[string]string, defaultField string) (Sort, error) {
	field := defaultField
	descending := false

	raw := strings.TrimSpace(value)
	if raw != "" {
		parts := strings.SplitN(raw, ",", 2)
		field = strings.TrimSpace(parts[0])
		if len(parts) == 2 {
			switch strings.ToLower(strings.TrimSpace(parts[1])) {
			case "asc", "":
			case "desc":
				descending = true
			default:
				return Sort{}, fmt.Errorf("invalid sort direction %q", parts[1])
			}
		}
	}

	column, ok := allowed[field]
	if !ok {
		return Sort{}, fmt.Errorf("unsortable field %q", field)
	}
	return Sort{Column: column, Descending: descending}, nil
}

// Page is the paginated response envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage assembles the envelope, deriving the page count from the total.
func NewPage[T any](content []T, params Params, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	size := NormalizeSize(params.Size)
	pages := int(total / int64(size))
	if total%int64(size) != 0 {
		pages++
	}
	return &Page[T]{
		Content:       content,
		Page:          NormalizePage(params.Page),
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
