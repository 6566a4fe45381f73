// Package catalog implements the product query pipeline: category, price and
// novelty filters, a stable sort, and page slicing with pagination controls.
// Every function here is pure and total; bad input is clamped, never rejected.
package catalog

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mgluxury/boutique/internal/core/domain"
)

// DefaultPageSize matches the storefront and back office grids.
const DefaultPageSize = 12

// SortMode selects the ordering applied after filtering.
type SortMode string

const (
	SortDefault   SortMode = "default"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortNameAsc   SortMode = "name_asc"
)

// ParseSort accepts the storefront's select values and their snake_case forms.
// Unknown values fall back to SortDefault.
func ParseSort(s string) SortMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price-asc", "price_asc":
		return SortPriceAsc
	case "price-desc", "price_desc":
		return SortPriceDesc
	case "name", "name-asc", "name_asc":
		return SortNameAsc
	default:
		return SortDefault
	}
}

// PriceRange is an inclusive [Min, Max] bound on unit price. The zero value
// only admits free products; start from DefaultPriceRange for no bound.
type PriceRange struct {
	Min int64
	Max int64
}

// DefaultPriceRange is the widest possible range.
func DefaultPriceRange() PriceRange {
	return PriceRange{Min: 0, Max: math.MaxInt64}
}

// Contains reports whether price lies within the range.
func (r PriceRange) Contains(price int64) bool {
	return r.Min <= price && price <= r.Max
}

// QuerySpec describes one listing request.
type QuerySpec struct {
	Category string // exact key match; empty = all
	Price    PriceRange
	NewOnly  bool
	Sort     SortMode
	Page     int // 1-based
	PageSize int
	// Locale drives name collation. Zero value means French.
	Locale language.Tag
}

// NewQuerySpec returns a spec with the widest price range, default sort,
// first page and DefaultPageSize.
func NewQuerySpec() QuerySpec {
	return QuerySpec{
		Price:    DefaultPriceRange(),
		Sort:     SortDefault,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// Result is the visible page plus what the caller needs for pagination.
type Result struct {
	Items      []domain.Product
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
}

// Run filters, sorts and paginates products. The input slice is not modified.
func Run(products []domain.Product, spec QuerySpec) Result {
	filtered := Filter(products, spec)
	Sort(filtered, spec.Sort, spec.Locale)

	page := Paginate(filtered, spec.Page, spec.PageSize)
	return Result{
		Items:      page.Items,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}
}

// Filter applies the category, price and new-only filters, keeping the
// original relative order.
func Filter(products []domain.Product, spec QuerySpec) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if spec.Category != "" && p.Category != spec.Category {
			continue
		}
		if !spec.Price.Contains(p.Price) {
			continue
		}
		if spec.NewOnly && !p.IsNew {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort orders products in place. All modes are stable so ties keep their
// original order; SortDefault leaves the slice untouched.
func Sort(products []domain.Product, mode SortMode, locale language.Tag) {
	switch mode {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case SortNameAsc:
		if locale == language.Und {
			locale = language.French
		}
		col := collate.New(locale)
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	}
}
