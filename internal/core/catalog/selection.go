package catalog

import "github.com/mgluxury/boutique/internal/core/domain"

// SliderSize is the number of products shown in home page and related rows.
const SliderSize = 4

// Featured returns the first n featured products.
func Featured(products []domain.Product, n int) []domain.Product {
	return take(products, n, func(p domain.Product) bool { return p.Featured })
}

// Newest returns the first n products flagged as new.
func Newest(products []domain.Product, n int) []domain.Product {
	return take(products, n, func(p domain.Product) bool { return p.IsNew })
}

// Related returns up to n other products from the same category as p.
func Related(products []domain.Product, p domain.Product, n int) []domain.Product {
	return take(products, n, func(q domain.Product) bool {
		return q.Category == p.Category && q.ID != p.ID
	})
}

func take(products []domain.Product, n int, keep func(domain.Product) bool) []domain.Product {
	if n < 0 {
		n = 0
	}
	out := make([]domain.Product, 0, n)
	for _, p := range products {
		if len(out) == n {
			break
		}
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
