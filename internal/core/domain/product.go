package domain

import "time"

// Product is a catalog item. Price is expressed in whole currency units.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Composition string    `json:"composition,omitempty"`
	Image       string    `json:"image"`
	Stock       int       `json:"stock"`
	Featured    bool      `json:"featured"`
	IsNew       bool      `json:"is_new"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InStock reports whether at least one unit can be added to a cart.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Category groups products under a machine key (Name) and a display label.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryLabel returns the display label of the category whose key matches.
// Products are linked to categories by key only, so an unknown key degrades
// to the raw key rather than an error.
func CategoryLabel(categories []Category, key string) string {
	for _, c := range categories {
		if c.Name == key && c.Label != "" {
			return c.Label
		}
	}
	return key
}
