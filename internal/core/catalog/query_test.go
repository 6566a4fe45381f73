package catalog

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/mgluxury/boutique/internal/core/domain"
)

func makeProducts(n int) []domain.Product {
	categories := []string{"huile", "parfum", "thiouraye", "poudre-riz"}
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = domain.Product{
			ID:       fmt.Sprintf("p%02d", i),
			Name:     fmt.Sprintf("Produit %02d", i),
			Price:    int64(1000 * ((i % 5) + 1)),
			Category: categories[i%len(categories)],
			IsNew:    i%3 == 0,
			Stock:    5,
		}
	}
	return out
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestRun_PagesCoverEveryProductOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		products := makeProducts(rng.Intn(60))
		spec := NewQuerySpec()
		spec.PageSize = rng.Intn(15) + 1
		spec.Sort = []SortMode{SortDefault, SortPriceAsc, SortPriceDesc, SortNameAsc}[rng.Intn(4)]
		if rng.Intn(2) == 0 {
			spec.Category = "huile"
		}
		spec.NewOnly = rng.Intn(3) == 0

		first := Run(products, spec)
		seen := make(map[string]int)
		sum := 0
		for page := 1; page <= first.TotalPages; page++ {
			spec.Page = page
			res := Run(products, spec)
			sum += len(res.Items)
			for _, p := range res.Items {
				seen[p.ID]++
			}
		}

		require.Equal(t, first.TotalCount, sum, "trial %d", trial)
		for id, n := range seen {
			require.Equal(t, 1, n, "product %s seen %d times", id, n)
		}
	}
}

func TestRun_EmptyCollection(t *testing.T) {
	res := Run(nil, NewQuerySpec())
	assert.Equal(t, 0, res.TotalCount)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.Page)
	assert.Empty(t, res.Items)
}

func TestRun_TwentyFiveProductsPageThree(t *testing.T) {
	spec := NewQuerySpec()
	spec.Page = 3

	res := Run(makeProducts(25), spec)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 25, res.TotalCount)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "p24", res.Items[0].ID)
}

func TestRun_PageClamped(t *testing.T) {
	products := makeProducts(25)
	spec := NewQuerySpec()

	spec.Page = 99
	assert.Equal(t, 3, Run(products, spec).Page)

	spec.Page = -2
	res := Run(products, spec)
	assert.Equal(t, 1, res.Page)
	assert.Len(t, res.Items, 12)
}

func TestRun_CategoryKeepsOriginalOrder(t *testing.T) {
	products := makeProducts(20)
	spec := NewQuerySpec()
	spec.Category = "huile"
	spec.PageSize = 100

	res := Run(products, spec)
	var want []string
	for _, p := range products {
		if p.Category == "huile" {
			want = append(want, p.ID)
		}
	}
	assert.Equal(t, want, ids(res.Items))
	for _, p := range res.Items {
		assert.Equal(t, "huile", p.Category)
	}
}

func TestRun_PriceRangeInclusive(t *testing.T) {
	spec := NewQuerySpec()
	spec.Price = PriceRange{Min: 2000, Max: 3000}
	spec.PageSize = 100

	res := Run(makeProducts(20), spec)
	require.NotEmpty(t, res.Items)
	for _, p := range res.Items {
		assert.True(t, p.Price >= 2000 && p.Price <= 3000, "price %d", p.Price)
	}
	assert.Equal(t, 8, res.TotalCount)
}

func TestRun_ZeroMaxPriceKeepsOnlyFreeProducts(t *testing.T) {
	products := []domain.Product{{ID: "free", Price: 0}, {ID: "paid", Price: 5000}}
	spec := NewQuerySpec()
	spec.Price.Max = 0

	res := Run(products, spec)
	assert.Equal(t, 1, res.TotalCount)
	assert.Equal(t, []string{"free"}, ids(res.Items))

	spec.Price = PriceRange{}
	assert.Equal(t, 1, Run(products, spec).TotalCount, "the zero range is a real bound")
}

func TestRun_NewOnly(t *testing.T) {
	spec := NewQuerySpec()
	spec.NewOnly = true
	spec.PageSize = 100

	for _, p := range Run(makeProducts(20), spec).Items {
		assert.True(t, p.IsNew)
	}
}

func TestSort_PriceAscendingStable(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Price: 3000}, {ID: "2", Price: 1000}, {ID: "3", Price: 3000},
		{ID: "4", Price: 1000}, {ID: "5", Price: 2000},
	}
	Sort(products, SortPriceAsc, language.Und)

	assert.Equal(t, []string{"2", "4", "5", "1", "3"}, ids(products))
	for i := 1; i < len(products); i++ {
		assert.LessOrEqual(t, products[i-1].Price, products[i].Price)
	}
}

func TestSort_PriceDescendingStable(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Price: 1000}, {ID: "2", Price: 3000}, {ID: "3", Price: 1000}, {ID: "4", Price: 3000},
	}
	Sort(products, SortPriceDesc, language.Und)
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(products))
}

func TestSort_NameUsesCollation(t *testing.T) {
	products := []domain.Product{
		{ID: "z", Name: "Zeste"},
		{ID: "e", Name: "Éclat de karité"},
		{ID: "a", Name: "Ambre"},
		{ID: "b", Name: "beurre de cacao"},
	}
	Sort(products, SortNameAsc, language.Und)

	// Byte order would put lowercase and accented names after "Zeste".
	assert.Equal(t, []string{"a", "b", "e", "z"}, ids(products))
}

func TestSort_DefaultUntouched(t *testing.T) {
	products := makeProducts(10)
	want := ids(products)
	Sort(products, SortDefault, language.Und)
	assert.Equal(t, want, ids(products))
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	products := makeProducts(10)
	want := ids(products)
	spec := NewQuerySpec()
	spec.Sort = SortPriceDesc
	Run(products, spec)
	assert.Equal(t, want, ids(products))
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSort("price-asc"))
	assert.Equal(t, SortPriceDesc, ParseSort("price_desc"))
	assert.Equal(t, SortNameAsc, ParseSort("name"))
	assert.Equal(t, SortDefault, ParseSort(""))
	assert.Equal(t, SortDefault, ParseSort("popularity"))
}
