package model

// Category groups products in the catalog. Deleting a category cascades to
// the products it contains.
type Category struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// CategoryWithProducts is the shape returned by the public catalog
// endpoints: a category together with every product under it.
type CategoryWithProducts struct {
	ID       uint64    `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// Product is a single catalog entry. Price, photo and shop fields are
// filled in by synchronization against the external price-comparison site
// and stay null/empty until the first successful sync. Price is an integer
// count of minor currency units (grosze).
type Product struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	CategoryID uint64  `json:"categoryId"`
	CeneoID    string  `json:"ceneoId"`
	Price      *int64  `json:"price"`
	PhotoURL   *string `json:"photoUrl"`
	ShopURL    *string `json:"shopUrl"`
	ShopImage  *string `json:"shopImage"`
	IsPromoted bool    `json:"isPromoted"`
}
