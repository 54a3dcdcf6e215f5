package model

// Setup is a named, user-owned collection of products. Products are shared
// references; deleting a setup never touches the catalog.
type Setup struct {
	ID       uint64    `json:"id"`
	Name     string    `json:"name"`
	UserID   uint64    `json:"userId"`
	Products []Product `json:"products"`
}
