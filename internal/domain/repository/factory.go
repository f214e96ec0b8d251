package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Carts() CartRepository
	Catalog() CatalogRepository
}
