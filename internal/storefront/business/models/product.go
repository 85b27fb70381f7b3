package models

// Product is the local cache row for one catalog entry. The image fields
// hold plain URLs already resolved from the remote asset objects.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Image       string
	Image2      string
	Image3      string
}

// CartLine is one (product, quantity) pairing held locally before checkout.
// Name, price and image are snapshots taken when the line was added.
type CartLine struct {
	ProductID   string
	ProductName string
	Quantity    int
	Price       float64
	Image       string
}
