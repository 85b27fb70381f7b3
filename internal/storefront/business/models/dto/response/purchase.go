package response

type PurchaseResponse struct {
	ID          int     `json:"id"`
	CreatedAt   int64   `json:"created_at"`
	UserID      int     `json:"user_id"`
	AddressID   int     `json:"address_id"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
}

type PurchaseItemResponse struct {
	ID              int     `json:"id"`
	CreatedAt       int64   `json:"created_at"`
	PurchaseID      int     `json:"purchase_id"`
	ProductID       int     `json:"product_id"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}
