package request

type PurchaseItemRequest struct {
	PurchaseID      int     `json:"purchase_id"`
	ProductID       int     `json:"product_id"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}
