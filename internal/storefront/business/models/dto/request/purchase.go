package request

type PurchaseRequest struct {
	UserID      int     `json:"user_id"`
	AddressID   int     `json:"address_id"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
}

// StatusUpdateRequest is the single-field PATCH body for the
// administrative status transition.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}
