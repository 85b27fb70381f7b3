package response

type AddressResponse struct {
	ID                   int    `json:"id"`
	CreatedAt            int64  `json:"created_at"`
	AddressLine1         string `json:"address_line_1"`
	ApartmentNumber      string `json:"apartment_number"`
	Region               string `json:"region"`
	Commune              string `json:"commune"`
	ShippingInstructions string `json:"shipping_instructions"`
	UserID               int    `json:"user_id"`
}
