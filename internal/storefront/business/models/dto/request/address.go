package request

type AddressRequest struct {
	AddressLine1         string `json:"address_line_1"`
	ApartmentNumber      string `json:"apartment_number"`
	Region               string `json:"region"`
	Commune              string `json:"commune"`
	ShippingInstructions string `json:"shipping_instructions"`
	UserID               int    `json:"user_id"`
}
