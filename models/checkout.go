package models

// CheckoutItem is one cart line sent by the storefront.
type CheckoutItem struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1,max=1000"`
}

// CheckoutRequest carries the cart to be turned into an order message.
type CheckoutRequest struct {
	Items []CheckoutItem `json:"items" validate:"required,min=1,max=100,dive"`
}

// CheckoutLink is the messaging deep link that places the order.
type CheckoutLink struct {
	URL     string  `json:"url"`
	Message string  `json:"message"`
	Total   float64 `json:"total"`
}
