package models

// Product represents a seller's catalog item
type Product struct {
	ID       string  `json:"_id"`
	SellerID string  `json:"sellerId"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug,omitempty"`
	Brand    string  `json:"brand,omitempty"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
	Price    float64 `json:"price"`
	Discount int     `json:"discount"`
	Stock    int     `json:"stock"`
}

// ProductPage is the response body of a catalog query
type ProductPage struct {
	Products     []Product `json:"products"`
	TotalProduct int       `json:"totalProduct"`
	ParPage      int       `json:"parPage"`
}
