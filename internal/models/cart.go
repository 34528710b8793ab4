package models

// CartItem is one stored cart row: a customer, a product and a quantity
type CartItem struct {
	ID        string `json:"_id"`
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddToCartRequest is the body of POST /api/home/product/add-to-cart
type AddToCartRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantityRequest is the body of PUT /api/home/product/quantity/{cartId}
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartLine is a cart row joined with its product, as rendered to clients
type CartLine struct {
	ID       string  `json:"_id"`
	Quantity int     `json:"quantity"`
	Product  Product `json:"productInfo"`
}

// SellerCart groups the purchasable lines of one seller
type SellerCart struct {
	SellerID string     `json:"sellerId"`
	Price    float64    `json:"price"`
	Products []CartLine `json:"products"`
}

// CartSummary is the response body of GET /api/home/product/get-cart-product/{userId}
type CartSummary struct {
	StockProduct      []SellerCart `json:"stockProduct"`
	OutOfStockProduct []CartLine   `json:"outOfStockProduct"`
	BuyProductItem    int          `json:"buy_product_item"`
	CalculatePrice    float64      `json:"calculate_price"`
	CartProductCount  int          `json:"cart_product_count"`
	OutOfStockCount   int          `json:"out_of_stock_count"`
	ShippingFee       float64      `json:"shipping_fee"`
	Missing           []string     `json:"missing,omitempty"`
}
