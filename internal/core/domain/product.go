package domain

type Product struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// CartItem is a product plus the quantity of it currently held in the cart.
// Amount is always >= 1; an item reduced to zero is removed from the cart.
type CartItem struct {
	Product
	Amount int `json:"amount"`
}
