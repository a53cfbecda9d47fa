package domain

// Stock is the remaining inventory for a product at the time of query.
// It is not adjusted for quantities already reserved in a cart.
type Stock struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}
