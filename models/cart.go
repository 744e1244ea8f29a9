package models

// CartLine is a snapshot of a product taken when it was first added to the
// cart, plus the quantity. The price never follows later catalog edits.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is price × quantity in USD.
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}
