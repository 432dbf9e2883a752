package paymenttypes

// PaymentType is a named payment method referenced by orders.
type PaymentType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
