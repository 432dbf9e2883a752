package orders

import "time"

// OrderItemInput carries one submitted line item. The line amount is always
// recomputed server side as quantity*unit_price + extra.
type OrderItemInput struct {
	StockCategoryID int64   `json:"stock_category_id" validate:"required,gt=0"`
	Quantity        int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice       float64 `json:"unit_price" validate:"gte=0"`
	Extra           float64 `json:"extra" validate:"gte=0"`
	Description     string  `json:"description" validate:"max=200"`
}

// CreateOrderRequest creates an order with its full item set atomically.
// PaidAmount may be omitted, in which case it defaults to
// ttl_amount + delivery_charges; an explicit value records a partial payment.
type CreateOrderRequest struct {
	Date            time.Time        `json:"date" validate:"required"`
	CustomerID      int64            `json:"customer_id" validate:"required,gt=0"`
	Discount        float64          `json:"discount" validate:"gte=0"`
	DeliveryAddress string           `json:"delivery_address" validate:"required,max=200"`
	DeliveryCharges float64          `json:"delivery_charges" validate:"gte=0"`
	PaymentTypeID   int64            `json:"payment_type_id" validate:"required,gt=0"`
	PaidAmount      *float64         `json:"paid_amount,omitempty" validate:"omitempty,gte=0"`
	Measurement     string           `json:"measurement" validate:"max=1000"`
	DueDate         *time.Time       `json:"due_date,omitempty"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderRequest edits an order. The submitted item set fully replaces
// the stored one; this is replace semantics, not a diff.
type UpdateOrderRequest struct {
	Date            time.Time        `json:"date" validate:"required"`
	CustomerID      int64            `json:"customer_id" validate:"required,gt=0"`
	Discount        float64          `json:"discount" validate:"gte=0"`
	DeliveryAddress string           `json:"delivery_address" validate:"required,max=200"`
	DeliveryCharges float64          `json:"delivery_charges" validate:"gte=0"`
	PaymentTypeID   int64            `json:"payment_type_id" validate:"required,gt=0"`
	PaidAmount      *float64         `json:"paid_amount,omitempty" validate:"omitempty,gte=0"`
	Measurement     string           `json:"measurement" validate:"max=1000"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// ListOrdersRequest filters the denormalized order listing.
type ListOrdersRequest struct {
	Date       *time.Time `json:"date,omitempty"`
	SearchTerm string     `json:"search_term,omitempty"`
}
