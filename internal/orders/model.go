package orders

import "time"

// Order is a customer order header. TTLQuantity and TTLAmount are always the
// sums over the attached items; they are recomputed on every create and edit
// and never stored independently of the items that produced them.
type Order struct {
	ID              int64       `json:"id"`
	Date            time.Time   `json:"date"`
	OrderNo         string      `json:"order_no"`
	CustomerID      int64       `json:"customer_id"`
	TTLQuantity     int         `json:"ttl_quantity"`
	TTLAmount       float64     `json:"ttl_amount"`
	Discount        float64     `json:"discount"`
	SubTotal        float64     `json:"sub_total"`
	DeliveryAddress string      `json:"delivery_address"`
	DeliveryCharges float64     `json:"delivery_charges"`
	PaymentTypeID   int64       `json:"payment_type_id"`
	PaidAmount      float64     `json:"paid_amount"`
	Measurement     string      `json:"measurement,omitempty"`
	IsDelivered     bool        `json:"is_delivered"`
	DeliveryDate    time.Time   `json:"delivery_date"`
	BalanceDue      float64     `json:"balance_due"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Items           []OrderItem `json:"items,omitempty"`
}

// RefreshBalanceDue recomputes what remains unpaid after the override-able
// paid amount. Called after every scan so read payloads always carry it.
func (o *Order) RefreshBalanceDue() {
	o.BalanceDue = o.TTLAmount + o.DeliveryCharges - o.Discount - o.PaidAmount
}

// OrderItem is one line of an order. It has no identity outside its parent
// and is cascade-deleted with it.
type OrderItem struct {
	ID                int64   `json:"id"`
	OrderID           int64   `json:"order_id"`
	StockCategoryID   int64   `json:"stock_category_id"`
	StockCategoryName string  `json:"stock_category_name,omitempty"`
	Quantity          int     `json:"quantity"`
	UnitPrice         float64 `json:"unit_price"`
	Extra             float64 `json:"extra"`
	Description       string  `json:"description,omitempty"`
	Amount            float64 `json:"amount"`
}

// OrderWithDetails is the denormalized listing row (v_orders projection).
type OrderWithDetails struct {
	Order
	CustomerSerialNo    string `json:"customer_serial_no"`
	CustomerName        string `json:"customer_name"`
	CustomerPhone       string `json:"customer_phone"`
	CustomerCity        string `json:"customer_city"`
	CustomerStateRegion string `json:"customer_state_region"`
	CustomerCountry     string `json:"customer_country"`
	PaymentTypeName     string `json:"payment_type_name"`
}
