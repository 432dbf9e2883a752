package customers

import "time"

// Customer is a buyer record. The (serial_no, name) pair is the business
// identity and must stay unique, case-insensitively, among live rows.
type Customer struct {
	ID              int64     `json:"id"`
	SerialNo        string    `json:"serial_no"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	HomeAddress     string    `json:"home_address"`
	DeliveryAddress string    `json:"delivery_address"`
	City            string    `json:"city"`
	StateRegion     string    `json:"state_region"`
	Country         string    `json:"country"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
