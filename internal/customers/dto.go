package customers

// CustomerInput carries the writable customer fields for create and update.
type CustomerInput struct {
	SerialNo        string `json:"serial_no" validate:"required,max=20"`
	Name            string `json:"name" validate:"required,max=100"`
	Phone           string `json:"phone" validate:"max=30"`
	HomeAddress     string `json:"home_address" validate:"max=200"`
	DeliveryAddress string `json:"delivery_address" validate:"max=200"`
	City            string `json:"city" validate:"max=100"`
	StateRegion     string `json:"state_region" validate:"max=100"`
	Country         string `json:"country" validate:"max=100"`
}
