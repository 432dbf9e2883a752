package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReceipt(t *testing.T) {
	details := &OrderWithDetails{
		Order: Order{
			ID:              1,
			Date:            time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			OrderNo:         "20240510-130405-C001",
			TTLQuantity:     3,
			TTLAmount:       3500,
			SubTotal:        3500,
			DeliveryAddress: "No. 12, Main Road",
			DeliveryCharges: 500,
			PaidAmount:      2700,
			Items: []OrderItem{
				{StockCategoryName: "Longyi", Quantity: 2, UnitPrice: 1000, Amount: 2000},
				{StockCategoryName: "Shirt", Quantity: 1, UnitPrice: 1500, Amount: 1500, Description: "fitted"},
			},
		},
		CustomerSerialNo: "C001",
		CustomerName:     "Daw Mya",
		CustomerPhone:    "09-777",
		PaymentTypeName:  "Cash",
	}

	html, err := BuildReceipt(details)
	require.NoError(t, err)

	assert.Contains(t, html, "20240510-130405-C001")
	assert.Contains(t, html, "Daw Mya")
	assert.Contains(t, html, "Longyi")
	assert.Contains(t, html, "fitted")
	assert.Contains(t, html, "Cash")
	// balance due = 3500 + 500 - 0 - 2700
	assert.Contains(t, html, "1300.00")
}

func TestBuildReceiptEscapesMarkup(t *testing.T) {
	details := &OrderWithDetails{
		Order: Order{
			Date:            time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			OrderNo:         "20240510-130405-C002",
			DeliveryAddress: "<script>alert(1)</script>",
		},
		CustomerName: "Ko Aung",
	}

	html, err := BuildReceipt(details)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}
