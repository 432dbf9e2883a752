package orders

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// receiptTemplate renders a printable order receipt. Plain inline CSS so the
// page prints cleanly without any asset pipeline.
var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"addOne": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Receipt {{.OrderNo}}</title>
<style>
  body { font-family: sans-serif; max-width: 40rem; margin: 1rem auto; color: #222; }
  h1 { font-size: 1.3rem; border-bottom: 2px solid #222; padding-bottom: .3rem; }
  table { width: 100%; border-collapse: collapse; margin: .8rem 0; }
  th, td { border: 1px solid #999; padding: .3rem .5rem; text-align: left; }
  td.num, th.num { text-align: right; }
  .totals td { border: none; }
  .totals td.num { font-variant-numeric: tabular-nums; }
  .meta { margin: .2rem 0; }
</style>
</head>
<body>
<h1>Order Receipt</h1>
<p class="meta"><strong>Order No:</strong> {{.OrderNo}}</p>
<p class="meta"><strong>Date:</strong> {{.Date.Format "2006-01-02"}}</p>
<p class="meta"><strong>Customer:</strong> {{.CustomerName}} ({{.CustomerSerialNo}})</p>
<p class="meta"><strong>Phone:</strong> {{.CustomerPhone}}</p>
<p class="meta"><strong>Delivery Address:</strong> {{.DeliveryAddress}}</p>
<p class="meta"><strong>Payment Type:</strong> {{.PaymentTypeName}}</p>
{{if .Measurement}}<p class="meta"><strong>Measurement:</strong> {{.Measurement}}</p>{{end}}
<table>
<thead>
<tr><th>#</th><th>Item</th><th class="num">Qty</th><th class="num">Unit Price</th><th class="num">Extra</th><th>Description</th><th class="num">Amount</th></tr>
</thead>
<tbody>
{{range $i, $it := .Items}}
<tr>
  <td>{{addOne $i}}</td>
  <td>{{$it.StockCategoryName}}</td>
  <td class="num">{{$it.Quantity}}</td>
  <td class="num">{{money $it.UnitPrice}}</td>
  <td class="num">{{money $it.Extra}}</td>
  <td>{{$it.Description}}</td>
  <td class="num">{{money $it.Amount}}</td>
</tr>
{{end}}
</tbody>
</table>
<table class="totals">
<tr><td>Total Quantity</td><td class="num">{{.TTLQuantity}}</td></tr>
<tr><td>Total Amount</td><td class="num">{{money .TTLAmount}}</td></tr>
<tr><td>Discount</td><td class="num">{{money .Discount}}</td></tr>
<tr><td>Sub Total</td><td class="num">{{money .SubTotal}}</td></tr>
<tr><td>Delivery Charges</td><td class="num">{{money .DeliveryCharges}}</td></tr>
<tr><td>Paid Amount</td><td class="num">{{money .PaidAmount}}</td></tr>
<tr><td><strong>Balance Due</strong></td><td class="num"><strong>{{money .BalanceDue}}</strong></td></tr>
</table>
</body>
</html>
`))

// BuildReceipt renders the receipt for one denormalized order. Pure; no IO.
func BuildReceipt(o *OrderWithDetails) (string, error) {
	o.RefreshBalanceDue()
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, o); err != nil {
		return "", fmt.Errorf("orders: render receipt: %w", err)
	}
	return buf.String(), nil
}

// Receipt loads the order with customer and payment details and renders it.
func (s *Service) Receipt(ctx context.Context, id int64) (string, error) {
	if id <= 0 {
		return "", ErrNotFound
	}
	details, err := s.repo.GetDetails(ctx, id)
	if err != nil {
		return "", err
	}
	return BuildReceipt(details)
}
