package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ap-collections/backoffice/internal/customers"
)

// Service implements the order lifecycle. Order numbers and totals are
// derived here, never taken from the client.
type Service struct {
	repo      Repository
	customers customers.Repository
	validate  *validator.Validate
	now       func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository, customerRepo customers.Repository) *Service {
	return &Service{
		repo:      repo,
		customers: customerRepo,
		validate:  validator.New(),
		now:       time.Now,
	}
}

func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]OrderWithDetails, error) {
	req.SearchTerm = strings.TrimSpace(req.SearchTerm)
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create derives the order number as <order date>-<creation time>-<customer
// serial no>, computes line and header totals, and writes the header plus all
// items in one transaction.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (int64, error) {
	if len(req.Items) == 0 {
		return 0, ErrNoItems
	}
	if err := s.validate.Struct(req); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	customer, err := s.customers.Get(ctx, req.CustomerID)
	if err != nil {
		return 0, fmt.Errorf("%w: customer %d", ErrInvalid, req.CustomerID)
	}

	orderNo := req.Date.Format("20060102") + "-" + s.now().Format("150405") + "-" + customer.SerialNo
	exists, err := s.repo.OrderNoExists(ctx, orderNo, 0)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDuplicateNo
	}

	order, items := buildOrder(req.Date, orderNo, req.CustomerID, req.Discount,
		req.DeliveryAddress, req.DeliveryCharges, req.PaymentTypeID, req.PaidAmount,
		req.Measurement, req.Items)
	if req.DueDate != nil {
		order.DeliveryDate = *req.DueDate
	} else {
		order.DeliveryDate = req.Date
	}

	var id int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		orderID, err := tx.Insert(ctx, order)
		if err != nil {
			return err
		}
		for _, it := range items {
			it.OrderID = orderID
			if _, err := tx.InsertItem(ctx, it); err != nil {
				return err
			}
		}
		id = orderID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update recomputes totals from the submitted item set and replaces the
// stored items wholesale. The order number is immutable after creation.
func (s *Service) Update(ctx context.Context, id int64, req UpdateOrderRequest) error {
	if len(req.Items) == 0 {
		return ErrNoItems
	}
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.customers.Get(ctx, req.CustomerID); err != nil {
		return fmt.Errorf("%w: customer %d", ErrInvalid, req.CustomerID)
	}

	order, items := buildOrder(req.Date, existing.OrderNo, req.CustomerID, req.Discount,
		req.DeliveryAddress, req.DeliveryCharges, req.PaymentTypeID, req.PaidAmount,
		req.Measurement, req.Items)

	return s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		if err := tx.Update(ctx, id, order); err != nil {
			return err
		}
		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		for _, it := range items {
			it.OrderID = id
			if _, err := tx.InsertItem(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an order and its items atomically.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
}

// buildOrder computes derived line and header amounts from raw input.
// A nil paidAmount records the order as fully paid up front.
func buildOrder(date time.Time, orderNo string, customerID int64, discount float64,
	deliveryAddress string, deliveryCharges float64, paymentTypeID int64, paidAmount *float64,
	measurement string, inputs []OrderItemInput) (Order, []OrderItem) {

	var (
		items       []OrderItem
		ttlQuantity int
		ttlAmount   float64
	)
	for _, in := range inputs {
		amount := float64(in.Quantity)*in.UnitPrice + in.Extra
		items = append(items, OrderItem{
			StockCategoryID: in.StockCategoryID,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			Extra:           in.Extra,
			Description:     strings.TrimSpace(in.Description),
			Amount:          amount,
		})
		ttlQuantity += in.Quantity
		ttlAmount += amount
	}

	paid := ttlAmount + deliveryCharges
	if paidAmount != nil {
		paid = *paidAmount
	}

	order := Order{
		Date:            date,
		OrderNo:         orderNo,
		CustomerID:      customerID,
		TTLQuantity:     ttlQuantity,
		TTLAmount:       ttlAmount,
		Discount:        discount,
		SubTotal:        ttlAmount - discount,
		DeliveryAddress: strings.TrimSpace(deliveryAddress),
		DeliveryCharges: deliveryCharges,
		PaymentTypeID:   paymentTypeID,
		PaidAmount:      paid,
		Measurement:     strings.TrimSpace(measurement),
	}
	order.RefreshBalanceDue()
	return order, items
}
