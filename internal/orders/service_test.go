package orders

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ap-collections/backoffice/internal/customers"
)

type memoryRepo struct {
	nextID         int64
	nextItemID     int64
	orders         map[int64]Order
	items          map[int64][]OrderItem
	failInsertItem error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, nextItemID: 1, orders: map[int64]Order{}, items: map[int64][]OrderItem{}}
}

// WithTx snapshots the maps and restores them when fn fails, mirroring a
// rolled-back transaction.
func (m *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	ordersCopy := make(map[int64]Order, len(m.orders))
	for id, o := range m.orders {
		ordersCopy[id] = o
	}
	itemsCopy := make(map[int64][]OrderItem, len(m.items))
	for id, its := range m.items {
		itemsCopy[id] = append([]OrderItem(nil), its...)
	}
	if err := fn(ctx, m); err != nil {
		m.orders = ordersCopy
		m.items = itemsCopy
		return err
	}
	return nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Items = m.items[id]
	return &o, nil
}

func (m *memoryRepo) GetDetails(_ context.Context, id int64) (*OrderWithDetails, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Items = m.items[id]
	return &OrderWithDetails{Order: o, CustomerName: "Daw Mya", CustomerSerialNo: "C001", PaymentTypeName: "Cash"}, nil
}

func (m *memoryRepo) GetItems(_ context.Context, orderID int64) ([]OrderItem, error) {
	return m.items[orderID], nil
}

func (m *memoryRepo) List(_ context.Context, _ ListOrdersRequest) ([]OrderWithDetails, error) {
	var out []OrderWithDetails
	for _, o := range m.orders {
		out = append(out, OrderWithDetails{Order: o})
	}
	return out, nil
}

func (m *memoryRepo) OrderNoExists(_ context.Context, orderNo string, excludeID int64) (bool, error) {
	for id, o := range m.orders {
		if o.OrderNo == orderNo && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) Insert(_ context.Context, o Order) (int64, error) {
	id := m.nextID
	m.nextID++
	o.ID = id
	m.orders[id] = o
	return id, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, o Order) error {
	stored, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.ID = id
	o.OrderNo = stored.OrderNo
	o.IsDelivered = stored.IsDelivered
	o.DeliveryDate = stored.DeliveryDate
	m.orders[id] = o
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *memoryRepo) InsertItem(_ context.Context, item OrderItem) (int64, error) {
	if m.failInsertItem != nil {
		return 0, m.failInsertItem
	}
	item.ID = m.nextItemID
	m.nextItemID++
	m.items[item.OrderID] = append(m.items[item.OrderID], item)
	return item.ID, nil
}

func (m *memoryRepo) DeleteItems(_ context.Context, orderID int64) error {
	delete(m.items, orderID)
	return nil
}

type memoryCustomers struct {
	byID map[int64]customers.Customer
}

func (m *memoryCustomers) List(context.Context, string) ([]customers.Customer, error) { return nil, nil }
func (m *memoryCustomers) Get(_ context.Context, id int64) (*customers.Customer, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, customers.ErrNotFound
	}
	return &c, nil
}
func (m *memoryCustomers) Exists(context.Context, string, string, int64) (bool, error) {
	return false, nil
}
func (m *memoryCustomers) Create(context.Context, customers.Customer) (int64, error) { return 0, nil }
func (m *memoryCustomers) Update(context.Context, int64, customers.Customer) error   { return nil }
func (m *memoryCustomers) Delete(context.Context, int64) error                       { return nil }

func newTestService(repo *memoryRepo) *Service {
	custs := &memoryCustomers{byID: map[int64]customers.Customer{
		7: {ID: 7, SerialNo: "C001", Name: "Daw Mya", Phone: "09-777"},
	}}
	return &Service{
		repo:      repo,
		customers: custs,
		validate:  validator.New(),
		now: func() time.Time {
			return time.Date(2024, 5, 10, 13, 4, 5, 0, time.UTC)
		},
	}
}

func validCreateRequest() CreateOrderRequest {
	return CreateOrderRequest{
		Date:            time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		CustomerID:      7,
		DeliveryAddress: "No. 12, Main Road",
		DeliveryCharges: 500,
		PaymentTypeID:   1,
		Items: []OrderItemInput{
			{StockCategoryID: 1, Quantity: 2, UnitPrice: 1000},
			{StockCategoryID: 2, Quantity: 1, UnitPrice: 1500},
		},
	}
}

func TestCreateComputesTotalsAndOrderNo(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	id, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	order, err := repo.Get(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "20240510-130405-C001", order.OrderNo)
	assert.Equal(t, 3, order.TTLQuantity)
	assert.Equal(t, 3500.0, order.TTLAmount)
	assert.Equal(t, 3500.0, order.SubTotal)
	assert.Equal(t, 4000.0, order.PaidAmount)
	assert.Equal(t, 0.0, order.BalanceDue)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2000.0, order.Items[0].Amount)
	assert.Equal(t, 1500.0, order.Items[1].Amount)
}

func TestCreateLineExtraAddsToAmount(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	req := validCreateRequest()
	req.Items = []OrderItemInput{{StockCategoryID: 1, Quantity: 2, UnitPrice: 1000, Extra: 250}}
	id, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	order, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2250.0, order.Items[0].Amount)
	assert.Equal(t, 2250.0, order.TTLAmount)
}

func TestCreatePaidAmountOverride(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	req := validCreateRequest()
	paid := 1000.0
	req.PaidAmount = &paid
	id, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	order, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, order.PaidAmount)
	assert.Equal(t, 3000.0, order.BalanceDue)
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	req := validCreateRequest()
	req.Items = nil
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestCreateDuplicateOrderNoNotPersisted(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// fixed clock: same order date and creation second, same customer
	_, err = svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrDuplicateNo)
	assert.Len(t, repo.orders, 1)
}

func TestCreateRollsBackWhenItemInsertFails(t *testing.T) {
	repo := newMemoryRepo()
	repo.failInsertItem = errors.New("connection reset")
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.Error(t, err)
	assert.Empty(t, repo.orders)
	assert.Empty(t, repo.items)
}

func TestCreateRejectsUnknownCustomer(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	req := validCreateRequest()
	req.CustomerID = 999
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCreateDiscountReducesSubTotal(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	req := validCreateRequest()
	req.Discount = 300
	id, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	order, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 3500.0, order.TTLAmount)
	assert.Equal(t, 3200.0, order.SubTotal)
}

func TestOrderJSONCarriesBalanceDue(t *testing.T) {
	o := Order{TTLAmount: 3500, DeliveryCharges: 500, PaidAmount: 1000}
	o.RefreshBalanceDue()

	raw, err := json.Marshal(o)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, 3000.0, payload["balance_due"])
}

func TestUpdateReplacesItemsAndKeepsOrderNo(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	id, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	update := UpdateOrderRequest{
		Date:            time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC),
		CustomerID:      7,
		DeliveryAddress: "No. 12, Main Road",
		DeliveryCharges: 0,
		PaymentTypeID:   1,
		Items: []OrderItemInput{
			{StockCategoryID: 3, Quantity: 5, UnitPrice: 200},
		},
	}
	require.NoError(t, svc.Update(context.Background(), id, update))

	order, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "20240510-130405-C001", order.OrderNo)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 5, order.TTLQuantity)
	assert.Equal(t, 1000.0, order.TTLAmount)
	assert.Equal(t, 1000.0, order.PaidAmount)
}

func TestUpdateMissingOrder(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	update := UpdateOrderRequest{
		Date:            time.Now(),
		CustomerID:      7,
		DeliveryAddress: "somewhere",
		PaymentTypeID:   1,
		Items:           []OrderItemInput{{StockCategoryID: 1, Quantity: 1, UnitPrice: 10}},
	}
	err := svc.Update(context.Background(), 42, update)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRemovesOrderAndItems(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	id, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), id))
	_, err = repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, repo.items[id])
}
