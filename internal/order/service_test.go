package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/antonminaichev/flower-shop/internal/types/cart"
	"github.com/antonminaichev/flower-shop/internal/types/order"
	"github.com/antonminaichev/flower-shop/internal/types/product"
	"github.com/antonminaichev/flower-shop/internal/types/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type mockOrderRepo struct {
	createOrderFromCartFn func(ctx context.Context, o *order.Order, c *cart.Cart) error
	findOrderFn           func(ctx context.Context, id int64) (*order.Order, error)
	listOrdersByUserFn    func(ctx context.Context, userID int64) ([]order.Order, error)
	listActiveOrdersFn    func(ctx context.Context) ([]order.Order, error)
	listOrderItemsFn      func(ctx context.Context, orderID int64) ([]order.Item, error)
	updateOrderStatusFn   func(ctx context.Context, o *order.Order) error
}

func (m *mockOrderRepo) CreateOrderFromCart(ctx context.Context, o *order.Order, c *cart.Cart) error {
	return m.createOrderFromCartFn(ctx, o, c)
}
func (m *mockOrderRepo) FindOrder(ctx context.Context, id int64) (*order.Order, error) {
	return m.findOrderFn(ctx, id)
}
func (m *mockOrderRepo) ListOrdersByUser(ctx context.Context, userID int64) ([]order.Order, error) {
	return m.listOrdersByUserFn(ctx, userID)
}
func (m *mockOrderRepo) ListActiveOrders(ctx context.Context) ([]order.Order, error) {
	return m.listActiveOrdersFn(ctx)
}
func (m *mockOrderRepo) ListOrderItems(ctx context.Context, orderID int64) ([]order.Item, error) {
	if m.listOrderItemsFn == nil {
		return nil, nil
	}
	return m.listOrderItemsFn(ctx, orderID)
}
func (m *mockOrderRepo) UpdateOrderStatus(ctx context.Context, o *order.Order) error {
	return m.updateOrderStatusFn(ctx, o)
}

type mockCartRepo struct {
	getOrCreateCartFn func(ctx context.Context, userID int64) (*cart.Cart, error)
	clearCartFn       func(ctx context.Context, cartID int64) error
}

func (m *mockCartRepo) GetOrCreateCart(ctx context.Context, userID int64) (*cart.Cart, error) {
	return m.getOrCreateCartFn(ctx, userID)
}
func (m *mockCartRepo) ClearCart(ctx context.Context, cartID int64) error {
	return m.clearCartFn(ctx, cartID)
}

type mockProductFinder struct {
	products map[int64]*product.Product
}

func (m *mockProductFinder) FindProduct(ctx context.Context, id int64) (*product.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	return p, nil
}

type mockUserFinder struct {
	findByIDFn func(ctx context.Context, id int64) (*user.User, error)
}

func (m *mockUserFinder) FindByID(ctx context.Context, id int64) (*user.User, error) {
	return m.findByIDFn(ctx, id)
}

type mockNotifier struct {
	sent chan int64
}

func (m *mockNotifier) SendNewOrder(ctx context.Context, orderID int64) error {
	m.sent <- orderID
	return nil
}

func testCart() *cart.Cart {
	return &cart.Cart{
		ID:     7,
		UserID: 1,
		Items: []cart.Item{
			{ProductID: 10, ProductName: "Розы красные", Price: decimal.NewFromInt(100), Quantity: 2},
			{ProductID: 11, ProductName: "Тюльпаны", Price: decimal.NewFromInt(50), Quantity: 3},
		},
	}
}

func testProducts(stock10, stock11 int) *mockProductFinder {
	return &mockProductFinder{products: map[int64]*product.Product{
		10: {ID: 10, Name: "Розы красные", Price: decimal.NewFromInt(100), Stock: stock10},
		11: {ID: 11, Name: "Тюльпаны", Price: decimal.NewFromInt(50), Stock: stock11},
	}}
}

func TestCheckoutDeliveryTooSoon(t *testing.T) {
	carts := &mockCartRepo{
		getOrCreateCartFn: func(ctx context.Context, userID int64) (*cart.Cart, error) {
			t.Fatal("cart must not be touched before validation")
			return nil, nil
		},
	}
	svc := NewService(&mockOrderRepo{}, carts, testProducts(5, 5), &mockUserFinder{}, nil)

	_, err := svc.Checkout(context.Background(), 1, CheckoutRequest{
		DeliveryDate: time.Now().Add(time.Hour),
		Address:      "ул. Ленина, 1",
	})
	assert.ErrorIs(t, err, ErrDeliveryTooSoon)
}

func TestCheckoutAddressRequired(t *testing.T) {
	svc := NewService(&mockOrderRepo{}, &mockCartRepo{}, testProducts(5, 5), &mockUserFinder{}, nil)

	_, err := svc.Checkout(context.Background(), 1, CheckoutRequest{
		DeliveryDate: time.Now().Add(3 * time.Hour),
		Address:      "   ",
	})
	assert.ErrorIs(t, err, ErrAddressRequired)
}

func TestCheckoutNoProfileAddress(t *testing.T) {
	users := &mockUserFinder{
		findByIDFn: func(ctx context.Context, id int64) (*user.User, error) {
			return &user.User{ID: id, Login: "user1"}, nil
		},
	}
	svc := NewService(&mockOrderRepo{}, &mockCartRepo{}, testProducts(5, 5), users, nil)

	_, err := svc.Checkout(context.Background(), 1, CheckoutRequest{
		DeliveryDate:      time.Now().Add(3 * time.Hour),
		UseProfileAddress: true,
	})
	assert.ErrorIs(t, err, ErrNoProfileAddress)
}

func TestCheckoutEmptyCart(t *testing.T) {
	carts := &mockCartRepo{
		getOrCreateCartFn: func(ctx context.Context, userID int64) (*cart.Cart, error) {
			return &cart.Cart{ID: 7, UserID: userID}, nil
		},
	}
	svc := NewService(&mockOrderRepo{}, carts, testProducts(5, 5), &mockUserFinder{}, nil)

	_, err := svc.Checkout(context.Background(), 1, CheckoutRequest{
		DeliveryDate: time.Now().Add(3 * time.Hour),
		Address:      "ул. Ленина, 1",
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutStockShortageClearsCart(t *testing.T) {
	cleared := false
	carts := &mockCartRepo{
		getOrCreateCartFn: func(ctx context.Context, userID int64) (*cart.Cart, error) {
			return testCart(), nil
		},
		clearCartFn: func(ctx context.Context, cartID int64) error {
			assert.Equal(t, int64(7), cartID)
			cleared = true
			return nil
		},
	}
	orders := &mockOrderRepo{
		createOrderFromCartFn: func(ctx context.Context, o *order.Order, c *cart.Cart) error {
			t.Fatal("order must not be created on stock shortage")
			return nil
		},
	}
	// Тюльпанов в наличии 2, в корзине 3.
	svc := NewService(orders, carts, testProducts(5, 2), &mockUserFinder{}, nil)

	_, err := svc.Checkout(context.Background(), 1, CheckoutRequest{
		DeliveryDate: time.Now().Add(3 * time.Hour),
		Address:      "ул. Ленина, 1",
	})

	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected StockError, got %v", err)
	}
	assert.Equal(t, []StockShortage{{Name: "Тюльпаны", Available: 2, Requested: 3}}, stockErr.Items)
	assert.True(t, cleared, "cart must be cleared on stock shortage")
}

func TestCheckoutSuccess(t *testing.T) {
	var created *order.Order
	orders := &mockOrderRepo{
		createOrderFromCartFn: func(ctx context.Context, o *order.Order, c *cart.Cart) error {
			o.ID = 42
			created = o
			return nil
		},
	}
	carts := &mockCartRepo{
		getOrCreateCartFn: func(ctx context.Context, userID int64) (*cart.Cart, error) {
			return testCart(), nil
		},
	}
	notifier := &mockNotifier{sent: make(chan int64, 1)}
	svc := NewService(orders, carts, testProducts(5, 5), &mockUserFinder{}, notifier)

	delivery := time.Now().Add(3 * time.Hour)
	o, err := svc.Checkout(context.Background(), 1, CheckoutRequest{
		DeliveryDate: delivery,
		Address:      "ул. Ленина, 1",
	})
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, int64(42), o.ID)
	assert.Equal(t, order.StatusOrdered, o.Status)
	assert.NotNil(t, created.OrderedDate)
	// 2*100 + 3*50
	assert.True(t, o.TotalPrice.Equal(decimal.NewFromInt(350)), "total price %s", o.TotalPrice)
	assert.Equal(t, "ул. Ленина, 1", o.Address)

	select {
	case id := <-notifier.sent:
		assert.Equal(t, int64(42), id)
	case <-time.After(time.Second):
		t.Fatal("notification was not sent")
	}
}

func TestUpdateStatusInvalid(t *testing.T) {
	svc := NewService(&mockOrderRepo{}, &mockCartRepo{}, testProducts(0, 0), &mockUserFinder{}, nil)
	_, err := svc.UpdateStatus(context.Background(), 1, "shipped")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestUpdateStatusNotFound(t *testing.T) {
	orders := &mockOrderRepo{
		findOrderFn: func(ctx context.Context, id int64) (*order.Order, error) {
			return nil, errors.New("no rows")
		},
	}
	svc := NewService(orders, &mockCartRepo{}, testProducts(0, 0), &mockUserFinder{}, nil)
	_, err := svc.UpdateStatus(context.Background(), 99, order.StatusDelivered)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatusLatchesFirstTimestamp(t *testing.T) {
	firstDelivered := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	stored := &order.Order{ID: 1, Status: order.StatusInDelivery, DeliveredDate: &firstDelivered}
	orders := &mockOrderRepo{
		findOrderFn: func(ctx context.Context, id int64) (*order.Order, error) {
			cp := *stored
			return &cp, nil
		},
		updateOrderStatusFn: func(ctx context.Context, o *order.Order) error {
			stored = o
			return nil
		},
	}
	svc := NewService(orders, &mockCartRepo{}, testProducts(0, 0), &mockUserFinder{}, nil)

	o, err := svc.UpdateStatus(context.Background(), 1, order.StatusDelivered)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, order.StatusDelivered, o.Status)
	// Повторный вход в статус не перебивает первую отметку.
	assert.True(t, o.DeliveredDate.Equal(firstDelivered), "delivered date %v", o.DeliveredDate)
}

func TestSetStatusRecordsEachStatusOnce(t *testing.T) {
	o := &order.Order{}
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	o.SetStatus(order.StatusOrdered, t0)
	o.SetStatus(order.StatusInAssemble, t0.Add(time.Hour))
	o.SetStatus(order.StatusOrdered, t0.Add(2*time.Hour))

	assert.Equal(t, order.StatusOrdered, o.Status)
	assert.True(t, o.OrderedDate.Equal(t0))
	assert.True(t, o.InAssembleDate.Equal(t0.Add(time.Hour)))
	assert.Nil(t, o.StatusDateFor(order.StatusDelivered))
}
