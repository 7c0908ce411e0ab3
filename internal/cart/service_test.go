package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/antonminaichev/flower-shop/internal/types/cart"
	"github.com/antonminaichev/flower-shop/internal/types/order"
	"github.com/antonminaichev/flower-shop/internal/types/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// memCartRepo хранит одну корзину на пользователя в памяти.
type memCartRepo struct {
	nextItemID int64
	carts      map[int64]*cart.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{nextItemID: 1, carts: make(map[int64]*cart.Cart)}
}

func (r *memCartRepo) GetOrCreateCart(ctx context.Context, userID int64) (*cart.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		c = &cart.Cart{ID: userID * 10, UserID: userID, CreatedAt: time.Now()}
		r.carts[userID] = c
	}
	cp := *c
	cp.Items = append([]cart.Item(nil), c.Items...)
	return &cp, nil
}

func (r *memCartRepo) AddCartItem(ctx context.Context, cartID, productID int64, quantity int) error {
	for _, c := range r.carts {
		if c.ID != cartID {
			continue
		}
		for i := range c.Items {
			if c.Items[i].ProductID == productID {
				c.Items[i].Quantity += quantity
				return nil
			}
		}
		c.Items = append(c.Items, cart.Item{
			ID:        r.nextItemID,
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		})
		r.nextItemID++
		return nil
	}
	return errors.New("cart not found")
}

func (r *memCartRepo) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error {
	c, ok := r.carts[userID]
	if !ok {
		return errors.New("cart not found")
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return errors.New("item not found")
}

func (r *memCartRepo) DeleteCartItem(ctx context.Context, userID, itemID int64) error {
	c, ok := r.carts[userID]
	if !ok {
		return errors.New("cart not found")
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return errors.New("item not found")
}

func (r *memCartRepo) ClearCart(ctx context.Context, cartID int64) error {
	for _, c := range r.carts {
		if c.ID == cartID {
			c.Items = nil
			return nil
		}
	}
	return nil
}

type stubProductFinder struct {
	products map[int64]*product.Product
}

func (s *stubProductFinder) FindProduct(ctx context.Context, id int64) (*product.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

type stubOrderReader struct {
	order *order.Order
	items []order.Item
}

func (s *stubOrderReader) FindOrder(ctx context.Context, id int64) (*order.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, errors.New("not found")
	}
	return s.order, nil
}

func (s *stubOrderReader) ListOrderItems(ctx context.Context, orderID int64) ([]order.Item, error) {
	return s.items, nil
}

func setupCartService() (*Service, *memCartRepo) {
	repo := newMemCartRepo()
	products := &stubProductFinder{products: map[int64]*product.Product{
		10: {ID: 10, Name: "Розы красные", Price: decimal.NewFromInt(100), Stock: 5},
	}}
	return NewService(repo, products, &stubOrderReader{}), repo
}

func TestAddToCart(t *testing.T) {
	svc, _ := setupCartService()
	ctx := context.Background()

	c, err := svc.AddToCart(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, len(c.Items))
	assert.Equal(t, 1, c.Items[0].Quantity)

	// Повторное добавление наращивает количество.
	c, err = svc.AddToCart(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, len(c.Items))
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc, _ := setupCartService()
	_, err := svc.AddToCart(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateItemQuantity(t *testing.T) {
	svc, _ := setupCartService()
	ctx := context.Background()

	c, _ := svc.AddToCart(ctx, 1, 10)
	itemID := c.Items[0].ID

	c, err := svc.UpdateItem(ctx, 1, itemID, 4)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 4, c.Items[0].Quantity)

	// Ноль удаляет позицию.
	c, err = svc.UpdateItem(ctx, 1, itemID, 0)
	if err != nil {
		t.Fatal(err)
	}
	assert.Empty(t, c.Items)
}

func TestUpdateItemNotFound(t *testing.T) {
	svc, _ := setupCartService()
	_, err := svc.UpdateItem(context.Background(), 1, 999, 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	svc, _ := setupCartService()
	ctx := context.Background()

	c, _ := svc.AddToCart(ctx, 1, 10)
	c, err := svc.RemoveItem(ctx, 1, c.Items[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Empty(t, c.Items)
}

func TestAddOrderToCart(t *testing.T) {
	repo := newMemCartRepo()
	products := &stubProductFinder{products: map[int64]*product.Product{}}
	orders := &stubOrderReader{
		order: &order.Order{ID: 5, UserID: 1},
		items: []order.Item{
			{ProductID: 10, ProductName: "Розы красные", Quantity: 2},
			{ProductID: 11, ProductName: "Тюльпаны", Quantity: 3},
		},
	}
	svc := NewService(repo, products, orders)

	c, err := svc.AddOrderToCart(context.Background(), 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 2, len(c.Items))
	assert.Equal(t, 5, c.TotalItems())
}

func TestAddOrderToCartForeignOrder(t *testing.T) {
	repo := newMemCartRepo()
	orders := &stubOrderReader{order: &order.Order{ID: 5, UserID: 2}}
	svc := NewService(repo, &stubProductFinder{}, orders)

	_, err := svc.AddOrderToCart(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
