package cart

import (
	"context"
	"errors"

	"github.com/antonminaichev/flower-shop/internal/types/cart"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrBadQuantity     = errors.New("quantity must be positive")
)

type Service struct {
	carts    CartRepository
	products ProductFinder
	orders   OrderReader
}

func NewService(carts CartRepository, products ProductFinder, orders OrderReader) *Service {
	return &Service{carts: carts, products: products, orders: orders}
}

func (s *Service) ViewCart(ctx context.Context, userID int64) (*cart.Cart, error) {
	return s.carts.GetOrCreateCart(ctx, userID)
}

func (s *Service) AddToCart(ctx context.Context, userID, productID int64) (*cart.Cart, error) {
	if _, err := s.products.FindProduct(ctx, productID); err != nil {
		return nil, ErrProductNotFound
	}
	c, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.AddCartItem(ctx, c.ID, productID, 1); err != nil {
		return nil, err
	}
	return s.carts.GetOrCreateCart(ctx, userID)
}

// UpdateItem меняет количество позиции; ноль и меньше удаляет позицию.
func (s *Service) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*cart.Cart, error) {
	var err error
	if quantity > 0 {
		err = s.carts.UpdateCartItem(ctx, userID, itemID, quantity)
	} else {
		err = s.carts.DeleteCartItem(ctx, userID, itemID)
	}
	if err != nil {
		return nil, ErrItemNotFound
	}
	return s.carts.GetOrCreateCart(ctx, userID)
}

func (s *Service) RemoveItem(ctx context.Context, userID, itemID int64) (*cart.Cart, error) {
	if err := s.carts.DeleteCartItem(ctx, userID, itemID); err != nil {
		return nil, ErrItemNotFound
	}
	return s.carts.GetOrCreateCart(ctx, userID)
}

// AddOrderToCart повторяет прошлый заказ: его позиции добавляются в корзину.
func (s *Service) AddOrderToCart(ctx context.Context, userID, orderID int64) (*cart.Cart, error) {
	o, err := s.orders.FindOrder(ctx, orderID)
	if err != nil || o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	items, err := s.orders.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	c, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := s.carts.AddCartItem(ctx, c.ID, it.ProductID, it.Quantity); err != nil {
			return nil, err
		}
	}
	return s.carts.GetOrCreateCart(ctx, userID)
}
