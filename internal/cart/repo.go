package cart

import (
	"context"

	"github.com/antonminaichev/flower-shop/internal/types/cart"
	"github.com/antonminaichev/flower-shop/internal/types/order"
	"github.com/antonminaichev/flower-shop/internal/types/product"
)

type CartRepository interface {
	GetOrCreateCart(ctx context.Context, userID int64) (*cart.Cart, error)
	AddCartItem(ctx context.Context, cartID, productID int64, quantity int) error
	UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error
	DeleteCartItem(ctx context.Context, userID, itemID int64) error
	ClearCart(ctx context.Context, cartID int64) error
}

type ProductFinder interface {
	FindProduct(ctx context.Context, id int64) (*product.Product, error)
}

type OrderReader interface {
	FindOrder(ctx context.Context, id int64) (*order.Order, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]order.Item, error)
}
