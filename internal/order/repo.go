package order

import (
	"context"

	"github.com/antonminaichev/flower-shop/internal/types/cart"
	"github.com/antonminaichev/flower-shop/internal/types/order"
	"github.com/antonminaichev/flower-shop/internal/types/product"
	"github.com/antonminaichev/flower-shop/internal/types/user"
)

type OrderRepository interface {
	CreateOrderFromCart(ctx context.Context, o *order.Order, c *cart.Cart) error
	FindOrder(ctx context.Context, id int64) (*order.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]order.Order, error)
	ListActiveOrders(ctx context.Context) ([]order.Order, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]order.Item, error)
	UpdateOrderStatus(ctx context.Context, o *order.Order) error
}

type CartRepository interface {
	GetOrCreateCart(ctx context.Context, userID int64) (*cart.Cart, error)
	ClearCart(ctx context.Context, cartID int64) error
}

type ProductFinder interface {
	FindProduct(ctx context.Context, id int64) (*product.Product, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*user.User, error)
}

// Notifier отправляет оператору уведомление о новом заказе. Вызов идёт в
// отдельной горутине после фиксации транзакции, ошибка только логируется.
type Notifier interface {
	SendNewOrder(ctx context.Context, orderID int64) error
}
