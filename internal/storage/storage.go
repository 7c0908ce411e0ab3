package storage

import (
	"context"
	"time"

	"github.com/antonminaichev/flower-shop/internal/types/analytics"
	"github.com/antonminaichev/flower-shop/internal/types/cart"
	"github.com/antonminaichev/flower-shop/internal/types/content"
	"github.com/antonminaichev/flower-shop/internal/types/order"
	"github.com/antonminaichev/flower-shop/internal/types/product"
	"github.com/antonminaichev/flower-shop/internal/types/stats"
	"github.com/antonminaichev/flower-shop/internal/types/user"
)

// UserRepository отвечает за операции над пользователями.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByLogin(ctx context.Context, login string) (*user.User, error)
	FindByID(ctx context.Context, id int64) (*user.User, error)
	UpdateProfile(ctx context.Context, u *user.User) error
}

// ProductRepository отвечает за каталог, избранное и отзывы.
type ProductRepository interface {
	ListProducts(ctx context.Context, f product.Filter) ([]product.Product, error)
	FindProduct(ctx context.Context, id int64) (*product.Product, error)
	ListFavorites(ctx context.Context, userID int64) ([]product.Product, error)
	FindFavorite(ctx context.Context, userID, productID int64) (*product.Favorite, error)
	CreateFavorite(ctx context.Context, f *product.Favorite) error
	DeleteFavorite(ctx context.Context, userID, favoriteID int64) error
	ListReviews(ctx context.Context, productID int64) ([]product.Review, error)
	HasReview(ctx context.Context, userID, productID int64) (bool, error)
	CreateReview(ctx context.Context, r *product.Review) error
}

// CartRepository отвечает за корзину покупателя.
type CartRepository interface {
	GetOrCreateCart(ctx context.Context, userID int64) (*cart.Cart, error)
	AddCartItem(ctx context.Context, cartID, productID int64, quantity int) error
	UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error
	DeleteCartItem(ctx context.Context, userID, itemID int64) error
	ClearCart(ctx context.Context, cartID int64) error
}

// OrderRepository отвечает за заказы.
type OrderRepository interface {
	// CreateOrderFromCart атомарно создаёт заказ, копирует позиции корзины
	// в позиции заказа и очищает корзину.
	CreateOrderFromCart(ctx context.Context, o *order.Order, c *cart.Cart) error
	FindOrder(ctx context.Context, id int64) (*order.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]order.Order, error)
	ListActiveOrders(ctx context.Context) ([]order.Order, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]order.Item, error)
	UpdateOrderStatus(ctx context.Context, o *order.Order) error
}

// StatsRepository считает агрегаты по заказам за период.
type StatsRepository interface {
	GetPeriodStats(ctx context.Context, start, end time.Time) (*stats.PeriodStats, error)
}

// ReportRepository хранит сохранённые отчёты за период.
type ReportRepository interface {
	SaveReport(ctx context.Context, r *analytics.Report) error
	ListReports(ctx context.Context) ([]analytics.Report, error)
}

// ArticleRepository отвечает за статичные страницы.
type ArticleRepository interface {
	FindArticleByCategory(ctx context.Context, category string) (*content.Article, error)
}

// Storage объединяет все репозитории.
type Storage interface {
	UserRepository
	ProductRepository
	CartRepository
	OrderRepository
	StatsRepository
	ReportRepository
	ArticleRepository

	// Для управления соединением
	Ping(ctx context.Context) error
	Close() error
}
