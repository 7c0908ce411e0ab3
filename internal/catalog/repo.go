package catalog

import (
	"context"

	"github.com/antonminaichev/flower-shop/internal/types/product"
)

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
