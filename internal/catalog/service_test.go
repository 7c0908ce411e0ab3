package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/antonminaichev/flower-shop/internal/types/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// memProductRepo — каталог с избранным и отзывами в памяти.
type memProductRepo struct {
	products  map[int64]*product.Product
	favorites []product.Favorite
	reviews   []product.Review
	nextFavID int64
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{
		products: map[int64]*product.Product{
			10: {ID: 10, Name: "Розы красные", Price: decimal.NewFromInt(100), Stock: 5},
			11: {ID: 11, Name: "Тюльпаны", Price: decimal.NewFromInt(50), Stock: 0},
		},
		nextFavID: 1,
	}
}

func (r *memProductRepo) ListProducts(ctx context.Context, f product.Filter) ([]product.Product, error) {
	out := make([]product.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProductRepo) FindProduct(ctx context.Context, id int64) (*product.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *memProductRepo) ListFavorites(ctx context.Context, userID int64) ([]product.Product, error) {
	var out []product.Product
	for _, f := range r.favorites {
		if f.UserID == userID {
			out = append(out, *r.products[f.ProductID])
		}
	}
	return out, nil
}

func (r *memProductRepo) FindFavorite(ctx context.Context, userID, productID int64) (*product.Favorite, error) {
	for i := range r.favorites {
		if r.favorites[i].UserID == userID && r.favorites[i].ProductID == productID {
			return &r.favorites[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *memProductRepo) CreateFavorite(ctx context.Context, f *product.Favorite) error {
	f.ID = r.nextFavID
	r.nextFavID++
	r.favorites = append(r.favorites, *f)
	return nil
}

func (r *memProductRepo) DeleteFavorite(ctx context.Context, userID, favoriteID int64) error {
	for i := range r.favorites {
		if r.favorites[i].UserID == userID && r.favorites[i].ID == favoriteID {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (r *memProductRepo) ListReviews(ctx context.Context, productID int64) ([]product.Review, error) {
	var out []product.Review
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *memProductRepo) HasReview(ctx context.Context, userID, productID int64) (bool, error) {
	for _, rv := range r.reviews {
		if rv.UserID == userID && rv.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProductRepo) CreateReview(ctx context.Context, rv *product.Review) error {
	rv.ID = int64(len(r.reviews) + 1)
	rv.CreatedAt = time.Now()
	r.reviews = append(r.reviews, *rv)
	return nil
}

func TestToggleFavorite(t *testing.T) {
	repo := newMemProductRepo()
	svc := NewService(repo)
	ctx := context.Background()

	added, err := svc.ToggleFavorite(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, added)

	favs, _ := svc.ListFavorites(ctx, 1)
	assert.Equal(t, 1, len(favs))

	// Повторный вызов убирает из избранного.
	added, err = svc.ToggleFavorite(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	assert.False(t, added)

	favs, _ = svc.ListFavorites(ctx, 1)
	assert.Empty(t, favs)
}

func TestToggleFavoriteUnknownProduct(t *testing.T) {
	svc := NewService(newMemProductRepo())
	_, err := svc.ToggleFavorite(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveFavoriteNotFound(t *testing.T) {
	svc := NewService(newMemProductRepo())
	err := svc.RemoveFavorite(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestAddReview(t *testing.T) {
	repo := newMemProductRepo()
	svc := NewService(repo)
	ctx := context.Background()

	t.Run("invalid rating", func(t *testing.T) {
		_, err := svc.AddReview(ctx, 1, 10, "отличные цветы", 6)
		assert.ErrorIs(t, err, ErrInvalidRating)
		_, err = svc.AddReview(ctx, 1, 10, "отличные цветы", 0)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := svc.AddReview(ctx, 1, 10, "", 5)
		assert.ErrorIs(t, err, ErrEmptyReview)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.AddReview(ctx, 1, 999, "текст", 5)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("success", func(t *testing.T) {
		rv, err := svc.AddReview(ctx, 1, 10, "отличные цветы", 5)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, 5, rv.Rating)
	})

	t.Run("second review rejected", func(t *testing.T) {
		_, err := svc.AddReview(ctx, 1, 10, "ещё отзыв", 4)
		assert.ErrorIs(t, err, ErrReviewExists)
	})
}

func TestProductDetailAverageRating(t *testing.T) {
	repo := newMemProductRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.AddReview(ctx, 1, 10, "хорошо", 4); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddReview(ctx, 2, 10, "отлично", 5); err != nil {
		t.Fatal(err)
	}

	detail, err := svc.ProductDetail(ctx, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	// (4+5)/2 = 4.5, округление до одного знака.
	assert.InDelta(t, 4.5, detail.AverageRating, 0.001)
	assert.Equal(t, 2, detail.ReviewsCount)
	assert.True(t, detail.UserHasReview)

	anon, err := svc.ProductDetail(ctx, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	assert.False(t, anon.UserHasReview)
}

func TestProductDetailNotFound(t *testing.T) {
	svc := NewService(newMemProductRepo())
	_, err := svc.ProductDetail(context.Background(), 999, 0)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
