package catalog

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/antonminaichev/flower-shop/internal/types/product"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrReviewExists     = errors.New("review already exists")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrEmptyReview      = errors.New("review text is required")
)

type Service struct {
	repo ProductRepository
}

func NewService(repo ProductRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProducts(ctx context.Context, f product.Filter) ([]product.Product, error) {
	return s.repo.ListProducts(ctx, f)
}

// ProductDetail — карточка товара вместе со сводкой по отзывам.
type ProductDetail struct {
	Product       product.Product `json:"product"`
	AverageRating float64         `json:"average_rating"`
	ReviewsCount  int             `json:"reviews_count"`
	UserHasReview bool            `json:"user_has_review"`
}

func (s *Service) ProductDetail(ctx context.Context, productID, userID int64) (*ProductDetail, error) {
	p, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	reviews, err := s.repo.ListReviews(ctx, productID)
	if err != nil {
		return nil, err
	}
	detail := &ProductDetail{Product: *p, ReviewsCount: len(reviews)}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		avg := float64(sum) / float64(len(reviews))
		detail.AverageRating = math.Round(avg*10) / 10
	}
	if userID != 0 {
		has, err := s.repo.HasReview(ctx, userID, productID)
		if err != nil {
			return nil, err
		}
		detail.UserHasReview = has
	}
	return detail, nil
}

func (s *Service) ListFavorites(ctx context.Context, userID int64) ([]product.Product, error) {
	return s.repo.ListFavorites(ctx, userID)
}

// ToggleFavorite добавляет товар в избранное либо убирает, если он уже там.
// Возвращает true, если товар оказался в избранном.
func (s *Service) ToggleFavorite(ctx context.Context, userID, productID int64) (bool, error) {
	if _, err := s.repo.FindProduct(ctx, productID); err != nil {
		return false, ErrProductNotFound
	}
	existing, err := s.repo.FindFavorite(ctx, userID, productID)
	if err == nil {
		if err := s.repo.DeleteFavorite(ctx, userID, existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}
	f := &product.Favorite{
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateFavorite(ctx, f); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, favoriteID int64) error {
	if err := s.repo.DeleteFavorite(ctx, userID, favoriteID); err != nil {
		return ErrFavoriteNotFound
	}
	return nil
}

func (s *Service) ListReviews(ctx context.Context, productID int64) ([]product.Review, error) {
	if _, err := s.repo.FindProduct(ctx, productID); err != nil {
		return nil, ErrProductNotFound
	}
	return s.repo.ListReviews(ctx, productID)
}

func (s *Service) AddReview(ctx context.Context, userID, productID int64, text string, rating int) (*product.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if text == "" {
		return nil, ErrEmptyReview
	}
	if _, err := s.repo.FindProduct(ctx, productID); err != nil {
		return nil, ErrProductNotFound
	}
	has, err := s.repo.HasReview(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if has {
		return nil, ErrReviewExists
	}
	r := &product.Review{
		UserID:    userID,
		ProductID: productID,
		Text:      text,
		Rating:    rating,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateReview(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
