package content

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/antonminaichev/flower-shop/internal/types/content"
)

type ArticleRepository interface {
	FindArticleByCategory(ctx context.Context, category string) (*content.Article, error)
}

type Handler struct {
	repo ArticleRepository
}

func NewHandler(repo ArticleRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) serveArticle(category string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := h.repo.FindArticleByCategory(r.Context(), category)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(a)
	}
}

func (h *Handler) PaymentInfo(w http.ResponseWriter, r *http.Request) {
	h.serveArticle(content.CategoryPayment)(w, r)
}

func (h *Handler) DeliveryInfo(w http.ResponseWriter, r *http.Request) {
	h.serveArticle(content.CategoryDelivery)(w, r)
}

func (h *Handler) AboutCompany(w http.ResponseWriter, r *http.Request) {
	h.serveArticle(content.CategoryAbout)(w, r)
}
