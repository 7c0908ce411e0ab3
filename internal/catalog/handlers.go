package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/antonminaichev/flower-shop/internal/middleware"
	"github.com/antonminaichev/flower-shop/internal/types/product"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func filterFromQuery(r *http.Request) product.Filter {
	q := r.URL.Query()
	return product.Filter{
		Search:       q.Get("q"),
		Group:        q.Get("group"),
		Subgroup:     q.Get("subgroup"),
		FlowerType:   q.Get("flower_type"),
		Colors:       q["color"],
		IsNew:        q.Get("is_new") == "on" || q.Get("is_new") == "true",
		IsBestseller: q.Get("is_bestseller") == "on" || q.Get("is_bestseller") == "true",
		InStock:      q.Get("in_stock") == "on" || q.Get("in_stock") == "true",
		Ordering:     q.Get("ordering"),
	}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context(), filterFromQuery(r))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []product.Product{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	detail, err := h.svc.ProductDetail(r.Context(), productID, 0)
	if err != nil {
		if err == ErrProductNotFound {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(detail)
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	favorites, err := h.svc.ListFavorites(r.Context(), userID)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if len(favorites) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(favorites)
}

func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	added, err := h.svc.ToggleFavorite(r.Context(), userID, productID)
	if err != nil {
		if err == ErrProductNotFound {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"favorite": added})
}

func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	favoriteID, err := strconv.ParseInt(chi.URLParam(r, "favoriteID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid favorite id", http.StatusBadRequest)
		return
	}
	if err := h.svc.RemoveFavorite(r.Context(), userID, favoriteID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	reviews, err := h.svc.ListReviews(r.Context(), productID)
	if err != nil {
		if err == ErrProductNotFound {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if reviews == nil {
		reviews = []product.Review{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reviews)
}

type reviewReq struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	var req reviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	review, err := h.svc.AddReview(r.Context(), userID, productID, req.Text, req.Rating)
	if err != nil {
		switch err {
		case ErrInvalidRating, ErrEmptyReview:
			http.Error(w, err.Error(), http.StatusBadRequest)
		case ErrProductNotFound:
			http.Error(w, err.Error(), http.StatusNotFound)
		case ErrReviewExists:
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(review)
}
