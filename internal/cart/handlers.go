package cart

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/antonminaichev/flower-shop/internal/middleware"
	"github.com/antonminaichev/flower-shop/internal/types/cart"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type cartResponse struct {
	*cart.Cart
	Total      string `json:"total"`
	TotalItems int    `json:"total_items"`
}

func writeCart(w http.ResponseWriter, c *cart.Cart) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cartResponse{
		Cart:       c,
		Total:      c.TotalPrice().StringFixed(2),
		TotalItems: c.TotalItems(),
	})
}

func (h *Handler) ViewCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	c, err := h.svc.ViewCart(r.Context(), userID)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeCart(w, c)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	c, err := h.svc.AddToCart(r.Context(), userID, productID)
	if err != nil {
		if err == ErrProductNotFound {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeCart(w, c)
}

type updateItemReq struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	var req updateItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := h.svc.UpdateItem(r.Context(), userID, itemID, req.Quantity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeCart(w, c)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	c, err := h.svc.RemoveItem(r.Context(), userID, itemID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeCart(w, c)
}

func (h *Handler) AddOrderToCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	c, err := h.svc.AddOrderToCart(r.Context(), userID, orderID)
	if err != nil {
		if err == ErrOrderNotFound {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeCart(w, c)
}
