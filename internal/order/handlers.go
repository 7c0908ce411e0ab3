package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/antonminaichev/flower-shop/internal/middleware"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type checkoutReq struct {
	DeliveryDate      time.Time `json:"delivery_date"`
	UseProfileAddress bool      `json:"use_profile_address"`
	Address           string    `json:"address"`
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.svc.Checkout(r.Context(), userID, CheckoutRequest{
		DeliveryDate:      req.DeliveryDate,
		UseProfileAddress: req.UseProfileAddress,
		Address:           req.Address,
	})
	if err != nil {
		var stockErr *StockError
		switch {
		case errors.As(err, &stockErr):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]any{
				"error":        "insufficient stock, cart was cleared",
				"out_of_stock": stockErr.Items,
				"cart_cleared": true,
			})
		case errors.Is(err, ErrEmptyCart),
			errors.Is(err, ErrDeliveryTooSoon),
			errors.Is(err, ErrAddressRequired),
			errors.Is(err, ErrNoProfileAddress):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(o)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	orders, err := h.svc.ListOrders(r.Context(), userID)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}
