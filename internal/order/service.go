package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/antonminaichev/flower-shop/internal/logger"
	"github.com/antonminaichev/flower-shop/internal/types/order"
	"go.uber.org/zap"
)

// Минимальный срок доставки от момента оформления.
const MinDeliveryLead = 2 * time.Hour

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrDeliveryTooSoon    = errors.New("delivery is possible no earlier than 2 hours from now")
	ErrAddressRequired    = errors.New("delivery address is required")
	ErrNoProfileAddress   = errors.New("profile has no address")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("unknown order status")
)

// StockShortage — нехватка конкретного товара при оформлении.
type StockShortage struct {
	Name      string `json:"name"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

// StockError перечисляет все товары, которых не хватило. Побочный эффект
// оформления с такой ошибкой — полная очистка корзины.
type StockError struct {
	Items []StockShortage
}

func (e *StockError) Error() string {
	parts := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		parts = append(parts, fmt.Sprintf("%s - доступно %d шт., заказано %d", it.Name, it.Available, it.Requested))
	}
	return "недостаточно товара: " + strings.Join(parts, "; ")
}

type Service struct {
	orders   OrderRepository
	carts    CartRepository
	products ProductFinder
	users    UserFinder
	notifier Notifier
}

func NewService(orders OrderRepository, carts CartRepository, products ProductFinder, users UserFinder, notifier Notifier) *Service {
	return &Service{orders: orders, carts: carts, products: products, users: users, notifier: notifier}
}

type CheckoutRequest struct {
	DeliveryDate      time.Time
	UseProfileAddress bool
	Address           string
}

// Checkout оформляет заказ из корзины пользователя. Проверки идут до любых
// изменений в хранилище, кроме одного унаследованного поведения: нехватка
// товара очищает корзину целиком.
func (s *Service) Checkout(ctx context.Context, userID int64, req CheckoutRequest) (*order.Order, error) {
	now := time.Now().UTC()
	if req.DeliveryDate.Before(now.Add(MinDeliveryLead)) {
		return nil, ErrDeliveryTooSoon
	}

	address := strings.TrimSpace(req.Address)
	if req.UseProfileAddress {
		u, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(u.Address) == "" {
			return nil, ErrNoProfileAddress
		}
		address = u.Address
	} else if address == "" {
		return nil, ErrAddressRequired
	}

	c, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var shortages []StockShortage
	for _, it := range c.Items {
		p, err := s.products.FindProduct(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p.Stock < it.Quantity {
			shortages = append(shortages, StockShortage{
				Name:      p.Name,
				Available: p.Stock,
				Requested: it.Quantity,
			})
		}
	}
	if len(shortages) > 0 {
		if err := s.carts.ClearCart(ctx, c.ID); err != nil {
			return nil, err
		}
		return nil, &StockError{Items: shortages}
	}

	o := &order.Order{
		UserID:       userID,
		OrderDate:    now,
		DeliveryDate: req.DeliveryDate,
		TotalPrice:   c.TotalPrice(),
		Address:      address,
	}
	o.SetStatus(order.StatusOrdered, now)

	if err := s.orders.CreateOrderFromCart(ctx, o, c); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		orderID := o.ID
		go func() {
			if err := s.notifier.SendNewOrder(context.Background(), orderID); err != nil {
				logger.Log.Error("order notification failed",
					zap.Int64("order_id", orderID), zap.Error(err))
			}
		}()
	}

	return o, nil
}

func (s *Service) ListOrders(ctx context.Context, userID int64) ([]order.Order, error) {
	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, orders)
}

// ListActiveOrders — все заказы, кроме доставленных и отменённых, для бота.
func (s *Service) ListActiveOrders(ctx context.Context) ([]order.Order, error) {
	orders, err := s.orders.ListActiveOrders(ctx)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, orders)
}

func (s *Service) withItems(ctx context.Context, orders []order.Order) ([]order.Order, error) {
	for i := range orders {
		items, err := s.orders.ListOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	o, err := s.orders.FindOrder(ctx, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	items, err := s.orders.ListOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// UpdateStatus переводит заказ в новый статус. Переходы не ограничены,
// отметка времени статуса фиксируется только при первом попадании в него.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status order.Status) (*order.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidOrderStatus
	}
	o, err := s.orders.FindOrder(ctx, orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	o.SetStatus(status, time.Now().UTC())
	if err := s.orders.UpdateOrderStatus(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
