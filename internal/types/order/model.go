package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOrdered    Status = "ordered"
	StatusInAssemble Status = "in_assemble"
	StatusAssembled  Status = "assembled"
	StatusInDelivery Status = "in_delivery"
	StatusDelivered  Status = "delivered"
	StatusCanceled   Status = "canceled"
)

// AllStatuses в порядке жизненного цикла заказа.
var AllStatuses = []Status{
	StatusOrdered,
	StatusInAssemble,
	StatusAssembled,
	StatusInDelivery,
	StatusDelivered,
	StatusCanceled,
}

func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Display — человекочитаемое название статуса.
func (s Status) Display() string {
	switch s {
	case StatusOrdered:
		return "Заказано"
	case StatusInAssemble:
		return "Собирается"
	case StatusAssembled:
		return "Собрано"
	case StatusInDelivery:
		return "Едет"
	case StatusDelivered:
		return "Доставлено"
	case StatusCanceled:
		return "Отменено"
	}
	return string(s)
}

type Order struct {
	ID           int64           `db:"id" json:"id"`
	UserID       int64           `db:"user_id" json:"-"`
	Status       Status          `db:"status" json:"status"`
	OrderDate    time.Time       `db:"order_date" json:"order_date"`
	DeliveryDate time.Time       `db:"delivery_date" json:"delivery_date"`
	TotalPrice   decimal.Decimal `db:"total_price" json:"total_price"`
	Address      string          `db:"address" json:"address"`

	OrderedDate    *time.Time `db:"ordered_date" json:"-"`
	InAssembleDate *time.Time `db:"in_assemble_date" json:"-"`
	AssembledDate  *time.Time `db:"assembled_date" json:"-"`
	InDeliveryDate *time.Time `db:"in_delivery_date" json:"-"`
	DeliveredDate  *time.Time `db:"delivered_date" json:"delivered_date,omitempty"`
	CanceledDate   *time.Time `db:"canceled_date" json:"-"`

	Items []Item `db:"-" json:"items"`

	// Клиентские данные для сводок оператору, заполняются join-ом.
	CustomerLogin   string `db:"customer_login" json:"-"`
	CustomerPhone   string `db:"customer_phone" json:"-"`
	CustomerAddress string `db:"customer_address" json:"-"`
}

type Item struct {
	ID          int64           `db:"id" json:"id"`
	OrderID     int64           `db:"order_id" json:"-"`
	ProductID   int64           `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Price       decimal.Decimal `db:"price" json:"price"`
	ImagePath   string          `db:"image_path" json:"-"`
	Quantity    int             `db:"quantity" json:"quantity"`
}

// statusDate возвращает указатель на поле-отметку для данного статуса.
func (o *Order) statusDate(s Status) **time.Time {
	switch s {
	case StatusOrdered:
		return &o.OrderedDate
	case StatusInAssemble:
		return &o.InAssembleDate
	case StatusAssembled:
		return &o.AssembledDate
	case StatusInDelivery:
		return &o.InDeliveryDate
	case StatusDelivered:
		return &o.DeliveredDate
	case StatusCanceled:
		return &o.CanceledDate
	}
	return nil
}

// SetStatus меняет статус и при первом попадании в него фиксирует отметку
// времени. Уже установленная отметка не перезаписывается, переходы между
// статусами не ограничены.
func (o *Order) SetStatus(s Status, now time.Time) {
	o.Status = s
	if p := o.statusDate(s); p != nil && *p == nil {
		t := now
		*p = &t
	}
}

// StatusDateFor отдаёт отметку времени для статуса (nil, если заказ в нём не был).
func (o *Order) StatusDateFor(s Status) *time.Time {
	if p := o.statusDate(s); p != nil {
		return *p
	}
	return nil
}
