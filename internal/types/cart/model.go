package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Items     []Item    `db:"-" json:"items"`
}

type Item struct {
	ID          int64           `db:"id" json:"id"`
	CartID      int64           `db:"cart_id" json:"-"`
	ProductID   int64           `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Quantity    int             `db:"quantity" json:"quantity"`
}

// TotalPrice — сумма по всем позициям корзины.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// TotalItems — суммарное количество единиц товара.
func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
