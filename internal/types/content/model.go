package content

import "time"

// Категории статичных страниц.
const (
	CategoryAbout    = "about"
	CategoryPayment  = "payment"
	CategoryDelivery = "delivery"
)

type Article struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Category  string    `db:"category" json:"category"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
