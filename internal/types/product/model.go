package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           int64           `db:"id" json:"id"`
	Group        string          `db:"grp" json:"group"`
	Subgroup     string          `db:"subgroup" json:"subgroup"`
	FlowerType   string          `db:"flower_type" json:"flower_type"`
	Name         string          `db:"name" json:"name"`
	Price        decimal.Decimal `db:"price" json:"price"`
	ImagePath    string          `db:"image_path" json:"image,omitempty"`
	Colors       []string        `db:"-" json:"colors,omitempty"`
	IsNew        bool            `db:"is_new" json:"is_new"`
	IsBestseller bool            `db:"is_bestseller" json:"is_bestseller"`
	Stock        int             `db:"stock" json:"stock"`
	CreatedAt    time.Time       `db:"created_at" json:"-"`
}

// Filter описывает параметры выборки каталога.
type Filter struct {
	Search       string
	Group        string
	Subgroup     string
	FlowerType   string
	Colors       []string
	IsNew        bool
	IsBestseller bool
	InStock      bool
	// Ordering: "price" или "-price", пустая строка — по умолчанию.
	Ordering string
}

type Favorite struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	ProductID int64     `db:"product_id" json:"product_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Review struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	UserLogin string    `db:"user_login" json:"user"`
	ProductID int64     `db:"product_id" json:"product_id"`
	Text      string    `db:"text" json:"text"`
	Rating    int       `db:"rating" json:"rating"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
