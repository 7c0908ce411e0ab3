package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/antonminaichev/flower-shop/internal/types/analytics"
	"github.com/antonminaichev/flower-shop/internal/types/cart"
	"github.com/antonminaichev/flower-shop/internal/types/content"
	"github.com/antonminaichev/flower-shop/internal/types/order"
	"github.com/antonminaichev/flower-shop/internal/types/product"
	"github.com/antonminaichev/flower-shop/internal/types/stats"
	"github.com/antonminaichev/flower-shop/internal/types/user"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &PostgresStorage{db: db}

	// проверяем, что БД жива
	if err := s.db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	// создаём таблицы
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStorage) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            grp TEXT NOT NULL,
            subgroup TEXT NOT NULL,
            flower_type TEXT NOT NULL,
            name TEXT NOT NULL,
            price NUMERIC(10,2) NOT NULL,
            image_path TEXT NOT NULL DEFAULT '',
            is_new BOOLEAN NOT NULL DEFAULT FALSE,
            is_bestseller BOOLEAN NOT NULL DEFAULT FALSE,
            stock INT NOT NULL DEFAULT 1,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS product_colors (
            product_id INT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
            color TEXT NOT NULL,
            PRIMARY KEY (product_id, color)
        )`,
		`CREATE TABLE IF NOT EXISTS favorites (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id),
            product_id INT NOT NULL REFERENCES products(id),
            created_at TIMESTAMPTZ NOT NULL,
            UNIQUE (user_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS reviews (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id),
            product_id INT NOT NULL REFERENCES products(id),
            text TEXT NOT NULL,
            rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
            created_at TIMESTAMPTZ NOT NULL,
            UNIQUE (user_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            id SERIAL PRIMARY KEY,
            user_id INT UNIQUE NOT NULL REFERENCES users(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            id SERIAL PRIMARY KEY,
            cart_id INT NOT NULL REFERENCES carts(id),
            product_id INT NOT NULL REFERENCES products(id),
            quantity INT NOT NULL DEFAULT 1,
            UNIQUE (cart_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id),
            status TEXT NOT NULL,
            order_date TIMESTAMPTZ NOT NULL,
            delivery_date TIMESTAMPTZ NOT NULL,
            total_price NUMERIC(10,2) NOT NULL DEFAULT 0,
            address TEXT NOT NULL,
            ordered_date TIMESTAMPTZ,
            in_assemble_date TIMESTAMPTZ,
            assembled_date TIMESTAMPTZ,
            in_delivery_date TIMESTAMPTZ,
            delivered_date TIMESTAMPTZ,
            canceled_date TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id INT NOT NULL REFERENCES orders(id),
            product_id INT NOT NULL REFERENCES products(id),
            quantity INT NOT NULL DEFAULT 1
        )`,
		`CREATE TABLE IF NOT EXISTS reports (
            id SERIAL PRIMARY KEY,
            period_start DATE NOT NULL,
            period_end DATE NOT NULL,
            total_orders INT NOT NULL DEFAULT 0,
            total_revenue NUMERIC(12,2) NOT NULL DEFAULT 0,
            on_time_percent DOUBLE PRECISION NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS articles (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            content TEXT NOT NULL,
            category TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

func (s *PostgresStorage) Create(ctx context.Context, u *user.User) error {
	q := `INSERT INTO users (login,password_hash,email,phone,address,created_at)
          VALUES($1,$2,$3,$4,$5,$6) RETURNING id`
	return s.db.QueryRowContext(ctx, q,
		u.Login, u.PasswordHash, u.Email, u.Phone, u.Address, u.CreatedAt,
	).Scan(&u.ID)
}

func (s *PostgresStorage) FindByLogin(ctx context.Context, login string) (*user.User, error) {
	u := &user.User{}
	q := `SELECT id,login,password_hash,email,phone,address,created_at FROM users WHERE login=$1`
	if err := s.db.QueryRowContext(ctx, q, login).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Email, &u.Phone, &u.Address, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return u, nil
}

func (s *PostgresStorage) FindByID(ctx context.Context, id int64) (*user.User, error) {
	u := &user.User{}
	q := `SELECT id,login,password_hash,email,phone,address,created_at FROM users WHERE id=$1`
	if err := s.db.QueryRowContext(ctx, q, id).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Email, &u.Phone, &u.Address, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *PostgresStorage) UpdateProfile(ctx context.Context, u *user.User) error {
	q := `UPDATE users SET login=$1, email=$2, phone=$3, address=$4 WHERE id=$5`
	_, err := s.db.ExecContext(ctx, q, u.Login, u.Email, u.Phone, u.Address, u.ID)
	return err
}

// searchPattern переводит пользовательский запрос в шаблон ILIKE:
// запрос со звёздочками — wildcard-режим (* становится %), без них —
// поиск подстроки.
func searchPattern(search string) string {
	if strings.Contains(search, "*") {
		return strings.ReplaceAll(search, "*", "%")
	}
	return "%" + search + "%"
}

func (s *PostgresStorage) ListProducts(ctx context.Context, f product.Filter) ([]product.Product, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		conds = append(conds, "name ILIKE "+arg(searchPattern(f.Search)))
	}
	if f.Group != "" {
		conds = append(conds, "grp = "+arg(f.Group))
	}
	if f.Subgroup != "" {
		conds = append(conds, "subgroup = "+arg(f.Subgroup))
	}
	if f.FlowerType != "" {
		conds = append(conds, "flower_type = "+arg(f.FlowerType))
	}
	if len(f.Colors) > 0 {
		ph := make([]string, 0, len(f.Colors))
		for _, c := range f.Colors {
			ph = append(ph, arg(c))
		}
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM product_colors pc WHERE pc.product_id = products.id AND pc.color IN (%s))",
			strings.Join(ph, ","),
		))
	}
	if f.IsNew {
		conds = append(conds, "is_new = TRUE")
	}
	if f.IsBestseller {
		conds = append(conds, "is_bestseller = TRUE")
	}
	if f.InStock {
		conds = append(conds, "stock > 0")
	}

	q := `SELECT id, grp, subgroup, flower_type, name, price, image_path,
                 is_new, is_bestseller, stock, created_at
          FROM products`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	switch f.Ordering {
	case "price":
		q += " ORDER BY price"
	case "-price":
		q += " ORDER BY price DESC"
	default:
		q += " ORDER BY id"
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(
			&p.ID, &p.Group, &p.Subgroup, &p.FlowerType, &p.Name, &p.Price,
			&p.ImagePath, &p.IsNew, &p.IsBestseller, &p.Stock, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		colors, err := s.listColors(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Colors = colors
	}
	return out, nil
}

func (s *PostgresStorage) listColors(ctx context.Context, productID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT color FROM product_colors WHERE product_id=$1 ORDER BY color`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var colors []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, rows.Err()
}

func (s *PostgresStorage) FindProduct(ctx context.Context, id int64) (*product.Product, error) {
	var p product.Product
	q := `SELECT id, grp, subgroup, flower_type, name, price, image_path,
                 is_new, is_bestseller, stock, created_at
          FROM products WHERE id=$1`
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.Group, &p.Subgroup, &p.FlowerType, &p.Name, &p.Price,
		&p.ImagePath, &p.IsNew, &p.IsBestseller, &p.Stock, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	colors, err := s.listColors(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Colors = colors
	return &p, nil
}

func (s *PostgresStorage) ListFavorites(ctx context.Context, userID int64) ([]product.Product, error) {
	q := `SELECT p.id, p.grp, p.subgroup, p.flower_type, p.name, p.price, p.image_path,
                 p.is_new, p.is_bestseller, p.stock, p.created_at
          FROM favorites f
          JOIN products p ON p.id = f.product_id
          WHERE f.user_id = $1
          ORDER BY f.created_at DESC`
	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(
			&p.ID, &p.Group, &p.Subgroup, &p.FlowerType, &p.Name, &p.Price,
			&p.ImagePath, &p.IsNew, &p.IsBestseller, &p.Stock, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) FindFavorite(ctx context.Context, userID, productID int64) (*product.Favorite, error) {
	var f product.Favorite
	q := `SELECT id, user_id, product_id, created_at FROM favorites WHERE user_id=$1 AND product_id=$2`
	err := s.db.QueryRowContext(ctx, q, userID, productID).
		Scan(&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *PostgresStorage) CreateFavorite(ctx context.Context, f *product.Favorite) error {
	q := `INSERT INTO favorites (user_id, product_id, created_at) VALUES ($1,$2,$3) RETURNING id`
	return s.db.QueryRowContext(ctx, q, f.UserID, f.ProductID, f.CreatedAt).Scan(&f.ID)
}

func (s *PostgresStorage) DeleteFavorite(ctx context.Context, userID, favoriteID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE id=$1 AND user_id=$2`, favoriteID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *PostgresStorage) ListReviews(ctx context.Context, productID int64) ([]product.Review, error) {
	q := `SELECT r.id, r.user_id, u.login, r.product_id, r.text, r.rating, r.created_at
          FROM reviews r
          JOIN users u ON u.id = r.user_id
          WHERE r.product_id = $1
          ORDER BY r.created_at DESC`
	rows, err := s.db.QueryContext(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Review
	for rows.Next() {
		var r product.Review
		if err := rows.Scan(&r.ID, &r.UserID, &r.UserLogin, &r.ProductID, &r.Text, &r.Rating, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) HasReview(ctx context.Context, userID, productID int64) (bool, error) {
	var exists bool
	q := `SELECT EXISTS (SELECT 1 FROM reviews WHERE user_id=$1 AND product_id=$2)`
	if err := s.db.QueryRowContext(ctx, q, userID, productID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PostgresStorage) CreateReview(ctx context.Context, r *product.Review) error {
	q := `INSERT INTO reviews (user_id, product_id, text, rating, created_at)
          VALUES ($1,$2,$3,$4,$5) RETURNING id`
	return s.db.QueryRowContext(ctx, q, r.UserID, r.ProductID, r.Text, r.Rating, r.CreatedAt).Scan(&r.ID)
}

func (s *PostgresStorage) GetOrCreateCart(ctx context.Context, userID int64) (*cart.Cart, error) {
	c := &cart.Cart{UserID: userID}
	q := `INSERT INTO carts (user_id, created_at) VALUES ($1, NOW())
          ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
          RETURNING id, created_at`
	if err := s.db.QueryRowContext(ctx, q, userID).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, err
	}

	itemsQ := `SELECT ci.id, ci.cart_id, ci.product_id, p.name, p.price, ci.quantity
               FROM cart_items ci
               JOIN products p ON p.id = ci.product_id
               WHERE ci.cart_id = $1
               ORDER BY ci.id`
	rows, err := s.db.QueryContext(ctx, itemsQ, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it cart.Item
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.ProductName, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		c.Items = append(c.Items, it)
	}
	return c, rows.Err()
}

func (s *PostgresStorage) AddCartItem(ctx context.Context, cartID, productID int64, quantity int) error {
	q := `INSERT INTO cart_items (cart_id, product_id, quantity)
          VALUES ($1,$2,$3)
          ON CONFLICT (cart_id, product_id)
          DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`
	_, err := s.db.ExecContext(ctx, q, cartID, productID, quantity)
	return err
}

func (s *PostgresStorage) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error {
	q := `UPDATE cart_items SET quantity=$1
          WHERE id=$2 AND cart_id IN (SELECT id FROM carts WHERE user_id=$3)`
	res, err := s.db.ExecContext(ctx, q, quantity, itemID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *PostgresStorage) DeleteCartItem(ctx context.Context, userID, itemID int64) error {
	q := `DELETE FROM cart_items
          WHERE id=$1 AND cart_id IN (SELECT id FROM carts WHERE user_id=$2)`
	res, err := s.db.ExecContext(ctx, q, itemID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *PostgresStorage) ClearCart(ctx context.Context, cartID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID)
	return err
}

func (s *PostgresStorage) CreateOrderFromCart(ctx context.Context, o *order.Order, c *cart.Cart) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	q := `INSERT INTO orders
            (user_id, status, order_date, delivery_date, total_price, address, ordered_date)
          VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`
	if err := tx.QueryRowContext(ctx, q,
		o.UserID, o.Status, o.OrderDate, o.DeliveryDate, o.TotalPrice, o.Address, o.OrderedDate,
	).Scan(&o.ID); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range c.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity) VALUES ($1,$2,$3)`,
			o.ID, it.ProductID, it.Quantity,
		); err != nil {
			return fmt.Errorf("copy cart item: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, c.ID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return tx.Commit()
}

const orderColumns = `
    o.id, o.user_id, o.status, o.order_date, o.delivery_date, o.total_price, o.address,
    o.ordered_date, o.in_assemble_date, o.assembled_date,
    o.in_delivery_date, o.delivered_date, o.canceled_date,
    u.login, u.phone, u.address`

func scanOrder(row interface{ Scan(...any) error }) (*order.Order, error) {
	var (
		o                                                    order.Order
		ordered, inAssemble, assembled, inDelivery, canceled sql.NullTime
		delivered                                            sql.NullTime
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.Status, &o.OrderDate, &o.DeliveryDate, &o.TotalPrice, &o.Address,
		&ordered, &inAssemble, &assembled, &inDelivery, &delivered, &canceled,
		&o.CustomerLogin, &o.CustomerPhone, &o.CustomerAddress,
	)
	if err != nil {
		return nil, err
	}
	setIf := func(dst **time.Time, nt sql.NullTime) {
		if nt.Valid {
			t := nt.Time
			*dst = &t
		}
	}
	setIf(&o.OrderedDate, ordered)
	setIf(&o.InAssembleDate, inAssemble)
	setIf(&o.AssembledDate, assembled)
	setIf(&o.InDeliveryDate, inDelivery)
	setIf(&o.DeliveredDate, delivered)
	setIf(&o.CanceledDate, canceled)
	return &o, nil
}

func (s *PostgresStorage) FindOrder(ctx context.Context, id int64) (*order.Order, error) {
	q := `SELECT ` + orderColumns + `
          FROM orders o JOIN users u ON u.id = o.user_id
          WHERE o.id = $1`
	return scanOrder(s.db.QueryRowContext(ctx, q, id))
}

func (s *PostgresStorage) listOrders(ctx context.Context, q string, args ...any) ([]order.Order, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) ListOrdersByUser(ctx context.Context, userID int64) ([]order.Order, error) {
	q := `SELECT ` + orderColumns + `
          FROM orders o JOIN users u ON u.id = o.user_id
          WHERE o.user_id = $1
          ORDER BY o.order_date DESC`
	return s.listOrders(ctx, q, userID)
}

func (s *PostgresStorage) ListActiveOrders(ctx context.Context) ([]order.Order, error) {
	q := `SELECT ` + orderColumns + `
          FROM orders o JOIN users u ON u.id = o.user_id
          WHERE o.status NOT IN ('delivered','canceled')
          ORDER BY o.order_date DESC`
	return s.listOrders(ctx, q)
}

func (s *PostgresStorage) ListOrderItems(ctx context.Context, orderID int64) ([]order.Item, error) {
	q := `SELECT oi.id, oi.order_id, oi.product_id, p.name, p.price, p.image_path, oi.quantity
          FROM order_items oi
          JOIN products p ON p.id = oi.product_id
          WHERE oi.order_id = $1
          ORDER BY oi.id`
	rows, err := s.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Item
	for rows.Next() {
		var it order.Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Price, &it.ImagePath, &it.Quantity); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) UpdateOrderStatus(ctx context.Context, o *order.Order) error {
	q := `UPDATE orders SET
            status=$1,
            ordered_date=$2, in_assemble_date=$3, assembled_date=$4,
            in_delivery_date=$5, delivered_date=$6, canceled_date=$7
          WHERE id=$8`
	_, err := s.db.ExecContext(ctx, q,
		o.Status,
		o.OrderedDate, o.InAssembleDate, o.AssembledDate,
		o.InDeliveryDate, o.DeliveredDate, o.CanceledDate,
		o.ID,
	)
	return err
}

func (s *PostgresStorage) GetPeriodStats(ctx context.Context, start, end time.Time) (*stats.PeriodStats, error) {
	const q = `
        SELECT COUNT(id),
               COALESCE(SUM(total_price), 0),
               COUNT(CASE WHEN status = 'delivered' THEN 1 END),
               COUNT(CASE WHEN status = 'delivered' AND delivered_date <= delivery_date THEN 1 END)
        FROM orders
        WHERE order_date >= $1 AND order_date <= $2 AND status <> 'canceled'`
	ps := &stats.PeriodStats{}
	if err := s.db.QueryRowContext(ctx, q, start, end).Scan(
		&ps.TotalOrders, &ps.TotalAmount, &ps.DeliveredTotal, &ps.DeliveredOnTime,
	); err != nil {
		return nil, err
	}
	return ps, nil
}

func (s *PostgresStorage) SaveReport(ctx context.Context, r *analytics.Report) error {
	const q = `
        INSERT INTO reports (period_start, period_end, total_orders, total_revenue, on_time_percent, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`
	return s.db.QueryRowContext(ctx, q,
		r.PeriodStart, r.PeriodEnd, r.TotalOrders, r.TotalRevenue, r.OnTimePercent, r.CreatedAt,
	).Scan(&r.ID)
}

func (s *PostgresStorage) ListReports(ctx context.Context) ([]analytics.Report, error) {
	const q = `
        SELECT id, period_start, period_end, total_orders, total_revenue, on_time_percent, created_at
        FROM reports ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.Report
	for rows.Next() {
		var r analytics.Report
		if err := rows.Scan(
			&r.ID, &r.PeriodStart, &r.PeriodEnd, &r.TotalOrders,
			&r.TotalRevenue, &r.OnTimePercent, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) FindArticleByCategory(ctx context.Context, category string) (*content.Article, error) {
	a := &content.Article{}
	q := `SELECT id, title, content, category, created_at FROM articles WHERE category=$1 LIMIT 1`
	err := s.db.QueryRowContext(ctx, q, category).
		Scan(&a.ID, &a.Title, &a.Content, &a.Category, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}
