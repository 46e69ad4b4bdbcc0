package admin

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"EShop/internal/order"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 5 * time.Second
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) ListProducts(ctx context.Context, limit, offset int) ([]ProductRow, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.description, p.price_cents, p.image_url, p.stock,
		       p.is_active, COALESCE(p.category_id, ''), p.created_at, COALESCE(c.name, '')
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.created_at DESC, p.id ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]ProductRow, 0, limit)
	for rows.Next() {
		var p ProductRow
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.ImageURL,
			&p.Stock, &p.IsActive, &p.CategoryID, &p.CreatedAt, &p.CategoryName); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (s *PostgresStore) CreateProduct(ctx context.Context, id string, in ProductInput) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price_cents, image_url, stock, is_active, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
	`, id, in.Name, in.Description, in.PriceCents, in.ImageURL, in.Stock, in.IsActive, in.CategoryID)
	return err
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, id string, in ProductInput) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, price_cents = $4, image_url = $5,
		    stock = $6, is_active = $7, category_id = NULLIF($8, '')
		WHERE id = $1
	`, id, in.Name, in.Description, in.PriceCents, in.ImageURL, in.Stock, in.IsActive, in.CategoryID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]CategoryRow, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, COALESCE(c.description, ''), COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id, c.name, c.description
		ORDER BY c.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CategoryRow, 0, 16)
	for rows.Next() {
		var c CategoryRow
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ProductCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CreateCategory(ctx context.Context, id string, in CategoryInput) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, description)
		VALUES ($1, $2, $3)
	`, id, in.Name, in.Description)
	return err
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, id string, in CategoryInput) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET name = $2, description = $3 WHERE id = $1
	`, id, in.Name, in.Description)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var inUse int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = $1`, id,
	).Scan(&inUse); err != nil {
		return false, err
	}
	if inUse > 0 {
		return false, ErrCategoryInUse
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *PostgresStore) ListOrders(ctx context.Context, limit, offset int) ([]OrderSummary, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.customer_name, COALESCE(u.email, ''),
		       o.total_cents, o.status, o.created_at
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC, o.id ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]OrderSummary, 0, limit)
	for rows.Next() {
		var o OrderSummary
		if err := rows.Scan(&o.ID, &o.UserID, &o.CustomerName, &o.CustomerEmail,
			&o.TotalCents, &o.Status, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (s *PostgresStore) GetOrder(ctx context.Context, id string) (order.Order, bool, error) {
	// Same read the customer surface does, without the ownership check.
	return order.NewPostgresStore(s.db).Get(ctx, id)
}

func (s *PostgresStore) UpdateOrderStatus(ctx context.Context, id, status string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *PostgresStore) ListUsers(ctx context.Context, query string, limit, offset int) ([]User, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cond := "TRUE"
	args := []any{}
	if query != "" {
		args = append(args, "%"+strings.ToLower(query)+"%")
		cond = "(LOWER(email) LIKE $1 OR LOWER(full_name) LIKE $1)"
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE "+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(args, limit, offset)
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, email, COALESCE(full_name, ''), COALESCE(phone, ''), is_admin, created_at
		FROM users
		WHERE %s
		ORDER BY created_at DESC, id ASC
		LIMIT $%d OFFSET $%d
	`, cond, len(args)+1, len(args)+2), pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]User, 0, limit)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Phone, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id string, upd UserUpdate) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET full_name = COALESCE($2, full_name),
		    phone     = COALESCE($3, phone),
		    is_admin  = COALESCE($4, is_admin)
		WHERE id = $1
	`, id, upd.FullName, upd.Phone, upd.IsAdmin)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *PostgresStore) GetUserStats(ctx context.Context) (UserStats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var st UserStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_admin),
		       COUNT(*) FILTER (WHERE created_at >= date_trunc('month', now()))
		FROM users
	`).Scan(&st.Total, &st.Admins, &st.NewThisMonth)
	return st, err
}

func (s *PostgresStore) GetTotals(ctx context.Context) (Totals, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var t Totals
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COALESCE(SUM(total_cents), 0) FROM orders WHERE status = 'completed'),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM products WHERE is_active),
			(SELECT COUNT(*) FROM users)
	`).Scan(&t.RevenueCents, &t.Orders, &t.Products, &t.Users)
	return t, err
}

func (s *PostgresStore) SalesByDay(ctx context.Context, days int) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD'), SUM(total_cents)
		FROM orders
		WHERE created_at >= now() - make_interval(days => $1)
		GROUP BY 1
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[string]int64, days)
	for rows.Next() {
		var (
			day string
			sum int64
		)
		if err := rows.Scan(&day, &sum); err != nil {
			return nil, err
		}
		sums[day] = sum
	}
	return sums, rows.Err()
}

func (s *PostgresStore) CategoryDistribution(ctx context.Context) ([]CategoryCount, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id AND p.is_active
		GROUP BY c.id, c.name
		ORDER BY COUNT(p.id) DESC, c.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CategoryCount, 0, 16)
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Products); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) PopularProducts(ctx context.Context, limit int) ([]PopularProduct, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT oi.product_id, oi.name, SUM(oi.qty)
		FROM order_items oi
		GROUP BY oi.product_id, oi.name
		ORDER BY SUM(oi.qty) DESC, oi.product_id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PopularProduct, 0, limit)
	for rows.Next() {
		var p PopularProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.UnitsSold); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
