package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"storefront/config"
	"storefront/models"
)

type OrderRepository struct{}

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// statusFlow holds the forward moves an order may take. Delivered and
// cancelled are terminal.
var statusFlow = map[string][]string{
	"pending":    {"processing", "cancelled"},
	"processing": {"shipped", "cancelled"},
	"shipped":    {"delivered"},
	"delivered":  {},
	"cancelled":  {},
}

// ValidStatusTransition reports whether an order may move from one
// status to the other.
func ValidStatusTransition(from, to string) bool {
	for _, next := range statusFlow[from] {
		if next == to {
			return true
		}
	}
	return false
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create inserts the order and its items in one transaction, checking
// and decrementing stock per line. The whole order fails if any line
// cannot be fulfilled.
func (r *OrderRepository) Create(order *models.Order) error {
	ctx := context.Background()
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (order_number, user_id, subtotal, discount, tax, total, currency, status, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11) RETURNING id, created_at, updated_at`,
		order.OrderNumber, order.UserID, order.Subtotal, order.Discount, order.Tax, order.Total,
		order.Currency, order.Status, order.Notes, now, now,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]

		tag, err := tx.Exec(ctx,
			"UPDATE products SET stock = stock - $1 WHERE id=$2 AND stock >= $1",
			item.Quantity, item.ProductID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w for product %d", ErrInsufficientStock, item.ProductID)
		}

		item.OrderID = order.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, quantity, price, total)
			VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
			item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.Price, item.Total,
		).Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const orderColumns = `id, order_number, user_id, subtotal, discount, tax, total, currency, status, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Subtotal, &o.Discount, &o.Tax,
		&o.Total, &o.Currency, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByID(id int) (*models.Order, error) {
	order, err := scanOrder(config.DB.QueryRow(context.Background(),
		"SELECT "+orderColumns+" FROM orders WHERE id=$1", id))
	if err != nil {
		return nil, err
	}

	rows, err := config.DB.Query(context.Background(),
		`SELECT id, order_id, product_id, product_name, quantity, price, total
		FROM order_items WHERE order_id=$1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.Price, &item.Total); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	return order, rows.Err()
}

func (r *OrderRepository) GetByUser(userID, page, limit int) ([]models.Order, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := config.DB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM orders WHERE user_id=$1", userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := config.DB.Query(context.Background(),
		"SELECT "+orderColumns+" FROM orders WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}

func (r *OrderRepository) GetAll(page, limit int, status string) ([]models.Order, int, error) {
	offset := (page - 1) * limit

	where := ""
	countArgs := []interface{}{}
	listArgs := []interface{}{limit, offset}
	if status != "" {
		where = " WHERE status=$1"
		countArgs = append(countArgs, status)
		listArgs = []interface{}{status, limit, offset}
	}

	var total int
	if err := config.DB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM orders"+where, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := "SELECT " + orderColumns + " FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2"
	if status != "" {
		listQuery = "SELECT " + orderColumns + " FROM orders WHERE status=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3"
	}

	rows, err := config.DB.Query(context.Background(), listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}

// UpdateStatus moves an order one step along the pending, processing,
// shipped, delivered flow. Cancelling is allowed until shipment and
// restores the reserved stock; moves outside the flow are rejected
// with ErrInvalidTransition.
func (r *OrderRepository) UpdateStatus(id int, status string) error {
	ctx := context.Background()
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var current string
	err = tx.QueryRow(ctx, "SELECT status FROM orders WHERE id=$1 FOR UPDATE", id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return err
	}

	if current == status {
		return tx.Commit(ctx)
	}
	if !ValidStatusTransition(current, status) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current, status)
	}

	if status == "cancelled" {
		if _, err := tx.Exec(ctx,
			`UPDATE products p SET stock = p.stock + oi.quantity
			FROM order_items oi WHERE oi.order_id=$1 AND oi.product_id=p.id`, id); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx,
		"UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3", status, time.Now(), id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

type DashboardStats struct {
	TotalRevenue   float64          `json:"total_revenue"`
	TotalOrders    int              `json:"total_orders"`
	TotalProducts  int              `json:"total_products"`
	TotalCustomers int              `json:"total_customers"`
	MonthlyRevenue []MonthlyRevenue `json:"monthly_revenue"`
}

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

func (r *OrderRepository) GetDashboardStats() (*DashboardStats, error) {
	ctx := context.Background()
	stats := &DashboardStats{MonthlyRevenue: []MonthlyRevenue{}}

	err := config.DB.QueryRow(ctx,
		"SELECT COALESCE(SUM(total), 0), COUNT(*) FROM orders WHERE status <> 'cancelled'").
		Scan(&stats.TotalRevenue, &stats.TotalOrders)
	if err != nil {
		return nil, err
	}

	if err := config.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM products WHERE is_active=true").Scan(&stats.TotalProducts); err != nil {
		return nil, err
	}

	if err := config.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM users WHERE role='customer'").Scan(&stats.TotalCustomers); err != nil {
		return nil, err
	}

	rows, err := config.DB.Query(ctx,
		`SELECT TO_CHAR(DATE_TRUNC('month', created_at), 'Mon YYYY'), COALESCE(SUM(total), 0)
		FROM orders WHERE status <> 'cancelled' AND created_at > NOW() - INTERVAL '12 months'
		GROUP BY DATE_TRUNC('month', created_at) ORDER BY DATE_TRUNC('month', created_at)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.Revenue); err != nil {
			return nil, err
		}
		stats.MonthlyRevenue = append(stats.MonthlyRevenue, m)
	}
	return stats, rows.Err()
}
