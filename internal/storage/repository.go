package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"grafica/internal/core"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- services ---

func (r *SQLiteRepository) CreateService(ctx context.Context, s core.Service) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO services (id, name, description, price_cents, active) VALUES (?, ?, ?, ?, ?)`,
		id, s.Name, s.Description, s.Price.Cents, boolToInt(s.Active))
	if err != nil {
		return "", fmt.Errorf("create service: %w", err)
	}

	slog.InfoContext(ctx, "Service saved", "id", id, "name", s.Name, "price_cents", s.Price.Cents)
	return id, nil
}

func (r *SQLiteRepository) ListServices(ctx context.Context, activeOnly bool) ([]core.Service, error) {
	query := `SELECT id, name, description, price_cents, active FROM services ORDER BY name`
	if activeOnly {
		query = `SELECT id, name, description, price_cents, active FROM services WHERE active = 1 ORDER BY name`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []core.Service
	for rows.Next() {
		var s core.Service
		var active int
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price.Cents, &active); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		s.Active = active != 0
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *SQLiteRepository) GetService(ctx context.Context, id string) (core.Service, error) {
	var s core.Service
	var active int
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, price_cents, active FROM services WHERE id = ?`, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.Price.Cents, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Service{}, ErrNotFound
	}
	if err != nil {
		return core.Service{}, fmt.Errorf("get service: %w", err)
	}
	s.Active = active != 0
	return s, nil
}

func (r *SQLiteRepository) UpdateService(ctx context.Context, s core.Service) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE services SET name = ?, description = ?, price_cents = ?, active = ? WHERE id = ?`,
		s.Name, s.Description, s.Price.Cents, boolToInt(s.Active), s.ID)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteService(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return requireRow(res)
}

// --- orders ---

func (r *SQLiteRepository) CreateOrder(ctx context.Context, o core.Order) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (id, order_name, customer_name, service_id, amount_cents, received_date, delivery_date, status, paid)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, o.OrderName, o.CustomerName, nullable(o.ServiceID), o.Amount.Cents,
		o.ReceivedDate.Format(dateLayout), formatOptionalDate(o.DeliveryDate), o.Status, boolToInt(o.Paid))
	if err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}

	slog.InfoContext(ctx, "Order saved",
		"id", id,
		"order_name", o.OrderName,
		"customer_name", o.CustomerName,
		"amount_cents", o.Amount.Cents,
		"paid", o.Paid)
	return id, nil
}

func (r *SQLiteRepository) ListOrders(ctx context.Context) ([]core.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_name, customer_name, COALESCE(service_id, ''), amount_cents, received_date, COALESCE(delivery_date, ''), status, paid
		 FROM orders ORDER BY received_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []core.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *SQLiteRepository) GetOrder(ctx context.Context, id string) (core.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, order_name, customer_name, COALESCE(service_id, ''), amount_cents, received_date, COALESCE(delivery_date, ''), status, paid
		 FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Order{}, ErrNotFound
	}
	return o, err
}

func (r *SQLiteRepository) UpdateOrder(ctx context.Context, o core.Order) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET order_name = ?, customer_name = ?, service_id = ?, amount_cents = ?, received_date = ?, delivery_date = ?, status = ?, paid = ?
		 WHERE id = ?`,
		o.OrderName, o.CustomerName, nullable(o.ServiceID), o.Amount.Cents,
		o.ReceivedDate.Format(dateLayout), formatOptionalDate(o.DeliveryDate), o.Status, boolToInt(o.Paid), o.ID)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteOrder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return requireRow(res)
}

// --- transactions ---

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, type, amount_cents, description, date, service_id) VALUES (?, ?, ?, ?, ?, ?)`,
		id, string(t.Type), t.Amount.Cents, t.Description, t.Date.Format(dateLayout), nullable(t.ServiceID))
	if err != nil {
		return "", fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"transaction_type", string(t.Type),
		"amount_cents", t.Amount.Cents)
	return id, nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, amount_cents, description, date, COALESCE(service_id, '')
		 FROM transactions ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var typ, date string
		if err := rows.Scan(&t.ID, &typ, &t.Amount.Cents, &t.Description, &date, &t.ServiceID); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = core.TransactionType(typ)
		d, err := core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parse transaction date %q: %w", date, err)
		}
		t.Date = d
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res)
}

// --- helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (core.Order, error) {
	var o core.Order
	var received, delivery string
	var paid int
	err := row.Scan(&o.ID, &o.OrderName, &o.CustomerName, &o.ServiceID, &o.Amount.Cents,
		&received, &delivery, &o.Status, &paid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Order{}, err
		}
		return core.Order{}, fmt.Errorf("scan order: %w", err)
	}
	o.Paid = paid != 0

	d, err := core.ParseDate(received)
	if err != nil {
		return core.Order{}, fmt.Errorf("parse received date %q: %w", received, err)
	}
	o.ReceivedDate = d
	if delivery != "" {
		if d, err := core.ParseDate(delivery); err == nil {
			o.DeliveryDate = d
		}
	}
	return o, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func formatOptionalDate(d core.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Format(dateLayout)
}
