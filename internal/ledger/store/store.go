package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/till/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// itemRow is the JSON shape of an order line in orders.items.
type itemRow struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

const selectMovementColumns = `
	o.id, o.restaurant_id, o.created_at, o.order_type, o.payment_method,
	o.total, o.items, o.status, o.customer_name
`

// scanMovement reads an orders row. NULL columns become zero values and
// unreadable items are dropped so one bad row never hides the whole report.
func scanMovement(s scanner) (*ledger.Movement, error) {
	var m ledger.Movement

	var typeStr, statusStr string

	var payment, customer sql.NullString

	var items []byte

	if err := s.Scan(
		&m.ID, &m.RestaurantID, &m.CreatedAt, &typeStr, &payment,
		&m.Total, &items, &statusStr, &customer,
	); err != nil {
		return nil, err
	}

	m.Type = ledger.MovementType(typeStr)
	m.Status = ledger.Status(statusStr)
	m.PaymentMethod = ledger.PaymentMethod(payment.String)
	m.CustomerName = customer.String
	m.Items = decodeItems(items)

	return &m, nil
}

func decodeItems(raw []byte) []ledger.Item {
	if len(raw) == 0 {
		return nil
	}

	var rows []itemRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		slog.Warn("ignoring unreadable order items", "error", err)
		return nil
	}

	if len(rows) == 0 {
		return nil
	}

	items := make([]ledger.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, ledger.Item{Name: r.Name, Quantity: r.Quantity, Price: r.Price})
	}

	return items
}

func encodeItems(items []ledger.Item) ([]byte, error) {
	rows := make([]itemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, itemRow{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}

	return json.Marshal(rows)
}

// listQuery builds the orders query for filter. To is exclusive.
func listQuery(filter ledger.ListFilter) (string, []any) {
	query := `SELECT ` + selectMovementColumns + `
		FROM orders o
		WHERE o.restaurant_id = $1`

	args := []any{filter.RestaurantID}

	argIdx := 2

	if filter.From != nil {
		query += fmt.Sprintf(" AND o.created_at >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND o.created_at < $%d", argIdx)

		args = append(args, *filter.To)
		argIdx++
	}

	if filter.ExcludeCancelled {
		query += fmt.Sprintf(" AND o.status <> $%d", argIdx)

		args = append(args, ledger.StatusCancelled)
	}

	query += " ORDER BY o.created_at ASC"

	return query, args
}

func (s *Store) ListMovements(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Movement, error) {
	query, args := listQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	defer rows.Close()

	var movements []*ledger.Movement

	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}

		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movement rows: %w", err)
	}

	return movements, nil
}

func (s *Store) AppendMovement(ctx context.Context, m *ledger.Movement) error {
	items, err := encodeItems(m.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	query := `
		INSERT INTO orders (restaurant_id, order_type, payment_method, total, items, status, customer_name, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''), NOW())
		RETURNING id, created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		m.RestaurantID,
		m.Type,
		m.PaymentMethod,
		m.Total,
		items,
		m.Status,
		m.CustomerName,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending movement: %w", err)
	}

	return nil
}
