package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/lib/pq"
	_ "github.com/lib/pq"

	"github.com/urbanwear/storefront/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	log.Println("connected to postgres")
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "storefront_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

// ArchiveOrder writes the order row and its outbox event in one
// transaction, so an archived order always has an event waiting for the
// publisher.
func (r *Repository) ArchiveOrder(ctx context.Context, draft *domain.OrderDraft) error {
	itemsJSON, err := json.Marshal(draft.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal order payload: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `INSERT INTO orders
		(order_number, customer_name, customer_email, customer_phone, address, city,
		 subtotal, delivery_fee, total, payment_method, payment_status, items, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, insertErr := tx.ExecContext(ctx, orderQuery,
		draft.OrderNumber,
		draft.CustomerName,
		draft.CustomerEmail,
		draft.CustomerPhone,
		draft.Address,
		draft.City,
		draft.Subtotal,
		draft.DeliveryFee,
		draft.Total,
		draft.PaymentMethod,
		draft.PaymentStatus,
		itemsJSON,
		draft.CreatedAt)
	if insertErr != nil {
		var pqErr *pq.Error
		if errors.As(insertErr, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateOrder
		}
		return fmt.Errorf("insert order: %w", insertErr)
	}

	eventQuery := `INSERT INTO outbox_events (aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, NOW())`
	if _, eventErr := tx.ExecContext(ctx, eventQuery,
		draft.OrderNumber, "OrderPlaced", payload); eventErr != nil {
		return fmt.Errorf("insert outbox event: %w", eventErr)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive tx: %w", err)
	}
	return nil
}

func (r *Repository) GetOrder(ctx context.Context, orderNumber string) (*domain.OrderDraft, error) {
	query := `SELECT order_number, customer_name, customer_email, customer_phone, address, city,
		subtotal, delivery_fee, total, payment_method, payment_status, items, created_at
		FROM orders WHERE order_number = $1`

	var draft domain.OrderDraft
	var itemsJSON []byte
	err := r.db.QueryRowContext(ctx, query, orderNumber).Scan(
		&draft.OrderNumber,
		&draft.CustomerName,
		&draft.CustomerEmail,
		&draft.CustomerPhone,
		&draft.Address,
		&draft.City,
		&draft.Subtotal,
		&draft.DeliveryFee,
		&draft.Total,
		&draft.PaymentMethod,
		&draft.PaymentStatus,
		&itemsJSON,
		&draft.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by number: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &draft.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}

	return &draft, nil
}

func (r *Repository) ListOrders(ctx context.Context, limit int) ([]*domain.OrderDraft, error) {
	query := `SELECT order_number, customer_name, customer_email, customer_phone, address, city,
		subtotal, delivery_fee, total, payment_method, payment_status, items, created_at
		FROM orders ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.OrderDraft
	for rows.Next() {
		var draft domain.OrderDraft
		var itemsJSON []byte
		if err := rows.Scan(
			&draft.OrderNumber,
			&draft.CustomerName,
			&draft.CustomerEmail,
			&draft.CustomerPhone,
			&draft.Address,
			&draft.City,
			&draft.Subtotal,
			&draft.DeliveryFee,
			&draft.Total,
			&draft.PaymentMethod,
			&draft.PaymentStatus,
			&itemsJSON,
			&draft.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &draft.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
		orders = append(orders, &draft)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	query := `SELECT id, aggregate_id, event_type, payload, created_at
		FROM outbox_events WHERE processed_at IS NULL ORDER BY id LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query unprocessed events: %w", err)
	}
	defer rows.Close()

	var events []*OutboxEvent
	for rows.Next() {
		var ev OutboxEvent
		if err := rows.Scan(&ev.ID, &ev.AggregateID, &ev.EventType, &ev.Payload, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		events = append(events, &ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark event processed: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
