// Package archive persists placed orders to postgres for the seller
// dashboard. Archiving is best-effort from the storefront's point of
// view: a failed write never blocks checkout.
package archive

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrOrderNotFound  = errors.New("archived order not found")
	ErrDuplicateOrder = errors.New("order with this number already archived")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type OutboxEvent struct {
	ID          int
	AggregateID string
	EventType   string
	Payload     json.RawMessage
	CreatedAt   time.Time
}
