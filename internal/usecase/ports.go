package usecase

import (
	"context"

	domain "orderintake/internal/entity"
)

// OrderQueue is the submission-side port to the message queue.
// Implementations must be durable and safe for concurrent use.
type OrderQueue interface {
	PublishSubmitted(ctx context.Context, msg OrderSubmittedMsg) error
}

// OrderStore is the persistence port for orders. Upsert must be a pure
// overwrite keyed by id: redelivered messages may upsert the same order
// more than once and must never create a second record.
type OrderStore interface {
	Upsert(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	UpdateStatusIf(ctx context.Context, id string, from, to domain.Status) (bool, error)
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// StatusCache is a best-effort read cache; callers ignore its errors.
type StatusCache interface {
	SetStatus(ctx context.Context, orderID, status string) error
	GetStatus(ctx context.Context, orderID string) (string, error)
}

// Persistence shapes for the catalog collaborators (kept out of domain).
type CustomerRecord struct {
	ID, Name, Email string
}

type ProductRecord struct {
	ID, Name  string
	UnitPrice float64
}

type CustomerRepo interface {
	Create(ctx context.Context, c *CustomerRecord) error
	GetByID(ctx context.Context, id string) (*CustomerRecord, error)
	List(ctx context.Context) ([]*CustomerRecord, error)
}

type ProductRepo interface {
	Create(ctx context.Context, p *ProductRecord) error
	GetByID(ctx context.Context, id string) (*ProductRecord, error)
	List(ctx context.Context) ([]*ProductRecord, error)
}
