package ticket

import (
	"context"
	"time"

	"museumguide/internal/domain"
)

// TicketRepository — only the storage operations the lifecycle engine uses.
type TicketRepository interface {
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetByCode(ctx context.Context, code string) (*domain.Ticket, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, scope domain.Scope) ([]domain.Ticket, error)
	Update(ctx context.Context, t *domain.Ticket) error
	Delete(ctx context.Context, id int64) error
	MarkExpired(ctx context.Context, id int64) error
	ExpireOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// MuseumReader gives the engine read access to the museum table for the
// existence check on create and the scoped museum list for the ticket form.
type MuseumReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Museum, error)
	List(ctx context.Context, scope domain.Scope) ([]domain.Museum, error)
}
