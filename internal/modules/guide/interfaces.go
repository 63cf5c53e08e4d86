package guide

import (
	"context"

	"museumguide/internal/domain"
)

// TicketVerifier gates every guide endpoint: a visitor presents only a code,
// never credentials.
type TicketVerifier interface {
	VerifyByCode(ctx context.Context, code string) (*domain.Ticket, error)
}

type RoomReader interface {
	ListByMuseum(ctx context.Context, museumID int64) ([]domain.Room, error)
	FindByTitle(ctx context.Context, museumID int64, title string) (*domain.Room, error)
}

type ObjectReader interface {
	ListByRoom(ctx context.Context, roomID int64) ([]domain.Object, error)
	FindByTitleInRooms(ctx context.Context, roomIDs []int64, title string) (*domain.Object, error)
}
