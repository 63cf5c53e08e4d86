package guide

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"museumguide/internal/domain"
)

// Service is the anonymous visitor guide: every operation takes a ticket code
// in place of authentication and is confined to the museum that ticket was
// issued for.
type Service struct {
	tickets TicketVerifier
	rooms   RoomReader
	objects ObjectReader
}

func NewService(tickets TicketVerifier, rooms RoomReader, objects ObjectReader) *Service {
	return &Service{tickets: tickets, rooms: rooms, objects: objects}
}

// Rooms lists the rooms of the ticket's museum.
func (s *Service) Rooms(ctx context.Context, code string) ([]domain.Room, error) {
	t, err := s.tickets.VerifyByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.rooms.ListByMuseum(ctx, t.MuseumID)
}

// RoomObjects lists the objects of the room with the given title inside the
// ticket's museum.
func (s *Service) RoomObjects(ctx context.Context, code, roomTitle string) ([]domain.Object, error) {
	t, err := s.tickets.VerifyByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.FindByTitle(ctx, t.MuseumID, roomTitle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return s.objects.ListByRoom(ctx, room.ID)
}

// ObjectDetails finds an object by title anywhere in the ticket's museum. The
// title match is case-insensitive and searches every room of the museum.
func (s *Service) ObjectDetails(ctx context.Context, code, objectTitle string) (*domain.Object, error) {
	t, err := s.tickets.VerifyByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListByMuseum(ctx, t.MuseumID)
	if err != nil {
		return nil, err
	}
	roomIDs := make([]int64, 0, len(rooms))
	for _, r := range rooms {
		roomIDs = append(roomIDs, r.ID)
	}

	o, err := s.objects.FindByTitleInRooms(ctx, roomIDs, objectTitle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return o, nil
}
