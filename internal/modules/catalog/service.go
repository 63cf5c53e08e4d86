package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"museumguide/internal/domain"
	"museumguide/internal/repository"
)

// Service owns the admin-facing CRUD over the content hierarchy. Every read
// is filtered through the caller's scope; every write checks that the target
// museum belongs to the caller's scope first.
type Service struct {
	museumRepo *repository.MuseumRepository
	roomRepo   *repository.RoomRepository
	objectRepo *repository.ObjectRepository
}

func NewService(
	museumRepo *repository.MuseumRepository,
	roomRepo *repository.RoomRepository,
	objectRepo *repository.ObjectRepository,
) *Service {
	return &Service{museumRepo, roomRepo, objectRepo}
}

func (s *Service) inScope(scope domain.Scope, museumID int64) bool {
	return scope.All || scope.MuseumID == museumID
}

/* ---------- MUSEUMS ---------- */

func (s *Service) ListMuseums(ctx context.Context, scope domain.Scope) ([]domain.Museum, error) {
	return s.museumRepo.List(ctx, scope)
}

func (s *Service) GetMuseum(ctx context.Context, id int64, scope domain.Scope) (*domain.Museum, error) {
	if !s.inScope(scope, id) {
		return nil, ErrNotFound
	}

	m, err := s.museumRepo.GetByIDWithRooms(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) CreateMuseum(ctx context.Context, req CreateMuseumRequest) (*domain.Museum, error) {
	m := &domain.Museum{
		Title:       req.Title,
		Description: req.Description,
		Photo:       req.Photo,
	}
	if err := s.museumRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) UpdateMuseum(ctx context.Context, id int64, req UpdateMuseumRequest) (*domain.Museum, error) {
	m := &domain.Museum{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Photo:       req.Photo,
	}
	if err := s.museumRepo.Update(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.museumRepo.GetByID(ctx, id)
}

func (s *Service) DeleteMuseum(ctx context.Context, id int64) error {
	if err := s.museumRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

/* ---------- ROOMS ---------- */

func (s *Service) ListRooms(ctx context.Context, scope domain.Scope) ([]domain.Room, error) {
	return s.roomRepo.List(ctx, scope)
}

func (s *Service) GetRoom(ctx context.Context, id int64, scope domain.Scope) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.inScope(scope, room.MuseumID) {
		return nil, ErrNotFound
	}
	return room, nil
}

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest, scope domain.Scope) (*domain.Room, error) {
	if !s.inScope(scope, req.MuseumID) {
		return nil, ErrForbidden
	}
	if _, err := s.museumRepo.GetByID(ctx, req.MuseumID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMuseumNotFound
		}
		return nil, err
	}

	room := &domain.Room{
		MuseumID:    req.MuseumID,
		Title:       req.Title,
		Description: req.Description,
		Photo:       req.Photo,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest, scope domain.Scope) (*domain.Room, error) {
	if _, err := s.GetRoom(ctx, id, scope); err != nil {
		return nil, err
	}
	if !s.inScope(scope, req.MuseumID) {
		return nil, ErrForbidden
	}
	if _, err := s.museumRepo.GetByID(ctx, req.MuseumID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMuseumNotFound
		}
		return nil, err
	}

	room := &domain.Room{
		ID:          id,
		MuseumID:    req.MuseumID,
		Title:       req.Title,
		Description: req.Description,
		Photo:       req.Photo,
	}
	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}
	return s.roomRepo.GetByID(ctx, id)
}

func (s *Service) DeleteRoom(ctx context.Context, id int64, scope domain.Scope) error {
	if _, err := s.GetRoom(ctx, id, scope); err != nil {
		return err
	}
	return s.roomRepo.Delete(ctx, id)
}

/* ---------- OBJECTS ---------- */

func (s *Service) ListObjects(ctx context.Context, scope domain.Scope) ([]domain.Object, error) {
	return s.objectRepo.List(ctx, scope)
}

func (s *Service) GetObject(ctx context.Context, id int64, scope domain.Scope) (*domain.Object, error) {
	o, err := s.objectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	room, err := s.roomRepo.GetByID(ctx, o.RoomID)
	if err != nil {
		return nil, err
	}
	if !s.inScope(scope, room.MuseumID) {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *Service) CreateObject(ctx context.Context, req CreateObjectRequest, scope domain.Scope) (*domain.Object, error) {
	room, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !s.inScope(scope, room.MuseumID) {
		return nil, ErrForbidden
	}

	o := &domain.Object{
		RoomID:      req.RoomID,
		Title:       req.Title,
		Description: req.Description,
		Photo:       req.Photo,
		Audio:       req.Audio,
	}
	if err := s.objectRepo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) UpdateObject(ctx context.Context, id int64, req UpdateObjectRequest, scope domain.Scope) (*domain.Object, error) {
	if _, err := s.GetObject(ctx, id, scope); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !s.inScope(scope, room.MuseumID) {
		return nil, ErrForbidden
	}

	o := &domain.Object{
		ID:          id,
		RoomID:      req.RoomID,
		Title:       req.Title,
		Description: req.Description,
		Photo:       req.Photo,
		Audio:       req.Audio,
	}
	if err := s.objectRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	return s.objectRepo.GetByID(ctx, id)
}

func (s *Service) DeleteObject(ctx context.Context, id int64, scope domain.Scope) error {
	if _, err := s.GetObject(ctx, id, scope); err != nil {
		return err
	}
	return s.objectRepo.Delete(ctx, id)
}
