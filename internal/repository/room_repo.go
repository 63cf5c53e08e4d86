package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"museumguide/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	tx := r.db.WithContext(ctx).Preload("Museum").Preload("Objects").First(&room, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &room, nil
}

func (r *RoomRepository) List(ctx context.Context, scope domain.Scope) ([]domain.Room, error) {
	if scope.Empty() {
		return []domain.Room{}, nil
	}

	q := r.db.WithContext(ctx).Preload("Museum").Preload("Objects").Order("id")
	if !scope.All {
		q = q.Where("museum_id = ?", scope.MuseumID)
	}

	var rooms []domain.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RoomRepository) ListByMuseum(ctx context.Context, museumID int64) ([]domain.Room, error) {
	var rooms []domain.Room
	tx := r.db.WithContext(ctx).Where("museum_id = ?", museumID).Order("id").Find(&rooms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rooms, nil
}

// FindByTitle looks a room up by its exact title within one museum.
func (r *RoomRepository) FindByTitle(ctx context.Context, museumID int64, title string) (*domain.Room, error) {
	var room domain.Room
	tx := r.db.WithContext(ctx).
		Where("museum_id = ? AND title = ?", museumID, strings.TrimSpace(title)).
		First(&room)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &room, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	tx := r.db.WithContext(ctx).Model(&domain.Room{ID: room.ID}).Updates(map[string]any{
		"museum_id":   room.MuseumID,
		"title":       room.Title,
		"description": room.Description,
		"photo":       room.Photo,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the room together with its objects.
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.First(&domain.Room{}, id)
		if res.Error != nil {
			return res.Error
		}
		if err := tx.Where("room_id = ?", id).Delete(&domain.Object{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Room{}, id).Error
	})
}
