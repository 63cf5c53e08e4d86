package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"museumguide/internal/domain"
)

type ObjectRepository struct {
	db *gorm.DB
}

func NewObjectRepository(db *gorm.DB) *ObjectRepository {
	return &ObjectRepository{db: db}
}

func (r *ObjectRepository) Create(ctx context.Context, o *domain.Object) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *ObjectRepository) GetByID(ctx context.Context, id int64) (*domain.Object, error) {
	var o domain.Object
	tx := r.db.WithContext(ctx).Preload("Room").First(&o, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &o, nil
}

func (r *ObjectRepository) List(ctx context.Context, scope domain.Scope) ([]domain.Object, error) {
	if scope.Empty() {
		return []domain.Object{}, nil
	}

	q := r.db.WithContext(ctx).Preload("Room").Order("objects.id")
	if !scope.All {
		q = q.Joins("JOIN rooms ON rooms.id = objects.room_id").
			Where("rooms.museum_id = ?", scope.MuseumID)
	}

	var objects []domain.Object
	if err := q.Find(&objects).Error; err != nil {
		return nil, err
	}
	return objects, nil
}

func (r *ObjectRepository) ListByRoom(ctx context.Context, roomID int64) ([]domain.Object, error) {
	var objects []domain.Object
	tx := r.db.WithContext(ctx).Where("room_id = ?", roomID).Order("id").Find(&objects)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return objects, nil
}

// FindByTitleInRooms does the visitor-facing exhibit lookup: case-insensitive
// title match across the given rooms. Duplicate titles are not prevented
// anywhere, so the first match (lowest id) wins.
func (r *ObjectRepository) FindByTitleInRooms(ctx context.Context, roomIDs []int64, title string) (*domain.Object, error) {
	if len(roomIDs) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var o domain.Object
	tx := r.db.WithContext(ctx).
		Where("room_id IN ?", roomIDs).
		Where("LOWER(title) = ?", strings.ToLower(strings.TrimSpace(title))).
		Order("id").
		First(&o)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &o, nil
}

func (r *ObjectRepository) Update(ctx context.Context, o *domain.Object) error {
	tx := r.db.WithContext(ctx).Model(&domain.Object{ID: o.ID}).Updates(map[string]any{
		"room_id":     o.RoomID,
		"title":       o.Title,
		"description": o.Description,
		"photo":       o.Photo,
		"audio":       o.Audio,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ObjectRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Object{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
