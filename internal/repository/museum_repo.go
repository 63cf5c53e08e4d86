package repository

import (
	"context"

	"gorm.io/gorm"

	"museumguide/internal/domain"
)

type MuseumRepository struct {
	db *gorm.DB
}

func NewMuseumRepository(db *gorm.DB) *MuseumRepository {
	return &MuseumRepository{db: db}
}

func (r *MuseumRepository) Create(ctx context.Context, m *domain.Museum) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MuseumRepository) GetByID(ctx context.Context, id int64) (*domain.Museum, error) {
	var m domain.Museum
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &m, nil
}

func (r *MuseumRepository) GetByIDWithRooms(ctx context.Context, id int64) (*domain.Museum, error) {
	var m domain.Museum
	tx := r.db.WithContext(ctx).Preload("Rooms").First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &m, nil
}

func (r *MuseumRepository) List(ctx context.Context, scope domain.Scope) ([]domain.Museum, error) {
	if scope.Empty() {
		return []domain.Museum{}, nil
	}

	q := r.db.WithContext(ctx).Preload("Rooms").Order("id")
	if !scope.All {
		q = q.Where("id = ?", scope.MuseumID)
	}

	var museums []domain.Museum
	if err := q.Find(&museums).Error; err != nil {
		return nil, err
	}
	return museums, nil
}

func (r *MuseumRepository) Update(ctx context.Context, m *domain.Museum) error {
	tx := r.db.WithContext(ctx).Model(&domain.Museum{ID: m.ID}).Updates(map[string]any{
		"title":       m.Title,
		"description": m.Description,
		"photo":       m.Photo,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the museum and everything reachable from it: rooms, those
// rooms' objects, and tickets. SQLite does not always enforce the declared
// FK cascade, so the subtree is deleted explicitly in one transaction.
func (r *MuseumRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.First(&domain.Museum{}, id)
		if res.Error != nil {
			return res.Error
		}

		if err := tx.Where("room_id IN (?)",
			tx.Model(&domain.Room{}).Select("id").Where("museum_id = ?", id),
		).Delete(&domain.Object{}).Error; err != nil {
			return err
		}
		if err := tx.Where("museum_id = ?", id).Delete(&domain.Room{}).Error; err != nil {
			return err
		}
		if err := tx.Where("museum_id = ?", id).Delete(&domain.Ticket{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Museum{}, id).Error
	})
}

func (r *MuseumRepository) DB() *gorm.DB {
	return r.db
}
