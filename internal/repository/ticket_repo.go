package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"museumguide/internal/domain"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	var t domain.Ticket
	tx := r.db.WithContext(ctx).Preload("Museum").First(&t, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &t, nil
}

func (r *TicketRepository) GetByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	var t domain.Ticket
	tx := r.db.WithContext(ctx).Where("code = ?", code).First(&t)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &t, nil
}

func (r *TicketRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("code = ?", code).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *TicketRepository) List(ctx context.Context, scope domain.Scope) ([]domain.Ticket, error) {
	if scope.Empty() {
		return []domain.Ticket{}, nil
	}

	q := r.db.WithContext(ctx).Preload("Museum").Order("id")
	if !scope.All {
		q = q.Where("museum_id = ?", scope.MuseumID)
	}

	var tickets []domain.Ticket
	if err := q.Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *TicketRepository) Update(ctx context.Context, t *domain.Ticket) error {
	tx := r.db.WithContext(ctx).Model(&domain.Ticket{ID: t.ID}).Updates(map[string]any{
		"museum_id":       t.MuseumID,
		"code":            t.Code,
		"purchase_time":   t.PurchaseTime,
		"expiration_time": t.ExpirationTime,
		"status":          string(t.Status),
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Ticket{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkExpired flips a single ticket to expired, conditioned on it still being
// active. The condition makes the lazy evaluation and the sweep idempotent
// with each other: whichever writer gets there first wins, the other is a
// no-op.
func (r *TicketRepository) MarkExpired(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("id = ? AND status = ?", id, string(domain.TicketActive)).
		Update("status", string(domain.TicketExpired)).Error
}

// ExpireOlderThan is the sweep: every still-active ticket purchased at or
// before the cutoff becomes expired. Returns the number of rows flipped.
func (r *TicketRepository) ExpireOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("status = ? AND purchase_time <= ?", string(domain.TicketActive), cutoff).
		Update("status", string(domain.TicketExpired))
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
