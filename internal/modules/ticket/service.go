package ticket

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"museumguide/internal/domain"
)

// createAttempts bounds how often Create retries after losing the
// check-then-insert race on the code unique index.
const createAttempts = 5

var codePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Service is the ticket lifecycle engine: issuance, lazy status derivation
// and the admin CRUD surface. A ticket has two states, active and expired,
// and the transition is one-way.
type Service struct {
	tickets  TicketRepository
	museums  MuseumReader
	validity time.Duration
	now      func() time.Time
}

func NewService(tickets TicketRepository, museums MuseumReader, validity time.Duration) *Service {
	return &Service{
		tickets:  tickets,
		museums:  museums,
		validity: validity,
		now:      time.Now,
	}
}

// Validity exposes the configured window (purchase to expiry).
func (s *Service) Validity() time.Duration { return s.validity }

// Create issues a ticket for the museum: fresh unique code, purchase time
// now, expiration one validity window later, status active. If the insert
// loses the code uniqueness race it draws a new code and retries.
func (s *Service) Create(ctx context.Context, museumID int64) (*domain.Ticket, error) {
	if _, err := s.museums.GetByID(ctx, museumID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMuseumNotFound
		}
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		code, err := GenerateCode(ctx, s.tickets)
		if err != nil {
			return nil, err
		}

		purchase := s.now()
		t := &domain.Ticket{
			MuseumID:       museumID,
			Code:           code,
			PurchaseTime:   purchase,
			ExpirationTime: purchase.Add(s.validity),
			Status:         domain.TicketActive,
		}

		err = s.tickets.Create(ctx, t)
		if err == nil {
			return t, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// EvaluateStatus derives the ticket's current status and persists the
// active->expired transition when the window has elapsed. Expired is
// terminal, so re-evaluation never flips a ticket back. The persisted write
// is conditional on the row still being active, which makes it idempotent
// with the background sweep.
func (s *Service) EvaluateStatus(ctx context.Context, t *domain.Ticket, now time.Time) (domain.TicketStatus, error) {
	if t.Status == domain.TicketExpired {
		return domain.TicketExpired, nil
	}

	if now.Sub(t.PurchaseTime) > s.validity {
		if err := s.tickets.MarkExpired(ctx, t.ID); err != nil {
			return "", err
		}
		t.Status = domain.TicketExpired
		return domain.TicketExpired, nil
	}

	return domain.TicketActive, nil
}

// IsValid reports whether the ticket still grants guide access at the given
// instant.
func (s *Service) IsValid(ctx context.Context, t *domain.Ticket, now time.Time) (bool, error) {
	status, err := s.EvaluateStatus(ctx, t, now)
	if err != nil {
		return false, err
	}
	return status == domain.TicketActive, nil
}

// VerifyByCode resolves a visitor-supplied code into a ticket. An unknown
// code is ErrInvalidTicket; a known but lapsed one is ErrExpiredTicket with
// the ticket still returned so callers can show its details.
func (s *Service) VerifyByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	t, err := s.tickets.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTicket
		}
		return nil, err
	}

	valid, err := s.IsValid(ctx, t, s.now())
	if err != nil {
		return nil, err
	}
	if !valid {
		return t, ErrExpiredTicket
	}
	return t, nil
}

// List returns the tickets visible in the caller's scope, each with its
// status re-derived so the dashboard never shows a stale "active".
func (s *Service) List(ctx context.Context, scope domain.Scope) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range tickets {
		if _, err := s.EvaluateStatus(ctx, &tickets[i], now); err != nil {
			return nil, err
		}
	}
	return tickets, nil
}

func (s *Service) Get(ctx context.Context, id int64, scope domain.Scope) (*domain.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !scope.All && t.MuseumID != scope.MuseumID {
		return nil, ErrNotFound
	}

	if _, err := s.EvaluateStatus(ctx, t, s.now()); err != nil {
		return nil, err
	}
	return t, nil
}

// Update is the explicit admin override: every field is replaced after
// validation. This is the only path that may edit a ticket after creation.
func (s *Service) Update(ctx context.Context, id int64, req UpdateTicketRequest, scope domain.Scope) (*domain.Ticket, error) {
	t, err := s.Get(ctx, id, scope)
	if err != nil {
		return nil, err
	}

	if !codePattern.MatchString(req.Code) {
		return nil, ErrValidation
	}
	status := domain.TicketStatus(req.Status)
	if status != domain.TicketActive && status != domain.TicketExpired {
		return nil, ErrValidation
	}
	if !req.ExpirationTime.After(req.PurchaseTime) {
		return nil, ErrValidation
	}
	if _, err := s.museums.GetByID(ctx, req.MuseumID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMuseumNotFound
		}
		return nil, err
	}

	t.MuseumID = req.MuseumID
	t.Code = req.Code
	t.PurchaseTime = req.PurchaseTime
	t.ExpirationTime = req.ExpirationTime
	t.Status = status

	if err := s.tickets.Update(ctx, t); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrValidation
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id int64, scope domain.Scope) error {
	if _, err := s.Get(ctx, id, scope); err != nil {
		return err
	}
	return s.tickets.Delete(ctx, id)
}

// MuseumsForScope backs the museum picker on the ticket form: a superadmin
// chooses among all museums, an admin sees only their own.
func (s *Service) MuseumsForScope(ctx context.Context, scope domain.Scope) ([]domain.Museum, error) {
	return s.museums.List(ctx, scope)
}

// Sweep is the periodic consistency backstop: it bulk-expires every active
// ticket whose validity window has fully elapsed.
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	return s.tickets.ExpireOlderThan(ctx, s.now().Add(-s.validity))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// modernc sqlite has no typed error for this
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
