package ticket

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"museumguide/internal/domain"
)

/* ==================== MOCKS ==================== */

type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	args := m.Called(ctx, t)
	if t != nil && args.Error(0) == nil {
		t.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockTicketRepository) List(ctx context.Context, scope domain.Scope) ([]domain.Ticket, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Update(ctx context.Context, t *domain.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTicketRepository) MarkExpired(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTicketRepository) ExpireOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockMuseumReader struct {
	mock.Mock
}

func (m *MockMuseumReader) GetByID(ctx context.Context, id int64) (*domain.Museum, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Museum), args.Error(1)
}

func (m *MockMuseumReader) List(ctx context.Context, scope domain.Scope) ([]domain.Museum, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Museum), args.Error(1)
}

func newTestService(tickets TicketRepository, museums MuseumReader, at time.Time) *Service {
	s := NewService(tickets, museums, 24*time.Hour)
	s.now = func() time.Time { return at }
	return s
}

/* ==================== CODE GENERATION ==================== */

func TestGenerateCode_TenDigits(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	mockTickets.On("CodeExists", mock.Anything, mock.Anything).Return(false, nil)

	code, err := GenerateCode(context.Background(), mockTickets)

	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9]{10}$`), code)
}

func TestGenerateCode_ResamplesOnCollision(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	mockTickets.On("CodeExists", mock.Anything, mock.Anything).Return(true, nil).Once()
	mockTickets.On("CodeExists", mock.Anything, mock.Anything).Return(false, nil).Once()

	code, err := GenerateCode(context.Background(), mockTickets)

	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9]{10}$`), code)
	mockTickets.AssertNumberOfCalls(t, "CodeExists", 2)
}

/* ==================== CREATE ==================== */

func TestService_Create_Success(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	mockMuseums := new(MockMuseumReader)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mockMuseums.On("GetByID", mock.Anything, int64(7)).Return(&domain.Museum{ID: 7, Title: "Louvre"}, nil)
	mockTickets.On("CodeExists", mock.Anything, mock.Anything).Return(false, nil)
	mockTickets.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockTickets, mockMuseums, now)

	tk, err := service.Create(context.Background(), 7)

	assert.NoError(t, err)
	assert.NotNil(t, tk)
	assert.Equal(t, int64(7), tk.MuseumID)
	assert.Regexp(t, regexp.MustCompile(`^[0-9]{10}$`), tk.Code)
	assert.Equal(t, domain.TicketActive, tk.Status)
	assert.Equal(t, now, tk.PurchaseTime)
	assert.Equal(t, now.Add(24*time.Hour), tk.ExpirationTime)
	assert.True(t, tk.ExpirationTime.After(tk.PurchaseTime))
}

func TestService_Create_MuseumNotFound(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	mockMuseums := new(MockMuseumReader)

	mockMuseums.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(mockTickets, mockMuseums, time.Now())

	tk, err := service.Create(context.Background(), 42)

	assert.ErrorIs(t, err, ErrMuseumNotFound)
	assert.Nil(t, tk)
	mockTickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_RetriesOnUniqueViolation(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	mockMuseums := new(MockMuseumReader)

	mockMuseums.On("GetByID", mock.Anything, int64(7)).Return(&domain.Museum{ID: 7}, nil)
	mockTickets.On("CodeExists", mock.Anything, mock.Anything).Return(false, nil)
	// first insert loses the check-then-insert race, second succeeds
	mockTickets.On("Create", mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "23505"}).Once()
	mockTickets.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	service := newTestService(mockTickets, mockMuseums, time.Now())

	tk, err := service.Create(context.Background(), 7)

	assert.NoError(t, err)
	assert.NotNil(t, tk)
	mockTickets.AssertNumberOfCalls(t, "Create", 2)
}

/* ==================== STATUS DERIVATION ==================== */

func TestService_EvaluateStatus_WithinWindow(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	purchased := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	service := newTestService(mockTickets, new(MockMuseumReader), purchased)
	tk := &domain.Ticket{ID: 1, Status: domain.TicketActive, PurchaseTime: purchased}

	status, err := service.EvaluateStatus(context.Background(), tk, purchased.Add(23*time.Hour+59*time.Minute))

	assert.NoError(t, err)
	assert.Equal(t, domain.TicketActive, status)
	mockTickets.AssertNotCalled(t, "MarkExpired", mock.Anything, mock.Anything)
}

func TestService_EvaluateStatus_ExactlyAtWindow_StillActive(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	purchased := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	service := newTestService(mockTickets, new(MockMuseumReader), purchased)
	tk := &domain.Ticket{ID: 1, Status: domain.TicketActive, PurchaseTime: purchased}

	// elapsed == window is not yet past it
	status, err := service.EvaluateStatus(context.Background(), tk, purchased.Add(24*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, domain.TicketActive, status)
}

func TestService_EvaluateStatus_AfterWindow_ExpiresAndPersists(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	purchased := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	mockTickets.On("MarkExpired", mock.Anything, int64(1)).Return(nil)

	service := newTestService(mockTickets, new(MockMuseumReader), purchased)
	tk := &domain.Ticket{ID: 1, Status: domain.TicketActive, PurchaseTime: purchased}

	status, err := service.EvaluateStatus(context.Background(), tk, purchased.Add(24*time.Hour+time.Minute))

	assert.NoError(t, err)
	assert.Equal(t, domain.TicketExpired, status)
	assert.Equal(t, domain.TicketExpired, tk.Status)
	mockTickets.AssertCalled(t, "MarkExpired", mock.Anything, int64(1))
}

func TestService_EvaluateStatus_ExpiredIsTerminal(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	purchased := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	service := newTestService(mockTickets, new(MockMuseumReader), purchased)
	tk := &domain.Ticket{ID: 1, Status: domain.TicketExpired, PurchaseTime: purchased}

	// re-evaluating with any later now never reverts to active and never
	// writes again
	for _, offset := range []time.Duration{time.Minute, 25 * time.Hour, 100 * 24 * time.Hour} {
		status, err := service.EvaluateStatus(context.Background(), tk, purchased.Add(offset))
		assert.NoError(t, err)
		assert.Equal(t, domain.TicketExpired, status)
	}
	mockTickets.AssertNotCalled(t, "MarkExpired", mock.Anything, mock.Anything)
}

func TestService_IsValid_Lifecycle(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	mockTickets.On("MarkExpired", mock.Anything, int64(1)).Return(nil)

	purchased := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	service := newTestService(mockTickets, new(MockMuseumReader), purchased)
	tk := &domain.Ticket{ID: 1, MuseumID: 7, Status: domain.TicketActive, PurchaseTime: purchased}

	valid, err := service.IsValid(context.Background(), tk, purchased)
	assert.NoError(t, err)
	assert.True(t, valid)

	valid, err = service.IsValid(context.Background(), tk, purchased.Add(23*time.Hour+59*time.Minute))
	assert.NoError(t, err)
	assert.True(t, valid)

	valid, err = service.IsValid(context.Background(), tk, purchased.Add(24*time.Hour+time.Minute))
	assert.NoError(t, err)
	assert.False(t, valid)
	assert.Equal(t, domain.TicketExpired, tk.Status)
}

/* ==================== VERIFY BY CODE ==================== */

func TestService_VerifyByCode_UnknownCode(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	mockTickets.On("GetByCode", mock.Anything, "0000000000").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(mockTickets, new(MockMuseumReader), time.Now())

	tk, err := service.VerifyByCode(context.Background(), "0000000000")

	assert.ErrorIs(t, err, ErrInvalidTicket)
	assert.Nil(t, tk)
}

func TestService_VerifyByCode_ExpiredIsDistinctFromInvalid(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	purchased := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	now := purchased.Add(48 * time.Hour)

	mockTickets.On("GetByCode", mock.Anything, "1234567890").Return(&domain.Ticket{
		ID:           5,
		MuseumID:     7,
		Code:         "1234567890",
		PurchaseTime: purchased,
		Status:       domain.TicketExpired,
	}, nil)

	service := newTestService(mockTickets, new(MockMuseumReader), now)

	tk, err := service.VerifyByCode(context.Background(), "1234567890")

	assert.ErrorIs(t, err, ErrExpiredTicket)
	assert.NotErrorIs(t, err, ErrInvalidTicket)
	assert.NotNil(t, tk, "expired ticket is still returned for display")
}

func TestService_VerifyByCode_Active(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	purchased := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	mockTickets.On("GetByCode", mock.Anything, "1234567890").Return(&domain.Ticket{
		ID:           5,
		MuseumID:     7,
		Code:         "1234567890",
		PurchaseTime: purchased,
		Status:       domain.TicketActive,
	}, nil)

	service := newTestService(mockTickets, new(MockMuseumReader), purchased.Add(time.Hour))

	tk, err := service.VerifyByCode(context.Background(), "1234567890")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), tk.MuseumID)
}

/* ==================== ADMIN CRUD ==================== */

func TestService_Get_OutsideScope(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	mockTickets.On("GetByID", mock.Anything, int64(5)).Return(&domain.Ticket{
		ID:       5,
		MuseumID: 7,
		Status:   domain.TicketExpired,
	}, nil)

	service := newTestService(mockTickets, new(MockMuseumReader), time.Now())

	tk, err := service.Get(context.Background(), 5, domain.ScopeMuseum(8))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, tk)
}

func TestService_Update_ExpirationMustFollowPurchase(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	mockTickets.On("GetByID", mock.Anything, int64(5)).Return(&domain.Ticket{
		ID:       5,
		MuseumID: 7,
		Status:   domain.TicketExpired,
	}, nil)

	service := newTestService(mockTickets, new(MockMuseumReader), time.Now())

	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	_, err := service.Update(context.Background(), 5, UpdateTicketRequest{
		MuseumID:       7,
		Code:           "1234567890",
		Status:         "active",
		PurchaseTime:   at,
		ExpirationTime: at, // not strictly after
	}, domain.ScopeAll())

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Update_RejectsUnknownStatus(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	mockTickets.On("GetByID", mock.Anything, int64(5)).Return(&domain.Ticket{
		ID:       5,
		MuseumID: 7,
		Status:   domain.TicketExpired,
	}, nil)

	service := newTestService(mockTickets, new(MockMuseumReader), time.Now())

	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	_, err := service.Update(context.Background(), 5, UpdateTicketRequest{
		MuseumID:       7,
		Code:           "1234567890",
		Status:         "no active", // the label the old sweep used; no longer a status
		PurchaseTime:   at,
		ExpirationTime: at.Add(24 * time.Hour),
	}, domain.ScopeAll())

	assert.ErrorIs(t, err, ErrValidation)
}

/* ==================== SWEEP ==================== */

func TestService_Sweep_UsesValidityCutoff(t *testing.T) {
	mockTickets := new(MockTicketRepository)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	mockTickets.On("ExpireOlderThan", mock.Anything, now.Add(-24*time.Hour)).Return(int64(3), nil)

	service := newTestService(mockTickets, new(MockMuseumReader), now)

	n, err := service.Sweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
