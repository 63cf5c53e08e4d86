package admin

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"museumguide/internal/domain"
	"museumguide/internal/repository"
)

// Service is the superadmin user management surface.
type Service struct {
	users   *repository.UserRepository
	museums *repository.MuseumRepository
}

func NewService(users *repository.UserRepository, museums *repository.MuseumRepository) *Service {
	return &Service{users: users, museums: museums}
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	role := domain.Role(req.Role)
	if err := s.checkRoleAndMuseum(ctx, role, req.MuseumID); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Name:         req.Name,
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
		PasswordHash: string(hash),
		Role:         role,
		MuseumID:     req.MuseumID,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*domain.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	role := domain.Role(req.Role)
	if err := s.checkRoleAndMuseum(ctx, role, req.MuseumID); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email != u.Email {
		exists, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailTaken
		}
	}

	u.Name = req.Name
	u.Email = email
	u.Role = role
	u.MuseumID = req.MuseumID
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// checkRoleAndMuseum enforces the role/museum pairing: admins belong to
// exactly one existing museum, superadmins to none.
func (s *Service) checkRoleAndMuseum(ctx context.Context, role domain.Role, museumID *int64) error {
	switch role {
	case domain.RoleAdmin:
		if museumID == nil || *museumID <= 0 {
			return ErrMuseumRequired
		}
		if _, err := s.museums.GetByID(ctx, *museumID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMuseumNotFound
			}
			return err
		}
	case domain.RoleSuperadmin:
		if museumID != nil {
			return ErrMuseumForbidden
		}
	default:
		return ErrInvalidRole
	}
	return nil
}
