package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/ecommerce_backend/internal/logging"
	"github.com/Skotchmaster/ecommerce_backend/internal/models"
	"github.com/Skotchmaster/ecommerce_backend/internal/repo"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	Repo *repo.GormRepo
}

// Register creates a user with a unique email. The lookup gives the clean
// conflict answer; the unique index on users.email catches the race where
// two registrations pass the lookup at the same time.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		l.Warn("register_failed", "reason", "email_taken")
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{Email: email, Password: password}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Warn("register_failed", "reason", "email_taken")
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	l.Info("register_success", "userID", user.ID)
	return user, nil
}

// Login compares the stored password byte for byte. Credential storage is
// an external concern for this service; nothing is hashed here.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown_email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password != password {
		l.Warn("login_failed", "reason", "password_mismatch")
		return nil, ErrInvalidCredentials
	}

	l.Info("login_success", "userID", user.ID)
	return user, nil
}

func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	return s.Repo.GetUsers(ctx)
}
