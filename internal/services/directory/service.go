package directory

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"courtbook/internal/dependencies/clock"
	"courtbook/internal/model"
	"courtbook/internal/storage"
)

// ErrInvalidCredentials is returned for a wrong name or password.
// The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid name or password")

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 4

// Service is the user directory: identity records keyed by name
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a directory service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// demoUsers are the fixed accounts ensured at first run
var demoUsers = []model.User{
	{ID: "demo001", Name: "山田太郎", Password: "0000"},
	{ID: "demo002", Name: "佐藤花子", Password: "0000"},
}

// SeedDemoUsers idempotently ensures the demo accounts exist. Existing
// entries with matching names are never overwritten.
func (s *Service) SeedDemoUsers(ctx context.Context) error {
	for _, demo := range demoUsers {
		_, err := s.storage.GetUserByName(ctx, demo.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, model.ErrUserNotFound) {
			return err
		}

		user := demo
		user.CreatedAt = s.clock.Now()
		if err := s.storage.SaveUser(ctx, &user); err != nil {
			return err
		}
		s.logger.Info("seeded demo user", slog.String("name", user.Name))
	}
	return nil
}

// Upsert inserts or replaces the record keyed by user.Name.
// Last write wins; callers wanting uniqueness must check first.
func (s *Service) Upsert(ctx context.Context, user *model.User) error {
	return s.storage.SaveUser(ctx, user)
}

// FindByName looks up a user by exact, case-sensitive name
func (s *Service) FindByName(ctx context.Context, name string) (*model.User, error) {
	return s.storage.GetUserByName(ctx, name)
}

// Register creates a new user. An existing name is rejected with
// ErrDuplicateUser before anything is written.
func (s *Service) Register(ctx context.Context, name, password string) (*model.User, error) {
	if len([]rune(password)) < MinPasswordLength {
		return nil, model.ErrPasswordTooShort
	}

	_, err := s.storage.GetUserByName(ctx, name)
	if err == nil {
		return nil, model.ErrDuplicateUser
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	user := &model.User{
		ID:        model.UserID(uuid.NewString()),
		Name:      name,
		Password:  password,
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", slog.String("name", name))
	return user, nil
}

// Authenticate checks a name/password pair against the directory
func (s *Service) Authenticate(ctx context.Context, name, password string) (*model.User, error) {
	user, err := s.storage.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password != password {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
