package memory

import (
	"context"
	"sync"

	"courtbook/internal/model"
	"courtbook/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	days  map[model.DateKey]*model.DayRecord
	users map[string]*model.User
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		days:  make(map[model.DateKey]*model.DayRecord),
		users: make(map[string]*model.User),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Day record operations

func (s *Storage) SaveDay(ctx context.Context, record *model.DayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[record.Date] = record.Clone()
	return nil
}

func (s *Storage) GetDay(ctx context.Context, date model.DateKey) (*model.DayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.days[date]
	if !ok {
		return nil, model.ErrDayNotFound
	}
	return record.Clone(), nil
}

func (s *Storage) DeleteDay(ctx context.Context, date model.DateKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.days, date)
	return nil
}

func (s *Storage) ListDates(ctx context.Context) ([]model.DateKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dates := make([]model.DateKey, 0, len(s.days))
	for date := range s.days {
		dates = append(dates, date)
	}
	return dates, nil
}

// User directory operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *user
	s.users[user.Name] = &cp
	return nil
}

func (s *Storage) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[name]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}
