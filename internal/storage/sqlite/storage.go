package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"courtbook/internal/model"
	"courtbook/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS day_record (
	date TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS user (
	name       TEXT PRIMARY KEY,
	id         TEXT NOT NULL,
	password   TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

// Storage is a SQLite-backed implementation of the storage interface.
// Day records are stored in their wire form, one row per date.
type Storage struct {
	db *sql.DB
}

// New opens (or creates) the database at path and ensures the schema
func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB creates a Storage over an existing database handle (for testing)
func NewWithDB(db *sql.DB) (*Storage, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Day record operations

func (s *Storage) SaveDay(ctx context.Context, record *model.DayRecord) error {
	data, err := record.ToStorageForm()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO day_record (date, data) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET data = excluded.data`,
		string(record.Date), string(data),
	)
	return err
}

func (s *Storage) GetDay(ctx context.Context, date model.DateKey) (*model.DayRecord, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM day_record WHERE date = ?", string(date),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrDayNotFound
	}
	if err != nil {
		return nil, err
	}

	return model.DayRecordFromStorageForm(date, []byte(data))
}

func (s *Storage) DeleteDay(ctx context.Context, date model.DateKey) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM day_record WHERE date = ?", string(date))
	return err
}

func (s *Storage) ListDates(ctx context.Context) ([]model.DateKey, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT date FROM day_record")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var dates []model.DateKey
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, model.DateKey(date))
	}
	return dates, rows.Err()
}

// User directory operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user (name, id, password, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			id = excluded.id,
			password = excluded.password,
			created_at = excluded.created_at`,
		user.Name, string(user.ID), user.Password, user.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Storage) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	var id, createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT name, id, password, created_at FROM user WHERE name = ?", name,
	).Scan(&user.Name, &id, &user.Password, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user.ID = model.UserID(id)
	// A mangled timestamp is not worth failing a lookup over
	user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &user, nil
}
