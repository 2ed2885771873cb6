package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-tracker/internal/config"
)

type Storage struct {
	DB     *sql.DB
	db     bob.DB
	Reader *Reader
}

func NewStorage(env *config.Config) (*Storage, error) {
	return Open(env.PostgresURL())
}

// Open connects to the lib/pq data source url.
func Open(url string) (*Storage, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	return NewStorageFromDB(db), nil
}

func NewStorageFromDB(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		DB:     db,
		db:     bobDB,
		Reader: NewReader(bobDB),
	}
}

// Write begins a transaction. The caller must Commit or Rollback the Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(tx)
	return &writer, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
