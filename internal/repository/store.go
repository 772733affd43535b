package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Queryer is the subset of sqlx shared by *sqlx.DB and *sqlx.Conn.
type Queryer interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SQLStore serves sessions from a sqlx connection pool. Each session holds
// one pooled connection until it is closed.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Session(ctx context.Context) (Session, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return &sqlSession{conn: conn, driverName: s.db.DriverName()}, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type sqlSession struct {
	conn       *sqlx.Conn
	driverName string
}

func (s *sqlSession) Transactions() Transactions {
	return NewTransactionRepository(s.conn, s.driverName)
}

func (s *sqlSession) Accounts() Accounts {
	return NewAccountRepository(s.conn, s.driverName)
}

func (s *sqlSession) Freedom() FreedomEntries {
	return NewFreedomRepository(s.conn, s.driverName)
}

func (s *sqlSession) Close() error {
	return s.conn.Close()
}
