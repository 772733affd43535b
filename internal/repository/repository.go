package repository

import (
	"context"

	"github.com/omkarh25/som/internal/models"
)

// Transactions reads and creates rows of the transactions table.
type Transactions interface {
	FindAll(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	FindByID(ctx context.Context, trno int64) (*models.Transaction, error)
	Create(ctx context.Context, tx *models.Transaction) error
}

type Accounts interface {
	FindAll(ctx context.Context, filter models.AccountFilter) ([]models.Account, error)
	FindByAccID(ctx context.Context, accid string) (*models.Account, error)
}

type FreedomEntries interface {
	FindAll(ctx context.Context, filter models.FreedomFilter) ([]models.Freedom, error)
}

// Session is a scoped handle on the record store. Close must be called on
// every path once the caller is done.
type Session interface {
	Transactions() Transactions
	Accounts() Accounts
	Freedom() FreedomEntries
	Close() error
}

// Store hands out sessions.
type Store interface {
	Session(ctx context.Context) (Session, error)
	Ping(ctx context.Context) error
}
