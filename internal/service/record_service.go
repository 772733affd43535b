package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/omkarh25/som/internal/apperror"
	"github.com/omkarh25/som/internal/cache"
	"github.com/omkarh25/som/internal/models"
	"github.com/omkarh25/som/internal/repository"
	"github.com/omkarh25/som/internal/schema"
)

// RecordService runs the list, lookup and create operations over the
// record store. Every call holds one store session and releases it before
// returning.
type RecordService struct {
	store  repository.Store
	cache  *cache.LookupCache
	logger *logrus.Logger
}

func NewRecordService(store repository.Store, lookupCache *cache.LookupCache, logger *logrus.Logger) *RecordService {
	return &RecordService{
		store:  store,
		cache:  lookupCache,
		logger: logger,
	}
}

// withSession acquires a session, runs fn and releases the session on every
// path. Failures other than not-found come back as *apperror.StoreError.
func (s *RecordService) withSession(ctx context.Context, op string, fn func(repository.Session) error) error {
	session, err := s.store.Session(ctx)
	if err != nil {
		return apperror.Store(op, err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			s.logger.WithError(err).WithField("op", op).Warn("Failed to release store session")
		}
	}()

	return apperror.Store(op, fn(session))
}

func (s *RecordService) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	if err := filter.Page.Validate(); err != nil {
		return nil, err
	}

	var rows []models.Transaction
	err := s.withSession(ctx, "list transactions", func(session repository.Session) error {
		var err error
		rows, err = session.Transactions().FindAll(ctx, filter)
		return err
	})
	return rows, err
}

func (s *RecordService) GetTransaction(ctx context.Context, trno int64) (*models.Transaction, error) {
	key := cache.Key(schema.Transactions, trno)
	var cached models.Transaction
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	var tx *models.Transaction
	err := s.withSession(ctx, "get transaction", func(session repository.Session) error {
		var err error
		tx, err = session.Transactions().FindByID(ctx, trno)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, tx)
	return tx, nil
}

// CreateTransaction persists in and returns the stored row, read back so
// that any rounding the store applies is visible to the caller. When the
// read-back fails the row as written is returned.
func (s *RecordService) CreateTransaction(ctx context.Context, in models.TransactionCreate) (*models.Transaction, error) {
	tx := in.ToTransaction()

	var created *models.Transaction
	err := s.withSession(ctx, "create transaction", func(session repository.Session) error {
		repo := session.Transactions()
		if err := repo.Create(ctx, &tx); err != nil {
			return err
		}
		stored, err := repo.FindByID(ctx, tx.TrNo)
		if err != nil {
			// The row is already persisted.
			s.logger.WithError(err).WithField("trno", tx.TrNo).Warn("Failed to read back created transaction")
			created = &tx
			return nil
		}
		created = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithField("trno", created.TrNo).Info("Transaction created")
	return created, nil
}

func (s *RecordService) ListAccounts(ctx context.Context, filter models.AccountFilter) ([]models.Account, error) {
	if err := filter.Page.Validate(); err != nil {
		return nil, err
	}

	var rows []models.Account
	err := s.withSession(ctx, "list accounts", func(session repository.Session) error {
		var err error
		rows, err = session.Accounts().FindAll(ctx, filter)
		return err
	})
	return rows, err
}

func (s *RecordService) GetAccount(ctx context.Context, accid string) (*models.Account, error) {
	key := cache.Key(schema.Accounts, accid)
	var cached models.Account
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	var acc *models.Account
	err := s.withSession(ctx, "get account", func(session repository.Session) error {
		var err error
		acc, err = session.Accounts().FindByAccID(ctx, accid)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, acc)
	return acc, nil
}

func (s *RecordService) ListFreedom(ctx context.Context, filter models.FreedomFilter) ([]models.Freedom, error) {
	if err := filter.Page.Validate(); err != nil {
		return nil, err
	}

	var rows []models.Freedom
	err := s.withSession(ctx, "list freedom", func(session repository.Session) error {
		var err error
		rows, err = session.Freedom().FindAll(ctx, filter)
		return err
	})
	return rows, err
}

// ExportTransactions returns up to maxRows matching transactions in listing
// order. The page of filter is ignored.
func (s *RecordService) ExportTransactions(ctx context.Context, filter models.TransactionFilter, maxRows int) ([]models.Transaction, error) {
	filter.Page = models.Page{Skip: 0, Limit: maxRows}

	var rows []models.Transaction
	err := s.withSession(ctx, "export transactions", func(session repository.Session) error {
		var err error
		rows, err = session.Transactions().FindAll(ctx, filter)
		return err
	})
	return rows, err
}

// ExportAccounts is ExportTransactions for accounts.
func (s *RecordService) ExportAccounts(ctx context.Context, filter models.AccountFilter, maxRows int) ([]models.Account, error) {
	filter.Page = models.Page{Skip: 0, Limit: maxRows}

	var rows []models.Account
	err := s.withSession(ctx, "export accounts", func(session repository.Session) error {
		var err error
		rows, err = session.Accounts().FindAll(ctx, filter)
		return err
	})
	return rows, err
}

// Ping reports whether the record store is reachable.
func (s *RecordService) Ping(ctx context.Context) error {
	return apperror.Store("ping", s.store.Ping(ctx))
}
