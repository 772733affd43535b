// Package memory is a process-local record store with the same filter,
// ordering and paging semantics as the SQL store.
package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/omkarh25/som/internal/apperror"
	"github.com/omkarh25/som/internal/models"
	"github.com/omkarh25/som/internal/repository"
)

var errSessionClosed = errors.New("session closed")

type Store struct {
	mu           sync.RWMutex
	transactions []models.Transaction
	accounts     []models.Account
	freedom      []models.Freedom
	nextTrNo     int64
}

func NewStore() *Store {
	return &Store{nextTrNo: 1}
}

func (s *Store) Session(ctx context.Context) (repository.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to acquire session: %w", err)
	}
	return &session{store: s}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// InsertTransaction seeds a row with its key as given. A zero key is
// assigned the next free one.
func (s *Store) InsertTransaction(tx models.Transaction) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertTransaction(tx)
}

func (s *Store) insertTransaction(tx models.Transaction) models.Transaction {
	if tx.TrNo == 0 {
		tx.TrNo = s.nextTrNo
	}
	if tx.TrNo >= s.nextTrNo {
		s.nextTrNo = tx.TrNo + 1
	}
	s.transactions = append(s.transactions, tx)
	return tx
}

func (s *Store) InsertAccount(acc models.Account) models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc.Slno == 0 {
		acc.Slno = int64(len(s.accounts)) + 1
		for _, a := range s.accounts {
			if a.Slno >= acc.Slno {
				acc.Slno = a.Slno + 1
			}
		}
	}
	s.accounts = append(s.accounts, acc)
	return acc
}

func (s *Store) InsertFreedom(e models.Freedom) models.Freedom {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.TrNo == 0 {
		e.TrNo = int64(len(s.freedom)) + 1
		for _, f := range s.freedom {
			if f.TrNo >= e.TrNo {
				e.TrNo = f.TrNo + 1
			}
		}
	}
	s.freedom = append(s.freedom, e)
	return e
}

type session struct {
	store  *Store
	closed bool
}

func (s *session) Transactions() repository.Transactions { return transactionRepo{s} }
func (s *session) Accounts() repository.Accounts         { return accountRepo{s} }
func (s *session) Freedom() repository.FreedomEntries    { return freedomRepo{s} }

func (s *session) Close() error {
	if s.closed {
		return errSessionClosed
	}
	s.closed = true
	return nil
}

func (s *session) check(ctx context.Context) error {
	if s.closed {
		return errSessionClosed
	}
	return ctx.Err()
}

// window filters rows, sorts the matches and cuts out the requested page.
func window[T any](rows []T, match func(T) bool, less func(a, b T) int, page models.Page) []T {
	matched := []T{}
	for _, r := range rows {
		if match(r) {
			matched = append(matched, r)
		}
	}
	slices.SortStableFunc(matched, less)
	start, end := page.Apply(len(matched))
	return slices.Clone(matched[start:end])
}

type transactionRepo struct{ s *session }

func (r transactionRepo) FindAll(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	if err := r.s.check(ctx); err != nil {
		return nil, err
	}
	r.s.store.mu.RLock()
	defer r.s.store.mu.RUnlock()
	return window(r.s.store.transactions, filter.Matches, func(a, b models.Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.TrNo, a.TrNo)
	}, filter.Page), nil
}

func (r transactionRepo) FindByID(ctx context.Context, trno int64) (*models.Transaction, error) {
	if err := r.s.check(ctx); err != nil {
		return nil, err
	}
	r.s.store.mu.RLock()
	defer r.s.store.mu.RUnlock()
	for _, tx := range r.s.store.transactions {
		if tx.TrNo == trno {
			return &tx, nil
		}
	}
	return nil, fmt.Errorf("transaction %d: %w", trno, apperror.ErrNotFound)
}

func (r transactionRepo) Create(ctx context.Context, tx *models.Transaction) error {
	if err := r.s.check(ctx); err != nil {
		return err
	}
	r.s.store.mu.Lock()
	defer r.s.store.mu.Unlock()
	tx.TrNo = 0
	*tx = r.s.store.insertTransaction(*tx)
	return nil
}

type accountRepo struct{ s *session }

func bySlno(a, b models.Account) int { return cmp.Compare(a.Slno, b.Slno) }

func (r accountRepo) FindAll(ctx context.Context, filter models.AccountFilter) ([]models.Account, error) {
	if err := r.s.check(ctx); err != nil {
		return nil, err
	}
	r.s.store.mu.RLock()
	defer r.s.store.mu.RUnlock()
	return window(r.s.store.accounts, filter.Matches, bySlno, filter.Page), nil
}

func (r accountRepo) FindByAccID(ctx context.Context, accid string) (*models.Account, error) {
	if err := r.s.check(ctx); err != nil {
		return nil, err
	}
	r.s.store.mu.RLock()
	defer r.s.store.mu.RUnlock()
	found := window(r.s.store.accounts, func(a models.Account) bool { return a.AccID == accid }, bySlno, models.Page{Limit: 1})
	if len(found) == 0 {
		return nil, fmt.Errorf("account %q: %w", accid, apperror.ErrNotFound)
	}
	return &found[0], nil
}

type freedomRepo struct{ s *session }

func (r freedomRepo) FindAll(ctx context.Context, filter models.FreedomFilter) ([]models.Freedom, error) {
	if err := r.s.check(ctx); err != nil {
		return nil, err
	}
	r.s.store.mu.RLock()
	defer r.s.store.mu.RUnlock()
	return window(r.s.store.freedom, filter.Matches, func(a, b models.Freedom) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.TrNo, b.TrNo)
	}, filter.Page), nil
}
