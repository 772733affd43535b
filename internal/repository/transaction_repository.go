package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/omkarh25/som/internal/apperror"
	"github.com/omkarh25/som/internal/models"
	"github.com/omkarh25/som/internal/schema"
)

type TransactionRepository struct {
	q        Queryer
	bindType int
	entity   schema.Entity
}

func NewTransactionRepository(q Queryer, driverName string) *TransactionRepository {
	return &TransactionRepository{
		q:        q,
		bindType: sqlx.BindType(driverName),
		entity:   schema.MustLookup(schema.Transactions),
	}
}

// FindAll returns matching transactions newest first.
func (r *TransactionRepository) FindAll(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	q := newSelect(r.entity)
	whereOptional(q, "department", "=", filter.Department)
	whereOptional(q, "date", ">=", filter.StartDate)
	whereOptional(q, "date", "<=", filter.EndDate)
	query, args := q.order("date DESC", "trno DESC").page(filter.Page).build(r.bindType)

	transactions := []models.Transaction{}
	if err := r.q.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, trno int64) (*models.Transaction, error) {
	query, args := newSelect(r.entity).where("trno", "=", trno).build(r.bindType)

	var tx models.Transaction
	if err := r.q.GetContext(ctx, &tx, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %d: %w", trno, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

// Create inserts tx and sets tx.TrNo to the key the store assigned.
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query, args, err := sqlx.Named(insertStatement(r.entity), tx)
	if err != nil {
		return fmt.Errorf("failed to bind transaction: %w", err)
	}
	query = sqlx.Rebind(r.bindType, query)

	// PostgreSQL drivers do not report LastInsertId.
	if r.bindType == sqlx.DOLLAR {
		if err := r.q.GetContext(ctx, &tx.TrNo, query+" RETURNING trno", args...); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		return nil
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	tx.TrNo = id
	return nil
}
