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

type AccountRepository struct {
	q        Queryer
	bindType int
	entity   schema.Entity
}

func NewAccountRepository(q Queryer, driverName string) *AccountRepository {
	return &AccountRepository{
		q:        q,
		bindType: sqlx.BindType(driverName),
		entity:   schema.MustLookup(schema.Accounts),
	}
}

// FindAll returns matching accounts in key order.
func (r *AccountRepository) FindAll(ctx context.Context, filter models.AccountFilter) ([]models.Account, error) {
	q := newSelect(r.entity)
	whereOptional(q, "type", "=", filter.Type)
	query, args := q.order("slno").page(filter.Page).build(r.bindType)

	accounts := []models.Account{}
	if err := r.q.SelectContext(ctx, &accounts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	return accounts, nil
}

// FindByAccID returns the account with the lowest slno among those sharing
// accid. accid is not unique in storage.
func (r *AccountRepository) FindByAccID(ctx context.Context, accid string) (*models.Account, error) {
	query, args := newSelect(r.entity).
		where("accid", "=", accid).
		order("slno").
		page(models.Page{Limit: 1}).
		build(r.bindType)

	var account models.Account
	if err := r.q.GetContext(ctx, &account, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %q: %w", accid, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}
