package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/omkarh25/som/internal/models"
	"github.com/omkarh25/som/internal/schema"
)

type FreedomRepository struct {
	q        Queryer
	bindType int
	entity   schema.Entity
}

func NewFreedomRepository(q Queryer, driverName string) *FreedomRepository {
	return &FreedomRepository{
		q:        q,
		bindType: sqlx.BindType(driverName),
		entity:   schema.MustLookup(schema.Freedom),
	}
}

// FindAll returns matching planned transactions soonest first.
func (r *FreedomRepository) FindAll(ctx context.Context, filter models.FreedomFilter) ([]models.Freedom, error) {
	q := newSelect(r.entity)
	whereOptional(q, "paid", "=", filter.Paid)
	query, args := q.order("date ASC", "trno ASC").page(filter.Page).build(r.bindType)

	entries := []models.Freedom{}
	if err := r.q.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get freedom transactions: %w", err)
	}
	return entries, nil
}
