package repository

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/omkarh25/som/internal/models"
	"github.com/omkarh25/som/internal/schema"
)

// selectQuery assembles a SELECT over one registered table. Conditions use
// '?' placeholders and are rebound for the target driver by build.
type selectQuery struct {
	entity  schema.Entity
	conds   []string
	args    []interface{}
	orderBy []string
	limit   int
	offset  int
	paged   bool
}

func newSelect(entity schema.Entity) *selectQuery {
	return &selectQuery{entity: entity}
}

func (q *selectQuery) where(column, op string, value interface{}) *selectQuery {
	q.conds = append(q.conds, fmt.Sprintf("%s %s ?", column, op))
	q.args = append(q.args, value)
	return q
}

// whereOptional adds a condition only when value is present.
func whereOptional[T any](q *selectQuery, column, op string, value models.Optional[T]) *selectQuery {
	if v, ok := value.Get(); ok {
		q.where(column, op, v)
	}
	return q
}

func (q *selectQuery) order(terms ...string) *selectQuery {
	q.orderBy = append(q.orderBy, terms...)
	return q
}

func (q *selectQuery) page(p models.Page) *selectQuery {
	q.limit, q.offset, q.paged = p.Limit, p.Skip, true
	return q
}

func (q *selectQuery) build(bindType int) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(q.entity.Columns(), ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(q.entity.Name)

	if len(q.conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(q.conds, " AND "))
	}
	if len(q.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(q.orderBy, ", "))
	}

	args := append([]interface{}{}, q.args...)
	if q.paged {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, q.limit, q.offset)
	}

	return sqlx.Rebind(bindType, sb.String()), args
}

// insertStatement returns an INSERT of every non-key column of entity with
// named parameters matching the db tags of the model.
func insertStatement(entity schema.Entity) string {
	cols := entity.InsertColumns()
	params := make([]string, len(cols))
	for i, c := range cols {
		params[i] = ":" + c
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		entity.Name, strings.Join(cols, ", "), strings.Join(params, ", "))
}
