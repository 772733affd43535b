package schema

import (
	"errors"
	"fmt"

	"github.com/omkarh25/som/internal/apperror"
)

// ColumnInfo is the wire form of a column description.
type ColumnInfo struct {
	Name       string       `json:"name"`
	Type       SemanticType `json:"type"`
	PrimaryKey bool         `json:"primary_key"`
	Nullable   bool         `json:"nullable"`
}

type TableInfo struct {
	Name    string       `json:"name"`
	Columns []ColumnInfo `json:"columns"`
}

type DatabaseInfo struct {
	Tables []TableInfo `json:"tables"`
}

var (
	errNoColumns       = errors.New("table has no columns")
	errPrimaryKeyArity = errors.New("table must have exactly one primary key")
)

// DescribeTable describes the named table. Names outside the registry yield
// an error wrapping apperror.ErrNotFound.
func (r *Registry) DescribeTable(name string) (*TableInfo, error) {
	e, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("table %q: %w", name, apperror.ErrNotFound)
	}
	if err := validate(e); err != nil {
		return nil, fmt.Errorf("table %q: %w", name, err)
	}

	info := &TableInfo{Name: e.Name, Columns: make([]ColumnInfo, 0, len(e.Fields))}
	for _, f := range e.Fields {
		info.Columns = append(info.Columns, ColumnInfo{
			Name:       f.Name,
			Type:       f.Type,
			PrimaryKey: f.PrimaryKey,
			Nullable:   f.Nullable,
		})
	}
	return info, nil
}

// DescribeDatabase describes every registered table in enumeration order.
// A table that fails to describe is skipped and reported through skipped,
// which may be nil.
func (r *Registry) DescribeDatabase(skipped func(name string, err error)) DatabaseInfo {
	db := DatabaseInfo{Tables: []TableInfo{}}
	for _, name := range r.order {
		info, err := r.DescribeTable(name)
		if err != nil {
			if skipped != nil {
				skipped(name, err)
			}
			continue
		}
		db.Tables = append(db.Tables, *info)
	}
	return db
}

func validate(e Entity) error {
	if len(e.Fields) == 0 {
		return errNoColumns
	}
	keys := 0
	for _, f := range e.Fields {
		if f.PrimaryKey {
			keys++
		}
	}
	if keys != 1 {
		return errPrimaryKeyArity
	}
	return nil
}
