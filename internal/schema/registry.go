// Package schema is the single description of the three bookkeeping tables.
// The repositories build their column lists from it and the metadata
// endpoints describe tables from it, so the two cannot disagree.
package schema

import "slices"

// SemanticType classifies a column independently of any storage engine.
type SemanticType string

const (
	TypeInteger   SemanticType = "integer"
	TypeDecimal   SemanticType = "decimal"
	TypeText      SemanticType = "text"
	TypeString    SemanticType = "string"
	TypeTimestamp SemanticType = "timestamp"
	TypeFlag      SemanticType = "flag"
)

// Table names. These are also the identifiers accepted by the metadata
// endpoints.
const (
	Transactions = "transactions"
	Accounts     = "accounts"
	Freedom      = "freedom"
)

// Field describes one column.
type Field struct {
	Name       string
	Type       SemanticType
	PrimaryKey bool
	Nullable   bool
	Indexed    bool
}

// Entity is a table and its ordered columns.
type Entity struct {
	Name   string
	Fields []Field
}

// Columns returns every column name in declaration order.
func (e Entity) Columns() []string {
	cols := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}

// InsertColumns returns the columns a create statement supplies, which is
// every column except the store-assigned primary key.
func (e Entity) InsertColumns() []string {
	cols := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if !f.PrimaryKey {
			cols = append(cols, f.Name)
		}
	}
	return cols
}

// PrimaryKey returns the primary-key column.
func (e Entity) PrimaryKey() (Field, bool) {
	for _, f := range e.Fields {
		if f.PrimaryKey {
			return f, true
		}
	}
	return Field{}, false
}

// Field looks up a column by name.
func (e Entity) Field(name string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Registry maps table names to entities in a fixed enumeration order.
// It is never mutated after construction; lookups hand out copies.
type Registry struct {
	order    []string
	entities map[string]Entity
}

// NewRegistry builds a registry from entities, keeping their order. A later
// entity with an already registered name replaces the earlier one.
func NewRegistry(entities ...Entity) *Registry {
	r := &Registry{entities: make(map[string]Entity, len(entities))}
	for _, e := range entities {
		if _, exists := r.entities[e.Name]; !exists {
			r.order = append(r.order, e.Name)
		}
		r.entities[e.Name] = Entity{Name: e.Name, Fields: slices.Clone(e.Fields)}
	}
	return r
}

// Lookup returns a copy of the named entity.
func (r *Registry) Lookup(name string) (Entity, bool) {
	e, ok := r.entities[name]
	if !ok {
		return Entity{}, false
	}
	return Entity{Name: e.Name, Fields: slices.Clone(e.Fields)}, true
}

// Names returns the registered table names in enumeration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

var defaultRegistry = NewRegistry(
	Entity{
		Name: Transactions,
		Fields: []Field{
			{Name: "trno", Type: TypeInteger, PrimaryKey: true, Indexed: true},
			{Name: "date", Type: TypeTimestamp, Indexed: true},
			{Name: "description", Type: TypeText},
			{Name: "amount", Type: TypeDecimal},
			{Name: "paymentmode", Type: TypeString},
			{Name: "accid", Type: TypeString},
			{Name: "department", Type: TypeString, Indexed: true},
			{Name: "comments", Type: TypeText, Nullable: true},
			{Name: "category", Type: TypeString},
			{Name: "reconciled", Type: TypeFlag},
		},
	},
	Entity{
		Name: Accounts,
		Fields: []Field{
			{Name: "slno", Type: TypeInteger, PrimaryKey: true},
			{Name: "accountname", Type: TypeString},
			{Name: "type", Type: TypeString},
			{Name: "accid", Type: TypeString, Indexed: true},
			{Name: "balance", Type: TypeDecimal},
			{Name: "intrate", Type: TypeDecimal},
			{Name: "nextduedate", Type: TypeString},
			{Name: "bank", Type: TypeString},
			{Name: "tenure", Type: TypeInteger},
			{Name: "emiamt", Type: TypeDecimal},
			{Name: "comments", Type: TypeText, Nullable: true},
		},
	},
	Entity{
		Name: Freedom,
		Fields: []Field{
			{Name: "trno", Type: TypeInteger, PrimaryKey: true, Indexed: true},
			{Name: "date", Type: TypeTimestamp, Indexed: true},
			{Name: "description", Type: TypeText},
			{Name: "amount", Type: TypeDecimal},
			{Name: "paymentmode", Type: TypeString},
			{Name: "accid", Type: TypeString},
			{Name: "department", Type: TypeString},
			{Name: "comments", Type: TypeText, Nullable: true},
			{Name: "category", Type: TypeString},
			{Name: "paid", Type: TypeFlag},
		},
	},
)

// Default returns the registry of the bookkeeping tables.
func Default() *Registry {
	return defaultRegistry
}

// MustLookup returns a table of the default registry and panics when it is
// not registered. It is meant for the fixed table names declared above.
func MustLookup(name string) Entity {
	e, ok := defaultRegistry.Lookup(name)
	if !ok {
		panic("schema: unknown table " + name)
	}
	return e
}
