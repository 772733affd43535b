package models

import (
	"time"

	"github.com/omkarh25/som/internal/apperror"
)

const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// Page is an offset/limit window over an ordered result.
type Page struct {
	Skip  int
	Limit int
}

// DefaultPage returns the window used when a caller supplies neither bound.
func DefaultPage() Page {
	return Page{Skip: 0, Limit: DefaultLimit}
}

// Validate rejects out-of-range bounds. Bounds are never clamped.
func (p Page) Validate() error {
	v := &apperror.ValidationError{}
	if p.Skip < 0 {
		v.Add("skip", "must be greater than or equal to 0")
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		v.Add("limit", "must be between 1 and 100")
	}
	return v.OrNil()
}

// Apply returns the window of n ordered items as a half-open index range.
func (p Page) Apply(n int) (start, end int) {
	start = p.Skip
	if start > n {
		start = n
	}
	end = start + p.Limit
	if end < start {
		end = start
	}
	if end > n {
		end = n
	}
	return start, end
}

// TransactionFilter narrows a transaction listing. Present predicates are
// combined with AND.
type TransactionFilter struct {
	Page
	Department Optional[string]
	StartDate  Optional[time.Time]
	EndDate    Optional[time.Time]
}

func (f TransactionFilter) Matches(t Transaction) bool {
	if dept, ok := f.Department.Get(); ok && t.Department != dept {
		return false
	}
	if start, ok := f.StartDate.Get(); ok && t.Date.Before(start) {
		return false
	}
	if end, ok := f.EndDate.Get(); ok && t.Date.After(end) {
		return false
	}
	return true
}

type AccountFilter struct {
	Page
	Type Optional[string]
}

func (f AccountFilter) Matches(a Account) bool {
	if typ, ok := f.Type.Get(); ok && a.Type != typ {
		return false
	}
	return true
}

// FreedomFilter narrows a freedom listing. A present empty Paid still filters
// for rows whose paid flag is "".
type FreedomFilter struct {
	Page
	Paid Optional[string]
}

func (f FreedomFilter) Matches(e Freedom) bool {
	if paid, ok := f.Paid.Get(); ok && e.Paid != paid {
		return false
	}
	return true
}
