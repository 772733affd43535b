package models

import (
	"testing"
	"time"

	"github.com/omkarh25/som/internal/apperror"
)

func TestPageValidate(t *testing.T) {
	tests := []struct {
		page   Page
		fields int
	}{
		{Page{Skip: 0, Limit: 1}, 0},
		{Page{Skip: 10, Limit: 100}, 0},
		{Page{Skip: -1, Limit: 10}, 1},
		{Page{Skip: 0, Limit: 0}, 1},
		{Page{Skip: 0, Limit: 101}, 1},
		{Page{Skip: -5, Limit: 500}, 2},
	}
	for _, tt := range tests {
		err := tt.page.Validate()
		if tt.fields == 0 {
			if err != nil {
				t.Errorf("%+v: unexpected error %v", tt.page, err)
			}
			continue
		}
		v, ok := apperror.AsValidation(err)
		if !ok || len(v.Fields) != tt.fields {
			t.Errorf("%+v: expected %d field errors, got %v", tt.page, tt.fields, err)
		}
	}
}

func TestPageApply(t *testing.T) {
	tests := []struct {
		page       Page
		n          int
		start, end int
	}{
		{Page{Skip: 0, Limit: 10}, 3, 0, 3},
		{Page{Skip: 2, Limit: 10}, 3, 2, 3},
		{Page{Skip: 5, Limit: 10}, 3, 3, 3},
		{Page{Skip: 1, Limit: 1}, 3, 1, 2},
	}
	for _, tt := range tests {
		start, end := tt.page.Apply(tt.n)
		if start != tt.start || end != tt.end {
			t.Errorf("%+v over %d: got [%d,%d), want [%d,%d)", tt.page, tt.n, start, end, tt.start, tt.end)
		}
		if want := min(tt.page.Limit, max(0, tt.n-tt.page.Skip)); end-start != want {
			t.Errorf("%+v over %d: length %d, want %d", tt.page, tt.n, end-start, want)
		}
	}
}

func TestPageApply_NegativeLimitIsEmpty(t *testing.T) {
	for _, p := range []Page{{Skip: 0, Limit: -1}, {Skip: 2, Limit: -5}} {
		start, end := p.Apply(3)
		if end != start {
			t.Errorf("%+v: expected empty window, got [%d,%d)", p, start, end)
		}
	}
}

func TestTransactionFilterMatches(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	tx := Transaction{Date: feb, Department: "Sales"}

	tests := []struct {
		name   string
		filter TransactionFilter
		want   bool
	}{
		{"no predicates", TransactionFilter{}, true},
		{"department match", TransactionFilter{Department: Some("Sales")}, true},
		{"department mismatch", TransactionFilter{Department: Some("sales")}, false},
		{"start inclusive", TransactionFilter{StartDate: Some(feb)}, true},
		{"end inclusive", TransactionFilter{EndDate: Some(feb)}, true},
		{"before start", TransactionFilter{StartDate: Some(feb.Add(time.Second))}, false},
		{"after end", TransactionFilter{EndDate: Some(jan)}, false},
		{"conjunction", TransactionFilter{Department: Some("Sales"), StartDate: Some(jan), EndDate: Some(jan)}, false},
	}
	for _, tt := range tests {
		if got := tt.filter.Matches(tx); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFreedomFilterEmptyPaid(t *testing.T) {
	blank := Freedom{Paid: ""}
	paid := Freedom{Paid: "Y"}

	f := FreedomFilter{Paid: Some("")}
	if !f.Matches(blank) || f.Matches(paid) {
		t.Error("present empty paid must match only rows with an empty flag")
	}

	all := FreedomFilter{}
	if !all.Matches(blank) || !all.Matches(paid) {
		t.Error("absent paid must match every row")
	}
}
