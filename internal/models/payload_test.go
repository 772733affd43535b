package models

import (
	"testing"
	"time"

	"github.com/omkarh25/som/internal/apperror"
)

func TestDecodeTransactionCreate_Success(t *testing.T) {
	body := `{
		"date": "2024-03-15T10:30:00Z",
		"description": "Office rent",
		"amount": 1250.75,
		"paymentmode": "NEFT",
		"accid": "HDFC-01",
		"department": "Admin",
		"category": "Rent",
		"reconciled": "N"
	}`

	in, err := DecodeTransactionCreate([]byte(body))
	if err != nil {
		t.Fatalf("DecodeTransactionCreate failed: %v", err)
	}

	if !in.Date.Equal(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected date %v", in.Date)
	}
	if in.Amount != 1250.75 {
		t.Errorf("expected amount 1250.75, got %v", in.Amount)
	}
	if in.Comments.IsPresent() {
		t.Error("omitted comments should be absent")
	}
	if in.Reconciled != "N" || in.AccID != "HDFC-01" {
		t.Errorf("unexpected payload %+v", in)
	}
}

func TestDecodeTransactionCreate_Comments(t *testing.T) {
	base := `"date": "2024-03-15", "description": "d", "amount": 1, "paymentmode": "Cash",
		"accid": "A1", "department": "Eng", "category": "Misc", "reconciled": "Y"`

	tests := []struct {
		name    string
		body    string
		present bool
		value   string
	}{
		{name: "null", body: `{` + base + `, "comments": null}`, present: false},
		{name: "empty", body: `{` + base + `, "comments": ""}`, present: true, value: ""},
		{name: "text", body: `{` + base + `, "comments": "quarterly"}`, present: true, value: "quarterly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := DecodeTransactionCreate([]byte(tt.body))
			if err != nil {
				t.Fatalf("DecodeTransactionCreate failed: %v", err)
			}
			v, ok := in.Comments.Get()
			if ok != tt.present || v != tt.value {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.value, tt.present, v, ok)
			}
		})
	}
}

func TestDecodeTransactionCreate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			name:   "not an object",
			body:   `[1, 2]`,
			fields: []string{"body"},
		},
		{
			name:   "malformed json",
			body:   `{"date": `,
			fields: []string{"body"},
		},
		{
			name: "missing and mistyped fields",
			body: `{"date": "yesterday", "description": 5, "amount": "100",
				"paymentmode": "Cash", "accid": null, "department": "Eng",
				"comments": 7, "category": "Misc"}`,
			fields: []string{"date", "description", "amount", "accid", "comments", "reconciled"},
		},
		{
			name: "amount overflow",
			body: `{"date": "2024-01-01", "description": "d", "amount": 1e400, "paymentmode": "Cash",
				"accid": "A1", "department": "Eng", "category": "Misc", "reconciled": "Y"}`,
			fields: []string{"amount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTransactionCreate([]byte(tt.body))
			v, ok := apperror.AsValidation(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(v.Fields) != len(tt.fields) {
				t.Fatalf("expected %d field errors, got %+v", len(tt.fields), v.Fields)
			}
			for i, f := range tt.fields {
				if v.Fields[i].Field != f {
					t.Errorf("error %d: expected field %q, got %q", i, f, v.Fields[i].Field)
				}
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-01T08:15:00", time.Date(2024, 1, 1, 8, 15, 0, 0, time.UTC)},
		{"2024-01-01 08:15:00.5", time.Date(2024, 1, 1, 8, 15, 0, 500000000, time.UTC)},
		{"2024-01-01T08:15:00+05:30", time.Date(2024, 1, 1, 2, 45, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.input)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) failed: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := ParseTimestamp("15/03/2024"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
