package models

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/omkarh25/som/internal/apperror"
)

// DecodeTransactionCreate parses and validates a create-transaction body.
// Every required field must be present with the right JSON type; comments
// may be omitted or null. All problems are reported together.
func DecodeTransactionCreate(body []byte) (TransactionCreate, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return TransactionCreate{}, apperror.NewValidationError("body", "must be a JSON object")
	}

	d := payloadDecoder{raw: raw, errs: &apperror.ValidationError{}}
	in := TransactionCreate{
		Date:        d.timestamp("date"),
		Description: d.str("description"),
		Amount:      d.number("amount"),
		PaymentMode: d.str("paymentmode"),
		AccID:       d.str("accid"),
		Department:  d.str("department"),
		Comments:    d.optionalStr("comments"),
		Category:    d.str("category"),
		Reconciled:  d.str("reconciled"),
	}
	if err := d.errs.OrNil(); err != nil {
		return TransactionCreate{}, err
	}
	return in, nil
}

type payloadDecoder struct {
	raw  map[string]json.RawMessage
	errs *apperror.ValidationError
}

func (d payloadDecoder) required(field string) (json.RawMessage, bool) {
	v, ok := d.raw[field]
	if !ok || isNull(v) {
		d.errs.Add(field, "field required")
		return nil, false
	}
	return v, true
}

func (d payloadDecoder) str(field string) string {
	v, ok := d.required(field)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		d.errs.Add(field, "must be a string")
		return ""
	}
	return s
}

func (d payloadDecoder) optionalStr(field string) Optional[string] {
	v, ok := d.raw[field]
	if !ok || isNull(v) {
		return None[string]()
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		d.errs.Add(field, "must be a string or null")
		return None[string]()
	}
	return Some(s)
}

func (d payloadDecoder) number(field string) float64 {
	v, ok := d.required(field)
	if !ok {
		return 0
	}
	var n json.Number
	if len(v) == 0 || v[0] == '"' || json.Unmarshal(v, &n) != nil {
		d.errs.Add(field, "must be a number")
		return 0
	}
	dec, err := decimal.NewFromString(n.String())
	if err != nil {
		d.errs.Add(field, "must be a number")
		return 0
	}
	f, _ := dec.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		d.errs.Add(field, "must be a finite number")
		return 0
	}
	return f
}

func (d payloadDecoder) timestamp(field string) time.Time {
	v, ok := d.required(field)
	if !ok {
		return time.Time{}
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		d.errs.Add(field, "must be a datetime string")
		return time.Time{}
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		d.errs.Add(field, "must be a valid datetime")
		return time.Time{}
	}
	return t
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
