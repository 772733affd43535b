package models

import (
	"fmt"
	"math"

	"github.com/omkarh25/som/internal/apperror"
)

// TransactionResponse is the wire form of a Transaction.
type TransactionResponse struct {
	TrNo        int64   `json:"trno"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaymentMode string  `json:"paymentmode"`
	AccID       string  `json:"accid"`
	Department  string  `json:"department"`
	Comments    *string `json:"comments"`
	Category    string  `json:"category"`
	Reconciled  string  `json:"reconciled"`
}

type AccountResponse struct {
	Slno        int64   `json:"slno"`
	AccountName string  `json:"accountname"`
	Type        string  `json:"type"`
	AccID       string  `json:"accid"`
	Balance     float64 `json:"balance"`
	IntRate     float64 `json:"intrate"`
	NextDueDate string  `json:"nextduedate"`
	Bank        string  `json:"bank"`
	Tenure      int64   `json:"tenure"`
	EmiAmt      float64 `json:"emiamt"`
	Comments    *string `json:"comments"`
}

type FreedomResponse struct {
	TrNo        int64   `json:"trno"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaymentMode string  `json:"paymentmode"`
	AccID       string  `json:"accid"`
	Department  string  `json:"department"`
	Comments    *string `json:"comments"`
	Category    string  `json:"category"`
	Paid        string  `json:"paid"`
}

func finite(entity string, key interface{}, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s %v field %s (%v): %w", entity, key, field, v, apperror.ErrUnrepresentable)
	}
	return nil
}

func (t Transaction) ToResponse() (TransactionResponse, error) {
	if err := finite("transaction", t.TrNo, "amount", t.Amount); err != nil {
		return TransactionResponse{}, err
	}
	return TransactionResponse{
		TrNo:        t.TrNo,
		Date:        FormatTimestamp(t.Date),
		Description: t.Description,
		Amount:      t.Amount,
		PaymentMode: t.PaymentMode,
		AccID:       t.AccID,
		Department:  t.Department,
		Comments:    t.Comments.Ptr(),
		Category:    t.Category,
		Reconciled:  t.Reconciled,
	}, nil
}

func (a Account) ToResponse() (AccountResponse, error) {
	for _, d := range []struct {
		name string
		v    float64
	}{{"balance", a.Balance}, {"intrate", a.IntRate}, {"emiamt", a.EmiAmt}} {
		if err := finite("account", a.AccID, d.name, d.v); err != nil {
			return AccountResponse{}, err
		}
	}
	return AccountResponse{
		Slno:        a.Slno,
		AccountName: a.AccountName,
		Type:        a.Type,
		AccID:       a.AccID,
		Balance:     a.Balance,
		IntRate:     a.IntRate,
		NextDueDate: a.NextDueDate,
		Bank:        a.Bank,
		Tenure:      a.Tenure,
		EmiAmt:      a.EmiAmt,
		Comments:    a.Comments.Ptr(),
	}, nil
}

func (f Freedom) ToResponse() (FreedomResponse, error) {
	if err := finite("freedom", f.TrNo, "amount", f.Amount); err != nil {
		return FreedomResponse{}, err
	}
	return FreedomResponse{
		TrNo:        f.TrNo,
		Date:        FormatTimestamp(f.Date),
		Description: f.Description,
		Amount:      f.Amount,
		PaymentMode: f.PaymentMode,
		AccID:       f.AccID,
		Department:  f.Department,
		Comments:    f.Comments.Ptr(),
		Category:    f.Category,
		Paid:        f.Paid,
	}, nil
}

// MapAll converts every row, failing on the first row that cannot be
// represented. The result is never nil so empty lists encode as [].
func MapAll[T any, R any](rows []T, convert func(T) (R, error)) ([]R, error) {
	out := make([]R, 0, len(rows))
	for _, row := range rows {
		r, err := convert(row)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
