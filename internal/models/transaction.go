package models

import "time"

// Transaction is a row of the transactions table.
type Transaction struct {
	TrNo        int64            `db:"trno" json:"trno"`
	Date        time.Time        `db:"date" json:"date"`
	Description string           `db:"description" json:"description"`
	Amount      float64          `db:"amount" json:"amount"`
	PaymentMode string           `db:"paymentmode" json:"paymentmode"`
	AccID       string           `db:"accid" json:"accid"`
	Department  string           `db:"department" json:"department"`
	Comments    Optional[string] `db:"comments" json:"comments"`
	Category    string           `db:"category" json:"category"`
	Reconciled  string           `db:"reconciled" json:"reconciled"` // opaque flag, e.g. "Y", "N", "partial"
}

// TransactionCreate is a validated create payload. The store assigns TrNo.
type TransactionCreate struct {
	Date        time.Time
	Description string
	Amount      float64
	PaymentMode string
	AccID       string
	Department  string
	Comments    Optional[string]
	Category    string
	Reconciled  string
}

func (in TransactionCreate) ToTransaction() Transaction {
	return Transaction{
		Date:        in.Date,
		Description: in.Description,
		Amount:      in.Amount,
		PaymentMode: in.PaymentMode,
		AccID:       in.AccID,
		Department:  in.Department,
		Comments:    in.Comments,
		Category:    in.Category,
		Reconciled:  in.Reconciled,
	}
}

// Column returns the value stored under the named column.
func (t Transaction) Column(name string) (interface{}, bool) {
	switch name {
	case "trno":
		return t.TrNo, true
	case "date":
		return t.Date, true
	case "description":
		return t.Description, true
	case "amount":
		return t.Amount, true
	case "paymentmode":
		return t.PaymentMode, true
	case "accid":
		return t.AccID, true
	case "department":
		return t.Department, true
	case "comments":
		return t.Comments.Ptr(), true
	case "category":
		return t.Category, true
	case "reconciled":
		return t.Reconciled, true
	}
	return nil, false
}
