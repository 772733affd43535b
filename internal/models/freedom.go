package models

import "time"

// Freedom is a planned future transaction. It carries a paid flag where a
// Transaction carries reconciled.
type Freedom struct {
	TrNo        int64            `db:"trno" json:"trno"`
	Date        time.Time        `db:"date" json:"date"`
	Description string           `db:"description" json:"description"`
	Amount      float64          `db:"amount" json:"amount"`
	PaymentMode string           `db:"paymentmode" json:"paymentmode"`
	AccID       string           `db:"accid" json:"accid"`
	Department  string           `db:"department" json:"department"`
	Comments    Optional[string] `db:"comments" json:"comments"`
	Category    string           `db:"category" json:"category"`
	Paid        string           `db:"paid" json:"paid"`
}

func (f Freedom) Column(name string) (interface{}, bool) {
	switch name {
	case "trno":
		return f.TrNo, true
	case "date":
		return f.Date, true
	case "description":
		return f.Description, true
	case "amount":
		return f.Amount, true
	case "paymentmode":
		return f.PaymentMode, true
	case "accid":
		return f.AccID, true
	case "department":
		return f.Department, true
	case "comments":
		return f.Comments.Ptr(), true
	case "category":
		return f.Category, true
	case "paid":
		return f.Paid, true
	}
	return nil, false
}
