package models

// Account is a row of the accounts table. Slno is the primary key; AccID is
// the external identifier clients look accounts up by.
type Account struct {
	Slno        int64            `db:"slno" json:"slno"`
	AccountName string           `db:"accountname" json:"accountname"`
	Type        string           `db:"type" json:"type"`
	AccID       string           `db:"accid" json:"accid"`
	Balance     float64          `db:"balance" json:"balance"`
	IntRate     float64          `db:"intrate" json:"intrate"`
	NextDueDate string           `db:"nextduedate" json:"nextduedate"` // free text, returned as stored
	Bank        string           `db:"bank" json:"bank"`
	Tenure      int64            `db:"tenure" json:"tenure"`
	EmiAmt      float64          `db:"emiamt" json:"emiamt"`
	Comments    Optional[string] `db:"comments" json:"comments"`
}

// Column returns the value stored under the named column.
func (a Account) Column(name string) (interface{}, bool) {
	switch name {
	case "slno":
		return a.Slno, true
	case "accountname":
		return a.AccountName, true
	case "type":
		return a.Type, true
	case "accid":
		return a.AccID, true
	case "balance":
		return a.Balance, true
	case "intrate":
		return a.IntRate, true
	case "nextduedate":
		return a.NextDueDate, true
	case "bank":
		return a.Bank, true
	case "tenure":
		return a.Tenure, true
	case "emiamt":
		return a.EmiAmt, true
	case "comments":
		return a.Comments.Ptr(), true
	}
	return nil, false
}
