package models

import "github.com/shopspring/decimal"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single income or expense record.
// Date carries a calendar date in ISO YYYY-MM-DD form with no time
// component; CategoryID may dangle if the category was deleted.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	CategoryID  string          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
}

// GetID returns the transaction id.
func (t Transaction) GetID() string { return t.ID }

// WithID returns a copy of the transaction with the given id.
func (t Transaction) WithID(id string) Transaction {
	t.ID = id
	return t
}

// TransactionPatch is a partial update for a transaction. Nil fields
// are left untouched.
type TransactionPatch struct {
	Type        *TransactionType `json:"type,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
	CategoryID  *string          `json:"categoryId,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// Apply merges the patch into a copy of the transaction.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	return t
}
