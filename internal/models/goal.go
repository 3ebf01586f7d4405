package models

import "github.com/shopspring/decimal"

// Goal represents a savings goal. CurrentAmount may exceed
// TargetAmount; progress display caps at 100%.
type Goal struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      string          `json:"deadline,omitempty"`
}

// GetID returns the goal id.
func (g Goal) GetID() string { return g.ID }

// WithID returns a copy of the goal with the given id.
func (g Goal) WithID(id string) Goal {
	g.ID = id
	return g
}

// GoalPatch is a partial update for a goal.
type GoalPatch struct {
	Title         *string          `json:"title,omitempty"`
	TargetAmount  *decimal.Decimal `json:"targetAmount,omitempty"`
	CurrentAmount *decimal.Decimal `json:"currentAmount,omitempty"`
	Deadline      *string          `json:"deadline,omitempty"`
}

// Apply merges the patch into a copy of the goal.
func (p GoalPatch) Apply(g Goal) Goal {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		g.CurrentAmount = *p.CurrentAmount
	}
	if p.Deadline != nil {
		g.Deadline = *p.Deadline
	}
	return g
}
