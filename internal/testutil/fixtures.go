package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Aknes122/securitycash/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// UserID returns a unique identity per call. Tests sharing the
// in-memory database rely on this for isolation.
func UserID() string {
	return fmt.Sprintf("user-%d", nextID())
}

// Dec parses a decimal literal, failing the test on a bad string.
func Dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", value, err)
	}
	return d
}

// Tx builds an expense or income transaction fixture.
func Tx(t *testing.T, typ models.TransactionType, date, categoryID, amount string) models.Transaction {
	t.Helper()

	return models.Transaction{
		Type:        typ,
		Date:        date,
		Description: fmt.Sprintf("Test transaction %d", nextID()),
		CategoryID:  categoryID,
		Amount:      Dec(t, amount),
	}
}

// Reminder builds a bill reminder fixture.
func Reminder(t *testing.T, dueDate string, status models.ReminderStatus, amount string) models.Reminder {
	t.Helper()

	return models.Reminder{
		Title:   fmt.Sprintf("Test reminder %d", nextID()),
		DueDate: dueDate,
		Amount:  Dec(t, amount),
		Status:  status,
	}
}

// Goal builds a savings goal fixture.
func Goal(t *testing.T, target, current string) models.Goal {
	t.Helper()

	return models.Goal{
		Title:         fmt.Sprintf("Test goal %d", nextID()),
		TargetAmount:  Dec(t, target),
		CurrentAmount: Dec(t, current),
	}
}

// Category builds a category fixture with a unique name.
func Category(t *testing.T, kind models.TransactionType) models.Category {
	t.Helper()

	return models.Category{
		Name: fmt.Sprintf("Test category %d", nextID()),
		Kind: kind,
	}
}
