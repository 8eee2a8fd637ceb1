// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/googol23/ExpenseTracker/internal/models"
)

// SplitRow is one split to persist alongside an expense, keyed by the
// storage-level member id.
type SplitRow struct {
	MemberID int64
	Share    float64
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the ledger.
type Store interface {
	// AddMember inserts a member with the given name if it does not exist.
	// It returns the member record and whether a new row was created;
	// when the name already exists the existing record is returned with
	// created=false and no error.
	AddMember(ctx context.Context, name string) (models.Member, bool, error)

	// ListMembers returns all members ordered by name.
	ListMembers(ctx context.Context) ([]models.Member, error)

	// MemberIDs resolves the given names to member ids. Names that do not
	// exist are simply absent from the returned map.
	MemberIDs(ctx context.Context, names []string) (map[string]int64, error)

	// CreateExpense persists an expense and its splits in a single
	// transaction: either all rows land or none do. It returns the new
	// expense id.
	CreateExpense(ctx context.Context, description string, amount float64, paidByID int64, createdAt int64, splits []SplitRow) (int64, error)

	// ListExpenses returns all expenses, newest first, with payer and
	// split member ids resolved to names.
	ListExpenses(ctx context.Context) ([]models.Expense, error)

	// Totals returns, for every member ordered by name, the total amount
	// paid and the total amount owed. Members with no activity appear
	// with zero totals. NetBalance is left for the caller to derive.
	Totals(ctx context.Context) ([]models.Balance, error)

	// Close releases any resources held by the store.
	Close() error
}
