// Package ledger implements the core expense ledger: members, expenses and
// their splits, plus the derived per-member balances.
//
// The ledger owns all member/expense/split records and enforces referential
// integrity on writes; persistence is delegated to a storage.Store, and each
// operation maps to a single store transaction so an expense and its splits
// either land together or not at all.
package ledger

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/googol23/ExpenseTracker/internal/models"
	"github.com/googol23/ExpenseTracker/internal/storage"
)

// Ledger coordinates member and expense operations against a store.
type Ledger struct {
	store storage.Store
}

// New creates a Ledger backed by the given store.
func New(store storage.Store) *Ledger {
	return &Ledger{store: store}
}

// AddMember inserts a new member unless the name is already taken
// (case-sensitive exact match). Adding an existing name is a no-op: the
// existing member is returned with created=false, a warning is logged, and
// no error is raised.
func (l *Ledger) AddMember(ctx context.Context, name string) (models.Member, bool, error) {
	member, created, err := l.store.AddMember(ctx, name)
	if err != nil {
		return models.Member{}, false, err
	}

	if created {
		slog.Info("Member added", "name", member.Name, "member_id", member.ID)
	} else {
		slog.Warn("Member already exists", "name", member.Name, "member_id", member.ID)
	}

	return member, created, nil
}

// ListMembers returns all members ordered by name.
func (l *Ledger) ListMembers(ctx context.Context) ([]models.Member, error) {
	return l.store.ListMembers(ctx)
}

// ListExpenses returns all expenses, newest first, with their splits.
func (l *Ledger) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return l.store.ListExpenses(ctx)
}

// AddExpense records an expense paid by one member and divided according to
// the share spec. The payer and every share participant must already exist;
// otherwise an *UnknownMemberError is returned and nothing is persisted.
// Only shares greater than zero are stored. Returns the new expense id.
func (l *Ledger) AddExpense(ctx context.Context, description string, amount float64, paidBy string, shares models.ShareSpec) (int64, error) {
	finalShares, err := l.resolveShares(ctx, amount, shares)
	if err != nil {
		return 0, err
	}

	// Sorted participant order keeps error reporting and inserts stable.
	names := make([]string, 0, len(finalShares))
	for name := range finalShares {
		names = append(names, name)
	}
	sort.Strings(names)

	ids, err := l.store.MemberIDs(ctx, append(names, paidBy))
	if err != nil {
		return 0, err
	}

	paidByID, ok := ids[paidBy]
	if !ok {
		return 0, &UnknownMemberError{Name: paidBy}
	}
	for _, name := range names {
		if _, ok := ids[name]; !ok {
			return 0, &UnknownMemberError{Name: name}
		}
	}

	splits := make([]storage.SplitRow, 0, len(names))
	for _, name := range names {
		if share := finalShares[name]; share > 0 {
			splits = append(splits, storage.SplitRow{MemberID: ids[name], Share: share})
		}
	}

	expenseID, err := l.store.CreateExpense(ctx, description, amount, paidByID, time.Now().Unix(), splits)
	if err != nil {
		return 0, err
	}

	slog.Info("Expense added",
		"expense_id", expenseID,
		"description", description,
		"amount", amount,
		"paid_by", paidBy,
		"splits", len(splits),
	)
	return expenseID, nil
}

// NetBalances returns, for every member ordered by name, the total paid,
// total owed, and net balance (paid minus owed). Members with no activity
// appear with zeros rather than being omitted.
func (l *Ledger) NetBalances(ctx context.Context) ([]models.Balance, error) {
	balances, err := l.store.Totals(ctx)
	if err != nil {
		return nil, err
	}

	for i := range balances {
		balances[i].NetBalance = balances[i].TotalPaid - balances[i].TotalOwed
	}
	return balances, nil
}

// resolveShares turns a share spec into the final name-to-amount mapping.
// Equal splits use plain floating-point division; sub-cent drift between the
// share sum and the amount is accepted, not corrected.
func (l *Ledger) resolveShares(ctx context.Context, amount float64, shares models.ShareSpec) (map[string]float64, error) {
	switch shares.Mode {
	case models.ShareEqualAll:
		members, err := l.store.ListMembers(ctx)
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			return nil, ErrNoMembers
		}
		equalShare := amount / float64(len(members))
		resolved := make(map[string]float64, len(members))
		for _, m := range members {
			resolved[m.Name] = equalShare
		}
		return resolved, nil

	case models.ShareEqualSubset:
		if len(shares.Names) == 0 {
			return nil, ErrEmptyParticipants
		}
		equalShare := amount / float64(len(shares.Names))
		resolved := make(map[string]float64, len(shares.Names))
		for _, name := range shares.Names {
			resolved[name] = equalShare
		}
		return resolved, nil

	case models.ShareManual:
		var sum float64
		for _, share := range shares.Amounts {
			sum += share
		}
		if math.Abs(sum-amount) >= models.Tolerance {
			return nil, &ShareMismatchError{Sum: sum, Amount: amount}
		}
		resolved := make(map[string]float64, len(shares.Amounts))
		for name, share := range shares.Amounts {
			resolved[name] = share
		}
		return resolved, nil

	default:
		return nil, ErrInvalidShares
	}
}
