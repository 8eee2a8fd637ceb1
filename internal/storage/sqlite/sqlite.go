// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/googol23/ExpenseTracker/internal/models"
	"github.com/googol23/ExpenseTracker/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AddMember inserts a member, or returns the existing record when the name
// is already taken.
func (s *SQLiteStore) AddMember(ctx context.Context, name string) (models.Member, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Member{}, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO members (name) VALUES (?) ON CONFLICT(name) DO NOTHING",
		name,
	)
	if err != nil {
		return models.Member{}, false, fmt.Errorf("failed to insert member: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return models.Member{}, false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		"SELECT member_id FROM members WHERE name = ?", name,
	).Scan(&id)
	if err != nil {
		return models.Member{}, false, fmt.Errorf("failed to look up member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Member{}, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return models.Member{ID: id, Name: name}, inserted > 0, nil
}

// ListMembers returns all members ordered by name.
func (s *SQLiteStore) ListMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, name FROM members ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// MemberIDs resolves names to member ids in a single query.
// Unknown names are simply absent from the result.
func (s *SQLiteStore) MemberIDs(ctx context.Context, names []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(names))
	if len(names) == 0 {
		return ids, nil
	}

	placeholders := strings.Repeat("?,", len(names))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT name, member_id FROM members WHERE name IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query member ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var id int64
		if err := rows.Scan(&name, &id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		ids[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate member ids: %w", err)
	}

	return ids, nil
}

// CreateExpense persists an expense and its splits atomically.
func (s *SQLiteStore) CreateExpense(ctx context.Context, description string, amount float64, paidByID int64, createdAt int64, splits []storage.SplitRow) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO expenses (description, amount, paid_by_id, created_at) VALUES (?, ?, ?, ?)",
		description, amount, paidByID, createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert expense: %w", err)
	}

	expenseID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read expense id: %w", err)
	}

	for _, split := range splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO splits (expense_id, member_id, share_amount) VALUES (?, ?, ?)",
			expenseID, split.MemberID, split.Share,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return expenseID, nil
}

// ListExpenses returns all expenses newest first, with payer and split
// member ids resolved to names.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.expense_id, e.description, e.amount, m.name, e.created_at
		FROM expenses e
		JOIN members m ON m.member_id = e.paid_by_id
		ORDER BY e.expense_id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.PaidBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		splitRows, err := s.db.QueryContext(ctx, `
			SELECT m.name, s.share_amount
			FROM splits s
			JOIN members m ON m.member_id = s.member_id
			WHERE s.expense_id = ?
			ORDER BY m.name`,
			expenses[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to query splits: %w", err)
		}

		for splitRows.Next() {
			var split models.Split
			if err := splitRows.Scan(&split.Member, &split.Share); err != nil {
				splitRows.Close()
				return nil, fmt.Errorf("failed to scan split: %w", err)
			}
			expenses[i].Splits = append(expenses[i].Splits, split)
		}
		if err := splitRows.Err(); err != nil {
			splitRows.Close()
			return nil, fmt.Errorf("failed to iterate splits: %w", err)
		}
		splitRows.Close()
	}

	return expenses, nil
}

// Totals returns per-member paid and owed sums, including members with no
// activity. NetBalance is left zero for the caller to derive.
func (s *SQLiteStore) Totals(ctx context.Context) ([]models.Balance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.name,
		       COALESCE((SELECT SUM(e.amount) FROM expenses e WHERE e.paid_by_id = m.member_id), 0),
		       COALESCE((SELECT SUM(s.share_amount) FROM splits s WHERE s.member_id = m.member_id), 0)
		FROM members m
		ORDER BY m.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query totals: %w", err)
	}
	defer rows.Close()

	var totals []models.Balance
	for rows.Next() {
		var b models.Balance
		if err := rows.Scan(&b.Name, &b.TotalPaid, &b.TotalOwed); err != nil {
			return nil, fmt.Errorf("failed to scan totals: %w", err)
		}
		totals = append(totals, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate totals: %w", err)
	}

	return totals, nil
}
