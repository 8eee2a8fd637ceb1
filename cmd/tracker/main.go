// Command tracker is an interactive terminal client for the expense ledger.
// It talks to the same SQLite database as the server.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/googol23/ExpenseTracker/internal/config"
	"github.com/googol23/ExpenseTracker/internal/ledger"
	"github.com/googol23/ExpenseTracker/internal/models"
	"github.com/googol23/ExpenseTracker/internal/settle"
	"github.com/googol23/ExpenseTracker/internal/storage/sqlite"
	"github.com/googol23/ExpenseTracker/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	// Keep log output out of the menu; warnings still surface.
	logging.Setup(cfg.LogFormat, "warn")

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	run(ledger.New(store), bufio.NewScanner(os.Stdin), os.Stdout)
}

// run drives the menu loop until the user exits or input is closed.
func run(l *ledger.Ledger, in *bufio.Scanner, out io.Writer) {
	ctx := context.Background()

	fmt.Fprintln(out, "Group Expense Tracker")
	for {
		fmt.Fprintln(out, "\n--- Menu ---")
		fmt.Fprintln(out, "1. View Balances")
		fmt.Fprintln(out, "2. Add Expense")
		fmt.Fprintln(out, "3. Add Participant")
		fmt.Fprintln(out, "4. Exit")

		choice, ok := prompt(in, out, "Enter choice (1-4): ")
		if !ok {
			// Stdin is closed (EOF or read error); looping would spin.
			fmt.Fprintln(out, "\nInput closed. Exiting.")
			return
		}

		switch choice {
		case "1":
			viewBalances(ctx, l, out)
		case "2":
			addExpense(ctx, l, in, out)
		case "3":
			name, ok := prompt(in, out, "Enter new participant's name: ")
			if !ok {
				continue
			}
			if name == "" {
				fmt.Fprintln(out, "Name cannot be empty.")
				continue
			}
			member, created, err := l.AddMember(ctx, name)
			switch {
			case err != nil:
				fmt.Fprintln(out, "Error adding participant:", err)
			case created:
				fmt.Fprintln(out, "Added participant:", member.Name)
			default:
				fmt.Fprintf(out, "Participant %s already exists.\n", member.Name)
			}
		case "4":
			fmt.Fprintln(out, "Exiting. Goodbye!")
			return
		default:
			fmt.Fprintln(out, "Invalid choice. Please try again.")
		}
	}
}

func viewBalances(ctx context.Context, l *ledger.Ledger, out io.Writer) {
	balances, err := l.NetBalances(ctx)
	if err != nil {
		fmt.Fprintln(out, "Error fetching balances:", err)
		return
	}
	if len(balances) == 0 {
		fmt.Fprintln(out, "No participants yet.")
		return
	}

	fmt.Fprintln(out, "\n--- GLOBAL POOL BALANCE ---")
	fmt.Fprintln(out, "Positive means they are owed (Creditor). Negative means they owe (Debtor).")
	for _, b := range balances {
		fmt.Fprintf(out, "%-20s $%+.2f\n", b.Name, b.NetBalance)
	}

	transfers := settle.Settle(balances)
	fmt.Fprintln(out, "\n--- MINIMAL SETTLEMENTS NEEDED ---")
	if len(transfers) == 0 {
		fmt.Fprintln(out, "Everyone is settled up!")
		return
	}
	for _, t := range transfers {
		fmt.Fprintf(out, "%s pays %s $%.2f\n", t.From, t.To, t.Amount)
	}
}

func addExpense(ctx context.Context, l *ledger.Ledger, in *bufio.Scanner, out io.Writer) {
	description, ok := prompt(in, out, "Description: ")
	if !ok {
		return
	}
	amountStr, ok := prompt(in, out, "Total Amount: $")
	if !ok {
		return
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		fmt.Fprintln(out, "Amount must be a positive number.")
		return
	}
	paidBy, ok := prompt(in, out, "Paid by (Name): ")
	if !ok {
		return
	}

	method, ok := prompt(in, out, "How to split? (m)anual, (e)qual, (a)ll [default: a]: ")
	if !ok {
		return
	}

	var shares models.ShareSpec
	switch strings.ToLower(method) {
	case "m":
		input, ok := prompt(in, out, "Enter shares (e.g., Alice:10.50,Bob:20): ")
		if !ok {
			return
		}
		amounts, err := parseManualShares(input)
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
			return
		}
		shares = models.Manual(amounts)
	case "e":
		input, ok := prompt(in, out, "Enter participants for equal split (e.g., Alice,Bob): ")
		if !ok {
			return
		}
		shares = models.Among(splitNames(input)...)
	case "a", "":
		shares = models.EqualAll()
	default:
		fmt.Fprintln(out, "Invalid split method. Aborting.")
		return
	}

	if _, err := l.AddExpense(ctx, description, amount, paidBy, shares); err != nil {
		fmt.Fprintln(out, "Error adding expense:", err)
		return
	}
	fmt.Fprintf(out, "Expense '%s' of $%.2f added successfully.\n", description, amount)
}

// parseManualShares parses "Alice:10.50,Bob:20" into a name-to-amount map.
func parseManualShares(input string) (map[string]float64, error) {
	amounts := make(map[string]float64)
	for _, entry := range strings.Split(input, ",") {
		name, value, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("invalid share entry %q, expected Name:Amount", entry)
		}
		share, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid share amount in %q", entry)
		}
		amounts[strings.TrimSpace(name)] = share
	}
	return amounts, nil
}

func splitNames(input string) []string {
	var names []string
	for _, name := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// prompt reads one line of input. ok is false once stdin is exhausted, so
// callers can stop looping instead of treating EOF as empty input.
func prompt(in *bufio.Scanner, out io.Writer, label string) (value string, ok bool) {
	fmt.Fprint(out, label)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}
