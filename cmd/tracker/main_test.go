package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/googol23/ExpenseTracker/internal/ledger"
	"github.com/googol23/ExpenseTracker/internal/storage/sqlite"
)

func newTestLedger(t *testing.T) *ledger.Ledger {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "tracker-cli-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return ledger.New(store)
}

func runWithInput(t *testing.T, l *ledger.Ledger, input string) string {
	t.Helper()
	var out bytes.Buffer
	run(l, bufio.NewScanner(strings.NewReader(input)), &out)
	return out.String()
}

func TestRunExitsWhenInputClosed(t *testing.T) {
	l := newTestLedger(t)

	// Exhausted input must terminate the loop, not spin on the menu.
	out := runWithInput(t, l, "")
	if !strings.Contains(out, "Input closed") {
		t.Errorf("Expected close notice in output, got:\n%s", out)
	}
	if n := strings.Count(out, "--- Menu ---"); n != 1 {
		t.Errorf("Menu printed %d times before exit, want 1", n)
	}
}

func TestRunExitsOnEOFMidFlow(t *testing.T) {
	l := newTestLedger(t)

	// Input ends while the add-expense flow is prompting for the amount.
	out := runWithInput(t, l, "2\nLunch\n")
	if !strings.Contains(out, "Input closed") {
		t.Errorf("Expected close notice in output, got:\n%s", out)
	}
	if n := strings.Count(out, "--- Menu ---"); n != 2 {
		t.Errorf("Menu printed %d times, want 2 (initial and post-abort)", n)
	}
}

func TestRunExitOption(t *testing.T) {
	l := newTestLedger(t)

	out := runWithInput(t, l, "4\n")
	if !strings.Contains(out, "Goodbye") {
		t.Errorf("Expected goodbye message, got:\n%s", out)
	}
}

func TestRunMemberAndBalanceFlow(t *testing.T) {
	l := newTestLedger(t)

	input := strings.Join([]string{
		"3", "Alice",
		"3", "Bob",
		"2", "Lunch", "30", "Alice", "a",
		"1",
		"4",
	}, "\n") + "\n"

	out := runWithInput(t, l, input)
	if !strings.Contains(out, "Added participant: Alice") {
		t.Errorf("Expected Alice to be added, got:\n%s", out)
	}
	if !strings.Contains(out, "Expense 'Lunch' of $30.00 added successfully.") {
		t.Errorf("Expected expense confirmation, got:\n%s", out)
	}
	if !strings.Contains(out, "Bob pays Alice $15.00") {
		t.Errorf("Expected settlement suggestion, got:\n%s", out)
	}
}

func TestRunDuplicateParticipant(t *testing.T) {
	l := newTestLedger(t)

	out := runWithInput(t, l, "3\nAlice\n3\nAlice\n4\n")
	if !strings.Contains(out, "Participant Alice already exists.") {
		t.Errorf("Expected duplicate notice, got:\n%s", out)
	}
}

func TestParseManualShares(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]float64
		wantErr bool
	}{
		{
			name:  "two entries",
			input: "Alice:10.50,Bob:20",
			want:  map[string]float64{"Alice": 10.5, "Bob": 20},
		},
		{
			name:  "whitespace tolerated",
			input: " Alice : 10.50 , Bob : 20 ",
			want:  map[string]float64{"Alice": 10.5, "Bob": 20},
		},
		{
			name:    "missing colon",
			input:   "Alice10.50",
			wantErr: true,
		},
		{
			name:    "non-numeric share",
			input:   "Alice:ten",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseManualShares(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseManualShares(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(got), len(tt.want))
			}
			for name, share := range tt.want {
				if got[name] != share {
					t.Errorf("share[%s] = %v, want %v", name, got[name], share)
				}
			}
		})
	}
}
