package models

// Tolerance is the tolerance used for all monetary float comparisons:
// the share-sum check on manual splits and the zero checks in balance and
// settlement calculations. Equal splits use plain floating-point division
// with no remainder redistribution, so sums may drift by a sub-cent amount;
// any drift below this threshold is treated as zero.
const Tolerance = 0.01

// Member represents a participant in the shared expense pool.
type Member struct {
	// ID is the storage-assigned numeric identifier.
	ID int64 `json:"id"`

	// Name uniquely identifies the member (case-sensitive).
	Name string `json:"name"`
}

// Expense represents a single payment made by one member.
// Expenses are immutable once recorded.
type Expense struct {
	// ID is the storage-assigned numeric identifier.
	ID int64 `json:"expense_id"`

	// Description is the human-readable label for the expense.
	Description string `json:"description"`

	// Amount is the total amount paid, always positive.
	Amount float64 `json:"amount"`

	// PaidBy is the name of the member who paid.
	PaidBy string `json:"paid_by"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`

	// Splits are the per-member share allocations. Only shares greater
	// than zero are stored; their sum matches Amount within Tolerance.
	Splits []Split `json:"splits"`
}

// Split is one member's allocated share of one expense.
type Split struct {
	// Member is the name of the member who owes this share.
	Member string `json:"member"`

	// Share is the amount owed, always greater than zero when stored.
	Share float64 `json:"share"`
}

// Balance holds the derived totals for one member.
// Positive NetBalance means the member is owed money (creditor), negative
// means the member owes money (debtor).
type Balance struct {
	Name       string  `json:"name"`
	TotalPaid  float64 `json:"total_paid"`
	TotalOwed  float64 `json:"total_owed"`
	NetBalance float64 `json:"net_balance"`
}

// Transfer is a suggested payment from a debtor to a creditor that reduces
// outstanding balances. Transfers are computed, never stored.
type Transfer struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}
