// Package settle computes the transfers needed to clear a set of member
// balances. It is pure: no storage, no errors, any input yields a valid
// (possibly empty) plan.
package settle

import (
	"math"
	"sort"

	"github.com/googol23/ExpenseTracker/internal/models"
)

// party is one side of the matching with its remaining amount, always
// positive regardless of debtor/creditor direction.
type party struct {
	name      string
	remaining float64
}

// Settle returns an ordered list of transfers that zero out the given net
// balances, using greedy largest-magnitude matching: the biggest debtor pays
// the biggest creditor as much as either side allows, repeatedly, until both
// queues drain. Ties keep their original relative order.
//
// The result is deterministic and holds at most len(balances)-1 transfers in
// practice, but greedy matching does not always achieve the theoretical
// minimum transfer count; that trade-off is deliberate.
func Settle(balances []models.Balance) []models.Transfer {
	var absSum float64
	for _, b := range balances {
		absSum += math.Abs(b.NetBalance)
	}
	if absSum < models.Tolerance {
		return []models.Transfer{}
	}

	var debtors, creditors []party
	for _, b := range balances {
		switch {
		case b.NetBalance < 0:
			debtors = append(debtors, party{name: b.Name, remaining: -b.NetBalance})
		case b.NetBalance > 0:
			creditors = append(creditors, party{name: b.Name, remaining: b.NetBalance})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining > debtors[j].remaining
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining > creditors[j].remaining
	})

	transfers := []models.Transfer{}
	for len(debtors) > 0 && len(creditors) > 0 {
		debtor := &debtors[0]
		creditor := &creditors[0]

		amount := math.Min(debtor.remaining, creditor.remaining)
		transfers = append(transfers, models.Transfer{
			From:   debtor.name,
			To:     creditor.name,
			Amount: amount,
		})

		debtor.remaining -= amount
		creditor.remaining -= amount

		// Fully settled parties leave the front of their queue; the
		// remainder stays sorted, so no re-sort is needed.
		if debtor.remaining < models.Tolerance {
			debtors = debtors[1:]
		}
		if creditor.remaining < models.Tolerance {
			creditors = creditors[1:]
		}
	}

	return transfers
}
