// Package analytics derives reporting figures from an accounting snapshot.
// Everything here is a pure function over the snapshot's transaction list;
// nothing reads the store.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// Summary holds the headline figures for a transaction list.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
}

// Summarize computes income and expense totals and their difference.
func Summarize(transactions []*entity.TransactionWithCategory) Summary {
	totalIncome := decimal.Zero
	totalExpense := decimal.Zero

	for _, t := range transactions {
		switch t.Type {
		case entity.TransactionTypeIncome:
			totalIncome = totalIncome.Add(t.Amount)
		case entity.TransactionTypeExpense:
			totalExpense = totalExpense.Add(t.Amount)
		}
	}

	return Summary{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Balance:      totalIncome.Sub(totalExpense),
	}
}
