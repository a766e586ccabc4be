package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// CategorySlice is one row of the expense breakdown.
type CategorySlice struct {
	Name       string
	Icon       string
	Color      string
	Amount     decimal.Decimal
	Percentage decimal.Decimal // share of total expenses, one decimal place
}

// ExpenseBreakdown groups expense transactions by resolved category name
// and computes each group's share of the expense total. Transactions
// whose category is gone are grouped under "Uncategorized". Rows come
// back largest first; equal amounts are ordered by name.
func ExpenseBreakdown(transactions []*entity.TransactionWithCategory) []CategorySlice {
	type group struct {
		icon   string
		color  string
		amount decimal.Decimal
	}
	groups := make(map[string]*group)
	totalExpense := decimal.Zero

	for _, t := range transactions {
		if t.Type != entity.TransactionTypeExpense {
			continue
		}
		name := entity.UncategorizedName
		icon := entity.UncategorizedIcon
		color := entity.UncategorizedColor
		if t.Category != nil {
			name = t.Category.Name
			icon = t.Category.Icon
			color = t.Category.Color
		}
		g, ok := groups[name]
		if !ok {
			g = &group{icon: icon, color: color, amount: decimal.Zero}
			groups[name] = g
		}
		g.amount = g.amount.Add(t.Amount)
		totalExpense = totalExpense.Add(t.Amount)
	}

	slices := make([]CategorySlice, 0, len(groups))
	for name, g := range groups {
		percentage := decimal.Zero
		if totalExpense.IsPositive() {
			percentage = g.amount.Mul(decimal.NewFromInt(100)).Div(totalExpense).Round(1)
		}
		slices = append(slices, CategorySlice{
			Name:       name,
			Icon:       g.icon,
			Color:      g.color,
			Amount:     g.amount,
			Percentage: percentage,
		})
	}

	sort.Slice(slices, func(i, j int) bool {
		if !slices[i].Amount.Equal(slices[j].Amount) {
			return slices[i].Amount.GreaterThan(slices[j].Amount)
		}
		return slices[i].Name < slices[j].Name
	})

	return slices
}
