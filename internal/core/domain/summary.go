package domain

import "github.com/shopspring/decimal"

// CategoryAmount is the summed absolute amount for one category.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Summary aggregates a set of transactions into totals and per-category breakdowns.
type Summary struct {
	TotalIncome      decimal.Decimal  `json:"totalIncome"`
	TotalExpenses    decimal.Decimal  `json:"totalExpenses"`
	Balance          decimal.Decimal  `json:"balance"`
	ExpenseBreakdown []CategoryAmount `json:"expenseBreakdown"`
	IncomeBreakdown  []CategoryAmount `json:"incomeBreakdown"`
}

// categoryTotals accumulates amounts per category, remembering first-seen order.
type categoryTotals struct {
	order  []string
	totals map[string]decimal.Decimal
}

func newCategoryTotals() *categoryTotals {
	return &categoryTotals{totals: make(map[string]decimal.Decimal)}
}

func (c *categoryTotals) add(category string, amount decimal.Decimal) {
	current, seen := c.totals[category]
	if !seen {
		c.order = append(c.order, category)
	}
	c.totals[category] = current.Add(amount)
}

func (c *categoryTotals) list() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(c.order))
	for _, category := range c.order {
		out = append(out, CategoryAmount{Category: category, Amount: c.totals[category]})
	}
	return out
}

// Summarize buckets transactions by the sign of their amount. Positive amounts count as
// income, negative amounts as expenses (by absolute value). Zero amounts count nowhere.
func Summarize(transactions []Transaction) Summary {
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	income := newCategoryTotals()
	expenses := newCategoryTotals()

	for _, t := range transactions {
		switch t.Amount.Sign() {
		case 1:
			totalIncome = totalIncome.Add(t.Amount)
			income.add(t.Category, t.Amount)
		case -1:
			abs := t.Amount.Abs()
			totalExpenses = totalExpenses.Add(abs)
			expenses.add(t.Category, abs)
		}
	}

	return Summary{
		TotalIncome:      totalIncome,
		TotalExpenses:    totalExpenses,
		Balance:          totalIncome.Sub(totalExpenses),
		ExpenseBreakdown: expenses.list(),
		IncomeBreakdown:  income.list(),
	}
}
