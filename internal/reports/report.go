// Package reports computes spending summaries over a user's transactions.
package reports

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/pkoka888/budget-control/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Trend labels for period over period comparisons.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// trendMargin is the percentage change below which spending counts as
// stable.
var trendMargin = decimal.NewFromInt(5)

// CategoryBreakdown is the activity of one category within a report period.
type CategoryBreakdown struct {
	CategoryID   uuid.UUID       `json:"categoryId" example:"ae838135-ac1b-4a87-b586-1d94622e2afe"`
	CategoryName string          `json:"categoryName" example:"Groceries"`
	Spent        decimal.Decimal `json:"spent" example:"421.50"`
	Income       decimal.Decimal `json:"income" example:"12.30"`
	Transactions int64           `json:"transactions" example:"14"`  // Number of transactions in the period
	Percentage   decimal.Decimal `json:"percentage" example:"32.5"` // Share of total expenses in percent
}

// MonthSummary is the report for a single month.
type MonthSummary struct {
	Month      types.Month         `json:"month" example:"2024-03"`
	Income     decimal.Decimal     `json:"income" example:"2800.00"`
	Expenses   decimal.Decimal     `json:"expenses" example:"1950.12"`
	Balance    decimal.Decimal     `json:"balance" example:"849.88"` // Income minus expenses
	Categories []CategoryBreakdown `json:"categories"`
	Growth     decimal.Decimal     `json:"growth" example:"3.4"`          // Expense change against the previous month in percent
	Trend      string              `json:"trend" example:"increasing"`    // increasing, decreasing or stable
}

// YearSummary is the report for a full calendar year.
type YearSummary struct {
	Year       int                 `json:"year" example:"2024"`
	Income     decimal.Decimal     `json:"income" example:"33600.00"`
	Expenses   decimal.Decimal     `json:"expenses" example:"23882.17"`
	Balance    decimal.Decimal     `json:"balance" example:"9717.83"`
	Months     []MonthTotal        `json:"months"`
	Categories []CategoryBreakdown `json:"categories"`
	Growth     decimal.Decimal     `json:"growth" example:"-2.1"` // Expense change against the previous year in percent
	Trend      string              `json:"trend" example:"decreasing"`
}

// MonthTotal is one month's totals within a year report.
type MonthTotal struct {
	Month    types.Month     `json:"month" example:"2024-03"`
	Income   decimal.Decimal `json:"income" example:"2800.00"`
	Expenses decimal.Decimal `json:"expenses" example:"1950.12"`
}

// Month builds the report for one month.
func Month(db *gorm.DB, userID uuid.UUID, month types.Month) (MonthSummary, error) {
	from, until := month.First(), month.Next()

	income, err := models.IncomeSum(db, userID, nil, from, until)
	if err != nil {
		return MonthSummary{}, err
	}

	expenses, err := models.ExpenseSum(db, userID, nil, from, until)
	if err != nil {
		return MonthSummary{}, err
	}

	categories, err := breakdown(db, userID, from, until, expenses)
	if err != nil {
		return MonthSummary{}, err
	}

	previous, err := models.ExpenseSum(db, userID, nil, month.AddDate(0, -1).First(), from)
	if err != nil {
		return MonthSummary{}, err
	}

	growth, trend := compare(expenses, previous)

	return MonthSummary{
		Month:      month,
		Income:     income,
		Expenses:   expenses,
		Balance:    income.Sub(expenses),
		Categories: categories,
		Growth:     growth,
		Trend:      trend,
	}, nil
}

// Year builds the report for one calendar year.
func Year(db *gorm.DB, userID uuid.UUID, year int) (YearSummary, error) {
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(1, 0, 0)

	income, err := models.IncomeSum(db, userID, nil, from, until)
	if err != nil {
		return YearSummary{}, err
	}

	expenses, err := models.ExpenseSum(db, userID, nil, from, until)
	if err != nil {
		return YearSummary{}, err
	}

	months := make([]MonthTotal, 0, 12)
	for m := 1; m <= 12; m++ {
		month := types.NewMonth(year, time.Month(m))

		monthIncome, err := models.IncomeSum(db, userID, nil, month.First(), month.Next())
		if err != nil {
			return YearSummary{}, err
		}

		monthExpenses, err := models.ExpenseSum(db, userID, nil, month.First(), month.Next())
		if err != nil {
			return YearSummary{}, err
		}

		months = append(months, MonthTotal{
			Month:    month,
			Income:   monthIncome,
			Expenses: monthExpenses,
		})
	}

	categories, err := breakdown(db, userID, from, until, expenses)
	if err != nil {
		return YearSummary{}, err
	}

	previous, err := models.ExpenseSum(db, userID, nil, from.AddDate(-1, 0, 0), from)
	if err != nil {
		return YearSummary{}, err
	}

	growth, trend := compare(expenses, previous)

	return YearSummary{
		Year:       year,
		Income:     income,
		Expenses:   expenses,
		Balance:    income.Sub(expenses),
		Months:     months,
		Categories: categories,
		Growth:     growth,
		Trend:      trend,
	}, nil
}

// MonthComparison is one month of a year-over-year report, paired with the
// same month one year earlier.
type MonthComparison struct {
	Month            types.Month     `json:"month" example:"2024-03"`
	Expenses         decimal.Decimal `json:"expenses" example:"1950.12"`
	PreviousExpenses decimal.Decimal `json:"previousExpenses" example:"1830.77"` // Expenses in the same month one year earlier
	Growth           decimal.Decimal `json:"growth" example:"6.5"`
	Trend            string          `json:"trend" example:"increasing"`
}

// YearOverYearSummary compares the expenses of a month range against the
// same range one year earlier.
type YearOverYearSummary struct {
	From             types.Month       `json:"from" example:"2024-01"`
	Until            types.Month       `json:"until" example:"2024-06"`
	Expenses         decimal.Decimal   `json:"expenses" example:"11207.45"`
	PreviousExpenses decimal.Decimal   `json:"previousExpenses" example:"10510.02"`
	Growth           decimal.Decimal   `json:"growth" example:"6.6"`
	Trend            string            `json:"trend" example:"increasing"`
	Months           []MonthComparison `json:"months"`
}

// YearOverYear builds the comparison for the inclusive [from, until] month
// range. The bounds are swapped when they are passed in the wrong order.
func YearOverYear(db *gorm.DB, userID uuid.UUID, from, until types.Month) (YearOverYearSummary, error) {
	if until.Before(from) {
		from, until = until, from
	}

	summary := YearOverYearSummary{
		From:   from,
		Until:  until,
		Months: make([]MonthComparison, 0),
	}

	for month := from; !month.After(until); month = month.AddDate(0, 1) {
		current, err := models.ExpenseSum(db, userID, nil, month.First(), month.Next())
		if err != nil {
			return YearOverYearSummary{}, err
		}

		lastYear := month.AddDate(-1, 0)
		previous, err := models.ExpenseSum(db, userID, nil, lastYear.First(), lastYear.Next())
		if err != nil {
			return YearOverYearSummary{}, err
		}

		growth, trend := compare(current, previous)
		summary.Months = append(summary.Months, MonthComparison{
			Month:            month,
			Expenses:         current,
			PreviousExpenses: previous,
			Growth:           growth,
			Trend:            trend,
		})

		summary.Expenses = summary.Expenses.Add(current)
		summary.PreviousExpenses = summary.PreviousExpenses.Add(previous)
	}

	summary.Growth, summary.Trend = compare(summary.Expenses, summary.PreviousExpenses)

	return summary, nil
}

// breakdown aggregates spending, income and transaction counts per category
// for the range and computes each category's share of the total expenses.
// Transactions without a category are reported under the zero UUID with the
// name "Uncategorized".
func breakdown(db *gorm.DB, userID uuid.UUID, from, until time.Time, total decimal.Decimal) ([]CategoryBreakdown, error) {
	type row struct {
		CategoryID   *uuid.UUID
		Name         *string
		Spent        decimal.Decimal
		Income       decimal.Decimal
		Transactions int64
	}

	var rows []row
	err := db.Table("transactions").
		Select("transactions.category_id, categories.name, "+
			"SUM(CASE WHEN transactions.type = ? THEN transactions.amount ELSE 0 END) AS spent, "+
			"SUM(CASE WHEN transactions.type = ? THEN transactions.amount ELSE 0 END) AS income, "+
			"COUNT(*) AS transactions",
			models.TransactionTypeExpense, models.TransactionTypeIncome).
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID).
		Where("transactions.deleted_at IS NULL").
		Where("datetime(transactions.date) >= datetime(?)", from).
		Where("datetime(transactions.date) < datetime(?)", until).
		Group("transactions.category_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]CategoryBreakdown, 0, len(rows))
	for _, r := range rows {
		entry := CategoryBreakdown{
			CategoryName: "Uncategorized",
			Spent:        r.Spent,
			Income:       r.Income,
			Transactions: r.Transactions,
		}

		if r.CategoryID != nil {
			entry.CategoryID = *r.CategoryID
		}

		if r.Name != nil {
			entry.CategoryName = *r.Name
		}

		if total.IsPositive() {
			entry.Percentage = r.Spent.Div(total).Mul(decimal.NewFromInt(100)).Round(1)
		}

		result = append(result, entry)
	}

	// Largest share first
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Spent.GreaterThan(result[j].Spent)
	})

	return result, nil
}

// compare returns the expense growth in percent against the previous period
// and the matching trend label. A previous period without expenses reports
// zero growth and a stable trend.
func compare(current, previous decimal.Decimal) (decimal.Decimal, string) {
	if !previous.IsPositive() {
		return decimal.Zero, TrendStable
	}

	growth := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(1)

	switch {
	case growth.GreaterThan(trendMargin):
		return growth, TrendIncreasing
	case growth.LessThan(trendMargin.Neg()):
		return growth, TrendDecreasing
	default:
		return growth, TrendStable
	}
}
