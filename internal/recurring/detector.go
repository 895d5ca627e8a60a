// Package recurring implements detection of recurring transaction series in
// a user's ledger and the materialization of confirmed recurring definitions.
package recurring

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// Options control the detection run.
type Options struct {
	MinOccurrences int // Minimum number of transactions for a candidate. Defaults to 3.
	LookbackDays   int // How far back transactions are scanned. Defaults to 365.
}

// Defaults for Options fields that are not set.
const (
	DefaultMinOccurrences = 3
	DefaultLookbackDays   = 365
)

func (o Options) withDefaults() Options {
	if o.MinOccurrences <= 0 {
		o.MinOccurrences = DefaultMinOccurrences
	}

	if o.LookbackDays <= 0 {
		o.LookbackDays = DefaultLookbackDays
	}

	return o
}

// Candidate is a detected recurring series. The member transaction IDs and
// the occurrence count are the confidence signal for the caller.
type Candidate struct {
	Description    string           `json:"description"`                                                // Normalized description of the series
	Frequency      models.Frequency `json:"frequency" example:"monthly"`                                // Detected interval
	Amount         decimal.Decimal  `json:"amount" example:"29.99"`                                     // Average amount of the member transactions
	Type           models.TransactionType `json:"type" example:"expense"`                               // Direction of the series
	AccountID      uuid.UUID        `json:"accountId" example:"d06d3d23-26dc-4b3e-b9c3-9f82ff4d2e19"`   // Account of the most recent member
	CategoryID     *uuid.UUID       `json:"categoryId"`                                                 // Category, if all members agree on one
	LastDate       time.Time        `json:"lastDate"`                                                   // Date of the most recent member
	NextDate       time.Time        `json:"nextDate"`                                                   // Predicted next occurrence
	Occurrences    int              `json:"occurrences" example:"4"`                                    // Number of member transactions
	TransactionIDs []uuid.UUID      `json:"transactionIds"`                                             // IDs of the member transactions
}

// interval is one classifiable nominal interval with its tolerance in days.
type interval struct {
	frequency models.Frequency
	days      int
	tolerance int
}

// intervals are checked in order, the first one the median gap fits into
// wins. Quarterly and yearly get wider windows since billing dates drift
// more over longer spans.
var intervals = []interval{
	{models.FrequencyWeekly, 7, 3},
	{models.FrequencyBiweekly, 14, 3},
	{models.FrequencyMonthly, 30, 5},
	{models.FrequencyQuarterly, 91, 10},
	{models.FrequencyYearly, 365, 15},
}

// amountTolerance is the relative tolerance for two amounts to land in the
// same bucket.
var amountTolerance = decimal.NewFromFloat(0.01)

// minAmountTolerance is the lower bound for the bucket tolerance so that
// very small amounts still bucket together.
var minAmountTolerance = decimal.NewFromFloat(0.5)

var folder = cases.Fold()

// Detect scans the user's transaction history and returns candidate
// recurring series, ordered by occurrence count, most first.
//
// It is a pure read + compute operation without side effects.
func Detect(db *gorm.DB, userID uuid.UUID, opts Options) ([]Candidate, error) {
	opts = opts.withDefaults()

	var transactions []models.Transaction
	err := db.
		Where("user_id = ?", userID).
		Where("datetime(date) >= datetime(?)", time.Now().In(time.UTC).AddDate(0, 0, -opts.LookbackDays)).
		Order("datetime(date) ASC, datetime(created_at) ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0)
	for _, bucket := range buckets(transactions) {
		if len(bucket) < opts.MinOccurrences {
			continue
		}

		candidate, ok := classify(bucket)
		if !ok {
			continue
		}

		candidates = append(candidates, candidate)
	}

	// Most occurrences first. SliceStable keeps insertion order for ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Occurrences > candidates[j].Occurrences
	})

	return candidates, nil
}

// normalize case-folds the description and collapses all whitespace runs
// into single spaces.
func normalize(description string) string {
	return strings.Join(strings.Fields(folder.String(description)), " ")
}

// buckets groups transactions by normalized description and amount
// similarity. Two transactions share a bucket when their descriptions
// normalize to the same string and their amounts differ by at most 1% of
// the bucket's first amount (but at least minAmountTolerance).
func buckets(transactions []models.Transaction) [][]models.Transaction {
	type bucket struct {
		reference decimal.Decimal
		members   []models.Transaction
	}

	grouped := make(map[string][]*bucket)
	order := make([]string, 0)

	for _, transaction := range transactions {
		key := normalize(transaction.Description)
		if key == "" {
			continue
		}

		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}

		placed := false
		for _, b := range grouped[key] {
			tolerance := decimal.Max(b.reference.Mul(amountTolerance).Abs(), minAmountTolerance)
			if transaction.Amount.Sub(b.reference).Abs().LessThanOrEqual(tolerance) && transaction.Type == b.members[0].Type {
				b.members = append(b.members, transaction)
				placed = true
				break
			}
		}

		if !placed {
			grouped[key] = append(grouped[key], &bucket{
				reference: transaction.Amount,
				members:   []models.Transaction{transaction},
			})
		}
	}

	result := make([][]models.Transaction, 0)
	for _, key := range order {
		for _, b := range grouped[key] {
			result = append(result, b.members)
		}
	}

	return result
}

// classify determines the dominant interval of a bucket. It reports false
// for irregular series.
//
// The median gap is classified instead of the mean so that a single missed
// month does not shift the result. Gaps larger than twice the median are
// treated as outliers (e.g. a skipped billing cycle) and excluded from the
// regularity check.
func classify(bucket []models.Transaction) (Candidate, bool) {
	gaps := make([]int, 0, len(bucket)-1)
	for i := 1; i < len(bucket); i++ {
		days := int(bucket[i].Date.Sub(bucket[i-1].Date).Hours() / 24)
		gaps = append(gaps, days)
	}

	med := median(gaps)
	if med <= 0 {
		return Candidate{}, false
	}

	kept := make([]int, 0, len(gaps))
	for _, gap := range gaps {
		if gap > 2*med {
			continue
		}
		kept = append(kept, gap)
	}

	frequency, ok := frequencyFor(med)
	if !ok {
		return Candidate{}, false
	}

	// Every non-outlier gap must be within tolerance of the nominal
	// interval, otherwise the series is irregular.
	nominal := nominalDays(frequency)
	tolerance := toleranceDays(frequency)
	for _, gap := range kept {
		if gap < nominal-tolerance || gap > nominal+tolerance {
			return Candidate{}, false
		}
	}

	last := bucket[len(bucket)-1]

	sum := decimal.Zero
	ids := make([]uuid.UUID, 0, len(bucket))
	for _, transaction := range bucket {
		sum = sum.Add(transaction.Amount)
		ids = append(ids, transaction.ID)
	}

	return Candidate{
		Description:    normalize(last.Description),
		Frequency:      frequency,
		Amount:         sum.Div(decimal.NewFromInt(int64(len(bucket)))).Round(2),
		Type:           last.Type,
		AccountID:      last.AccountID,
		CategoryID:     commonCategory(bucket),
		LastDate:       last.Date,
		NextDate:       frequency.NextDate(last.Date),
		Occurrences:    len(bucket),
		TransactionIDs: ids,
	}, true
}

// frequencyFor maps a median gap in days to a frequency label.
func frequencyFor(days int) (models.Frequency, bool) {
	for _, i := range intervals {
		if days >= i.days-i.tolerance && days <= i.days+i.tolerance {
			return i.frequency, true
		}
	}

	return "", false
}

func nominalDays(f models.Frequency) int {
	for _, i := range intervals {
		if i.frequency == f {
			return i.days
		}
	}

	return 0
}

func toleranceDays(f models.Frequency) int {
	for _, i := range intervals {
		if i.frequency == f {
			return i.tolerance
		}
	}

	return 0
}

// median returns the median of the values. For an even count, the lower of
// the two middle values is used, which is sufficient for day gaps.
func median(values []int) int {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	return sorted[(len(sorted)-1)/2]
}

// commonCategory returns the category shared by all members, or nil if the
// members disagree or have no category.
func commonCategory(bucket []models.Transaction) *uuid.UUID {
	var category *uuid.UUID
	for _, transaction := range bucket {
		if transaction.CategoryID == nil {
			return nil
		}

		if category == nil {
			category = transaction.CategoryID
			continue
		}

		if *category != *transaction.CategoryID {
			return nil
		}
	}

	return category
}
