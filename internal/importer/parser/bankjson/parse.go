// Package bankjson parses JSON exports containing an array of transaction
// objects.
package bankjson

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pkoka888/budget-control/internal/importer"
	"github.com/pkoka888/budget-control/internal/importer/helpers"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/shopspring/decimal"
)

// record is one transaction object in the export.
type record struct {
	Date        string          `json:"date"`        // Date in YYYY-MM-DD format
	Description string          `json:"description"` // Payee or booking text
	Amount      decimal.Decimal `json:"amount"`      // Signed amount, negative for expenses
	Reference   string          `json:"reference"`   // Bank reference number
}

// Parse parses a JSON export into transaction previews for the account.
//
// The amount convention matches the CSV parser: negative amounts become
// expenses, positive amounts become income.
func Parse(f io.Reader, account models.Account) ([]importer.TransactionPreview, error) {
	var records []record

	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&records); err != nil {
		return []importer.TransactionPreview{}, fmt.Errorf("could not parse the JSON file: %w", err)
	}

	transactions := make([]importer.TransactionPreview, 0, len(records))
	for i, r := range records {
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			return []importer.TransactionPreview{}, fmt.Errorf("error in entry %d of the JSON file: could not parse time: %w", i+1, err)
		}

		if r.Amount.IsZero() {
			return []importer.TransactionPreview{}, fmt.Errorf("error in entry %d of the JSON file: the amount for a transaction must not be 0", i+1)
		}

		transactionType := models.TransactionTypeIncome
		if r.Amount.IsNegative() {
			transactionType = models.TransactionTypeExpense
		}

		transactions = append(transactions, importer.TransactionPreview{
			Transaction: models.Transaction{
				UserID:          account.UserID,
				AccountID:       account.ID,
				Date:            date,
				Description:     r.Description,
				Amount:          r.Amount.Abs(),
				Type:            transactionType,
				ReferenceNumber: r.Reference,
				ImportHash:      helpers.Sha256String(fmt.Sprintf("%s,%s,%s,%s", r.Date, r.Description, r.Amount, r.Reference)),
			},
		})
	}

	return transactions, nil
}
