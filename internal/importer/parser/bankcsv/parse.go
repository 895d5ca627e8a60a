// Package bankcsv parses CSV exports with the columns Date, Description,
// Amount and Reference.
package bankcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkoka888/budget-control/internal/importer"
	"github.com/pkoka888/budget-control/internal/importer/helpers"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/shopspring/decimal"
)

// Column indexes of the CSV format.
const (
	Date = iota
	Description
	Amount
	Reference
)

// Parse parses a CSV export into transaction previews for the account.
//
// Amounts are signed: negative amounts become expenses, positive amounts
// become income. The sign is stripped from the stored amount.
func Parse(f io.Reader, account models.Account) ([]importer.TransactionPreview, error) {
	reader := csv.NewReader(f)

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	var transactions []importer.TransactionPreview

	// Skip the header line
	_, err := reader.Read()
	if err == io.EOF {
		return []importer.TransactionPreview{}, nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		if len(record) < Amount+1 {
			return csvReadError(reader, errors.New("the line does not have enough columns"))
		}

		date, err := time.Parse("2006-01-02", record[Date])
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not parse time: %w", err))
		}

		amount, err := decimal.NewFromString(record[Amount])
		if err != nil {
			return csvReadError(reader, errors.New("the amount could not be parsed to a decimal"))
		}

		if amount.IsZero() {
			return csvReadError(reader, errors.New("the amount for a transaction must not be 0"))
		}

		transactionType := models.TransactionTypeIncome
		if amount.IsNegative() {
			transactionType = models.TransactionTypeExpense
		}

		var reference string
		if len(record) > Reference {
			reference = record[Reference]
		}

		transactions = append(transactions, importer.TransactionPreview{
			Transaction: models.Transaction{
				UserID:          account.UserID,
				AccountID:       account.ID,
				Date:            date,
				Description:     record[Description],
				Amount:          amount.Abs(),
				Type:            transactionType,
				ReferenceNumber: reference,
				ImportHash:      helpers.Sha256String(strings.Join(record, ",")),
			},
		})
	}

	return transactions, nil
}

// csvReadError returns the an error with the format string, including the line of the input
// the error occurred in in the message.
func csvReadError(r *csv.Reader, err error) ([]importer.TransactionPreview, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(1)

	return []importer.TransactionPreview{}, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
