// Package export writes a user's transactions to downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// headers are the exported columns, shared between the CSV and XLSX
// formats.
var headers = []string{"Date", "Description", "Amount", "Type", "Category", "Account", "Reference"}

// row is one exported transaction with its category and account resolved to
// names.
type row struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        models.TransactionType
	Category    string
	Account     string
	Reference   string
}

// load reads all transactions of the user within the half-open [from, until)
// range, oldest first. Zero bounds are skipped.
func load(db *gorm.DB, userID uuid.UUID, from, until time.Time) ([]row, error) {
	q := db.Table("transactions").
		Select("transactions.date, transactions.description, transactions.amount, transactions.type, transactions.reference_number AS reference, categories.name AS category, accounts.name AS account").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Joins("LEFT JOIN accounts ON accounts.id = transactions.account_id").
		Where("transactions.user_id = ?", userID).
		Where("transactions.deleted_at IS NULL").
		Order("datetime(transactions.date) ASC")

	if !from.IsZero() {
		q = q.Where("datetime(transactions.date) >= datetime(?)", from)
	}

	if !until.IsZero() {
		q = q.Where("datetime(transactions.date) < datetime(?)", until)
	}

	var rows []row
	err := q.Find(&rows).Error

	return rows, err
}

// CSV writes the user's transactions as CSV.
//
// The output starts with a UTF-8 byte order mark so that spreadsheet
// applications detect the encoding.
func CSV(db *gorm.DB, w io.Writer, userID uuid.UUID, from, until time.Time) error {
	rows, err := load(db, userID, from, until)
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.Date.Format("2006-01-02"),
			r.Description,
			r.Amount.String(),
			string(r.Type),
			r.Category,
			r.Account,
			r.Reference,
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// XLSX writes the user's transactions as a styled Excel workbook with a
// summary row.
func XLSX(db *gorm.DB, w io.Writer, userID uuid.UUID, from, until time.Time) error {
	rows, err := load(db, userID, from, until)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Transactions"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "C", "D", 12)
	f.SetColWidth(sheet, "E", "F", 20)
	f.SetColWidth(sheet, "G", "G", 20)

	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	income, expenses := decimal.Zero, decimal.Zero
	for i, r := range rows {
		line := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", line), r.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", line), r.Description)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", line), r.Amount.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", line), string(r.Type))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", line), r.Category)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", line), r.Account)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", line), r.Reference)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", line), fmt.Sprintf("G%d", line), dataStyle)

		if r.Type == models.TransactionTypeIncome {
			income = income.Add(r.Amount)
		} else {
			expenses = expenses.Add(r.Amount)
		}
	}

	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})

	summary := len(rows) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summary), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summary), fmt.Sprintf("%d transactions", len(rows)))
	f.SetCellValue(sheet, fmt.Sprintf("C%d", summary), income.Sub(expenses).InexactFloat64())
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summary), fmt.Sprintf("G%d", summary), summaryStyle)

	return f.Write(w)
}
