package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Name           string             `json:"name" example:"Checking" default:""`                 // Name of the account
	Type           models.AccountType `json:"type" example:"checking" default:"checking"`         // Type of the account
	Note           string             `json:"note" example:"My main account" default:""`          // Notes about the account
	InitialBalance decimal.Decimal    `json:"initialBalance" example:"173.12" default:"0"`        // Balance of the account before any transaction was recorded
	Currency       string             `json:"currency" example:"EUR" default:"EUR"`               // Currency of the account
	Archived       bool               `json:"archived" example:"true" default:"false"`            // Is the account archived?
}

func (editable AccountEditable) model(userID uuid.UUID) models.Account {
	return models.Account{
		UserID:         userID,
		Name:           editable.Name,
		Type:           editable.Type,
		Note:           editable.Note,
		InitialBalance: editable.InitialBalance,
		Currency:       editable.Currency,
		Archived:       editable.Archived,
	}
}

type Account struct {
	models.DefaultModel
	AccountEditable

	// These fields are computed
	Balance decimal.Decimal `json:"balance" example:"2735.17"` // Current balance of the account, including all transactions
}

func newAccount(db *gorm.DB, model models.Account) (Account, error) {
	balance, err := model.Balance(db, time.Now().In(time.UTC))
	if err != nil {
		return Account{}, err
	}

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:           model.Name,
			Type:           model.Type,
			Note:           model.Note,
			InitialBalance: model.InitialBalance,
			Currency:       model.Currency,
			Archived:       model.Archived,
		},
		Balance: balance,
	}, nil
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of Accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Data  []AccountResponse `json:"data"`                                                          // List of the created Accounts or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the Account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Type     string `form:"type"`                       // By account type
	Note     string `form:"note" filterField:"false"`   // By note
	Archived bool   `form:"archived"`                   // Is the Account archived?
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Account returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Accounts to return. Defaults to 50.
}

func (f AccountQueryFilter) model() models.Account {
	return models.Account{
		Type:     models.AccountType(f.Type),
		Archived: f.Archived,
	}
}
