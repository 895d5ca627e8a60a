package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Errors rewritten from database constraint violations, see database.go.
var (
	ErrAccountNameNotUnique = errors.New("the account name must be unique for the user")
	ErrUserNameNotUnique    = errors.New("this username is already taken")
	ErrUserEmailNotUnique   = errors.New("an account with this email address already exists")
	ErrBudgetNotUnique      = errors.New("there can only be one budget per category and month")
	ErrAlertNotUnique       = errors.New("an alert for this budget, threshold and period already exists")
)

// Validation errors raised by model hooks.
var (
	ErrAmountNotPositive         = errors.New("amounts must be larger than zero")
	ErrBudgetLimitNotPositive    = errors.New("the budget limit must be larger than zero")
	ErrTransactionTypeInvalid    = errors.New("the transaction type must be income or expense")
	ErrFrequencyInvalid          = errors.New("the frequency must be one of weekly, biweekly, monthly, quarterly, yearly")
	ErrAlertTransitionInvalid    = errors.New("acknowledged and dismissed alerts cannot change their status")
	ErrAlertThresholdInvalid     = errors.New("the alert threshold must be a positive percentage")
	ErrCategoryNotAccessible     = errors.New("the category does not exist or belongs to another user")
	ErrMatchRuleMatchEmpty       = errors.New("the match rule pattern must not be empty")
	ErrGoalAmountNotPositive     = errors.New("goal amounts must be larger than zero")
	ErrRecurringNextDueDateUnset = errors.New("the next due date must be set")
	ErrRecurringNotActive        = errors.New("inactive recurring transactions cannot be materialized")
)
