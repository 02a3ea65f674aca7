package domain

import "errors"

var (
	// Rounding / distribution errors
	ErrInvalidPrecision       = errors.New("invalid precision")
	ErrInvalidRoundingMode    = errors.New("invalid rounding mode")
	ErrInvalidRemainderPolicy = errors.New("invalid remainder policy")
	ErrPayerRequired          = errors.New("payer policy requires a payer id")
	ErrPayerNotParticipant    = errors.New("payer is not among the share participants")
	ErrNoShares               = errors.New("share list is empty")
	ErrDuplicateParticipant   = errors.New("duplicate participant in share list")

	// Line item / assignment errors
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrNegativeUnitPrice = errors.New("unit price cannot be negative")
	ErrNoAssignees       = errors.New("item must be assigned to at least one participant")
	ErrSharesNotUnit     = errors.New("custom shares must sum to 1")
	ErrNegativeShare     = errors.New("share fraction cannot be negative")
	ErrInvalidAssignment = errors.New("invalid assignment kind")

	// Extra errors
	ErrNegativeValue      = errors.New("extra value cannot be negative")
	ErrMissingPercentBase = errors.New("percent extra requires a base")
	ErrUnexpectedBase     = errors.New("amount extra must not declare a base")
	ErrInvalidExtraType   = errors.New("invalid extra value type")
	ErrInvalidExtraKind   = errors.New("invalid extra kind")
	ErrInvalidPercentBase = errors.New("invalid percent base")
	ErrInvalidSplitMode   = errors.New("invalid split mode")

	// Expense errors
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrUnknownCurrency  = errors.New("unknown currency code")
	ErrMissingPayer     = errors.New("expense requires a payer")
	ErrNoParticipants   = errors.New("expense requires at least one participant")
	ErrInvalidSplitType = errors.New("invalid split type")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrTripNotFound     = errors.New("trip not found")

	// Transfer errors
	ErrSelfTransfer      = errors.New("cannot transfer to self")
	ErrNonPositiveAmount = errors.New("transfer amount must be positive")
)
