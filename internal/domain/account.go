// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrOwnerNotFound indicates that the owner does not exist in the client service.
	ErrOwnerNotFound = errors.New("owner does not exist")
	// ErrOwnerIDInvalid indicates that the owner identifier is malformed.
	ErrOwnerIDInvalid = errors.New("owner identifier is invalid")
	// ErrOwnerNotVerified indicates that the client service rejected the owner lookup.
	ErrOwnerNotVerified = errors.New("owner could not be verified")
	// ErrClientServiceUnavailable indicates that the client service failed or timed out.
	ErrClientServiceUnavailable = errors.New("client service is unavailable")
	// ErrInvalidCategory indicates an account category outside the supported set.
	ErrInvalidCategory = errors.New("account category is invalid")
	// ErrNegativeInitialBalance indicates a negative opening balance.
	ErrNegativeInitialBalance = errors.New("initial balance must be zero or positive")
	// ErrNonPositiveAmount indicates a zero or negative operation amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrAccountInactive indicates a balance operation on an inactive account.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrInsufficientBalance indicates a withdrawal larger than the balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrAlreadyActive indicates a no-op activation.
	ErrAlreadyActive = errors.New("account is already active")
	// ErrAlreadyInactive indicates a no-op deactivation.
	ErrAlreadyInactive = errors.New("account is already inactive")
	// ErrBalanceNotZero indicates a deletion attempt with money still on the account.
	ErrBalanceNotZero = errors.New("balance must be zero to delete the account")
	// ErrActiveRequired indicates a full update without the active field.
	ErrActiveRequired = errors.New("active field is required")
	// ErrNoChangeSupplied indicates a partial update without any field.
	ErrNoChangeSupplied = errors.New("no change supplied")
	// ErrAccountNumberTaken indicates that the store rejected a duplicate account number.
	ErrAccountNumberTaken = errors.New("account number already exists")
	// ErrAccountNumberExhausted indicates that no unique account number was found
	// within the bounded number of attempts.
	ErrAccountNumberExhausted = errors.New("could not generate a unique account number")
)

// Category classifies an account and determines its number prefix.
type Category string

// Supported account categories.
const (
	CategorySavings  Category = "SAVINGS"
	CategoryChecking Category = "CHECKING"
)

// Valid returns true if the category belongs to the supported set.
func (c Category) Valid() bool {
	return c == CategorySavings || c == CategoryChecking
}

// NumberPrefix returns the two-letter account number prefix for the category.
func (c Category) NumberPrefix() string {
	if c == CategoryChecking {
		return "CH"
	}

	return "SV"
}

// Account holds one client's balance document.
type Account struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"clientId"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Active        bool            `json:"active"`
	Category      Category        `json:"accountType"`
	CreatedAt     time.Time       `json:"createdAt"`
}
