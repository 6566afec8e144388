package store

import (
	"context"
	"errors"

	"user-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across all backend implementations. The first four
// are caller errors; ErrLedgerInconsistency signals a data-integrity failure
// that requires operator attention and must never be retried.
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrSelfTransfer        = errors.New("cannot transfer to the same account")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrLedgerInconsistency = errors.New("ledger inconsistency")
	ErrDuplicateAccount    = errors.New("owner already has an account")
)

// Guard selects the predicate a ConditionalAdjust must satisfy before the
// new balance is committed.
type Guard int

const (
	// GuardNone applies the delta whenever the account row exists.
	GuardNone Guard = iota
	// GuardNonNegative applies the delta only if the resulting balance is >= 0.
	GuardNonNegative
)

// LedgerUnit is a single atomic unit of work against the ledger. All calls
// compose into one transaction: either everything up to Commit becomes
// durable, or nothing does. The unit holds the writer lock for its whole
// lifetime, so concurrent debits against the same account serialize.
type LedgerUnit interface {
	// LockedFetch retrieves an account by owner for exclusive use within
	// this unit. Returns ErrAccountNotFound if the owner has no account.
	LockedFetch(ctx context.Context, ownerId string) (*models.Account, error)

	// ConditionalAdjust atomically computes balance+delta and commits it only
	// if the guard predicate holds on the result. Returns the number of rows
	// applied: 1 on success, 0 if the guard failed or the account is missing.
	// The stored balance is untouched when 0 is returned.
	ConditionalAdjust(ctx context.Context, ownerId string, delta decimal.Decimal, guard Guard) (int64, error)

	// RecordTransfer appends a transfer audit record within this unit.
	RecordTransfer(ctx context.Context, transfer *models.Transfer) error

	Commit() error
	Rollback() error
}

// LedgerStore defines the contract every backend must satisfy.
type LedgerStore interface {
	// Begin opens a new unit of work.
	Begin(ctx context.Context) (LedgerUnit, error)

	// CreateAccount provisions an account with balance = initialDeposit.
	// Account creation happens at user provisioning time, outside the
	// transfer/accrual core.
	CreateAccount(ctx context.Context, ownerId string, initialDeposit decimal.Decimal) (*models.Account, error)

	// GetAccountByOwner returns the current account snapshot for an owner.
	GetAccountByOwner(ctx context.Context, ownerId string) (*models.Account, error)

	// ListAccountPage returns a page of accounts in stable id order, for the
	// accrual sweep.
	ListAccountPage(ctx context.Context, limit, offset int) ([]models.Account, error)

	// AccrueInterest multiplies one account's balance by rate, capped at
	// initialDeposit*ceilingFactor, as a single atomic write. Returns true
	// if the new balance was applied, false if the account is at its ceiling.
	AccrueInterest(ctx context.Context, accountId string, rate, ceilingFactor decimal.Decimal) (bool, error)

	// GetTransferHistory returns transfers involving an owner, newest first.
	GetTransferHistory(ctx context.Context, ownerId string, limit, offset int) ([]models.Transfer, error)

	Close()
}
