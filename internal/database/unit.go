package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"user-ledger-go/internal/models"
	"user-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Compile-time check: *Unit must satisfy store.LedgerUnit.
var _ store.LedgerUnit = (*Unit)(nil)

// Unit is a single unit of work backed by one SQLite transaction. The
// transaction is opened immediate (see NewService), so the unit owns the
// writer lock from Begin until Commit or Rollback; every read-modify-write
// inside it is atomic with respect to all concurrent units.
type Unit struct {
	tx *sql.Tx
}

// Begin opens a new unit of work.
func (s *Service) Begin(ctx context.Context) (store.LedgerUnit, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	return &Unit{tx: tx}, nil
}

// LockedFetch retrieves an account by owner for exclusive use within this
// unit. No other unit can mutate the row until this one finishes.
func (u *Unit) LockedFetch(ctx context.Context, ownerId string) (*models.Account, error) {
	row := u.tx.QueryRowContext(ctx, queryGetAccountByOwner, ownerId)
	account, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account for owner %s: %w", ownerId, err)
	}
	return account, nil
}

// ConditionalAdjust applies balance += delta only if the guard holds on the
// result. Returns 1 if the new balance was committed to the unit, 0 if the
// guard failed or the account does not exist; the stored balance is untouched
// in either zero case.
func (u *Unit) ConditionalAdjust(ctx context.Context, ownerId string, delta decimal.Decimal, guard store.Guard) (int64, error) {
	var balanceStr string
	err := u.tx.QueryRowContext(ctx, queryGetAccountByOwner, ownerId).Scan(
		new(string), new(string), &balanceStr, new(string), new(time.Time), new(time.Time))
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read balance for owner %s: %w", ownerId, err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return 0, fmt.Errorf("failed to parse balance '%s': %w", balanceStr, err)
	}

	newBalance := balance.Add(delta)
	if guard == store.GuardNonNegative && newBalance.IsNegative() {
		return 0, nil
	}

	result, err := u.tx.ExecContext(ctx, queryUpdateBalanceByOwner, newBalance.String(), ownerId)
	if err != nil {
		return 0, fmt.Errorf("failed to update balance for owner %s: %w", ownerId, err)
	}

	applied, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return applied, nil
}

// RecordTransfer appends a transfer audit record within this unit.
func (u *Unit) RecordTransfer(ctx context.Context, transfer *models.Transfer) error {
	_, err := u.tx.ExecContext(ctx, queryInsertTransfer,
		transfer.Id, transfer.FromOwnerId, transfer.ToOwnerId,
		transfer.Amount.String(), transfer.Status, transfer.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record transfer %s: %w", transfer.Id, err)
	}
	return nil
}

func (u *Unit) Commit() error {
	return u.tx.Commit()
}

func (u *Unit) Rollback() error {
	err := u.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}

// AccrueInterest grows one account's balance by rate, capped at
// initialDeposit*ceilingFactor. The whole read-compute-write runs in its own
// immediate transaction, so it is a single atomic store write that commutes
// safely with concurrent transfers against the same account.
func (s *Service) AccrueInterest(ctx context.Context, accountId string, rate, ceilingFactor decimal.Decimal) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin accrual write: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			zap.L().Warn("Failed to roll back accrual write", zap.Error(err))
		}
	}()

	row := tx.QueryRowContext(ctx, queryGetAccountById, accountId)
	account, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return false, store.ErrAccountNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to fetch account %s: %w", accountId, err)
	}

	ceiling := account.InitialDeposit.Mul(ceilingFactor)
	candidate := account.Balance.Mul(rate)

	// Growth is monotonic and the ceiling fixed: once past it, the account is
	// done accruing for good.
	if candidate.GreaterThan(ceiling) {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, queryUpdateBalanceById, candidate.String(), accountId); err != nil {
		return false, fmt.Errorf("failed to write accrued balance for account %s: %w", accountId, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit accrual write: %w", err)
	}
	return true, nil
}
