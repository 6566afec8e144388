package ledger

import (
	"context"
	"fmt"
	"time"

	"user-ledger-go/internal/models"
	"user-ledger-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Engine orchestrates balance movements on top of a LedgerStore. It owns the
// only code paths allowed to mutate account balances: Transfer here and the
// accrual sweep in accrual.go.
type Engine struct {
	store store.LedgerStore
}

func NewEngine(ledgerStore store.LedgerStore) *Engine {
	return &Engine{store: ledgerStore}
}

// Transfer moves amount from one owner's account to another's as one atomic
// unit of work. The debit is guarded twice: an optimistic pre-check against
// the exclusively fetched balance, and the store-level non-negative guard on
// the adjust itself. The credit is unconditional but checked for rows
// applied; a vanished recipient triggers a compensating reversal of the
// debit and surfaces as ErrLedgerInconsistency.
//
// Callers observing ErrInsufficientFunds or ErrAccountNotFound should not
// retry without new information. ErrLedgerInconsistency is never retried.
func (e *Engine) Transfer(ctx context.Context, fromOwnerId, toOwnerId string, amount decimal.Decimal) error {
	if fromOwnerId == toOwnerId {
		return store.ErrSelfTransfer
	}
	if amount.Cmp(decimal.Zero) <= 0 {
		return store.ErrNonPositiveAmount
	}

	unit, err := e.store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transfer: %w", err)
	}
	defer func() {
		if err := unit.Rollback(); err != nil {
			zap.L().Warn("Failed to roll back transfer unit", zap.Error(err))
		}
	}()

	source, err := unit.LockedFetch(ctx, fromOwnerId)
	if err != nil {
		return err
	}

	if source.Balance.LessThan(amount) {
		return store.ErrInsufficientFunds
	}

	applied, err := unit.ConditionalAdjust(ctx, fromOwnerId, amount.Neg(), store.GuardNonNegative)
	if err != nil {
		return fmt.Errorf("debit failed: %w", err)
	}
	if applied == 0 {
		// A concurrent mutation raced past the pre-check snapshot.
		return store.ErrInsufficientFunds
	}

	applied, err = unit.ConditionalAdjust(ctx, toOwnerId, amount, store.GuardNone)
	if err != nil {
		return fmt.Errorf("credit failed: %w", err)
	}
	if applied == 0 {
		return e.compensate(ctx, unit, fromOwnerId, toOwnerId, amount)
	}

	transfer := &models.Transfer{
		Id:          uuid.New().String(),
		FromOwnerId: fromOwnerId,
		ToOwnerId:   toOwnerId,
		Amount:      amount,
		Status:      models.TransferCompleted,
		CreatedAt:   time.Now(),
	}
	if err := unit.RecordTransfer(ctx, transfer); err != nil {
		return fmt.Errorf("failed to record transfer: %w", err)
	}

	if err := unit.Commit(); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}

	zap.L().Info("Transfer completed",
		zap.String("transfer_id", transfer.Id),
		zap.String("from_owner_id", fromOwnerId),
		zap.String("to_owner_id", toOwnerId),
		zap.String("amount", amount.String()))
	return nil
}

// compensate reverses a committed debit after the credit found no recipient.
// The reversal and a reversed audit record are committed so the trail
// survives; the net balance change is zero. If the reversal write itself
// fails, the whole unit rolls back (the debit never becomes visible) and the
// failure is escalated for manual reconciliation.
func (e *Engine) compensate(ctx context.Context, unit store.LedgerUnit, fromOwnerId, toOwnerId string, amount decimal.Decimal) error {
	if _, err := unit.ConditionalAdjust(ctx, fromOwnerId, amount, store.GuardNone); err != nil {
		zap.L().Error("Compensating reversal failed, rolling back debit",
			zap.String("from_owner_id", fromOwnerId),
			zap.String("to_owner_id", toOwnerId),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return fmt.Errorf("%w: reversal of debit failed: %v", store.ErrLedgerInconsistency, err)
	}

	reversed := &models.Transfer{
		Id:          uuid.New().String(),
		FromOwnerId: fromOwnerId,
		ToOwnerId:   toOwnerId,
		Amount:      amount,
		Status:      models.TransferReversed,
		CreatedAt:   time.Now(),
	}
	if err := unit.RecordTransfer(ctx, reversed); err != nil {
		return fmt.Errorf("%w: failed to record reversal: %v", store.ErrLedgerInconsistency, err)
	}

	if err := unit.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit reversal: %v", store.ErrLedgerInconsistency, err)
	}

	zap.L().Error("Destination account missing during credit, debit reversed",
		zap.String("transfer_id", reversed.Id),
		zap.String("from_owner_id", fromOwnerId),
		zap.String("to_owner_id", toOwnerId),
		zap.String("amount", amount.String()))
	return fmt.Errorf("%w: destination account for owner %s not found", store.ErrLedgerInconsistency, toOwnerId)
}

// Balance returns the current balance for an owner.
func (e *Engine) Balance(ctx context.Context, ownerId string) (decimal.Decimal, error) {
	account, err := e.store.GetAccountByOwner(ctx, ownerId)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// History returns transfers involving an owner, newest first.
func (e *Engine) History(ctx context.Context, ownerId string, limit, offset int) ([]models.Transfer, error) {
	return e.store.GetTransferHistory(ctx, ownerId, limit, offset)
}
