package database

import (
	"context"
	"testing"
	"time"

	"user-ledger-go/internal/models"
	"user-ledger-go/internal/store"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func TestLockedFetch(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := service.CreateAccount(ctx, "owner1", decimal.NewFromInt(500)); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	unit, err := service.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	defer unit.Rollback()

	account, err := unit.LockedFetch(ctx, "owner1")
	if err != nil {
		t.Fatalf("LockedFetch failed: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected balance 500, got %s", account.Balance.String())
	}

	if _, err := unit.LockedFetch(ctx, "nobody"); err != store.ErrAccountNotFound {
		t.Errorf("Expected ErrAccountNotFound, got %v", err)
	}
}

func TestConditionalAdjust_GuardBlocksOverdraft(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := service.CreateAccount(ctx, "owner1", decimal.NewFromInt(100)); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	unit, err := service.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	defer unit.Rollback()

	applied, err := unit.ConditionalAdjust(ctx, "owner1", decimal.NewFromInt(-150), store.GuardNonNegative)
	if err != nil {
		t.Fatalf("ConditionalAdjust failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("Expected 0 rows applied, got %d", applied)
	}

	// Balance must be untouched inside the same unit.
	account, err := unit.LockedFetch(ctx, "owner1")
	if err != nil {
		t.Fatalf("LockedFetch failed: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected balance 100, got %s", account.Balance.String())
	}
}

func TestConditionalAdjust_ExactToZero(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := service.CreateAccount(ctx, "owner1", decimal.NewFromInt(200)); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	unit, err := service.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	applied, err := unit.ConditionalAdjust(ctx, "owner1", decimal.NewFromInt(-200), store.GuardNonNegative)
	if err != nil {
		t.Fatalf("ConditionalAdjust failed: %v", err)
	}
	if applied != 1 {
		t.Fatalf("Expected 1 row applied, got %d", applied)
	}
	if err := unit.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	account, err := service.GetAccountByOwner(ctx, "owner1")
	if err != nil {
		t.Fatalf("GetAccountByOwner failed: %v", err)
	}
	if !account.Balance.IsZero() {
		t.Errorf("Expected balance 0, got %s", account.Balance.String())
	}
}

func TestConditionalAdjust_MissingAccount(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	unit, err := service.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	defer unit.Rollback()

	applied, err := unit.ConditionalAdjust(ctx, "nobody", decimal.NewFromInt(10), store.GuardNone)
	if err != nil {
		t.Fatalf("ConditionalAdjust failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("Expected 0 rows applied for missing account, got %d", applied)
	}
}

func TestUnit_RollbackDiscards(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := service.CreateAccount(ctx, "owner1", decimal.NewFromInt(100)); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	unit, err := service.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if _, err := unit.ConditionalAdjust(ctx, "owner1", decimal.NewFromInt(-40), store.GuardNonNegative); err != nil {
		t.Fatalf("ConditionalAdjust failed: %v", err)
	}
	if err := unit.Rollback(); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	account, err := service.GetAccountByOwner(ctx, "owner1")
	if err != nil {
		t.Fatalf("GetAccountByOwner failed: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected balance 100 after rollback, got %s", account.Balance.String())
	}
}

func TestRecordTransferAndHistory(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	unit, err := service.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	transfer := &models.Transfer{
		Id:          uuid.New().String(),
		FromOwnerId: "owner1",
		ToOwnerId:   "owner2",
		Amount:      decimal.NewFromInt(25),
		Status:      models.TransferCompleted,
		CreatedAt:   time.Now(),
	}
	if err := unit.RecordTransfer(ctx, transfer); err != nil {
		t.Fatalf("RecordTransfer failed: %v", err)
	}
	if err := unit.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	for _, owner := range []string{"owner1", "owner2"} {
		history, err := service.GetTransferHistory(ctx, owner, 10, 0)
		if err != nil {
			t.Fatalf("GetTransferHistory failed: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("Expected 1 transfer for %s, got %d", owner, len(history))
		}
		if history[0].Id != transfer.Id {
			t.Errorf("Expected transfer id %s, got %s", transfer.Id, history[0].Id)
		}
		if !history[0].Amount.Equal(transfer.Amount) {
			t.Errorf("Expected amount %s, got %s", transfer.Amount.String(), history[0].Amount.String())
		}
	}
}
