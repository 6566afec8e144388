package ledger

import (
	"context"
	"testing"

	"user-ledger-go/internal/database"
	"user-ledger-go/internal/models"
	"user-ledger-go/internal/store"

	"github.com/shopspring/decimal"
)

func testAccrualConfig(pageSize int) models.AccrualConfig {
	return models.AccrualConfig{
		PageSize:      pageSize,
		Rate:          decimal.RequireFromString("1.1"),
		CeilingFactor: decimal.RequireFromString("2.07"),
	}
}

// setBalance moves an account to an exact balance state for a scenario.
func setBalance(t *testing.T, service *database.Service, owner string, target decimal.Decimal) {
	t.Helper()
	ctx := context.Background()

	current := mustBalance(t, service, owner)
	unit, err := service.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if _, err := unit.ConditionalAdjust(ctx, owner, target.Sub(current), store.GuardNone); err != nil {
		t.Fatalf("ConditionalAdjust failed: %v", err)
	}
	if err := unit.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
}

func TestAccrual_GrowsBalance(t *testing.T) {
	service, cleanup := newTestService(t)
	defer cleanup()

	mustCreateAccount(t, service, "alice", 100)

	accruer := NewAccruer(service, testAccrualConfig(100))
	summary, err := accruer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Scanned != 1 || summary.Accrued != 1 {
		t.Errorf("Expected 1 scanned / 1 accrued, got %d / %d", summary.Scanned, summary.Accrued)
	}
	if balance := mustBalance(t, service, "alice"); !balance.Equal(decimal.NewFromInt(110)) {
		t.Errorf("Expected balance 110, got %s", balance.String())
	}
}

func TestAccrual_CeilingWalk(t *testing.T) {
	service, cleanup := newTestService(t)
	defer cleanup()

	// initialDeposit 100 gives ceiling 207; from 188 one tick lands on 206.8,
	// the next would compute 227.48 and must leave the balance alone.
	mustCreateAccount(t, service, "alice", 100)
	setBalance(t, service, "alice", decimal.NewFromInt(188))

	accruer := NewAccruer(service, testAccrualConfig(100))
	ctx := context.Background()

	if _, err := accruer.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	expected := decimal.RequireFromString("206.8")
	if balance := mustBalance(t, service, "alice"); !balance.Equal(expected) {
		t.Fatalf("Expected balance 206.8 after first tick, got %s", balance.String())
	}

	for tick := 0; tick < 3; tick++ {
		summary, err := accruer.Run(ctx)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if summary.AtCeiling != 1 {
			t.Errorf("Expected account counted at ceiling, got %d", summary.AtCeiling)
		}
	}
	if balance := mustBalance(t, service, "alice"); !balance.Equal(expected) {
		t.Errorf("Expected balance frozen at 206.8, got %s", balance.String())
	}
}

func TestAccrual_PagesThroughAllAccounts(t *testing.T) {
	service, cleanup := newTestService(t)
	defer cleanup()

	for _, owner := range []string{"a", "b", "c"} {
		mustCreateAccount(t, service, owner, 100)
	}

	// Page size 1 forces three pages plus a short final page.
	accruer := NewAccruer(service, testAccrualConfig(1))
	summary, err := accruer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Scanned != 3 || summary.Accrued != 3 {
		t.Errorf("Expected 3 scanned / 3 accrued, got %d / %d", summary.Scanned, summary.Accrued)
	}
	for _, owner := range []string{"a", "b", "c"} {
		if balance := mustBalance(t, service, owner); !balance.Equal(decimal.NewFromInt(110)) {
			t.Errorf("Expected %s balance 110, got %s", owner, balance.String())
		}
	}
}

func TestAccrual_RejectsNonPositivePageSize(t *testing.T) {
	service, cleanup := newTestService(t)
	defer cleanup()

	mustCreateAccount(t, service, "alice", 100)

	// A zero page never advances the offset and a negative one reads
	// unbounded pages, so Run must refuse both up front.
	for _, pageSize := range []int{0, -1} {
		accruer := NewAccruer(service, testAccrualConfig(pageSize))
		if _, err := accruer.Run(context.Background()); err == nil {
			t.Errorf("Expected error for page size %d", pageSize)
		}
	}

	if balance := mustBalance(t, service, "alice"); !balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected balance untouched at 100, got %s", balance.String())
	}
}

func TestAccrual_IsNotIdempotentAcrossRuns(t *testing.T) {
	service, cleanup := newTestService(t)
	defer cleanup()

	mustCreateAccount(t, service, "alice", 100)

	accruer := NewAccruer(service, testAccrualConfig(100))
	ctx := context.Background()

	// Two runs compound twice: this is a periodic mutation, not reconciliation.
	if _, err := accruer.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := accruer.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if balance := mustBalance(t, service, "alice"); !balance.Equal(decimal.NewFromInt(121)) {
		t.Errorf("Expected balance 121 after two ticks, got %s", balance.String())
	}
}
