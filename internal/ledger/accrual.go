package ledger

import (
	"context"
	"fmt"

	"user-ledger-go/internal/models"
	"user-ledger-go/internal/store"

	"go.uber.org/zap"
)

// Accruer applies periodic interest to every account, capped per account at
// initialDeposit * ceiling factor. Each account update is its own atomic
// store write; the sweep deliberately shares no unit of work with transfers.
type Accruer struct {
	store store.LedgerStore
	cfg   models.AccrualConfig
}

func NewAccruer(ledgerStore store.LedgerStore, cfg models.AccrualConfig) *Accruer {
	return &Accruer{store: ledgerStore, cfg: cfg}
}

// RunSummary reports what a single accrual sweep did.
type RunSummary struct {
	Scanned   int
	Accrued   int
	AtCeiling int
}

// Run sweeps all accounts once, in stable id order, page by page. A store
// failure aborts the run; accounts already written stay written, and the next
// scheduled run rescans everything from scratch.
func (a *Accruer) Run(ctx context.Context) (RunSummary, error) {
	var summary RunSummary

	// A non-positive page size would never advance the offset, and SQLite
	// treats a negative LIMIT as unlimited. Refuse rather than spin.
	if a.cfg.PageSize <= 0 {
		return summary, fmt.Errorf("accrual page size must be positive, got %d", a.cfg.PageSize)
	}

	for offset := 0; ; offset += a.cfg.PageSize {
		page, err := a.store.ListAccountPage(ctx, a.cfg.PageSize, offset)
		if err != nil {
			return summary, fmt.Errorf("accrual aborted at offset %d: %w", offset, err)
		}

		for _, account := range page {
			applied, err := a.store.AccrueInterest(ctx, account.Id, a.cfg.Rate, a.cfg.CeilingFactor)
			if err != nil {
				zap.L().Error("Accrual aborted mid-page",
					zap.String("account_id", account.Id),
					zap.Int("scanned", summary.Scanned),
					zap.Error(err))
				return summary, fmt.Errorf("accrual failed for account %s: %w", account.Id, err)
			}

			summary.Scanned++
			if applied {
				summary.Accrued++
			} else {
				summary.AtCeiling++
			}
		}

		if len(page) < a.cfg.PageSize {
			break
		}
	}

	zap.L().Info("Interest accrual run completed",
		zap.Int("scanned", summary.Scanned),
		zap.Int("accrued", summary.Accrued),
		zap.Int("at_ceiling", summary.AtCeiling),
		zap.String("rate", a.cfg.Rate.String()),
		zap.String("ceiling_factor", a.cfg.CeilingFactor.String()))
	return summary, nil
}
