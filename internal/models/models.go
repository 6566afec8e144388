package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer statuses.
const (
	TransferCompleted = "completed"
	TransferReversed  = "reversed"
)

// Account holds the current balance state for a single owner.
// Each owner has exactly one account; the owner never changes after creation.
type Account struct {
	Id             string          `db:"id"`
	OwnerId        string          `db:"owner_id"`
	Balance        decimal.Decimal `db:"balance"`
	InitialDeposit decimal.Decimal `db:"initial_deposit"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// Transfer is an immutable audit record of a balance movement between two
// accounts. Reversed transfers are kept so a failed credit leaves a trail.
type Transfer struct {
	Id          string          `db:"id"`
	FromOwnerId string          `db:"from_owner_id"`
	ToOwnerId   string          `db:"to_owner_id"`
	Amount      decimal.Decimal `db:"amount"`
	Status      string          `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
}
