package database

import (
	"context"
	"database/sql"
	"fmt"

	"user-ledger-go/internal/models"
	"user-ledger-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateAccount provisions an account for an owner with balance equal to the
// initial deposit. Owners have exactly one account.
func (s *Service) CreateAccount(ctx context.Context, ownerId string, initialDeposit decimal.Decimal) (*models.Account, error) {
	if ownerId == "" {
		return nil, fmt.Errorf("owner id cannot be empty")
	}
	if initialDeposit.IsNegative() {
		return nil, fmt.Errorf("initial deposit cannot be negative, got %s", initialDeposit.String())
	}

	if _, err := s.GetAccountByOwner(ctx, ownerId); err == nil {
		return nil, fmt.Errorf("%w: %s", store.ErrDuplicateAccount, ownerId)
	} else if err != store.ErrAccountNotFound {
		return nil, err
	}

	accountId := uuid.New().String()
	_, err := s.db.ExecContext(ctx, queryInsertAccount, accountId, ownerId, initialDeposit.String(), initialDeposit.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	zap.L().Info("Account created",
		zap.String("account_id", accountId),
		zap.String("owner_id", ownerId),
		zap.String("initial_deposit", initialDeposit.String()))

	return s.GetAccountByOwner(ctx, ownerId)
}

// GetAccountByOwner returns the current account snapshot for an owner.
func (s *Service) GetAccountByOwner(ctx context.Context, ownerId string) (*models.Account, error) {
	row := s.db.QueryRowContext(ctx, queryGetAccountByOwner, ownerId)
	account, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account for owner %s: %w", ownerId, err)
	}
	return account, nil
}

// ListAccountPage returns a page of accounts in stable id order.
func (s *Service) ListAccountPage(ctx context.Context, limit, offset int) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, queryListAccountPage, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// GetTransferHistory returns transfers involving an owner, newest first.
func (s *Service) GetTransferHistory(ctx context.Context, ownerId string, limit, offset int) ([]models.Transfer, error) {
	rows, err := s.db.QueryContext(ctx, queryGetTransferHistory, ownerId, ownerId, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer history: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var transfers []models.Transfer
	for rows.Next() {
		var transfer models.Transfer
		var amountStr string
		err := rows.Scan(&transfer.Id, &transfer.FromOwnerId, &transfer.ToOwnerId,
			&amountStr, &transfer.Status, &transfer.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}

		transfer.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
		}

		transfers = append(transfers, transfer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfer rows: %w", err)
	}
	return transfers, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*models.Account, error) {
	var account models.Account
	var balanceStr, depositStr string

	err := row.Scan(&account.Id, &account.OwnerId, &balanceStr, &depositStr,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}

	account.Balance, err = decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance '%s': %w", balanceStr, err)
	}

	account.InitialDeposit, err = decimal.NewFromString(depositStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse initial deposit '%s': %w", depositStr, err)
	}

	return &account, nil
}
