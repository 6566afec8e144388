/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

const (
	// Account queries
	queryInsertAccount = `
		INSERT INTO accounts (id, owner_id, balance, initial_deposit)
		VALUES (?, ?, ?, ?)`

	queryGetAccountByOwner = `
		SELECT id, owner_id, balance, initial_deposit, created_at, updated_at
		FROM accounts
		WHERE owner_id = ?`

	queryGetAccountById = `
		SELECT id, owner_id, balance, initial_deposit, created_at, updated_at
		FROM accounts
		WHERE id = ?`

	queryListAccountPage = `
		SELECT id, owner_id, balance, initial_deposit, created_at, updated_at
		FROM accounts
		ORDER BY id
		LIMIT ? OFFSET ?`

	queryUpdateBalanceByOwner = `
		UPDATE accounts
		SET balance = ?, updated_at = CURRENT_TIMESTAMP
		WHERE owner_id = ?`

	queryUpdateBalanceById = `
		UPDATE accounts
		SET balance = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	// Transfer queries
	queryInsertTransfer = `
		INSERT INTO transfers (id, from_owner_id, to_owner_id, amount, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	queryGetTransferHistory = `
		SELECT id, from_owner_id, to_owner_id, amount, status, created_at
		FROM transfers
		WHERE from_owner_id = ? OR to_owner_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`
)
