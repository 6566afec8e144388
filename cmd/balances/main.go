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

package main

import (
	"context"
	"flag"
	"fmt"

	"user-ledger-go/internal/common"
	"user-ledger-go/internal/config"
	"user-ledger-go/internal/models"

	"go.uber.org/zap"
)

const pageSize = 100

func formatAccount(account models.Account) string {
	return fmt.Sprintf("%-36s balance: %18s  initial: %18s  (updated: %s)",
		account.OwnerId,
		account.Balance.String(),
		account.InitialDeposit.String(),
		account.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func main() {
	owner := flag.String("owner", "", "Optional owner id to show a single account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = zap.NewProduction()
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	ctx := context.Background()

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	common.PrintHeader("Account Balances", common.DefaultWidth)

	if *owner != "" {
		account, err := services.DbService.GetAccountByOwner(ctx, *owner)
		if err != nil {
			zap.L().Fatal("Failed to get account", zap.String("owner_id", *owner), zap.Error(err))
		}
		fmt.Println(common.BoxPrefix(true) + formatAccount(*account))
		common.PrintFooter("Done", common.DefaultWidth)
		return
	}

	total := 0
	var list common.BoxList
	for offset := 0; ; offset += pageSize {
		page, err := services.DbService.ListAccountPage(ctx, pageSize, offset)
		if err != nil {
			zap.L().Fatal("Failed to list accounts", zap.Error(err))
		}
		if offset > 0 && len(page) > 0 {
			list.PageBreak(common.DefaultWidth)
		}
		for _, account := range page {
			list.Add(formatAccount(account))
		}
		total += len(page)
		if len(page) < pageSize {
			break
		}
	}
	list.Close()

	common.PrintFooter(fmt.Sprintf("Total accounts: %d", total), common.DefaultWidth)
}
