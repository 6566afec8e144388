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

// Provisions an account for an owner. Account creation belongs to user
// provisioning, outside the transfer/accrual core, so it lives in an ops
// tool rather than the service.
package main

import (
	"context"
	"flag"
	"fmt"

	"user-ledger-go/internal/common"
	"user-ledger-go/internal/config"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	owner := flag.String("owner", "", "Owner id for the new account (required)")
	deposit := flag.String("deposit", "0", "Initial deposit, e.g. 1000.00")
	flag.Parse()

	if *owner == "" {
		fmt.Println("usage: seed -owner <owner-id> [-deposit <amount>]")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		_, _ = zap.NewProduction()
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	initialDeposit, err := decimal.NewFromString(*deposit)
	if err != nil {
		zap.L().Fatal("Invalid deposit amount", zap.String("deposit", *deposit), zap.Error(err))
	}

	ctx := context.Background()

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	account, err := services.DbService.CreateAccount(ctx, *owner, initialDeposit)
	if err != nil {
		zap.L().Fatal("Failed to create account", zap.String("owner_id", *owner), zap.Error(err))
	}

	fmt.Printf("Account created\n")
	fmt.Printf("  id:              %s\n", account.Id)
	fmt.Printf("  owner:           %s\n", account.OwnerId)
	fmt.Printf("  balance:         %s\n", account.Balance.String())
	fmt.Printf("  initial deposit: %s\n", account.InitialDeposit.String())
}
