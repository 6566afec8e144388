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

// One-shot interest accrual run, for out-of-band operation and debugging.
// The normal path is the scheduler inside cmd/server.
package main

import (
	"context"
	"fmt"

	"user-ledger-go/internal/common"
	"user-ledger-go/internal/config"

	"go.uber.org/zap"
)

func main() {
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

	common.PrintHeader("Interest Accrual Run", common.DefaultWidth)

	summary, err := services.Accruer.Run(ctx)
	if err != nil {
		zap.L().Fatal("Accrual run failed", zap.Error(err))
	}

	fmt.Printf("Accounts scanned:    %d\n", summary.Scanned)
	fmt.Printf("Interest applied:    %d\n", summary.Accrued)
	fmt.Printf("At ceiling, skipped: %d\n", summary.AtCeiling)

	common.PrintFooter("Accrual run complete", common.DefaultWidth)
}
