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

package ledger

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs the interest accrual job at a fixed configurable interval.
// The sweep executes synchronously inside the loop goroutine, so two sweeps
// never overlap; ticks that fire during a long sweep are dropped by the
// ticker, preserving once-per-tick compounding.
type Scheduler struct {
	accruer  *Accruer
	interval time.Duration
	stopChan chan struct{}
	doneChan chan struct{}
}

func NewScheduler(accruer *Accruer, interval time.Duration) *Scheduler {
	return &Scheduler{
		accruer:  accruer,
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start begins the recurring accrual task. The first run fires immediately,
// subsequent runs every interval.
func (s *Scheduler) Start(ctx context.Context) {
	zap.L().Info("Starting accrual scheduler", zap.Duration("interval", s.interval))
	go s.runLoop(ctx)
}

// Stop gracefully stops the scheduler, waiting for an in-flight sweep.
func (s *Scheduler) Stop() {
	zap.L().Info("Stopping accrual scheduler")
	close(s.stopChan)
	<-s.doneChan
	zap.L().Info("Accrual scheduler stopped")
}

func (s *Scheduler) runLoop(ctx context.Context) {
	defer close(s.doneChan)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)

	for {
		select {
		case <-ticker.C:
			s.runOnce(ctx)
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.accruer.Run(ctx); err != nil {
		zap.L().Error("Scheduled accrual run failed", zap.Error(err))
	}
}
