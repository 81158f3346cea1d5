/*
 * Copyright (c) 2026, Signal Foundry, Inc. (https://www.signalfoundry.io).
 *
 * Signal Foundry, Inc. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package workers

import (
	"fmt"
	"sync"

	alertmodel "github.com/signalfoundry/account-intelligence-service/internal/alerts/model"
	alertservice "github.com/signalfoundry/account-intelligence-service/internal/alerts/service"
	scoringservice "github.com/signalfoundry/account-intelligence-service/internal/scoring/service"
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

// RecomputeTask asks for one account's score to be recomputed.
type RecomputeTask struct {
	OrgId     string
	AccountId string
}

// ScoringWorker consumes rescore requests off a bounded queue, recomputes
// the account score, and feeds the resulting score movement to alert
// evaluation. Enqueue never blocks the ingestion path.
type ScoringWorker struct {
	tasks chan RecomputeTask
	quit  chan struct{}
	wg    sync.WaitGroup
}

// NewScoringWorker builds a worker with the given queue capacity.
func NewScoringWorker(queueSize int) *ScoringWorker {

	if queueSize <= 0 {
		queueSize = constants.DefaultQueueSize
	}
	return &ScoringWorker{
		tasks: make(chan RecomputeTask, queueSize),
		quit:  make(chan struct{}),
	}
}

// Start launches the consumer goroutine.
func (w *ScoringWorker) Start() {

	w.wg.Add(1)
	go w.run()
	log.GetLogger().Info("Scoring worker started")
}

// Stop shuts the consumer down and waits for the in-flight task to finish.
func (w *ScoringWorker) Stop() {

	close(w.quit)
	w.wg.Wait()
	log.GetLogger().Info("Scoring worker stopped")
}

// Enqueue hands a rescore request to the worker. Reports false when the
// queue is full; the caller decides whether that is worth surfacing.
func (w *ScoringWorker) Enqueue(orgId, accountId string) bool {

	select {
	case w.tasks <- RecomputeTask{OrgId: orgId, AccountId: accountId}:
		return true
	default:
		return false
	}
}

func (w *ScoringWorker) run() {

	defer w.wg.Done()
	for {
		select {
		case task := <-w.tasks:
			w.process(task)
		case <-w.quit:
			return
		}
	}
}

func (w *ScoringWorker) process(task RecomputeTask) {

	logger := log.GetLogger()
	result, err := scoringservice.RecomputeAccountScore(task.OrgId, task.AccountId)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to recompute score for account: %s", task.AccountId),
			log.Error(err))
		return
	}
	if result == nil {
		// Another recompute holds the lock; its pass covers this request.
		logger.Debug(fmt.Sprintf("Skipped concurrent recompute for account: %s", task.AccountId))
		return
	}

	newScore := result.Result.Score
	summary := alertservice.EvaluateForAccount(alertmodel.EvaluationContext{
		OrgId:     task.OrgId,
		AccountId: task.AccountId,
		OldScore:  result.OldScore,
		NewScore:  &newScore,
		OldTier:   result.OldTier,
		NewTier:   result.Result.Tier,
		Now:       result.Result.ComputedAt,
	})
	if summary.Triggered > 0 || summary.Errors > 0 {
		logger.Info(fmt.Sprintf("Alert evaluation for account: %s evaluated: %d triggered: %d errors: %d",
			task.AccountId, summary.Evaluated, summary.Triggered, summary.Errors))
	}
}
