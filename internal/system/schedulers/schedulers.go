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

package schedulers

import (
	"fmt"
	"sync"
	"time"

	accountstore "github.com/signalfoundry/account-intelligence-service/internal/accounts/store"
	alertservice "github.com/signalfoundry/account-intelligence-service/internal/alerts/service"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
	"github.com/signalfoundry/account-intelligence-service/internal/system/workers"
)

// Scheduler runs a task on a fixed interval until stopped.
type Scheduler struct {
	name     string
	interval time.Duration
	task     func()
	quit     chan struct{}
	wg       sync.WaitGroup
}

// NewScheduler builds a scheduler; the task runs every interval, never concurrently
// with itself.
func NewScheduler(name string, interval time.Duration, task func()) *Scheduler {

	return &Scheduler{
		name:     name,
		interval: interval,
		task:     task,
		quit:     make(chan struct{}),
	}
}

// Start launches the ticker goroutine.
func (s *Scheduler) Start() {

	s.wg.Add(1)
	go s.run()
	log.GetLogger().Info(fmt.Sprintf("Scheduler: %s started with interval: %s", s.name, s.interval))
}

// Stop halts the ticker and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {

	close(s.quit)
	s.wg.Wait()
	log.GetLogger().Info(fmt.Sprintf("Scheduler: %s stopped", s.name))
}

func (s *Scheduler) run() {

	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.task()
		case <-s.quit:
			return
		}
	}
}

// AlertSweepTask evaluates the time-based alert triggers across every
// organization that has accounts.
func AlertSweepTask() {

	logger := log.GetLogger()
	orgIds, err := accountstore.GetOrgIds()
	if err != nil {
		logger.Error("Failed to list organizations for alert sweep", log.Error(err))
		return
	}

	now := time.Now().UTC()
	for _, orgId := range orgIds {
		summary := alertservice.EvaluateTimeBased(orgId, now)
		logger.Debug(fmt.Sprintf("Alert sweep for organization: %s evaluated: %d triggered: %d errors: %d",
			orgId, summary.Evaluated, summary.Triggered, summary.Errors))
	}

	logger.Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeSystem,
		TargetType:    log.TargetTypeAlertRule,
		ActionID:      log.ActionAlertSweep,
	})
}

// PeriodicRescoreTask re-enqueues every account for scoring so that decay
// keeps moving scores even when no new signal arrives.
func PeriodicRescoreTask(worker *workers.ScoringWorker) func() {

	return func() {
		logger := log.GetLogger()
		orgIds, err := accountstore.GetOrgIds()
		if err != nil {
			logger.Error("Failed to list organizations for periodic rescore", log.Error(err))
			return
		}

		for _, orgId := range orgIds {
			accountIds, err := accountstore.GetAccountIdsByOrg(orgId)
			if err != nil {
				logger.Error(fmt.Sprintf("Failed to list accounts of organization: %s for rescore", orgId),
					log.Error(err))
				continue
			}
			for _, accountId := range accountIds {
				if !worker.Enqueue(orgId, accountId) {
					logger.Warn(fmt.Sprintf("Rescore queue full; skipped account: %s", accountId))
				}
			}
		}
	}
}
