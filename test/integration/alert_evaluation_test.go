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

package integration

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	accountmodel "github.com/signalfoundry/account-intelligence-service/internal/accounts/model"
	accountstore "github.com/signalfoundry/account-intelligence-service/internal/accounts/store"
	"github.com/signalfoundry/account-intelligence-service/internal/alerts/model"
	alertservice "github.com/signalfoundry/account-intelligence-service/internal/alerts/service"
	signalmodel "github.com/signalfoundry/account-intelligence-service/internal/signals/model"
	signalservice "github.com/signalfoundry/account-intelligence-service/internal/signals/service"
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
)

// recordingDispatcher captures fired alert events instead of delivering them.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []model.AlertEvent
}

func (d *recordingDispatcher) Dispatch(event model.AlertEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.events)
}

func scoreOf(v float64) *float64 {
	return &v
}

func Test_AlertRuleLifecycle(t *testing.T) {
	alertSvc := alertservice.GetAlertRuleService()
	orgId := "org-alert-crud"

	var ruleId string

	t.Run("Create_alert_rule", func(t *testing.T) {
		rule, err := alertSvc.CreateAlertRule(orgId, model.AlertRule{
			RuleName:    "warm accounts",
			TriggerType: constants.TriggerScoreThreshold,
			Params:      model.AlertRuleParams{Threshold: scoreOf(40), Direction: "above"},
			IsActive:    true,
		})
		require.NoError(t, err, "Failed to create alert rule")
		require.NotEmpty(t, rule.RuleId)
		require.Equal(t, []string{constants.ChannelInApp}, rule.Channels, "Channels default to in-app")
		ruleId = rule.RuleId
	})

	t.Run("Get_alert_rule", func(t *testing.T) {
		rule, err := alertSvc.GetAlertRule(orgId, ruleId)
		require.NoError(t, err, "Failed to get alert rule")
		require.Equal(t, "warm accounts", rule.RuleName)
		require.Equal(t, constants.TriggerScoreThreshold, rule.TriggerType)
	})

	t.Run("Update_alert_rule", func(t *testing.T) {
		updated, err := alertSvc.UpdateAlertRule(orgId, ruleId, model.AlertRule{
			RuleName:    "hot accounts",
			TriggerType: constants.TriggerScoreThreshold,
			Params:      model.AlertRuleParams{Threshold: scoreOf(70), Direction: "above"},
			Channels:    []string{constants.ChannelInApp, constants.ChannelSlack},
			IsActive:    true,
		})
		require.NoError(t, err, "Failed to update alert rule")
		require.Equal(t, "hot accounts", updated.RuleName)
		require.NotNil(t, updated.Params.Threshold)
		require.Equal(t, 70.0, *updated.Params.Threshold)
	})

	t.Run("Delete_alert_rule", func(t *testing.T) {
		require.NoError(t, alertSvc.DeleteAlertRule(orgId, ruleId), "Failed to delete alert rule")

		_, err := alertSvc.GetAlertRule(orgId, ruleId)
		require.Error(t, err, "Deleted rule must not resolve")
	})
}

func Test_AlertEvaluation(t *testing.T) {
	alertSvc := alertservice.GetAlertRuleService()
	orgId := "org-alert-eval"

	dispatcher := &recordingDispatcher{}
	alertservice.SetDispatcher(dispatcher)
	defer alertservice.SetDispatcher(nil)

	rule, err := alertSvc.CreateAlertRule(orgId, model.AlertRule{
		RuleName:    "crossed 40",
		TriggerType: constants.TriggerScoreThreshold,
		Params:      model.AlertRuleParams{Threshold: scoreOf(40), Direction: "above"},
		Channels:    []string{constants.ChannelInApp},
		IsActive:    true,
	})
	require.NoError(t, err, "Failed to create alert rule")

	now := time.Now().UTC()
	crossing := model.EvaluationContext{
		OrgId:     orgId,
		AccountId: "acc-eval-1",
		OldScore:  scoreOf(30),
		NewScore:  scoreOf(50),
		OldTier:   constants.TierCold,
		NewTier:   constants.TierWarm,
		Now:       now,
	}

	t.Run("Crossing_fires_once", func(t *testing.T) {
		summary := alertservice.EvaluateForAccount(crossing)
		require.Equal(t, 1, summary.Triggered, "Threshold crossing must fire")
		require.Equal(t, 0, summary.Errors)
		require.Equal(t, 1, dispatcher.count())
		require.Equal(t, "crossed 40", dispatcher.events[0].RuleName)
		require.Equal(t, "acc-eval-1", dispatcher.events[0].AccountId)
	})

	t.Run("Cooldown_suppresses_refire", func(t *testing.T) {
		// Same crossing again inside the cooldown window.
		summary := alertservice.EvaluateForAccount(crossing)
		require.Equal(t, 0, summary.Triggered, "Cooldown must suppress the second fire")
		require.Equal(t, 1, dispatcher.count())
	})

	t.Run("Cooldown_expiry_restores_eligibility", func(t *testing.T) {
		// Rewind the trigger stamp just past the 60 minute cooldown.
		_, err := testDB.Exec(
			`UPDATE alert_rule_triggers SET last_triggered_at = last_triggered_at - interval '61 minutes'
			 WHERE rule_id = $1 AND account_id = $2`, rule.RuleId, crossing.AccountId)
		require.NoError(t, err, "Failed to rewind trigger stamp")

		summary := alertservice.EvaluateForAccount(crossing)
		require.Equal(t, 1, summary.Triggered, "Expired cooldown must allow a refire")
		require.Equal(t, 2, dispatcher.count())
	})

	t.Run("Already_past_threshold_stays_silent", func(t *testing.T) {
		steady := crossing
		steady.AccountId = "acc-eval-2"
		steady.OldScore = scoreOf(60)
		steady.NewScore = scoreOf(65)

		summary := alertservice.EvaluateForAccount(steady)
		require.Equal(t, 0, summary.Triggered, "No crossing means no fire")
		require.Equal(t, 2, dispatcher.count())
	})

	t.Run("Inactive_rules_are_skipped", func(t *testing.T) {
		rules, err := alertSvc.GetAlertRules(orgId)
		require.NoError(t, err)
		require.Len(t, rules, 1)

		deactivated := rules[0]
		deactivated.IsActive = false
		_, err = alertSvc.UpdateAlertRule(orgId, deactivated.RuleId, deactivated)
		require.NoError(t, err)

		fresh := crossing
		fresh.AccountId = "acc-eval-3"
		summary := alertservice.EvaluateForAccount(fresh)
		require.Equal(t, 0, summary.Evaluated, "Inactive rules must not be evaluated")
		require.Equal(t, 2, dispatcher.count())
	})
}

func Test_ScoreDropEvaluation(t *testing.T) {
	alertSvc := alertservice.GetAlertRuleService()
	orgId := "org-score-drop"

	dispatcher := &recordingDispatcher{}
	alertservice.SetDispatcher(dispatcher)
	defer alertservice.SetDispatcher(nil)

	_, err := alertSvc.CreateAlertRule(orgId, model.AlertRule{
		RuleName:    "slipping accounts",
		TriggerType: constants.TriggerScoreDrop,
		Channels:    []string{constants.ChannelInApp},
		IsActive:    true,
	})
	require.NoError(t, err, "Failed to create alert rule")

	now := time.Now().UTC()
	seedBaseline := func(accountId string) {
		require.NoError(t, accountstore.AddScoreSnapshot(accountmodel.ScoreSnapshot{
			SnapshotId: uuid.New().String(),
			OrgId:      orgId,
			AccountId:  accountId,
			Score:      100,
			Tier:       constants.TierHot,
			RecordedAt: now.AddDate(0, 0, -6),
		}), "Failed to seed baseline snapshot")
	}

	t.Run("Fifteen_percent_drop_fires", func(t *testing.T) {
		seedBaseline("acc-drop-1")
		summary := alertservice.EvaluateForAccount(model.EvaluationContext{
			OrgId:     orgId,
			AccountId: "acc-drop-1",
			NewScore:  scoreOf(85),
			Now:       now,
		})
		require.Equal(t, 1, summary.Triggered, "100 to 85 is a 15% drop")
		require.Equal(t, 1, dispatcher.count())
		require.True(t, strings.Contains(dispatcher.events[0].Message, "15.0%"),
			"Message must carry the drop percentage: %s", dispatcher.events[0].Message)
	})

	t.Run("Eight_percent_drop_stays_silent", func(t *testing.T) {
		seedBaseline("acc-drop-2")
		summary := alertservice.EvaluateForAccount(model.EvaluationContext{
			OrgId:     orgId,
			AccountId: "acc-drop-2",
			NewScore:  scoreOf(92),
			Now:       now,
		})
		require.Equal(t, 0, summary.Triggered, "100 to 92 is under the default 10%")
		require.Equal(t, 1, dispatcher.count())
	})
}

func Test_NewHotSignalEvaluation(t *testing.T) {
	alertSvc := alertservice.GetAlertRuleService()
	signalSvc := signalservice.GetSignalService()
	orgId := "org-hot-signal"

	dispatcher := &recordingDispatcher{}
	alertservice.SetDispatcher(dispatcher)
	defer alertservice.SetDispatcher(nil)

	_, err := alertSvc.CreateAlertRule(orgId, model.AlertRule{
		RuleName:    "demo requested",
		TriggerType: constants.TriggerNewHotSignal,
		Params:      model.AlertRuleParams{SourceTypes: []string{"demo_requested"}},
		Channels:    []string{constants.ChannelInApp},
		IsActive:    true,
	})
	require.NoError(t, err, "Failed to create alert rule")

	now := time.Now().UTC()
	signal, created, err := signalSvc.IngestSignal(orgId, signalmodel.SignalRequest{
		Source:     "website",
		SignalType: "demo_requested",
		Actor:      signalmodel.Actor{Email: "buyer@hotsigcorp.com"},
		OccurredAt: now.Add(-time.Minute),
	})
	require.NoError(t, err, "Failed to ingest signal")
	require.True(t, created)
	require.NotEmpty(t, signal.AccountId)

	t.Run("Recent_tracked_signal_fires", func(t *testing.T) {
		summary := alertservice.EvaluateForAccount(model.EvaluationContext{
			OrgId:     orgId,
			AccountId: signal.AccountId,
			NewScore:  scoreOf(10),
			Now:       now,
		})
		require.Equal(t, 1, summary.Triggered)
		require.Equal(t, 1, dispatcher.count())
		require.Equal(t, constants.TriggerNewHotSignal, dispatcher.events[0].TriggerType)
	})

	t.Run("Account_without_tracked_signal_stays_silent", func(t *testing.T) {
		summary := alertservice.EvaluateForAccount(model.EvaluationContext{
			OrgId:     orgId,
			AccountId: "acc-hot-quiet",
			NewScore:  scoreOf(10),
			Now:       now,
		})
		require.Equal(t, 0, summary.Triggered)
		require.Equal(t, 1, dispatcher.count())
	})
}

func Test_EngagementDropSweep(t *testing.T) {
	alertSvc := alertservice.GetAlertRuleService()
	signalSvc := signalservice.GetSignalService()
	orgId := "org-sweep"

	dispatcher := &recordingDispatcher{}
	alertservice.SetDispatcher(dispatcher)
	defer alertservice.SetDispatcher(nil)

	_, err := alertSvc.CreateAlertRule(orgId, model.AlertRule{
		RuleName:    "gone quiet",
		TriggerType: constants.TriggerEngagementDrop,
		Channels:    []string{constants.ChannelInApp},
		IsActive:    true,
	})
	require.NoError(t, err, "Failed to create alert rule")

	now := time.Now().UTC()

	// One account whose last signal is 20 days old, one still active.
	quiet, created, err := signalSvc.IngestSignal(orgId, signalmodel.SignalRequest{
		Source:     "github",
		SignalType: "repo_starred",
		Actor:      signalmodel.Actor{Email: "dev@quietcorp.com"},
		OccurredAt: now.AddDate(0, 0, -20),
	})
	require.NoError(t, err)
	require.True(t, created)
	require.NotEmpty(t, quiet.AccountId)

	active, created, err := signalSvc.IngestSignal(orgId, signalmodel.SignalRequest{
		Source:     "github",
		SignalType: "repo_starred",
		Actor:      signalmodel.Actor{Email: "dev@busycorp.com"},
		OccurredAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)
	require.True(t, created)
	require.NotEmpty(t, active.AccountId)

	summary := alertservice.EvaluateTimeBased(orgId, now)
	require.Equal(t, 2, summary.Evaluated)
	require.Equal(t, 1, summary.Triggered, "Only the quiet account fires")
	require.Equal(t, 1, dispatcher.count())
	require.Equal(t, quiet.AccountId, dispatcher.events[0].AccountId)
	require.Equal(t, constants.TriggerEngagementDrop, dispatcher.events[0].TriggerType)
}

func Test_EvaluationWithNoRules(t *testing.T) {
	summary := alertservice.EvaluateForAccount(model.EvaluationContext{
		OrgId:     "org-no-rules",
		AccountId: "acc-none",
		NewScore:  scoreOf(50),
		Now:       time.Now().UTC(),
	})
	require.Equal(t, 0, summary.Evaluated, "No rules means nothing to evaluate")
	require.Equal(t, 0, summary.Triggered)
	require.Equal(t, 0, summary.Errors)
}
