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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	accountservice "github.com/signalfoundry/account-intelligence-service/internal/accounts/service"
	scoringmodel "github.com/signalfoundry/account-intelligence-service/internal/scoring/model"
	scoringservice "github.com/signalfoundry/account-intelligence-service/internal/scoring/service"
	signalmodel "github.com/signalfoundry/account-intelligence-service/internal/signals/model"
	signalservice "github.com/signalfoundry/account-intelligence-service/internal/signals/service"
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
)

func Test_ScoringPipeline(t *testing.T) {
	signalSvc := signalservice.GetSignalService()
	scoringSvc := scoringservice.GetScoringRuleService()
	accountSvc := accountservice.GetAccountService()
	orgId := "org-scoring"

	var ruleId string
	var accountId string

	t.Run("Create_scoring_rule", func(t *testing.T) {
		rule, err := scoringSvc.CreateScoringRule(orgId, scoringmodel.ScoringRule{
			RuleName:    "stars are warm",
			SignalType:  "repo_starred",
			Weight:      25,
			DecayWindow: constants.DecayNone,
			IsActive:    true,
		})
		require.NoError(t, err, "Failed to create scoring rule")
		require.NotEmpty(t, rule.RuleId)
		ruleId = rule.RuleId
	})

	t.Run("Ingest_attributed_signals", func(t *testing.T) {
		for i, key := range []string{"score-evt-1", "score-evt-2"} {
			signal, created, err := signalSvc.IngestSignal(orgId, signalmodel.SignalRequest{
				IdempotencyKey: key,
				Source:         "github",
				SignalType:     "repo_starred",
				Actor:          signalmodel.Actor{Email: "dev@scorecorp.com"},
				OccurredAt:     time.Now().UTC().Add(-time.Duration(i+1) * time.Hour),
			})
			require.NoError(t, err, "Failed to ingest signal")
			require.True(t, created)
			require.NotEmpty(t, signal.AccountId)
			accountId = signal.AccountId
		}
	})

	t.Run("Recompute_produces_score", func(t *testing.T) {
		result, err := accountSvc.RecomputeAccountScore(orgId, accountId)
		require.NoError(t, err, "Failed to recompute account score")
		require.NotNil(t, result, "Recompute must not be skipped")
		require.Equal(t, 50.0, result.Score, "Two signals at weight 25")
		require.Equal(t, constants.TierWarm, result.Tier)
		require.Equal(t, 2, result.SignalCount)
		require.Equal(t, 1, result.DistinctUsers, "Both signals came from one actor")
	})

	t.Run("Score_is_persisted", func(t *testing.T) {
		score, err := accountSvc.GetAccountScore(orgId, accountId)
		require.NoError(t, err, "Failed to get account score")
		require.NotNil(t, score)
		require.Equal(t, 50.0, score.Score)
		require.Equal(t, constants.TierWarm, score.Tier)
		require.Equal(t, 1, score.DistinctUsers)
	})

	t.Run("Snapshot_is_appended", func(t *testing.T) {
		snapshots, err := accountSvc.GetScoreSnapshots(orgId, accountId, 7)
		require.NoError(t, err, "Failed to get score snapshots")
		require.GreaterOrEqual(t, len(snapshots), 1, "Recompute must append a snapshot")
	})

	t.Run("Account_listed_by_tier", func(t *testing.T) {
		scores, err := accountSvc.GetAccountScoresByTier(orgId, constants.TierWarm)
		require.NoError(t, err, "Failed to list scores by tier")
		require.GreaterOrEqual(t, len(scores), 1)
	})

	t.Run("Deactivated_rule_drops_score", func(t *testing.T) {
		rule, err := scoringSvc.GetScoringRule(orgId, ruleId)
		require.NoError(t, err)

		updated := *rule
		updated.IsActive = false
		_, err = scoringSvc.UpdateScoringRule(orgId, ruleId, updated)
		require.NoError(t, err, "Failed to deactivate scoring rule")

		result, err := accountSvc.RecomputeAccountScore(orgId, accountId)
		require.NoError(t, err)
		require.NotNil(t, result)
		require.Equal(t, 0.0, result.Score, "No active rules means no score")
		require.Equal(t, constants.TierInactive, result.Tier)
	})

	t.Run("Tier_listing_reflects_drop", func(t *testing.T) {
		scores, err := accountSvc.GetAccountScoresByTier(orgId, constants.TierInactive)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(scores), 1)
	})

	t.Run("Preview_does_not_persist", func(t *testing.T) {
		preview, err := scoringSvc.PreviewScore(orgId, scoringmodel.PreviewRequest{
			Rules: []scoringmodel.ScoringRule{{
				RuleName:    "hypothetical",
				SignalType:  "repo_starred",
				Weight:      80,
				DecayWindow: constants.DecayNone,
				IsActive:    true,
			}},
			Signals: []signalmodel.Signal{{
				SignalType: "repo_starred",
				Source:     "github",
				OccurredAt: time.Now().UTC(),
			}},
		})
		require.NoError(t, err, "Failed to preview score")
		require.Equal(t, 80.0, preview.Score)

		stored, err := accountSvc.GetAccountScore(orgId, accountId)
		require.NoError(t, err)
		require.Equal(t, 0.0, stored.Score, "Preview must not touch stored scores")
	})
}

// recordingTierNotifier captures tier movements instead of writing feed entries.
type recordingTierNotifier struct {
	tierChanges []string
	hotAccounts []string
}

func (n *recordingTierNotifier) NotifyTierChange(orgId, accountId, oldTier, newTier string, score float64) error {
	n.tierChanges = append(n.tierChanges, oldTier+">"+newTier)
	return nil
}

func (n *recordingTierNotifier) NotifyNewHotAccount(orgId, accountId string, score float64) error {
	n.hotAccounts = append(n.hotAccounts, accountId)
	return nil
}

func Test_TierMovementNotifications(t *testing.T) {
	signalSvc := signalservice.GetSignalService()
	scoringSvc := scoringservice.GetScoringRuleService()
	accountSvc := accountservice.GetAccountService()
	orgId := "org-tier-notify"

	notifier := &recordingTierNotifier{}
	scoringservice.SetTierNotifier(notifier)
	defer scoringservice.SetTierNotifier(nil)

	rule, err := scoringSvc.CreateScoringRule(orgId, scoringmodel.ScoringRule{
		RuleName:    "demo heat",
		SignalType:  "demo_requested",
		Weight:      80,
		DecayWindow: constants.DecayNone,
		IsActive:    true,
	})
	require.NoError(t, err, "Failed to create scoring rule")

	signal, created, err := signalSvc.IngestSignal(orgId, signalmodel.SignalRequest{
		Source:     "website",
		SignalType: "demo_requested",
		Actor:      signalmodel.Actor{Email: "buyer@tiercorp.com"},
		OccurredAt: time.Now().UTC().Add(-time.Minute),
	})
	require.NoError(t, err, "Failed to ingest signal")
	require.True(t, created)
	require.NotEmpty(t, signal.AccountId)

	t.Run("Entering_hot_emits_both_notifications", func(t *testing.T) {
		result, err := accountSvc.RecomputeAccountScore(orgId, signal.AccountId)
		require.NoError(t, err)
		require.NotNil(t, result)
		require.Equal(t, constants.TierHot, result.Tier)

		require.Equal(t, []string{">" + constants.TierHot}, notifier.tierChanges,
			"First compute moves from unscored to HOT")
		require.Equal(t, []string{signal.AccountId}, notifier.hotAccounts)
	})

	t.Run("Leaving_hot_emits_tier_change_only", func(t *testing.T) {
		updated := *rule
		updated.IsActive = false
		_, err := scoringSvc.UpdateScoringRule(orgId, rule.RuleId, updated)
		require.NoError(t, err)

		result, err := accountSvc.RecomputeAccountScore(orgId, signal.AccountId)
		require.NoError(t, err)
		require.Equal(t, constants.TierInactive, result.Tier)

		require.Len(t, notifier.tierChanges, 2)
		require.Equal(t, constants.TierHot+">"+constants.TierInactive, notifier.tierChanges[1])
		require.Len(t, notifier.hotAccounts, 1, "Dropping out of HOT is not a new hot account")
	})

	t.Run("Unchanged_tier_stays_quiet", func(t *testing.T) {
		result, err := accountSvc.RecomputeAccountScore(orgId, signal.AccountId)
		require.NoError(t, err)
		require.Equal(t, constants.TierInactive, result.Tier)
		require.Len(t, notifier.tierChanges, 2, "No movement means no notification")
	})
}
