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

package service

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/signalfoundry/account-intelligence-service/internal/scoring/model"
	signalmodel "github.com/signalfoundry/account-intelligence-service/internal/signals/model"
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
	"github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

var testThresholds = TierThresholds{Hot: 70, Warm: 40, Cold: 15}

func testScoreContext(now time.Time) ScoreContext {
	return ScoreContext{
		Thresholds:   testThresholds,
		MaxScore:     100,
		TrendEpsilon: 2.5,
		Now:          now,
	}
}

func signalAt(signalType string, occurredAt time.Time) signalmodel.Signal {
	return signalmodel.Signal{
		SignalId:   "sig-1",
		OrgId:      "org1",
		SignalType: signalType,
		Source:     "github",
		OccurredAt: occurredAt,
	}
}

// ---------------------------------------------------------------------------
// ComputeScore
// ---------------------------------------------------------------------------

func TestComputeScore_SimpleWeights(t *testing.T) {
	now := time.Now().UTC()
	signals := []signalmodel.Signal{
		signalAt("repo_starred", now.Add(-time.Hour)),
		signalAt("repo_starred", now.Add(-2*time.Hour)),
	}
	rules := []model.ScoringRule{{
		RuleId:      "r1",
		RuleName:    "stars",
		SignalType:  "repo_starred",
		Weight:      10,
		DecayWindow: constants.DecayNone,
		IsActive:    true,
	}}

	result := ComputeScore(signals, rules, testScoreContext(now))
	assert.Equal(t, 20.0, result.Score)
	assert.Equal(t, constants.TierCold, result.Tier)
	assert.Equal(t, 2, result.SignalCount)
	require.Len(t, result.Contributions, 1)
	assert.Equal(t, 2, result.Contributions[0].MatchedCount)
	assert.Equal(t, 20.0, result.Contributions[0].Points)
}

func TestComputeScore_ClampsToMaxScore(t *testing.T) {
	now := time.Now().UTC()
	var signals []signalmodel.Signal
	for i := 0; i < 50; i++ {
		signals = append(signals, signalAt("repo_starred", now.Add(-time.Hour)))
	}
	rules := []model.ScoringRule{{
		RuleId:      "r1",
		RuleName:    "stars",
		SignalType:  "repo_starred",
		Weight:      10,
		DecayWindow: constants.DecayNone,
		IsActive:    true,
	}}

	result := ComputeScore(signals, rules, testScoreContext(now))
	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, constants.TierHot, result.Tier)
}

func TestComputeScore_ClampsNegativeToZero(t *testing.T) {
	now := time.Now().UTC()
	signals := []signalmodel.Signal{signalAt("issue_closed_unresolved", now)}
	rules := []model.ScoringRule{{
		RuleId:      "r1",
		RuleName:    "negative",
		SignalType:  "issue_closed_unresolved",
		Weight:      -5,
		DecayWindow: constants.DecayNone,
		IsActive:    true,
	}}

	result := ComputeScore(signals, rules, testScoreContext(now))
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, constants.TierInactive, result.Tier)
}

func TestComputeScore_SkipsInactiveRules(t *testing.T) {
	now := time.Now().UTC()
	signals := []signalmodel.Signal{signalAt("repo_starred", now)}
	rules := []model.ScoringRule{{
		RuleId:      "r1",
		RuleName:    "stars",
		SignalType:  "repo_starred",
		Weight:      10,
		DecayWindow: constants.DecayNone,
		IsActive:    false,
	}}

	result := ComputeScore(signals, rules, testScoreContext(now))
	assert.Equal(t, 0.0, result.Score)
	assert.Empty(t, result.Contributions)
}

func TestComputeScore_SkipsMalformedRules(t *testing.T) {
	now := time.Now().UTC()
	signals := []signalmodel.Signal{signalAt("repo_starred", now)}
	rules := []model.ScoringRule{
		{
			RuleId:      "bad-window",
			RuleName:    "bad",
			SignalType:  "repo_starred",
			Weight:      10,
			DecayWindow: "42d",
			IsActive:    true,
		},
		{
			RuleId:      "good",
			RuleName:    "good",
			SignalType:  "repo_starred",
			Weight:      5,
			DecayWindow: constants.DecayNone,
			IsActive:    true,
		},
	}

	result := ComputeScore(signals, rules, testScoreContext(now))
	assert.Equal(t, 5.0, result.Score)
	require.Len(t, result.Contributions, 1)
	assert.Equal(t, "good", result.Contributions[0].RuleId)
}

func TestComputeScore_SourceFilter(t *testing.T) {
	now := time.Now().UTC()
	signals := []signalmodel.Signal{signalAt("repo_starred", now)}
	rules := []model.ScoringRule{{
		RuleId:      "r1",
		RuleName:    "npm only",
		SignalType:  "repo_starred",
		Source:      "npm",
		Weight:      10,
		DecayWindow: constants.DecayNone,
		IsActive:    true,
	}}

	result := ComputeScore(signals, rules, testScoreContext(now))
	assert.Equal(t, 0.0, result.Score)
}

func TestComputeScore_WildcardSignalType(t *testing.T) {
	now := time.Now().UTC()
	signals := []signalmodel.Signal{signalAt("package_downloaded", now)}
	rules := []model.ScoringRule{{
		RuleId:      "r1",
		RuleName:    "any activity",
		SignalType:  "*",
		Weight:      10,
		DecayWindow: constants.DecayNone,
		IsActive:    true,
	}}

	result := ComputeScore(signals, rules, testScoreContext(now))
	assert.Equal(t, 10.0, result.Score, "Wildcard rules match every signal type")
	require.Len(t, result.Contributions, 1)
	assert.Equal(t, 1, result.Contributions[0].MatchedCount)
}

func TestComputeScore_ConditionsGateOnAggregates(t *testing.T) {
	now := time.Now().UTC()
	signals := []signalmodel.Signal{
		signalAt("pr_opened", now),
		signalAt("pr_opened", now.Add(-time.Hour)),
	}

	rules := []model.ScoringRule{
		{
			RuleId:      "enough-volume",
			RuleName:    "enough volume",
			SignalType:  "pr_opened",
			Weight:      10,
			DecayWindow: constants.DecayNone,
			Conditions: []model.RuleCondition{
				{Property: constants.ConditionPropertySignalCount, Operator: "greater_than_equals", Value: 2},
			},
			IsActive: true,
		},
		{
			RuleId:      "too-demanding",
			RuleName:    "too demanding",
			SignalType:  "pr_opened",
			Weight:      50,
			DecayWindow: constants.DecayNone,
			Conditions: []model.RuleCondition{
				{Property: constants.ConditionPropertySignalCount, Operator: "greater_than", Value: 5},
			},
			IsActive: true,
		},
	}

	result := ComputeScore(signals, rules, testScoreContext(now))
	assert.Equal(t, 20.0, result.Score, "Only the rule whose aggregate condition holds contributes")
	require.Len(t, result.Contributions, 1)
	assert.Equal(t, "enough-volume", result.Contributions[0].RuleId)
	assert.Equal(t, 2, result.Contributions[0].MatchedCount)
}

func TestComputeScore_DistinctUsersAggregate(t *testing.T) {
	now := time.Now().UTC()
	fromContact := func(contactId string) signalmodel.Signal {
		signal := signalAt("repo_starred", now)
		signal.ContactId = contactId
		return signal
	}
	anonymous := signalAt("repo_starred", now)
	anonymous.AnonymousId = "website:anonymous"

	signals := []signalmodel.Signal{
		fromContact("contact-1"),
		fromContact("contact-1"),
		fromContact("contact-2"),
		anonymous,
	}
	rules := []model.ScoringRule{{
		RuleId:      "r1",
		RuleName:    "team adoption",
		SignalType:  "repo_starred",
		Weight:      10,
		DecayWindow: constants.DecayNone,
		Conditions: []model.RuleCondition{
			{Property: constants.ConditionPropertyDistinctUsers, Operator: "greater_than_equals", Value: 3},
		},
		IsActive: true,
	}}

	result := ComputeScore(signals, rules, testScoreContext(now))
	assert.Equal(t, 3, result.DistinctUsers, "Two contacts plus one anonymous actor")
	assert.Equal(t, 40.0, result.Score)
}

// ---------------------------------------------------------------------------
// decayFactor
// ---------------------------------------------------------------------------

func TestDecayFactor_Steps(t *testing.T) {
	day := 24 * time.Hour
	cases := []struct {
		name     string
		age      time.Duration
		window   string
		expected float64
	}{
		{"no decay", 365 * day, constants.DecayNone, 1.0},
		{"first quarter", 1 * day, constants.Decay30Day, 1.0},
		{"second quarter", 10 * day, constants.Decay30Day, 0.75},
		{"third quarter", 20 * day, constants.Decay30Day, 0.5},
		{"fourth quarter", 29 * day, constants.Decay30Day, 0.25},
		{"past window", 31 * day, constants.Decay30Day, 0.0},
		{"7d boundary", 7 * day, constants.Decay7Day, 0.25},
		{"negative age clamps", -1 * day, constants.Decay90Day, 1.0},
		{"unknown window", 1 * day, "2d", 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, decayFactor(tc.age, tc.window))
		})
	}
}

// ---------------------------------------------------------------------------
// tierFor / trendFor
// ---------------------------------------------------------------------------

func TestTierFor_Boundaries(t *testing.T) {
	assert.Equal(t, constants.TierHot, tierFor(70, testThresholds))
	assert.Equal(t, constants.TierWarm, tierFor(69.9, testThresholds))
	assert.Equal(t, constants.TierWarm, tierFor(40, testThresholds))
	assert.Equal(t, constants.TierCold, tierFor(15, testThresholds))
	assert.Equal(t, constants.TierInactive, tierFor(14.9, testThresholds))
	assert.Equal(t, constants.TierInactive, tierFor(0, testThresholds))
}

func TestTrendFor(t *testing.T) {
	prev := 50.0
	assert.Equal(t, constants.TrendStable, trendFor(60, nil, 2.5))
	assert.Equal(t, constants.TrendStable, trendFor(52.5, &prev, 2.5))
	assert.Equal(t, constants.TrendStable, trendFor(47.5, &prev, 2.5))
	assert.Equal(t, constants.TrendRising, trendFor(53, &prev, 2.5))
	assert.Equal(t, constants.TrendFalling, trendFor(47, &prev, 2.5))
}

// ---------------------------------------------------------------------------
// EvaluateCondition
// ---------------------------------------------------------------------------

func TestEvaluateCondition_Operators(t *testing.T) {
	assert.True(t, EvaluateCondition("prod", "equals", "prod"))
	assert.False(t, EvaluateCondition("dev", "equals", "prod"))
	assert.True(t, EvaluateCondition("dev", "not_equals", "prod"))
	assert.True(t, EvaluateCondition("anything", "exists", ""))
	assert.False(t, EvaluateCondition(nil, "exists", ""))
	assert.True(t, EvaluateCondition(nil, "not_exists", ""))
	assert.True(t, EvaluateCondition("hello world", "contains", "world"))
	assert.False(t, EvaluateCondition("hello", "contains", "world"))
	assert.True(t, EvaluateCondition("hello", "not_contains", "world"))
	assert.True(t, EvaluateCondition(10, "greater_than", "5"))
	assert.False(t, EvaluateCondition(5, "greater_than", "5"))
	assert.True(t, EvaluateCondition(5, "greater_than_equals", "5"))
	assert.True(t, EvaluateCondition(3.5, "less_than", "4"))
	assert.True(t, EvaluateCondition("4", "less_than_equals", "4"))
	assert.False(t, EvaluateCondition("abc", "greater_than", "5"))
	assert.False(t, EvaluateCondition(1, "unknown_op", "1"))
}

// ---------------------------------------------------------------------------
// validateScoringRule – early-return validation (no DB required)
// ---------------------------------------------------------------------------

func TestValidateScoringRule(t *testing.T) {
	valid := model.ScoringRule{
		RuleName:    "stars",
		SignalType:  "repo_starred",
		Weight:      10,
		DecayWindow: constants.Decay30Day,
	}
	assert.NoError(t, validateScoringRule(valid))

	cases := []struct {
		name   string
		mutate func(r *model.ScoringRule)
	}{
		{"missing name", func(r *model.ScoringRule) { r.RuleName = " " }},
		{"missing signal type", func(r *model.ScoringRule) { r.SignalType = "" }},
		{"zero weight", func(r *model.ScoringRule) { r.Weight = 0 }},
		{"bad decay window", func(r *model.ScoringRule) { r.DecayWindow = "5d" }},
		{"bad operator", func(r *model.ScoringRule) {
			r.Conditions = []model.RuleCondition{{Property: constants.ConditionPropertySignalCount, Operator: "matches"}}
		}},
		{"unknown condition property", func(r *model.ScoringRule) {
			r.Conditions = []model.RuleCondition{{Property: "lines_changed", Operator: "equals"}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule := valid
			tc.mutate(&rule)
			err := validateScoringRule(rule)
			require.Error(t, err)

			clientErr, ok := err.(*errors.ClientError)
			require.True(t, ok, "expected a ClientError")
			assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
		})
	}
}
