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
	"github.com/signalfoundry/account-intelligence-service/internal/alerts/model"
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
	"github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func scorePtr(v float64) *float64 {
	return &v
}

// ---------------------------------------------------------------------------
// evaluateScoreThreshold – crossing semantics
// ---------------------------------------------------------------------------

func TestEvaluateScoreThreshold(t *testing.T) {
	thresholdRule := func(threshold *float64, direction string) model.AlertRule {
		return model.AlertRule{
			RuleId:      "rule-1",
			TriggerType: constants.TriggerScoreThreshold,
			Params:      model.AlertRuleParams{Threshold: threshold, Direction: direction},
		}
	}

	cases := []struct {
		name     string
		rule     model.AlertRule
		oldScore *float64
		newScore *float64
		fired    bool
	}{
		{"crosses above", thresholdRule(scorePtr(70), directionAbove), scorePtr(60), scorePtr(75), true},
		{"exactly at threshold counts", thresholdRule(scorePtr(70), directionAbove), scorePtr(60), scorePtr(70), true},
		{"already above does not refire", thresholdRule(scorePtr(70), directionAbove), scorePtr(75), scorePtr(80), false},
		{"below stays silent", thresholdRule(scorePtr(70), directionAbove), scorePtr(10), scorePtr(20), false},
		{"first score crossing counts", thresholdRule(scorePtr(70), directionAbove), nil, scorePtr(80), true},
		{"crosses below", thresholdRule(scorePtr(40), directionBelow), scorePtr(50), scorePtr(30), true},
		{"already below does not refire", thresholdRule(scorePtr(40), directionBelow), scorePtr(20), scorePtr(10), false},
		{"no new score", thresholdRule(scorePtr(70), directionAbove), scorePtr(60), nil, false},
		{"direction defaults to above", thresholdRule(scorePtr(70), ""), scorePtr(60), scorePtr(75), true},
		{"unset threshold defaults to 70", thresholdRule(nil, directionAbove), scorePtr(60), scorePtr(71), true},
		{"explicit zero threshold is honored", thresholdRule(scorePtr(0), directionAbove), nil, scorePtr(0), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			evalCtx := model.EvaluationContext{
				OrgId:     "org1",
				AccountId: "acc1",
				OldScore:  tc.oldScore,
				NewScore:  tc.newScore,
				Now:       time.Now().UTC(),
			}
			fired, message := evaluateScoreThreshold(tc.rule, evalCtx)
			assert.Equal(t, tc.fired, fired)
			if tc.fired {
				assert.NotEmpty(t, message)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// evaluateNewHotSignal – tracked signal types
// ---------------------------------------------------------------------------

func TestEvaluateNewHotSignal_NoTrackedTypesNeverFires(t *testing.T) {
	rule := model.AlertRule{RuleId: "rule-1", TriggerType: constants.TriggerNewHotSignal}

	fired, message, err := evaluateNewHotSignal(rule, model.EvaluationContext{
		OrgId:     "org1",
		AccountId: "acc1",
		Now:       time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.False(t, fired, "Rules without tracked signal types must stay silent")
	assert.Empty(t, message)
}

// ---------------------------------------------------------------------------
// validateAlertRule – early-return validation (no DB required)
// ---------------------------------------------------------------------------

func TestValidateAlertRule(t *testing.T) {
	valid := model.AlertRule{
		RuleName:    "hot accounts",
		TriggerType: constants.TriggerNewHotSignal,
		Channels:    []string{constants.ChannelInApp},
	}
	assert.NoError(t, validateAlertRule(valid))

	cases := []struct {
		name   string
		mutate func(r *model.AlertRule)
	}{
		{"missing name", func(r *model.AlertRule) { r.RuleName = "" }},
		{"unknown trigger", func(r *model.AlertRule) { r.TriggerType = "score_explodes" }},
		{"unknown channel", func(r *model.AlertRule) { r.Channels = []string{"pager"} }},
		{"bad direction", func(r *model.AlertRule) { r.Params.Direction = "sideways" }},
		{"negative drop percent", func(r *model.AlertRule) { r.Params.DropPercent = -1 }},
		{"negative within days", func(r *model.AlertRule) { r.Params.WithinDays = -7 }},
		{"negative threshold", func(r *model.AlertRule) { r.Params.Threshold = scorePtr(-5) }},
		{"blank tracked signal type", func(r *model.AlertRule) { r.Params.SourceTypes = []string{" "} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule := valid
			tc.mutate(&rule)
			err := validateAlertRule(rule)
			require.Error(t, err)

			clientErr, ok := err.(*errors.ClientError)
			require.True(t, ok, "expected a ClientError")
			assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
		})
	}
}
