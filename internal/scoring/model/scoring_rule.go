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

package model

import (
	"time"

	signalmodel "github.com/signalfoundry/account-intelligence-service/internal/signals/model"
)

// RuleCondition gates a scoring rule on an account-level aggregate such as
// signal_count, distinct_users, or total_signals.
type RuleCondition struct {
	Property string      `json:"property" binding:"required"`
	Operator string      `json:"operator" binding:"required"`
	Value    interface{} `json:"value,omitempty"`
}

// ScoringRule assigns a weight to matching signals, decayed by signal age.
type ScoringRule struct {
	RuleId      string          `json:"rule_id"`
	OrgId       string          `json:"org_id"`
	RuleName    string          `json:"rule_name" binding:"required"`
	SignalType  string          `json:"signal_type" binding:"required"`
	Source      string          `json:"source,omitempty"`
	Weight      float64         `json:"weight" binding:"required"`
	DecayWindow string          `json:"decay_window"`
	Conditions  []RuleCondition `json:"conditions,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   int64           `json:"created_at"`
	UpdatedAt   int64           `json:"updated_at"`
}

// RuleContribution records how much a single rule added to a score.
type RuleContribution struct {
	RuleId       string  `json:"rule_id"`
	RuleName     string  `json:"rule_name"`
	MatchedCount int     `json:"matched_count"`
	Points       float64 `json:"points"`
}

// ScoreResult is the outcome of computing a score over a signal set.
type ScoreResult struct {
	Score         float64            `json:"score"`
	Tier          string             `json:"tier"`
	Trend         string             `json:"trend"`
	SignalCount   int                `json:"signal_count"`
	DistinctUsers int                `json:"distinct_users"`
	Contributions []RuleContribution `json:"contributions,omitempty"`
	ComputedAt    time.Time          `json:"computed_at"`
}

// PreviewRequest scores a hypothetical signal set against a candidate rule set
// without persisting anything.
type PreviewRequest struct {
	Rules   []ScoringRule        `json:"rules" binding:"required"`
	Signals []signalmodel.Signal `json:"signals" binding:"required"`
}
