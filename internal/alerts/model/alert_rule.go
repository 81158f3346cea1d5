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

import "time"

// AlertRuleParams holds the trigger-specific knobs. Unset values fall back to
// per-trigger defaults at evaluation time. Threshold is a pointer so an
// explicit zero survives the round trip and is not mistaken for "unset".
type AlertRuleParams struct {
	DropPercent  float64  `json:"drop_percent,omitempty"`
	RisePercent  float64  `json:"rise_percent,omitempty"`
	WithinDays   int      `json:"within_days,omitempty"`
	Threshold    *float64 `json:"threshold,omitempty"`
	Direction    string   `json:"direction,omitempty"`
	InactiveDays int      `json:"inactive_days,omitempty"`
	SourceTypes  []string `json:"source_types,omitempty"`
}

// AlertRule describes when and how an organization wants to be notified
// about account score movements.
type AlertRule struct {
	RuleId      string          `json:"rule_id"`
	OrgId       string          `json:"org_id"`
	RuleName    string          `json:"rule_name" binding:"required"`
	TriggerType string          `json:"trigger_type" binding:"required"`
	Params      AlertRuleParams `json:"params"`
	Channels    []string        `json:"channels"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   int64           `json:"created_at"`
	UpdatedAt   int64           `json:"updated_at"`
}

// AlertEvent is a single fired alert, handed to the notification dispatcher.
type AlertEvent struct {
	RuleId      string    `json:"rule_id"`
	RuleName    string    `json:"rule_name"`
	OrgId       string    `json:"org_id"`
	AccountId   string    `json:"account_id"`
	TriggerType string    `json:"trigger_type"`
	Message     string    `json:"message"`
	OldScore    *float64  `json:"old_score,omitempty"`
	NewScore    *float64  `json:"new_score,omitempty"`
	Channels    []string  `json:"channels"`
	TriggeredAt time.Time `json:"triggered_at"`
}

// EvaluationSummary reports the outcome of an evaluation pass.
type EvaluationSummary struct {
	Evaluated int `json:"evaluated"`
	Triggered int `json:"triggered"`
	Errors    int `json:"errors"`
}

// EvaluationContext carries score movement facts into trigger evaluators.
type EvaluationContext struct {
	OrgId     string
	AccountId string
	OldScore  *float64
	NewScore  *float64
	NewTier   string
	OldTier   string
	Now       time.Time
}
