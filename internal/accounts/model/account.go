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

type Account struct {
	AccountId   string    `json:"account_id"`
	OrgId       string    `json:"org_id"`
	AccountName string    `json:"account_name"`
	Domain      string    `json:"domain"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AccountScore is the current computed score for an account. One row per
// account, replaced on every recompute.
type AccountScore struct {
	AccountId     string     `json:"account_id"`
	OrgId         string     `json:"org_id"`
	Score         float64    `json:"score"`
	Tier          string     `json:"tier"`
	Trend         string     `json:"trend"`
	SignalCount   int        `json:"signal_count"`
	DistinctUsers int        `json:"distinct_users"`
	LastSignalAt  *time.Time `json:"last_signal_at,omitempty"`
	ComputedAt    time.Time  `json:"computed_at"`
}

// ScoreSnapshot is an append-only point-in-time record of an account score.
type ScoreSnapshot struct {
	SnapshotId string    `json:"snapshot_id"`
	OrgId      string    `json:"org_id"`
	AccountId  string    `json:"account_id"`
	Score      float64   `json:"score"`
	Tier       string    `json:"tier"`
	RecordedAt time.Time `json:"recorded_at"`
}
