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

// Actor carries the identifying evidence attached to an incoming signal.
type Actor struct {
	Email      string `json:"email,omitempty" bson:"email,omitempty"`
	ExternalId string `json:"external_id,omitempty" bson:"external_id,omitempty"`
	ProfileUrl string `json:"profile_url,omitempty" bson:"profile_url,omitempty"`
	Name       string `json:"name,omitempty" bson:"name,omitempty"`
}

// SignalRequest is the intake payload before resolution. AccountHint lets a
// producer pre-attribute the signal when the actor's evidence cannot reach an
// account on its own.
type SignalRequest struct {
	IdempotencyKey string                 `json:"idempotency_key,omitempty"`
	Source         string                 `json:"source" binding:"required"`
	SignalType     string                 `json:"signal_type" binding:"required"`
	Actor          Actor                  `json:"actor"`
	AccountHint    string                 `json:"account_hint,omitempty"`
	Properties     map[string]interface{} `json:"properties,omitempty"`
	OccurredAt     time.Time              `json:"occurred_at"`
}

// Signal is an immutable, persisted intake record.
type Signal struct {
	SignalId       string                 `json:"signal_id" bson:"signal_id"`
	OrgId          string                 `json:"org_id" bson:"org_id"`
	IdempotencyKey string                 `json:"idempotency_key" bson:"idempotency_key"`
	Source         string                 `json:"source" bson:"source"`
	SignalType     string                 `json:"signal_type" bson:"signal_type"`
	Actor          Actor                  `json:"actor" bson:"actor"`
	AnonymousId    string                 `json:"anonymous_id,omitempty" bson:"anonymous_id,omitempty"`
	ContactId      string                 `json:"contact_id,omitempty" bson:"contact_id,omitempty"`
	AccountId      string                 `json:"account_id,omitempty" bson:"account_id,omitempty"`
	AccountHint    string                 `json:"account_hint,omitempty" bson:"account_hint,omitempty"`
	Properties     map[string]interface{} `json:"properties,omitempty" bson:"properties,omitempty"`
	OccurredAt     time.Time              `json:"occurred_at" bson:"occurred_at"`
	ReceivedAt     time.Time              `json:"received_at" bson:"received_at"`
}
