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

// Identity links a (type, value) pair to a contact. The pair is unique across
// the whole store; confidence only ever moves up.
type Identity struct {
	IdentityId    string    `json:"identity_id"`
	OrgId         string    `json:"org_id"`
	IdentityType  string    `json:"identity_type"`
	IdentityValue string    `json:"identity_value"`
	ContactId     string    `json:"contact_id"`
	Confidence    float64   `json:"confidence"`
	Verified      bool      `json:"verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Contact is a resolved person within an organization.
type Contact struct {
	ContactId string    `json:"contact_id"`
	OrgId     string    `json:"org_id"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	AccountId string    `json:"account_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Resolution is the outcome of running a signal through the resolver.
type Resolution struct {
	ContactId   string  `json:"contact_id,omitempty"`
	AccountId   string  `json:"account_id,omitempty"`
	AnonymousId string  `json:"anonymous_id,omitempty"`
	Confidence  float64 `json:"confidence"`
}
