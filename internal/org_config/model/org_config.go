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

// OrgConfig holds per-organization tier thresholds and notification settings.
// Thresholds are kept ordered HOT >= WARM >= COLD by clipping on write.
type OrgConfig struct {
	OrgId           string    `json:"org_id"`
	HotThreshold    float64   `json:"hot_threshold"`
	WarmThreshold   float64   `json:"warm_threshold"`
	ColdThreshold   float64   `json:"cold_threshold"`
	SlackWebhookUrl string    `json:"slack_webhook_url,omitempty"`
	InAppEnabled    bool      `json:"inapp_enabled"`
	EmailEnabled    bool      `json:"email_enabled"`
	SlackEnabled    bool      `json:"slack_enabled"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OrgMember is a recipient for email notifications within an organization.
type OrgMember struct {
	MemberId   string `json:"member_id"`
	OrgId      string `json:"org_id"`
	Email      string `json:"email"`
	MemberName string `json:"member_name"`
	MemberRole string `json:"member_role"`
}
