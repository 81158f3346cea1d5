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

// Notification is an in-app feed entry persisted per fired alert.
type Notification struct {
	NotificationId string    `json:"notification_id" bson:"notification_id"`
	OrgId          string    `json:"org_id" bson:"org_id"`
	AccountId      string    `json:"account_id" bson:"account_id"`
	RuleId         string    `json:"rule_id" bson:"rule_id"`
	TriggerType    string    `json:"trigger_type" bson:"trigger_type"`
	Title          string    `json:"title" bson:"title"`
	Body           string    `json:"body" bson:"body"`
	IsRead         bool      `json:"is_read" bson:"is_read"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
