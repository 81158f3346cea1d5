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
	"github.com/signalfoundry/account-intelligence-service/internal/alerts/model"
)

// AlertRuleServiceInterface defines the service interface.
type AlertRuleServiceInterface interface {
	CreateAlertRule(orgId string, rule model.AlertRule) (*model.AlertRule, error)
	GetAlertRules(orgId string) ([]model.AlertRule, error)
	GetAlertRule(orgId, ruleId string) (*model.AlertRule, error)
	UpdateAlertRule(orgId, ruleId string, rule model.AlertRule) (*model.AlertRule, error)
	DeleteAlertRule(orgId, ruleId string) error
}

// AlertRuleService is the default implementation.
type AlertRuleService struct{}

// GetAlertRuleService returns the alert rule service instance.
func GetAlertRuleService() AlertRuleServiceInterface {

	return &AlertRuleService{}
}

func (ars *AlertRuleService) CreateAlertRule(orgId string, rule model.AlertRule) (*model.AlertRule, error) {

	return CreateAlertRule(orgId, rule)
}

func (ars *AlertRuleService) GetAlertRules(orgId string) ([]model.AlertRule, error) {

	return GetAlertRules(orgId)
}

func (ars *AlertRuleService) GetAlertRule(orgId, ruleId string) (*model.AlertRule, error) {

	return GetAlertRule(orgId, ruleId)
}

func (ars *AlertRuleService) UpdateAlertRule(orgId, ruleId string, rule model.AlertRule) (*model.AlertRule, error) {

	return UpdateAlertRule(orgId, ruleId, rule)
}

func (ars *AlertRuleService) DeleteAlertRule(orgId, ruleId string) error {

	return DeleteAlertRule(orgId, ruleId)
}
