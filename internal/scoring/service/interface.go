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
	"github.com/signalfoundry/account-intelligence-service/internal/scoring/model"
)

// ScoringRuleServiceInterface defines the service interface.
type ScoringRuleServiceInterface interface {
	CreateScoringRule(orgId string, rule model.ScoringRule) (*model.ScoringRule, error)
	GetScoringRules(orgId string) ([]model.ScoringRule, error)
	GetScoringRule(orgId, ruleId string) (*model.ScoringRule, error)
	UpdateScoringRule(orgId, ruleId string, rule model.ScoringRule) (*model.ScoringRule, error)
	DeleteScoringRule(orgId, ruleId string) error
	PreviewScore(orgId string, preview model.PreviewRequest) (*model.ScoreResult, error)
}

// ScoringRuleService is the default implementation.
type ScoringRuleService struct{}

// GetScoringRuleService returns the scoring rule service instance.
func GetScoringRuleService() ScoringRuleServiceInterface {

	return &ScoringRuleService{}
}

func (srs *ScoringRuleService) CreateScoringRule(orgId string, rule model.ScoringRule) (*model.ScoringRule, error) {

	return CreateScoringRule(orgId, rule)
}

func (srs *ScoringRuleService) GetScoringRules(orgId string) ([]model.ScoringRule, error) {

	return GetScoringRules(orgId)
}

func (srs *ScoringRuleService) GetScoringRule(orgId, ruleId string) (*model.ScoringRule, error) {

	return GetScoringRule(orgId, ruleId)
}

func (srs *ScoringRuleService) UpdateScoringRule(orgId, ruleId string, rule model.ScoringRule) (*model.ScoringRule, error) {

	return UpdateScoringRule(orgId, ruleId, rule)
}

func (srs *ScoringRuleService) DeleteScoringRule(orgId, ruleId string) error {

	return DeleteScoringRule(orgId, ruleId)
}

func (srs *ScoringRuleService) PreviewScore(orgId string, preview model.PreviewRequest) (*model.ScoreResult, error) {

	return PreviewScore(orgId, preview)
}
