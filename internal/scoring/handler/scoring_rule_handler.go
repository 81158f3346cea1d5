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

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/signalfoundry/account-intelligence-service/internal/scoring/model"
	"github.com/signalfoundry/account-intelligence-service/internal/scoring/provider"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/security"
	"github.com/signalfoundry/account-intelligence-service/internal/system/utils"
)

type ScoringRuleHandler struct{}

func NewScoringRuleHandler() *ScoringRuleHandler {

	return &ScoringRuleHandler{}
}

// AddScoringRule handles adding a new scoring rule.
func (srh *ScoringRuleHandler) AddScoringRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "scoring_rules:create"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var rule model.ScoringRule
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&rule); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "scoring rule"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	ruleService := provider.NewScoringRuleProvider().GetScoringRuleService()
	added, err := ruleService.CreateScoringRule(orgId, rule)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(added)
}

// GetScoringRules fetches all scoring rules of the organization.
func (srh *ScoringRuleHandler) GetScoringRules(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "scoring_rules:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	ruleService := provider.NewScoringRuleProvider().GetScoringRuleService()
	rules, err := ruleService.GetScoringRules(orgId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(rules)
}

// GetScoringRule fetches a single scoring rule.
func (srh *ScoringRuleHandler) GetScoringRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "scoring_rules:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleId := extractRuleId(r)
	orgId := utils.ExtractOrgIdFromPath(r)
	ruleService := provider.NewScoringRuleProvider().GetScoringRuleService()
	rule, err := ruleService.GetScoringRule(orgId, ruleId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(rule)
}

// UpdateScoringRule replaces the mutable fields of a scoring rule.
func (srh *ScoringRuleHandler) UpdateScoringRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "scoring_rules:update"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var rule model.ScoringRule
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&rule); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "scoring rule"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	ruleId := extractRuleId(r)
	orgId := utils.ExtractOrgIdFromPath(r)
	ruleService := provider.NewScoringRuleProvider().GetScoringRuleService()
	updated, err := ruleService.UpdateScoringRule(orgId, ruleId, rule)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(updated)
}

// DeleteScoringRule deletes a scoring rule.
func (srh *ScoringRuleHandler) DeleteScoringRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "scoring_rules:delete"); err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleId := extractRuleId(r)
	orgId := utils.ExtractOrgIdFromPath(r)
	ruleService := provider.NewScoringRuleProvider().GetScoringRuleService()
	if err := ruleService.DeleteScoringRule(orgId, ruleId); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PreviewScore scores a hypothetical signal set against candidate rules
// without persisting anything.
func (srh *ScoringRuleHandler) PreviewScore(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "scoring_rules:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var preview model.PreviewRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&preview); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "score preview"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	ruleService := provider.NewScoringRuleProvider().GetScoringRuleService()
	result, err := ruleService.PreviewScore(orgId, preview)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(result)
}

func extractRuleId(r *http.Request) string {

	return strings.TrimPrefix(strings.TrimSuffix(r.URL.Path, "/"), "/scoring-rules/")
}
