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

	"github.com/signalfoundry/account-intelligence-service/internal/alerts/model"
	"github.com/signalfoundry/account-intelligence-service/internal/alerts/provider"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/security"
	"github.com/signalfoundry/account-intelligence-service/internal/system/utils"
)

type AlertRuleHandler struct{}

func NewAlertRuleHandler() *AlertRuleHandler {

	return &AlertRuleHandler{}
}

// AddAlertRule handles adding a new alert rule.
func (arh *AlertRuleHandler) AddAlertRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "alert_rules:create"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var rule model.AlertRule
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&rule); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "alert rule"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	ruleService := provider.NewAlertRuleProvider().GetAlertRuleService()
	added, err := ruleService.CreateAlertRule(orgId, rule)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(added)
}

// GetAlertRules fetches all alert rules of the organization.
func (arh *AlertRuleHandler) GetAlertRules(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "alert_rules:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	ruleService := provider.NewAlertRuleProvider().GetAlertRuleService()
	rules, err := ruleService.GetAlertRules(orgId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(rules)
}

// GetAlertRule fetches a single alert rule.
func (arh *AlertRuleHandler) GetAlertRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "alert_rules:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleId := extractAlertRuleId(r)
	orgId := utils.ExtractOrgIdFromPath(r)
	ruleService := provider.NewAlertRuleProvider().GetAlertRuleService()
	rule, err := ruleService.GetAlertRule(orgId, ruleId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(rule)
}

// UpdateAlertRule replaces the mutable fields of an alert rule.
func (arh *AlertRuleHandler) UpdateAlertRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "alert_rules:update"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var rule model.AlertRule
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&rule); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "alert rule"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	ruleId := extractAlertRuleId(r)
	orgId := utils.ExtractOrgIdFromPath(r)
	ruleService := provider.NewAlertRuleProvider().GetAlertRuleService()
	updated, err := ruleService.UpdateAlertRule(orgId, ruleId, rule)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(updated)
}

// DeleteAlertRule deletes an alert rule.
func (arh *AlertRuleHandler) DeleteAlertRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "alert_rules:delete"); err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleId := extractAlertRuleId(r)
	orgId := utils.ExtractOrgIdFromPath(r)
	ruleService := provider.NewAlertRuleProvider().GetAlertRuleService()
	if err := ruleService.DeleteAlertRule(orgId, ruleId); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func extractAlertRuleId(r *http.Request) string {

	return strings.TrimPrefix(strings.TrimSuffix(r.URL.Path, "/"), "/alert-rules/")
}
