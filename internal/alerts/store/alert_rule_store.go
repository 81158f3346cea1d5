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

package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/signalfoundry/account-intelligence-service/internal/alerts/model"
	"github.com/signalfoundry/account-intelligence-service/internal/system/database/provider"
	"github.com/signalfoundry/account-intelligence-service/internal/system/database/scripts"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

// AddAlertRule adds a new alert rule to the database
func AddAlertRule(rule model.AlertRule) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for adding alert rule: %s", rule.RuleName)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	defer dbClient.Close()

	paramsJson, err := json.Marshal(rule.Params)
	if err != nil {
		return marshalError(err, rule.RuleId)
	}
	channelsJson, err := json.Marshal(rule.Channels)
	if err != nil {
		return marshalError(err, rule.RuleId)
	}

	query := scripts.InsertAlertRule[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, rule.RuleId, rule.OrgId, rule.RuleName, rule.TriggerType,
		string(paramsJson), string(channelsJson), rule.IsActive, rule.CreatedAt, rule.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding alert rule: %s", rule.RuleName)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_ALERT_RULE.Code,
			Message:     errors2.ADD_ALERT_RULE.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}

	logger.Info(fmt.Sprintf("Alert rule: %s added successfully", rule.RuleName))
	return nil
}

// GetAlertRules fetches all alert rules for an organization
func GetAlertRules(orgId string) ([]model.AlertRule, error) {

	return getAlertRules(scripts.GetAlertRules[provider.NewDBProvider().GetDBType()], orgId)
}

// GetActiveAlertRules fetches the active alert rules for an organization
func GetActiveAlertRules(orgId string) ([]model.AlertRule, error) {

	return getAlertRules(scripts.GetActiveAlertRules[provider.NewDBProvider().GetDBType()], orgId)
}

func getAlertRules(query string, args ...interface{}) ([]model.AlertRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching alert rules"
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(query, args...)
	if err != nil {
		errorMsg := "Failed in fetching alert rules"
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ALERT_RULE.Code,
			Message:     errors2.GET_ALERT_RULE.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}

	var rules []model.AlertRule
	for _, row := range results {
		rule, err := alertRuleFromRow(row)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}
	return rules, nil
}

// GetAlertRule fetches a specific alert rule by its Id
func GetAlertRule(orgId, ruleId string) (*model.AlertRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching alert rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.GetAlertRule[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, orgId, ruleId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching alert rule with rule_id: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ALERT_RULE.Code,
			Message:     errors2.GET_ALERT_RULE.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("No alert rule found for rule_id: %s ", ruleId))
		return nil, nil
	}

	rule, err := alertRuleFromRow(results[0])
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// UpdateAlertRule replaces all mutable fields of an alert rule
func UpdateAlertRule(rule model.AlertRule) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for updating alert rule: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	defer dbClient.Close()

	paramsJson, err := json.Marshal(rule.Params)
	if err != nil {
		return marshalError(err, rule.RuleId)
	}
	channelsJson, err := json.Marshal(rule.Channels)
	if err != nil {
		return marshalError(err, rule.RuleId)
	}

	query := scripts.UpdateAlertRule[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, rule.RuleName, rule.TriggerType, string(paramsJson),
		string(channelsJson), rule.IsActive, rule.UpdatedAt, rule.OrgId, rule.RuleId)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating alert rule for rule_id: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_ALERT_RULE.Code,
			Message:     errors2.UPDATE_ALERT_RULE.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}

	logger.Info("Successfully updated alert rule for rule_id: " + rule.RuleId)
	return nil
}

// DeleteAlertRule deletes an alert rule and its trigger stamps
func DeleteAlertRule(orgId, ruleId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for deleting alert rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	defer dbClient.Close()

	query := scripts.DeleteAlertRuleTriggers[provider.NewDBProvider().GetDBType()]
	if _, err = dbClient.ExecuteQuery(query, ruleId); err != nil {
		errorMsg := fmt.Sprintf("Failed to delete trigger stamps for alert rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_ALERT_RULE.Code,
			Message:     errors2.DELETE_ALERT_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	query = scripts.DeleteAlertRule[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, orgId, ruleId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to delete alert rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_ALERT_RULE.Code,
			Message:     errors2.DELETE_ALERT_RULE.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	logger.Info("Successfully deleted alert rule with rule_id: " + ruleId)
	return nil
}

// GetLastTriggered returns when a rule last fired for an account, nil when it never has.
func GetLastTriggered(ruleId, accountId string) (*time.Time, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching trigger stamp of rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.GetAlertRuleLastTriggered[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, ruleId, accountId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching trigger stamp of rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.STAMP_ALERT_RULE.Code,
			Message:     errors2.STAMP_ALERT_RULE.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	if len(results) == 0 || results[0]["last_triggered_at"] == nil {
		return nil, nil
	}
	lastTriggeredAt := results[0]["last_triggered_at"].(time.Time)
	return &lastTriggeredAt, nil
}

// StampTriggered records that a rule fired for an account at the given time.
func StampTriggered(ruleId, accountId string, triggeredAt time.Time) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for stamping trigger of rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	defer dbClient.Close()

	query := scripts.StampAlertRuleTriggered[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, ruleId, accountId, triggeredAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while stamping trigger of rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.STAMP_ALERT_RULE.Code,
			Message:     errors2.STAMP_ALERT_RULE.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	return nil
}

func marshalError(err error, ruleId string) error {

	errorMsg := fmt.Sprintf("Failed to marshal alert rule fields for rule: %s", ruleId)
	log.GetLogger().Debug(errorMsg, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.MARSHAL_JSON.Code,
		Message:     errors2.MARSHAL_JSON.Message,
		Description: errorMsg,
	}, err)
}

func alertRuleFromRow(row map[string]interface{}) (*model.AlertRule, error) {

	var rule model.AlertRule
	rule.RuleId = row["rule_id"].(string)
	rule.OrgId = row["org_id"].(string)
	rule.RuleName = row["rule_name"].(string)
	rule.TriggerType = row["trigger_type"].(string)
	rule.IsActive = row["is_active"].(bool)
	rule.CreatedAt = row["created_at"].(int64)
	rule.UpdatedAt = row["updated_at"].(int64)

	if raw, ok := row["params"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &rule.Params); err != nil {
			return nil, unmarshalError(err, rule.RuleId)
		}
	}
	if raw, ok := row["channels"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &rule.Channels); err != nil {
			return nil, unmarshalError(err, rule.RuleId)
		}
	}
	return &rule, nil
}

func unmarshalError(err error, ruleId string) error {

	errorMsg := fmt.Sprintf("Failed to unmarshal alert rule fields for rule: %s", ruleId)
	log.GetLogger().Debug(errorMsg, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.UNMARSHAL_JSON.Code,
		Message:     errors2.UNMARSHAL_JSON.Message,
		Description: errorMsg,
	}, err)
}
