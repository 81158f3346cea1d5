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
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/signalfoundry/account-intelligence-service/internal/scoring/model"
	"github.com/signalfoundry/account-intelligence-service/internal/system/database/provider"
	"github.com/signalfoundry/account-intelligence-service/internal/system/database/scripts"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

// AddScoringRule adds a new scoring rule to the database
func AddScoringRule(rule model.ScoringRule) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for adding scoring rule: %s", rule.RuleName)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	defer dbClient.Close()

	conditionsJson, err := marshalConditions(rule.Conditions)
	if err != nil {
		return err
	}

	query := scripts.InsertScoringRule[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, rule.RuleId, rule.OrgId, rule.RuleName, rule.SignalType, rule.Source,
		rule.Weight, rule.DecayWindow, conditionsJson, rule.IsActive, rule.CreatedAt, rule.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding scoring rule: %s", rule.RuleName)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_SCORING_RULE.Code,
			Message:     errors2.ADD_SCORING_RULE.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}

	logger.Info(fmt.Sprintf("Scoring rule: %s added successfully", rule.RuleName))
	return nil
}

// GetScoringRules fetches all scoring rules for an organization
func GetScoringRules(orgId string) ([]model.ScoringRule, error) {

	return getScoringRules(scripts.GetScoringRules[provider.NewDBProvider().GetDBType()], orgId)
}

// GetActiveScoringRules fetches the active scoring rules for an organization
func GetActiveScoringRules(orgId string) ([]model.ScoringRule, error) {

	return getScoringRules(scripts.GetActiveScoringRules[provider.NewDBProvider().GetDBType()], orgId)
}

func getScoringRules(query string, args ...interface{}) ([]model.ScoringRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching scoring rules"
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
		errorMsg := "Failed in fetching scoring rules"
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_SCORING_RULE.Code,
			Message:     errors2.GET_SCORING_RULE.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}

	var rules []model.ScoringRule
	for _, row := range results {
		rule, err := scoringRuleFromRow(row)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}
	return rules, nil
}

// GetScoringRule fetches a specific scoring rule by its Id
func GetScoringRule(orgId, ruleId string) (*model.ScoringRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching scoring rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.GetScoringRule[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, orgId, ruleId)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug(fmt.Sprintf("No scoring rule found for rule_id: %s ", ruleId))
			return nil, nil
		}
		errorMsg := fmt.Sprintf("Failed in fetching scoring rule with rule_id: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_SCORING_RULE.Code,
			Message:     errors2.GET_SCORING_RULE.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("No scoring rule found for rule_id: %s ", ruleId))
		return nil, nil
	}

	rule, err := scoringRuleFromRow(results[0])
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// UpdateScoringRule replaces all mutable fields of a scoring rule
func UpdateScoringRule(rule model.ScoringRule) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for updating scoring rule: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	defer dbClient.Close()

	conditionsJson, err := marshalConditions(rule.Conditions)
	if err != nil {
		return err
	}

	query := scripts.UpdateScoringRule[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, rule.RuleName, rule.SignalType, rule.Source, rule.Weight,
		rule.DecayWindow, conditionsJson, rule.IsActive, rule.UpdatedAt, rule.OrgId, rule.RuleId)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating scoring rule for rule_id: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_SCORING_RULE.Code,
			Message:     errors2.UPDATE_SCORING_RULE.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}

	logger.Info("Successfully updated scoring rule for rule_id: " + rule.RuleId)
	return nil
}

// DeleteScoringRule deletes a scoring rule by its Id
func DeleteScoringRule(orgId, ruleId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for deleting scoring rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	defer dbClient.Close()

	query := scripts.DeleteScoringRule[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, orgId, ruleId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to delete scoring rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_SCORING_RULE.Code,
			Message:     errors2.DELETE_SCORING_RULE.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	logger.Info("Successfully deleted scoring rule with rule_id: " + ruleId)
	return nil
}

func marshalConditions(conditions []model.RuleCondition) (sql.NullString, error) {

	if conditions == nil {
		return sql.NullString{Valid: false}, nil
	}
	bytes, err := json.Marshal(conditions)
	if err != nil {
		errorMsg := "Failed to marshal rule conditions to JSON for storing in database."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return sql.NullString{}, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}
	return sql.NullString{String: string(bytes), Valid: true}, nil
}

func scoringRuleFromRow(row map[string]interface{}) (*model.ScoringRule, error) {

	var rule model.ScoringRule
	rule.RuleId = row["rule_id"].(string)
	rule.OrgId = row["org_id"].(string)
	rule.RuleName = row["rule_name"].(string)
	rule.SignalType = row["signal_type"].(string)
	if source, ok := row["source"].(string); ok {
		rule.Source = source
	}
	rule.Weight = row["weight"].(float64)
	rule.DecayWindow = row["decay_window"].(string)
	rule.IsActive = row["is_active"].(bool)
	rule.CreatedAt = row["created_at"].(int64)
	rule.UpdatedAt = row["updated_at"].(int64)

	if raw, ok := row["conditions"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &rule.Conditions); err != nil {
			errorMsg := fmt.Sprintf("Failed to unmarshal conditions for scoring rule: %s", rule.RuleId)
			log.GetLogger().Debug(errorMsg, log.Error(err))
			return nil, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.UNMARSHAL_JSON.Code,
				Message:     errors2.UNMARSHAL_JSON.Message,
				Description: errorMsg,
			}, err)
		}
	}
	return &rule, nil
}
