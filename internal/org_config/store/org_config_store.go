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
	"fmt"
	"time"

	"github.com/signalfoundry/account-intelligence-service/internal/org_config/model"
	"github.com/signalfoundry/account-intelligence-service/internal/system/database/provider"
	"github.com/signalfoundry/account-intelligence-service/internal/system/database/scripts"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

// GetOrgConfig fetches the configuration for an organization, nil when not yet stored.
func GetOrgConfig(orgId string) (*model.OrgConfig, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching config of organization: %s", orgId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.GetOrgConfig[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, orgId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching config of organization: %s", orgId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ORG_CONFIG.Code,
			Message:     errors2.GET_ORG_CONFIG.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	if len(results) == 0 {
		return nil, nil
	}

	row := results[0]
	var orgConfig model.OrgConfig
	orgConfig.OrgId = row["org_id"].(string)
	orgConfig.HotThreshold = row["hot_threshold"].(float64)
	orgConfig.WarmThreshold = row["warm_threshold"].(float64)
	orgConfig.ColdThreshold = row["cold_threshold"].(float64)
	if webhook, ok := row["slack_webhook_url"].(string); ok {
		orgConfig.SlackWebhookUrl = webhook
	}
	orgConfig.InAppEnabled = row["inapp_enabled"].(bool)
	orgConfig.EmailEnabled = row["email_enabled"].(bool)
	orgConfig.SlackEnabled = row["slack_enabled"].(bool)
	orgConfig.UpdatedAt = row["updated_at"].(time.Time)
	return &orgConfig, nil
}

// UpsertOrgConfig stores the configuration for an organization.
func UpsertOrgConfig(orgConfig model.OrgConfig) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for updating config of organization: %s", orgConfig.OrgId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	defer dbClient.Close()

	query := scripts.UpsertOrgConfig[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, orgConfig.OrgId, orgConfig.HotThreshold, orgConfig.WarmThreshold,
		orgConfig.ColdThreshold, orgConfig.SlackWebhookUrl, orgConfig.InAppEnabled, orgConfig.EmailEnabled,
		orgConfig.SlackEnabled, orgConfig.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating config of organization: %s", orgConfig.OrgId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_ORG_CONFIG.Code,
			Message:     errors2.UPDATE_ORG_CONFIG.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}

	logger.Info(fmt.Sprintf("Configuration for organization: %s updated successfully", orgConfig.OrgId))
	return nil
}

// GetOrgMembers fetches the members of an organization.
func GetOrgMembers(orgId string) ([]model.OrgMember, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching members of organization: %s", orgId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.GetOrgMembers[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, orgId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching members of organization: %s", orgId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ORG_MEMBERS.Code,
			Message:     errors2.GET_ORG_MEMBERS.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}

	var members []model.OrgMember
	for _, row := range results {
		var member model.OrgMember
		member.MemberId = row["member_id"].(string)
		member.OrgId = row["org_id"].(string)
		member.Email = row["email"].(string)
		if name, ok := row["member_name"].(string); ok {
			member.MemberName = name
		}
		if role, ok := row["member_role"].(string); ok {
			member.MemberRole = role
		}
		members = append(members, member)
	}
	return members, nil
}
